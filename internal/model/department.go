package model

import "time"

type Department struct {
	Code       string    `db:"department_code" json:"department_code"`
	Name       string    `db:"name" json:"name"`
	Building   string    `db:"building" json:"building"`
	DirectorID *int64    `db:"director_id" json:"director_id,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

type CreateDepartmentRequest struct {
	Code       string `json:"department_code" binding:"required,alphanum,max=10"`
	Name       string `json:"name" binding:"required"`
	Building   string `json:"building" binding:"required"`
	DirectorID *int64 `json:"director_id"`
}

type UpdateDepartmentRequest struct {
	Name       string `json:"name" binding:"required"`
	Building   string `json:"building" binding:"required"`
	DirectorID *int64 `json:"director_id"`
}
