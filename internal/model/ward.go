package model

import "time"

// Ward is identified by the composite (department code, ward number).
type Ward struct {
	DepartmentCode string    `db:"department_code" json:"department_code"`
	WardNumber     int       `db:"ward_number" json:"ward_number"`
	BedCount       int       `db:"bed_count" json:"bed_count"`
	SupervisorID   *int64    `db:"supervisor_id" json:"supervisor_id,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

type CreateWardRequest struct {
	DepartmentCode string `json:"department_code" binding:"required"`
	WardNumber     int    `json:"ward_number" binding:"required,gte=1"`
	BedCount       int    `json:"bed_count" binding:"required,gte=1"`
	SupervisorID   *int64 `json:"supervisor_id"`
}

// UpdateWardRequest carries the new ward values; the record is
// addressed by its original composite key in the URL, which the
// update itself may change.
type UpdateWardRequest struct {
	DepartmentCode string `json:"department_code" binding:"required"`
	WardNumber     int    `json:"ward_number" binding:"required,gte=1"`
	BedCount       int    `json:"bed_count" binding:"required,gte=1"`
	SupervisorID   *int64 `json:"supervisor_id"`
}
