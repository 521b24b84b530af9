package model

import "time"

type Patient struct {
	ID        int64     `db:"patient_id" json:"patient_id"`
	FirstName string    `db:"first_name" json:"first_name"`
	Surname   string    `db:"surname" json:"surname"`
	Address   string    `db:"address" json:"address"`
	Phone     string    `db:"phone" json:"phone"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type CreatePatientRequest struct {
	FirstName string `json:"first_name" binding:"required,person_name"`
	Surname   string `json:"surname" binding:"required,person_name"`
	Address   string `json:"address" binding:"required"`
	Phone     string `json:"phone" binding:"required,phone"`
}

type UpdatePatientRequest struct {
	FirstName string `json:"first_name" binding:"required,person_name"`
	Surname   string `json:"surname" binding:"required,person_name"`
	Address   string `json:"address" binding:"required"`
	Phone     string `json:"phone" binding:"required,phone"`
}
