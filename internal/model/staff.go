package model

import "time"

// Person holds the identity fields shared by doctors and nurses.
// Doctor and Nurse embed it as a value rather than subtyping a common
// employee record.
type Person struct {
	FirstName string `db:"first_name" json:"first_name"`
	Surname   string `db:"surname" json:"surname"`
	Address   string `db:"address" json:"address"`
	Phone     string `db:"phone" json:"phone"`
}

type Doctor struct {
	ID int64 `db:"employee_id" json:"employee_id"`
	Person
	Speciality string    `db:"speciality" json:"speciality"`
	Salary     float64   `db:"salary" json:"salary"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

type Nurse struct {
	ID int64 `db:"employee_id" json:"employee_id"`
	Person
	Rotation       string    `db:"rotation" json:"rotation"`
	Salary         float64   `db:"salary" json:"salary"`
	DepartmentCode string    `db:"department_code" json:"department_code"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

type CreateDoctorRequest struct {
	FirstName  string  `json:"first_name" binding:"required,person_name"`
	Surname    string  `json:"surname" binding:"required,person_name"`
	Address    string  `json:"address" binding:"required"`
	Phone      string  `json:"phone" binding:"required,phone"`
	Speciality string  `json:"speciality" binding:"required"`
	Salary     float64 `json:"salary" binding:"gte=0"`
}

type UpdateDoctorRequest = CreateDoctorRequest

type CreateNurseRequest struct {
	FirstName      string  `json:"first_name" binding:"required,person_name"`
	Surname        string  `json:"surname" binding:"required,person_name"`
	Address        string  `json:"address" binding:"required"`
	Phone          string  `json:"phone" binding:"required,phone"`
	Rotation       string  `json:"rotation" binding:"required,oneof=morning afternoon night"`
	Salary         float64 `json:"salary" binding:"gte=0"`
	DepartmentCode string  `json:"department_code" binding:"required"`
}

type UpdateNurseRequest = CreateNurseRequest
