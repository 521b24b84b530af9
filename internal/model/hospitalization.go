package model

import (
	"time"
)

// Hospitalization tracks a patient's stay in a specific ward bed and
// their treatment by a doctor. A nil DischargeDate means the patient
// is currently admitted.
type Hospitalization struct {
	ID             int64      `db:"hospitalization_id" json:"hospitalization_id"`
	PatientID      int64      `db:"patient_id" json:"patient_id"`
	DepartmentCode string     `db:"department_code" json:"department_code"`
	WardNumber     int        `db:"ward_number" json:"ward_number"`
	BedNumber      int        `db:"bed_number" json:"bed_number"`
	Diagnosis      string     `db:"diagnosis" json:"diagnosis"`
	DoctorID       int64      `db:"doctor_id" json:"doctor_id"`
	AdmissionDate  time.Time  `db:"admission_date" json:"admission_date"`
	DischargeDate  *time.Time `db:"discharge_date" json:"discharge_date,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// Open reports whether the patient is still admitted.
func (h *Hospitalization) Open() bool {
	return h.DischargeDate == nil
}

// Slot identifies a physical bed.
type Slot struct {
	DepartmentCode string `json:"department_code"`
	WardNumber     int    `json:"ward_number"`
	BedNumber      int    `json:"bed_number"`
}

// AdmitInput carries a proposed admission. Dates are calendar dates
// truncated to midnight UTC.
type AdmitInput struct {
	PatientID      int64
	DepartmentCode string
	WardNumber     int
	BedNumber      int
	Diagnosis      string
	DoctorID       int64
	AdmissionDate  time.Time
	DischargeDate  *time.Time
}

// AmendInput carries an edit of an existing hospitalization. The
// patient reference is deliberately absent: a record cannot be
// reassigned to a different patient after creation.
type AmendInput struct {
	DepartmentCode string
	WardNumber     int
	BedNumber      int
	Diagnosis      string
	DoctorID       int64
	AdmissionDate  time.Time
	DischargeDate  *time.Time
}

// AdmitHospitalizationRequest is the HTTP shape of AdmitInput. Date
// format is checked at binding time; business validation happens in
// the service so all violations surface together.
type AdmitHospitalizationRequest struct {
	PatientID      int64  `json:"patient_id"`
	DepartmentCode string `json:"department_code"`
	WardNumber     int    `json:"ward_number"`
	BedNumber      int    `json:"bed_number"`
	Diagnosis      string `json:"diagnosis"`
	DoctorID       int64  `json:"doctor_id"`
	AdmissionDate  string `json:"admission_date" binding:"omitempty,datetime=2006-01-02"`
	DischargeDate  string `json:"discharge_date" binding:"omitempty,datetime=2006-01-02"`
}

// AmendHospitalizationRequest is the HTTP shape of AmendInput. The
// admission date is required here: an amendment restates the whole
// record, and a default would overwrite the stored date.
type AmendHospitalizationRequest struct {
	DepartmentCode string `json:"department_code"`
	WardNumber     int    `json:"ward_number"`
	BedNumber      int    `json:"bed_number"`
	Diagnosis      string `json:"diagnosis"`
	DoctorID       int64  `json:"doctor_id"`
	AdmissionDate  string `json:"admission_date" binding:"required,datetime=2006-01-02"`
	DischargeDate  string `json:"discharge_date" binding:"omitempty,datetime=2006-01-02"`
}

// DischargeRequest closes an open hospitalization.
type DischargeRequest struct {
	DischargeDate string `json:"discharge_date" binding:"required,datetime=2006-01-02"`
}
