package model

import "time"

// PatientStayRow is a hospitalization joined with the patient's name,
// as rendered in tabular reports.
type PatientStayRow struct {
	HospitalizationID int64      `db:"hospitalization_id" json:"hospitalization_id"`
	PatientID         int64      `db:"patient_id" json:"patient_id"`
	FirstName         string     `db:"first_name" json:"first_name"`
	Surname           string     `db:"surname" json:"surname"`
	DepartmentCode    string     `db:"department_code" json:"department_code"`
	WardNumber        int        `db:"ward_number" json:"ward_number"`
	BedNumber         int        `db:"bed_number" json:"bed_number"`
	Diagnosis         string     `db:"diagnosis" json:"diagnosis"`
	AdmissionDate     time.Time  `db:"admission_date" json:"admission_date"`
	DischargeDate     *time.Time `db:"discharge_date" json:"discharge_date,omitempty"`
}

// WardOccupancyRow summarizes bed usage for one ward.
type WardOccupancyRow struct {
	DepartmentCode string `db:"department_code" json:"department_code"`
	WardNumber     int    `db:"ward_number" json:"ward_number"`
	BedCount       int    `db:"bed_count" json:"bed_count"`
	OccupiedBeds   int    `db:"occupied_beds" json:"occupied_beds"`
	FreeBeds       int    `db:"free_beds" json:"free_beds"`
}

// AdmissionStats are the headline numbers shown on the reports page.
// AvgStayDays covers completed stays only; TopDepartment and
// TopDiagnosis are empty while no records exist.
type AdmissionStats struct {
	CurrentlyAdmitted int64   `db:"currently_admitted" json:"currently_admitted"`
	TotalAdmissions   int64   `db:"total_admissions" json:"total_admissions"`
	DistinctPatients  int64   `db:"distinct_patients" json:"distinct_patients"`
	AvgStayDays       float64 `db:"avg_stay_days" json:"avg_stay_days"`
	TopDepartment     string  `db:"top_department" json:"top_department"`
	TopDiagnosis      string  `db:"top_diagnosis" json:"top_diagnosis"`
}

// DoctorSpecialityCount is one row of the doctors-per-speciality
// summary.
type DoctorSpecialityCount struct {
	Speciality string `db:"speciality" json:"speciality"`
	Doctors    int    `db:"doctors" json:"doctors"`
}

// NurseDepartmentCount is one row of the nurses-per-department
// summary.
type NurseDepartmentCount struct {
	DepartmentCode string `db:"department_code" json:"department_code"`
	Nurses         int    `db:"nurses" json:"nurses"`
}
