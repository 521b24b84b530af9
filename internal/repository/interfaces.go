package repository

import (
	"context"
	"time"

	"github.com/healthtrack/records-api/internal/model"
)

// All repository interfaces in one file
type (
	// HospitalizationRepository owns the persisted set of
	// hospitalization records.
	HospitalizationRepository interface {
		Create(ctx context.Context, h *model.Hospitalization) (int64, error)
		Get(ctx context.Context, id int64) (*model.Hospitalization, error)
		List(ctx context.Context) ([]*model.Hospitalization, error)
		ListOpen(ctx context.Context) ([]*model.Hospitalization, error)
		ListByPatient(ctx context.Context, patientID int64) ([]*model.Hospitalization, error)
		ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Hospitalization, error)
		Update(ctx context.Context, h *model.Hospitalization) error
		Discharge(ctx context.Context, id int64, dischargeDate time.Time) error
		Delete(ctx context.Context, id int64) error
		// IsSlotOccupied reports whether an open record exists for the
		// slot. A non-nil excludeID leaves that record out of the check,
		// so an amendment is not blocked by its own bed.
		IsSlotOccupied(ctx context.Context, slot model.Slot, excludeID *int64) (bool, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, p *model.Patient) (int64, error)
		Get(ctx context.Context, id int64) (*model.Patient, error)
		List(ctx context.Context) ([]*model.Patient, error)
		SearchByName(ctx context.Context, term string) ([]*model.Patient, error)
		Update(ctx context.Context, p *model.Patient) error
		Delete(ctx context.Context, id int64) error
	}

	DoctorRepository interface {
		Create(ctx context.Context, d *model.Doctor) (int64, error)
		Get(ctx context.Context, id int64) (*model.Doctor, error)
		List(ctx context.Context) ([]*model.Doctor, error)
		ListBySpeciality(ctx context.Context, speciality string) ([]*model.Doctor, error)
		Update(ctx context.Context, d *model.Doctor) error
		Delete(ctx context.Context, id int64) error
	}

	NurseRepository interface {
		Create(ctx context.Context, n *model.Nurse) (int64, error)
		Get(ctx context.Context, id int64) (*model.Nurse, error)
		List(ctx context.Context) ([]*model.Nurse, error)
		ListByRotation(ctx context.Context, rotation string) ([]*model.Nurse, error)
		Update(ctx context.Context, n *model.Nurse) error
		Delete(ctx context.Context, id int64) error
	}

	DepartmentRepository interface {
		Create(ctx context.Context, d *model.Department) error
		Get(ctx context.Context, code string) (*model.Department, error)
		List(ctx context.Context) ([]*model.Department, error)
		ListByBuilding(ctx context.Context, building string) ([]*model.Department, error)
		Update(ctx context.Context, d *model.Department) error
		Delete(ctx context.Context, code string) error
	}

	// ReportRepository serves the read-only report queries. It never
	// writes.
	ReportRepository interface {
		StaysByDepartment(ctx context.Context, departmentCode string) ([]*model.PatientStayRow, error)
		StaysByPeriod(ctx context.Context, from, to time.Time) ([]*model.PatientStayRow, error)
		StaysByDiagnosis(ctx context.Context, keyword string) ([]*model.PatientStayRow, error)
		CurrentStays(ctx context.Context) ([]*model.PatientStayRow, error)
		WardOccupancy(ctx context.Context) ([]*model.WardOccupancyRow, error)
		AdmissionStats(ctx context.Context) (*model.AdmissionStats, error)
		DoctorsBySpeciality(ctx context.Context) ([]*model.DoctorSpecialityCount, error)
		NursesByDepartment(ctx context.Context) ([]*model.NurseDepartmentCount, error)
	}

	WardRepository interface {
		Create(ctx context.Context, w *model.Ward) error
		Get(ctx context.Context, departmentCode string, wardNumber int) (*model.Ward, error)
		List(ctx context.Context) ([]*model.Ward, error)
		ListByDepartment(ctx context.Context, departmentCode string) ([]*model.Ward, error)
		ListBySupervisor(ctx context.Context, supervisorID int64) ([]*model.Ward, error)
		// Update addresses the row by its original composite key; the
		// update itself may move the ward to a new key.
		Update(ctx context.Context, origDepartmentCode string, origWardNumber int, w *model.Ward) error
		Delete(ctx context.Context, departmentCode string, wardNumber int) error
	}
)
