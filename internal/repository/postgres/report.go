package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/healthtrack/records-api/internal/model"
	"github.com/healthtrack/records-api/internal/repository"
	pkgerrors "github.com/healthtrack/records-api/pkg/errors"
)

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

const stayColumns = `
	h.hospitalization_id, h.patient_id, p.first_name, p.surname,
	h.department_code, h.ward_number, h.bed_number, h.diagnosis,
	h.admission_date, h.discharge_date
`

func (r *reportRepository) StaysByDepartment(ctx context.Context, departmentCode string) ([]*model.PatientStayRow, error) {
	query := `
		SELECT ` + stayColumns + `
		FROM hospitalizations h
		JOIN patients p ON p.patient_id = h.patient_id
		WHERE h.department_code = $1
		ORDER BY h.admission_date DESC
	`
	var rows []*model.PatientStayRow
	if err := r.db.SelectContext(ctx, &rows, query, departmentCode); err != nil {
		return nil, pkgerrors.Persistence(err)
	}
	return rows, nil
}

func (r *reportRepository) StaysByPeriod(ctx context.Context, from, to time.Time) ([]*model.PatientStayRow, error) {
	query := `
		SELECT ` + stayColumns + `
		FROM hospitalizations h
		JOIN patients p ON p.patient_id = h.patient_id
		WHERE h.admission_date >= $1 AND h.admission_date <= $2
		ORDER BY h.admission_date DESC
	`
	var rows []*model.PatientStayRow
	if err := r.db.SelectContext(ctx, &rows, query, from, to); err != nil {
		return nil, pkgerrors.Persistence(err)
	}
	return rows, nil
}

func (r *reportRepository) StaysByDiagnosis(ctx context.Context, keyword string) ([]*model.PatientStayRow, error) {
	query := `
		SELECT ` + stayColumns + `
		FROM hospitalizations h
		JOIN patients p ON p.patient_id = h.patient_id
		WHERE h.diagnosis ILIKE $1
		ORDER BY h.admission_date DESC
	`
	var rows []*model.PatientStayRow
	if err := r.db.SelectContext(ctx, &rows, query, "%"+keyword+"%"); err != nil {
		return nil, pkgerrors.Persistence(err)
	}
	return rows, nil
}

func (r *reportRepository) CurrentStays(ctx context.Context) ([]*model.PatientStayRow, error) {
	query := `
		SELECT ` + stayColumns + `
		FROM hospitalizations h
		JOIN patients p ON p.patient_id = h.patient_id
		WHERE h.discharge_date IS NULL
		ORDER BY h.admission_date DESC
	`
	var rows []*model.PatientStayRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, pkgerrors.Persistence(err)
	}
	return rows, nil
}

func (r *reportRepository) WardOccupancy(ctx context.Context) ([]*model.WardOccupancyRow, error) {
	query := `
		SELECT w.department_code, w.ward_number, w.bed_count,
		       COUNT(h.hospitalization_id)::int AS occupied_beds,
		       (w.bed_count - COUNT(h.hospitalization_id))::int AS free_beds
		FROM wards w
		LEFT JOIN hospitalizations h
		       ON h.department_code = w.department_code
		      AND h.ward_number = w.ward_number
		      AND h.discharge_date IS NULL
		GROUP BY w.department_code, w.ward_number, w.bed_count
		ORDER BY w.department_code, w.ward_number
	`
	var rows []*model.WardOccupancyRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, pkgerrors.Persistence(err)
	}
	return rows, nil
}

func (r *reportRepository) AdmissionStats(ctx context.Context) (*model.AdmissionStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE discharge_date IS NULL) AS currently_admitted,
			COUNT(*) AS total_admissions,
			COUNT(DISTINCT patient_id) AS distinct_patients,
			COALESCE(AVG(discharge_date - admission_date)
				FILTER (WHERE discharge_date IS NOT NULL), 0)::float8 AS avg_stay_days,
			COALESCE((
				SELECT department_code FROM hospitalizations
				GROUP BY department_code
				ORDER BY COUNT(*) DESC, department_code
				LIMIT 1
			), '') AS top_department,
			COALESCE((
				SELECT diagnosis FROM hospitalizations
				GROUP BY diagnosis
				ORDER BY COUNT(*) DESC, diagnosis
				LIMIT 1
			), '') AS top_diagnosis
		FROM hospitalizations
	`
	var stats model.AdmissionStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, pkgerrors.Persistence(err)
	}
	return &stats, nil
}

func (r *reportRepository) DoctorsBySpeciality(ctx context.Context) ([]*model.DoctorSpecialityCount, error) {
	query := `
		SELECT speciality, COUNT(*)::int AS doctors
		FROM doctors
		GROUP BY speciality
		ORDER BY doctors DESC, speciality
	`
	var rows []*model.DoctorSpecialityCount
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, pkgerrors.Persistence(err)
	}
	return rows, nil
}

func (r *reportRepository) NursesByDepartment(ctx context.Context) ([]*model.NurseDepartmentCount, error) {
	query := `
		SELECT department_code, COUNT(*)::int AS nurses
		FROM nurses
		GROUP BY department_code
		ORDER BY nurses DESC, department_code
	`
	var rows []*model.NurseDepartmentCount
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, pkgerrors.Persistence(err)
	}
	return rows, nil
}
