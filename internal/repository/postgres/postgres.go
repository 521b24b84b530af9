package postgres

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/healthtrack/records-api/internal/repository"
	pkgerrors "github.com/healthtrack/records-api/pkg/errors"
	"github.com/healthtrack/records-api/pkg/metrics"
)

type hospitalizationRepository struct {
	db      *sqlx.DB
	metrics *metrics.Metrics
}

type patientRepository struct {
	db *sqlx.DB
}

type doctorRepository struct {
	db *sqlx.DB
}

type nurseRepository struct {
	db *sqlx.DB
}

type departmentRepository struct {
	db *sqlx.DB
}

type wardRepository struct {
	db *sqlx.DB
}

func NewHospitalizationRepository(db *sqlx.DB, m *metrics.Metrics) repository.HospitalizationRepository {
	return &hospitalizationRepository{db: db, metrics: m}
}

// observe feeds the database metrics. Only the hospitalization
// repository is instrumented; it carries the lifecycle traffic the
// dashboards watch.
func (r *hospitalizationRepository) observe(op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.metrics.DatabaseOperations.WithLabelValues(op, status).Inc()
	r.metrics.DatabaseLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{db: db}
}

func NewNurseRepository(db *sqlx.DB) repository.NurseRepository {
	return &nurseRepository{db: db}
}

func NewDepartmentRepository(db *sqlx.DB) repository.DepartmentRepository {
	return &departmentRepository{db: db}
}

func NewWardRepository(db *sqlx.DB) repository.WardRepository {
	return &wardRepository{db: db}
}

// postgres error classes used to map driver failures onto the
// application taxonomy.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// openSlotIndex backs the invariant that at most one open
// hospitalization exists per bed; a unique violation on it means the
// slot was taken between the occupancy check and the insert.
const openSlotIndex = "hospitalizations_open_slot_idx"

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == pqUniqueViolation && pqErr.Constraint == constraint
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == pqForeignKeyViolation
}

// notFoundOrPersistence maps sql.ErrNoRows onto the taxonomy and wraps
// everything else as a storage failure.
func notFoundOrPersistence(resource string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return pkgerrors.NotFound(resource, err)
	}
	return pkgerrors.Persistence(err)
}
