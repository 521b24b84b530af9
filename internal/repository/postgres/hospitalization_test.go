package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthtrack/records-api/internal/model"
	"github.com/healthtrack/records-api/internal/repository"
	pkgerrors "github.com/healthtrack/records-api/pkg/errors"
	"github.com/healthtrack/records-api/pkg/metrics"
)

// Shared across tests: promauto registers on the default registry and
// a second registration would panic.
var testMetrics = metrics.NewMetrics("healthtrack_repo_test")

func newMockRepo(t *testing.T) (repository.HospitalizationRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewHospitalizationRepository(sqlx.NewDb(db, "sqlmock"), testMetrics), mock
}

func sampleHospitalization() *model.Hospitalization {
	return &model.Hospitalization{
		PatientID:      1,
		DepartmentCode: "CARD",
		WardNumber:     1,
		BedNumber:      2,
		Diagnosis:      "flu",
		DoctorID:       7,
		AdmissionDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateReturnsGeneratedID(t *testing.T) {
	repo, mock := newMockRepo(t)
	h := sampleHospitalization()

	mock.ExpectQuery(`INSERT INTO hospitalizations`).
		WithArgs(h.PatientID, h.DepartmentCode, h.WardNumber, h.BedNumber,
			h.Diagnosis, h.DoctorID, h.AdmissionDate, h.DischargeDate,
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"hospitalization_id"}).AddRow(42))

	id, err := repo.Create(context.Background(), h)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, int64(42), h.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMapsOpenSlotViolationToOccupancy(t *testing.T) {
	repo, mock := newMockRepo(t)
	h := sampleHospitalization()

	mock.ExpectQuery(`INSERT INTO hospitalizations`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "hospitalizations_open_slot_idx"})

	_, err := repo.Create(context.Background(), h)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrOccupancy))
}

func TestCreateMapsForeignKeyToReference(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO hospitalizations`).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "hospitalizations_patient_id_fkey"})

	_, err := repo.Create(context.Background(), sampleHospitalization())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrReference))
}

func TestGetNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM hospitalizations`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"hospitalization_id"}))

	_, err := repo.Get(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrNotFound))
}

func TestUpdateMissingRowIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	h := sampleHospitalization()
	h.ID = 5

	mock.ExpectExec(`UPDATE hospitalizations`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), h)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrNotFound))
}

func TestDischargeSetsDateOnlyWhileOpen(t *testing.T) {
	repo, mock := newMockRepo(t)
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`(?s)UPDATE hospitalizations\s+SET discharge_date = \$1.+AND discharge_date IS NULL`).
		WithArgs(date, sqlmock.AnyArg(), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Discharge(context.Background(), 5, date))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDischargeClosedRowIsAlreadyDischarged(t *testing.T) {
	repo, mock := newMockRepo(t)
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`UPDATE hospitalizations\s+SET discharge_date = \$1`).
		WithArgs(date, sqlmock.AnyArg(), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Discharge(context.Background(), 5, date)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrAlreadyDischarged))
}

func TestDeleteMissingRowIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM hospitalizations`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 5)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrNotFound))
}

func TestIsSlotOccupiedExcludesOwnRecord(t *testing.T) {
	repo, mock := newMockRepo(t)
	slot := model.Slot{DepartmentCode: "CARD", WardNumber: 1, BedNumber: 2}
	exclude := int64(5)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(slot.DepartmentCode, slot.WardNumber, slot.BedNumber, exclude).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	occupied, err := repo.IsSlotOccupied(context.Background(), slot, &exclude)
	require.NoError(t, err)
	assert.False(t, occupied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorageOperationsFeedDatabaseMetrics(t *testing.T) {
	repo, mock := newMockRepo(t)

	okBefore := testutil.ToFloat64(testMetrics.DatabaseOperations.WithLabelValues("hospitalizations.get", "ok"))
	errBefore := testutil.ToFloat64(testMetrics.DatabaseOperations.WithLabelValues("hospitalizations.get", "error"))

	rows := sqlmock.NewRows([]string{
		"hospitalization_id", "patient_id", "department_code", "ward_number", "bed_number",
		"diagnosis", "doctor_id", "admission_date", "discharge_date", "created_at", "updated_at",
	}).AddRow(1, 1, "CARD", 1, 2, "flu", 7,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil, time.Now(), time.Now())
	mock.ExpectQuery(`SELECT .+ FROM hospitalizations`).WillReturnRows(rows)
	_, err := repo.Get(context.Background(), 1)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT .+ FROM hospitalizations`).
		WillReturnRows(sqlmock.NewRows([]string{"hospitalization_id"}))
	_, err = repo.Get(context.Background(), 99)
	require.Error(t, err)

	assert.Equal(t, okBefore+1,
		testutil.ToFloat64(testMetrics.DatabaseOperations.WithLabelValues("hospitalizations.get", "ok")))
	assert.Equal(t, errBefore+1,
		testutil.ToFloat64(testMetrics.DatabaseOperations.WithLabelValues("hospitalizations.get", "error")))
}

func TestListOpenFiltersByNullDischarge(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{
		"hospitalization_id", "patient_id", "department_code", "ward_number", "bed_number",
		"diagnosis", "doctor_id", "admission_date", "discharge_date", "created_at", "updated_at",
	}).AddRow(2, 1, "CARD", 1, 2, "flu", 7,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil, time.Now(), time.Now())

	mock.ExpectQuery(`WHERE discharge_date IS NULL`).WillReturnRows(rows)

	hs, err := repo.ListOpen(context.Background())
	require.NoError(t, err)
	require.Len(t, hs, 1)
	assert.True(t, hs[0].Open())
}
