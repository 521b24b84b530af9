package postgres

import (
	"context"
	"time"

	"github.com/healthtrack/records-api/internal/model"
	pkgerrors "github.com/healthtrack/records-api/pkg/errors"
)

func (r *hospitalizationRepository) Create(ctx context.Context, h *model.Hospitalization) (_ int64, err error) {
	start := time.Now()
	defer func() { r.observe("hospitalizations.create", start, err) }()
	query := `
		INSERT INTO hospitalizations (
			patient_id, department_code, ward_number, bed_number,
			diagnosis, doctor_id, admission_date, discharge_date,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING hospitalization_id
	`
	now := time.Now()
	h.CreatedAt = now
	h.UpdatedAt = now

	var id int64
	err = r.db.QueryRowContext(ctx, query,
		h.PatientID,
		h.DepartmentCode,
		h.WardNumber,
		h.BedNumber,
		h.Diagnosis,
		h.DoctorID,
		h.AdmissionDate,
		h.DischargeDate,
		h.CreatedAt,
		h.UpdatedAt,
	).Scan(&id)
	if err != nil {
		// The partial unique index is the authoritative guard against
		// two admissions racing into the same empty bed.
		if isUniqueViolation(err, openSlotIndex) {
			return 0, pkgerrors.Occupancy(h.DepartmentCode, h.WardNumber, h.BedNumber)
		}
		// A foreign key firing here means the referenced row vanished
		// between validation and the insert.
		if isForeignKeyViolation(err) {
			return 0, pkgerrors.Reference("hospitalization reference")
		}
		return 0, pkgerrors.Persistence(err)
	}
	h.ID = id
	return id, nil
}

func (r *hospitalizationRepository) Get(ctx context.Context, id int64) (_ *model.Hospitalization, err error) {
	start := time.Now()
	defer func() { r.observe("hospitalizations.get", start, err) }()
	query := `
		SELECT hospitalization_id, patient_id, department_code, ward_number, bed_number,
		       diagnosis, doctor_id, admission_date, discharge_date, created_at, updated_at
		FROM hospitalizations
		WHERE hospitalization_id = $1
	`
	var h model.Hospitalization
	if err := r.db.GetContext(ctx, &h, query, id); err != nil {
		return nil, notFoundOrPersistence("hospitalization", err)
	}
	return &h, nil
}

func (r *hospitalizationRepository) List(ctx context.Context) ([]*model.Hospitalization, error) {
	query := `
		SELECT hospitalization_id, patient_id, department_code, ward_number, bed_number,
		       diagnosis, doctor_id, admission_date, discharge_date, created_at, updated_at
		FROM hospitalizations
		ORDER BY hospitalization_id DESC
	`
	var hs []*model.Hospitalization
	if err := r.db.SelectContext(ctx, &hs, query); err != nil {
		return nil, pkgerrors.Persistence(err)
	}
	return hs, nil
}

func (r *hospitalizationRepository) ListOpen(ctx context.Context) ([]*model.Hospitalization, error) {
	query := `
		SELECT hospitalization_id, patient_id, department_code, ward_number, bed_number,
		       diagnosis, doctor_id, admission_date, discharge_date, created_at, updated_at
		FROM hospitalizations
		WHERE discharge_date IS NULL
		ORDER BY hospitalization_id DESC
	`
	var hs []*model.Hospitalization
	if err := r.db.SelectContext(ctx, &hs, query); err != nil {
		return nil, pkgerrors.Persistence(err)
	}
	return hs, nil
}

func (r *hospitalizationRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Hospitalization, error) {
	query := `
		SELECT hospitalization_id, patient_id, department_code, ward_number, bed_number,
		       diagnosis, doctor_id, admission_date, discharge_date, created_at, updated_at
		FROM hospitalizations
		WHERE patient_id = $1
		ORDER BY admission_date DESC
	`
	var hs []*model.Hospitalization
	if err := r.db.SelectContext(ctx, &hs, query, patientID); err != nil {
		return nil, pkgerrors.Persistence(err)
	}
	return hs, nil
}

func (r *hospitalizationRepository) ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Hospitalization, error) {
	query := `
		SELECT hospitalization_id, patient_id, department_code, ward_number, bed_number,
		       diagnosis, doctor_id, admission_date, discharge_date, created_at, updated_at
		FROM hospitalizations
		WHERE doctor_id = $1
		ORDER BY admission_date DESC
	`
	var hs []*model.Hospitalization
	if err := r.db.SelectContext(ctx, &hs, query, doctorID); err != nil {
		return nil, pkgerrors.Persistence(err)
	}
	return hs, nil
}

// Update replaces all mutable fields. The patient reference is left
// untouched: a hospitalization stays with the patient it was created
// for.
func (r *hospitalizationRepository) Update(ctx context.Context, h *model.Hospitalization) (err error) {
	start := time.Now()
	defer func() { r.observe("hospitalizations.update", start, err) }()
	query := `
		UPDATE hospitalizations
		SET department_code = $1, ward_number = $2, bed_number = $3,
		    diagnosis = $4, doctor_id = $5, admission_date = $6,
		    discharge_date = $7, updated_at = $8
		WHERE hospitalization_id = $9
	`
	h.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		h.DepartmentCode,
		h.WardNumber,
		h.BedNumber,
		h.Diagnosis,
		h.DoctorID,
		h.AdmissionDate,
		h.DischargeDate,
		h.UpdatedAt,
		h.ID,
	)
	if err != nil {
		if isUniqueViolation(err, openSlotIndex) {
			return pkgerrors.Occupancy(h.DepartmentCode, h.WardNumber, h.BedNumber)
		}
		return pkgerrors.Persistence(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return pkgerrors.Persistence(err)
	}
	if rows == 0 {
		return pkgerrors.NotFound("hospitalization", nil)
	}
	return nil
}

// Discharge closes the record only while it is still open, so two
// discharges racing on the same id cannot both win. Missing ids are
// caught by the service's preceding read; a zero-row update here
// means another discharge got there first.
func (r *hospitalizationRepository) Discharge(ctx context.Context, id int64, dischargeDate time.Time) (err error) {
	start := time.Now()
	defer func() { r.observe("hospitalizations.discharge", start, err) }()
	query := `
		UPDATE hospitalizations
		SET discharge_date = $1, updated_at = $2
		WHERE hospitalization_id = $3
		AND discharge_date IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, dischargeDate, time.Now(), id)
	if err != nil {
		return pkgerrors.Persistence(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return pkgerrors.Persistence(err)
	}
	if rows == 0 {
		return pkgerrors.AlreadyDischarged(id)
	}
	return nil
}

func (r *hospitalizationRepository) Delete(ctx context.Context, id int64) (err error) {
	start := time.Now()
	defer func() { r.observe("hospitalizations.delete", start, err) }()
	query := `
		DELETE FROM hospitalizations
		WHERE hospitalization_id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return pkgerrors.Persistence(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return pkgerrors.Persistence(err)
	}
	if rows == 0 {
		return pkgerrors.NotFound("hospitalization", nil)
	}
	return nil
}

func (r *hospitalizationRepository) IsSlotOccupied(ctx context.Context, slot model.Slot, excludeID *int64) (_ bool, err error) {
	start := time.Now()
	defer func() { r.observe("hospitalizations.slot_check", start, err) }()
	query := `
		SELECT EXISTS (
			SELECT 1 FROM hospitalizations
			WHERE department_code = $1
			AND ward_number = $2
			AND bed_number = $3
			AND discharge_date IS NULL
	`
	args := []interface{}{slot.DepartmentCode, slot.WardNumber, slot.BedNumber}

	if excludeID != nil {
		query += " AND hospitalization_id != $4"
		args = append(args, *excludeID)
	}

	query += ")"

	var occupied bool
	if err := r.db.GetContext(ctx, &occupied, query, args...); err != nil {
		return false, pkgerrors.Persistence(err)
	}
	return occupied, nil
}
