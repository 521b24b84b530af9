package postgres

import (
	"context"
	"time"

	"github.com/healthtrack/records-api/internal/model"
	pkgerrors "github.com/healthtrack/records-api/pkg/errors"
)

func (r *patientRepository) Create(ctx context.Context, p *model.Patient) (int64, error) {
	query := `
		INSERT INTO patients (first_name, surname, address, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING patient_id
	`
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		p.FirstName, p.Surname, p.Address, p.Phone, p.CreatedAt, p.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, pkgerrors.Persistence(err)
	}
	p.ID = id
	return id, nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	query := `SELECT * FROM patients WHERE patient_id = $1`
	var p model.Patient
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		return nil, notFoundOrPersistence("patient", err)
	}
	return &p, nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	query := `SELECT * FROM patients ORDER BY surname, first_name`
	var ps []*model.Patient
	if err := r.db.SelectContext(ctx, &ps, query); err != nil {
		return nil, pkgerrors.Persistence(err)
	}
	return ps, nil
}

func (r *patientRepository) SearchByName(ctx context.Context, term string) ([]*model.Patient, error) {
	query := `
		SELECT * FROM patients
		WHERE first_name ILIKE $1 OR surname ILIKE $1
		ORDER BY surname, first_name
	`
	var ps []*model.Patient
	if err := r.db.SelectContext(ctx, &ps, query, "%"+term+"%"); err != nil {
		return nil, pkgerrors.Persistence(err)
	}
	return ps, nil
}

func (r *patientRepository) Update(ctx context.Context, p *model.Patient) error {
	query := `
		UPDATE patients
		SET first_name = $1, surname = $2, address = $3, phone = $4, updated_at = $5
		WHERE patient_id = $6
	`
	p.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		p.FirstName, p.Surname, p.Address, p.Phone, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return pkgerrors.Persistence(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return pkgerrors.Persistence(err)
	}
	if rows == 0 {
		return pkgerrors.NotFound("patient", nil)
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE patient_id = $1`, id)
	if err != nil {
		return pkgerrors.Persistence(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return pkgerrors.Persistence(err)
	}
	if rows == 0 {
		return pkgerrors.NotFound("patient", nil)
	}
	return nil
}
