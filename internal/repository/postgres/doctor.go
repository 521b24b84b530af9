package postgres

import (
	"context"
	"time"

	"github.com/healthtrack/records-api/internal/model"
	pkgerrors "github.com/healthtrack/records-api/pkg/errors"
)

const doctorColumns = `
	d.employee_id, d.speciality, d.salary,
	e.first_name, e.surname, e.address, e.phone,
	e.created_at, e.updated_at
`

// Create inserts the employee row and the doctor row in one
// transaction, so a failure on the second insert never leaves an
// orphaned employee behind.
func (r *doctorRepository) Create(ctx context.Context, d *model.Doctor) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, pkgerrors.Persistence(err)
	}
	defer tx.Rollback()

	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO employees (first_name, surname, address, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING employee_id
	`, d.FirstName, d.Surname, d.Address, d.Phone, d.CreatedAt, d.UpdatedAt).Scan(&id)
	if err != nil {
		return 0, pkgerrors.Persistence(err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO doctors (employee_id, speciality, salary)
		VALUES ($1, $2, $3)
	`, id, d.Speciality, d.Salary)
	if err != nil {
		return 0, pkgerrors.Persistence(err)
	}

	if err := tx.Commit(); err != nil {
		return 0, pkgerrors.Persistence(err)
	}
	d.ID = id
	return id, nil
}

func (r *doctorRepository) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	query := `
		SELECT ` + doctorColumns + `
		FROM doctors d
		JOIN employees e ON e.employee_id = d.employee_id
		WHERE d.employee_id = $1
	`
	var d model.Doctor
	if err := r.db.GetContext(ctx, &d, query, id); err != nil {
		return nil, notFoundOrPersistence("doctor", err)
	}
	return &d, nil
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	query := `
		SELECT ` + doctorColumns + `
		FROM doctors d
		JOIN employees e ON e.employee_id = d.employee_id
		ORDER BY e.surname, e.first_name
	`
	var ds []*model.Doctor
	if err := r.db.SelectContext(ctx, &ds, query); err != nil {
		return nil, pkgerrors.Persistence(err)
	}
	return ds, nil
}

func (r *doctorRepository) ListBySpeciality(ctx context.Context, speciality string) ([]*model.Doctor, error) {
	query := `
		SELECT ` + doctorColumns + `
		FROM doctors d
		JOIN employees e ON e.employee_id = d.employee_id
		WHERE d.speciality ILIKE $1
		ORDER BY e.surname, e.first_name
	`
	var ds []*model.Doctor
	if err := r.db.SelectContext(ctx, &ds, query, speciality); err != nil {
		return nil, pkgerrors.Persistence(err)
	}
	return ds, nil
}

func (r *doctorRepository) Update(ctx context.Context, d *model.Doctor) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return pkgerrors.Persistence(err)
	}
	defer tx.Rollback()

	d.UpdatedAt = time.Now()

	result, err := tx.ExecContext(ctx, `
		UPDATE employees
		SET first_name = $1, surname = $2, address = $3, phone = $4, updated_at = $5
		WHERE employee_id = $6
	`, d.FirstName, d.Surname, d.Address, d.Phone, d.UpdatedAt, d.ID)
	if err != nil {
		return pkgerrors.Persistence(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return pkgerrors.Persistence(err)
	}
	if rows == 0 {
		return pkgerrors.NotFound("doctor", nil)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE doctors SET speciality = $1, salary = $2 WHERE employee_id = $3
	`, d.Speciality, d.Salary, d.ID); err != nil {
		return pkgerrors.Persistence(err)
	}

	if err := tx.Commit(); err != nil {
		return pkgerrors.Persistence(err)
	}
	return nil
}

func (r *doctorRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return pkgerrors.Persistence(err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM doctors WHERE employee_id = $1`, id)
	if err != nil {
		return pkgerrors.Persistence(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return pkgerrors.Persistence(err)
	}
	if rows == 0 {
		return pkgerrors.NotFound("doctor", nil)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM employees WHERE employee_id = $1`, id); err != nil {
		return pkgerrors.Persistence(err)
	}

	if err := tx.Commit(); err != nil {
		return pkgerrors.Persistence(err)
	}
	return nil
}
