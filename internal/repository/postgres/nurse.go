package postgres

import (
	"context"
	"time"

	"github.com/healthtrack/records-api/internal/model"
	pkgerrors "github.com/healthtrack/records-api/pkg/errors"
)

const nurseColumns = `
	n.employee_id, n.rotation, n.salary, n.department_code,
	e.first_name, e.surname, e.address, e.phone,
	e.created_at, e.updated_at
`

// Create mirrors the doctor repository: both rows inside one
// transaction, no compensating delete.
func (r *nurseRepository) Create(ctx context.Context, n *model.Nurse) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, pkgerrors.Persistence(err)
	}
	defer tx.Rollback()

	now := time.Now()
	n.CreatedAt = now
	n.UpdatedAt = now

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO employees (first_name, surname, address, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING employee_id
	`, n.FirstName, n.Surname, n.Address, n.Phone, n.CreatedAt, n.UpdatedAt).Scan(&id)
	if err != nil {
		return 0, pkgerrors.Persistence(err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO nurses (employee_id, rotation, salary, department_code)
		VALUES ($1, $2, $3, $4)
	`, id, n.Rotation, n.Salary, n.DepartmentCode)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, pkgerrors.Reference("department")
		}
		return 0, pkgerrors.Persistence(err)
	}

	if err := tx.Commit(); err != nil {
		return 0, pkgerrors.Persistence(err)
	}
	n.ID = id
	return id, nil
}

func (r *nurseRepository) Get(ctx context.Context, id int64) (*model.Nurse, error) {
	query := `
		SELECT ` + nurseColumns + `
		FROM nurses n
		JOIN employees e ON e.employee_id = n.employee_id
		WHERE n.employee_id = $1
	`
	var n model.Nurse
	if err := r.db.GetContext(ctx, &n, query, id); err != nil {
		return nil, notFoundOrPersistence("nurse", err)
	}
	return &n, nil
}

func (r *nurseRepository) List(ctx context.Context) ([]*model.Nurse, error) {
	query := `
		SELECT ` + nurseColumns + `
		FROM nurses n
		JOIN employees e ON e.employee_id = n.employee_id
		ORDER BY e.surname, e.first_name
	`
	var ns []*model.Nurse
	if err := r.db.SelectContext(ctx, &ns, query); err != nil {
		return nil, pkgerrors.Persistence(err)
	}
	return ns, nil
}

func (r *nurseRepository) ListByRotation(ctx context.Context, rotation string) ([]*model.Nurse, error) {
	query := `
		SELECT ` + nurseColumns + `
		FROM nurses n
		JOIN employees e ON e.employee_id = n.employee_id
		WHERE n.rotation = $1
		ORDER BY e.surname, e.first_name
	`
	var ns []*model.Nurse
	if err := r.db.SelectContext(ctx, &ns, query, rotation); err != nil {
		return nil, pkgerrors.Persistence(err)
	}
	return ns, nil
}

func (r *nurseRepository) Update(ctx context.Context, n *model.Nurse) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return pkgerrors.Persistence(err)
	}
	defer tx.Rollback()

	n.UpdatedAt = time.Now()

	result, err := tx.ExecContext(ctx, `
		UPDATE employees
		SET first_name = $1, surname = $2, address = $3, phone = $4, updated_at = $5
		WHERE employee_id = $6
	`, n.FirstName, n.Surname, n.Address, n.Phone, n.UpdatedAt, n.ID)
	if err != nil {
		return pkgerrors.Persistence(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return pkgerrors.Persistence(err)
	}
	if rows == 0 {
		return pkgerrors.NotFound("nurse", nil)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE nurses SET rotation = $1, salary = $2, department_code = $3 WHERE employee_id = $4
	`, n.Rotation, n.Salary, n.DepartmentCode, n.ID); err != nil {
		if isForeignKeyViolation(err) {
			return pkgerrors.Reference("department")
		}
		return pkgerrors.Persistence(err)
	}

	if err := tx.Commit(); err != nil {
		return pkgerrors.Persistence(err)
	}
	return nil
}

func (r *nurseRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return pkgerrors.Persistence(err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM nurses WHERE employee_id = $1`, id)
	if err != nil {
		return pkgerrors.Persistence(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return pkgerrors.Persistence(err)
	}
	if rows == 0 {
		return pkgerrors.NotFound("nurse", nil)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM employees WHERE employee_id = $1`, id); err != nil {
		return pkgerrors.Persistence(err)
	}

	if err := tx.Commit(); err != nil {
		return pkgerrors.Persistence(err)
	}
	return nil
}
