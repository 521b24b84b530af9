package postgres

import (
	"context"
	"time"

	"github.com/healthtrack/records-api/internal/model"
	pkgerrors "github.com/healthtrack/records-api/pkg/errors"
)

func (r *departmentRepository) Create(ctx context.Context, d *model.Department) error {
	query := `
		INSERT INTO departments (department_code, name, building, director_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		d.Code, d.Name, d.Building, d.DirectorID, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return pkgerrors.Reference("director")
		}
		return pkgerrors.Persistence(err)
	}
	return nil
}

func (r *departmentRepository) Get(ctx context.Context, code string) (*model.Department, error) {
	query := `SELECT * FROM departments WHERE department_code = $1`
	var d model.Department
	if err := r.db.GetContext(ctx, &d, query, code); err != nil {
		return nil, notFoundOrPersistence("department", err)
	}
	return &d, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]*model.Department, error) {
	query := `SELECT * FROM departments ORDER BY department_code`
	var ds []*model.Department
	if err := r.db.SelectContext(ctx, &ds, query); err != nil {
		return nil, pkgerrors.Persistence(err)
	}
	return ds, nil
}

func (r *departmentRepository) ListByBuilding(ctx context.Context, building string) ([]*model.Department, error) {
	query := `SELECT * FROM departments WHERE building ILIKE $1 ORDER BY department_code`
	var ds []*model.Department
	if err := r.db.SelectContext(ctx, &ds, query, building); err != nil {
		return nil, pkgerrors.Persistence(err)
	}
	return ds, nil
}

func (r *departmentRepository) Update(ctx context.Context, d *model.Department) error {
	query := `
		UPDATE departments
		SET name = $1, building = $2, director_id = $3, updated_at = $4
		WHERE department_code = $5
	`
	d.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		d.Name, d.Building, d.DirectorID, d.UpdatedAt, d.Code,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return pkgerrors.Reference("director")
		}
		return pkgerrors.Persistence(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return pkgerrors.Persistence(err)
	}
	if rows == 0 {
		return pkgerrors.NotFound("department", nil)
	}
	return nil
}

func (r *departmentRepository) Delete(ctx context.Context, code string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM departments WHERE department_code = $1`, code)
	if err != nil {
		return pkgerrors.Persistence(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return pkgerrors.Persistence(err)
	}
	if rows == 0 {
		return pkgerrors.NotFound("department", nil)
	}
	return nil
}
