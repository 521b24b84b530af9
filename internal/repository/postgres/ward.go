package postgres

import (
	"context"
	"time"

	"github.com/healthtrack/records-api/internal/model"
	pkgerrors "github.com/healthtrack/records-api/pkg/errors"
)

func (r *wardRepository) Create(ctx context.Context, w *model.Ward) error {
	query := `
		INSERT INTO wards (department_code, ward_number, bed_count, supervisor_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	now := time.Now()
	w.CreatedAt = now
	w.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		w.DepartmentCode, w.WardNumber, w.BedCount, w.SupervisorID, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return pkgerrors.Reference("department")
		}
		return pkgerrors.Persistence(err)
	}
	return nil
}

func (r *wardRepository) Get(ctx context.Context, departmentCode string, wardNumber int) (*model.Ward, error) {
	query := `SELECT * FROM wards WHERE department_code = $1 AND ward_number = $2`
	var w model.Ward
	if err := r.db.GetContext(ctx, &w, query, departmentCode, wardNumber); err != nil {
		return nil, notFoundOrPersistence("ward", err)
	}
	return &w, nil
}

func (r *wardRepository) List(ctx context.Context) ([]*model.Ward, error) {
	query := `SELECT * FROM wards ORDER BY department_code, ward_number`
	var ws []*model.Ward
	if err := r.db.SelectContext(ctx, &ws, query); err != nil {
		return nil, pkgerrors.Persistence(err)
	}
	return ws, nil
}

func (r *wardRepository) ListByDepartment(ctx context.Context, departmentCode string) ([]*model.Ward, error) {
	query := `SELECT * FROM wards WHERE department_code = $1 ORDER BY ward_number`
	var ws []*model.Ward
	if err := r.db.SelectContext(ctx, &ws, query, departmentCode); err != nil {
		return nil, pkgerrors.Persistence(err)
	}
	return ws, nil
}

func (r *wardRepository) ListBySupervisor(ctx context.Context, supervisorID int64) ([]*model.Ward, error) {
	query := `SELECT * FROM wards WHERE supervisor_id = $1 ORDER BY department_code, ward_number`
	var ws []*model.Ward
	if err := r.db.SelectContext(ctx, &ws, query, supervisorID); err != nil {
		return nil, pkgerrors.Persistence(err)
	}
	return ws, nil
}

func (r *wardRepository) Update(ctx context.Context, origDepartmentCode string, origWardNumber int, w *model.Ward) error {
	query := `
		UPDATE wards
		SET department_code = $1, ward_number = $2, bed_count = $3, supervisor_id = $4, updated_at = $5
		WHERE department_code = $6 AND ward_number = $7
	`
	w.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		w.DepartmentCode, w.WardNumber, w.BedCount, w.SupervisorID, w.UpdatedAt,
		origDepartmentCode, origWardNumber,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return pkgerrors.Reference("department")
		}
		return pkgerrors.Persistence(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return pkgerrors.Persistence(err)
	}
	if rows == 0 {
		return pkgerrors.NotFound("ward", nil)
	}
	return nil
}

func (r *wardRepository) Delete(ctx context.Context, departmentCode string, wardNumber int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM wards WHERE department_code = $1 AND ward_number = $2`,
		departmentCode, wardNumber,
	)
	if err != nil {
		return pkgerrors.Persistence(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return pkgerrors.Persistence(err)
	}
	if rows == 0 {
		return pkgerrors.NotFound("ward", nil)
	}
	return nil
}
