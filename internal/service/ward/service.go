package ward

import (
	"context"

	"github.com/healthtrack/records-api/internal/model"
	"github.com/healthtrack/records-api/internal/repository"
	pkgerrors "github.com/healthtrack/records-api/pkg/errors"
)

type Service struct {
	repo        repository.WardRepository
	departments repository.DepartmentRepository
	nurses      repository.NurseRepository
}

func NewService(
	repo repository.WardRepository,
	departments repository.DepartmentRepository,
	nurses repository.NurseRepository,
) *Service {
	return &Service{repo: repo, departments: departments, nurses: nurses}
}

func (s *Service) CreateWard(ctx context.Context, w *model.Ward) error {
	if err := s.checkRefs(ctx, w); err != nil {
		return err
	}
	return s.repo.Create(ctx, w)
}

func (s *Service) GetWard(ctx context.Context, departmentCode string, wardNumber int) (*model.Ward, error) {
	return s.repo.Get(ctx, departmentCode, wardNumber)
}

func (s *Service) ListWards(ctx context.Context, departmentCode string) ([]*model.Ward, error) {
	if departmentCode != "" {
		return s.repo.ListByDepartment(ctx, departmentCode)
	}
	return s.repo.List(ctx)
}

func (s *Service) ListWardsBySupervisor(ctx context.Context, supervisorID int64) ([]*model.Ward, error) {
	return s.repo.ListBySupervisor(ctx, supervisorID)
}

// UpdateWard moves or resizes a ward; the row is addressed by its
// original composite key.
func (s *Service) UpdateWard(ctx context.Context, origDepartmentCode string, origWardNumber int, w *model.Ward) error {
	if err := s.checkRefs(ctx, w); err != nil {
		return err
	}
	return s.repo.Update(ctx, origDepartmentCode, origWardNumber, w)
}

func (s *Service) DeleteWard(ctx context.Context, departmentCode string, wardNumber int) error {
	return s.repo.Delete(ctx, departmentCode, wardNumber)
}

func (s *Service) checkRefs(ctx context.Context, w *model.Ward) error {
	if _, err := s.departments.Get(ctx, w.DepartmentCode); err != nil {
		if pkgerrors.IsCode(err, pkgerrors.ErrNotFound) {
			return pkgerrors.Reference("department")
		}
		return err
	}
	if w.SupervisorID != nil {
		if _, err := s.nurses.Get(ctx, *w.SupervisorID); err != nil {
			if pkgerrors.IsCode(err, pkgerrors.ErrNotFound) {
				return pkgerrors.Reference("supervisor")
			}
			return err
		}
	}
	return nil
}
