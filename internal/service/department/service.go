package department

import (
	"context"

	"github.com/healthtrack/records-api/internal/model"
	"github.com/healthtrack/records-api/internal/repository"
	pkgerrors "github.com/healthtrack/records-api/pkg/errors"
)

type Service struct {
	repo    repository.DepartmentRepository
	doctors repository.DoctorRepository
}

func NewService(repo repository.DepartmentRepository, doctors repository.DoctorRepository) *Service {
	return &Service{repo: repo, doctors: doctors}
}

func (s *Service) CreateDepartment(ctx context.Context, d *model.Department) error {
	if err := s.checkDirector(ctx, d.DirectorID); err != nil {
		return err
	}
	return s.repo.Create(ctx, d)
}

func (s *Service) GetDepartment(ctx context.Context, code string) (*model.Department, error) {
	return s.repo.Get(ctx, code)
}

func (s *Service) ListDepartments(ctx context.Context, building string) ([]*model.Department, error) {
	if building != "" {
		return s.repo.ListByBuilding(ctx, building)
	}
	return s.repo.List(ctx)
}

func (s *Service) UpdateDepartment(ctx context.Context, d *model.Department) error {
	if err := s.checkDirector(ctx, d.DirectorID); err != nil {
		return err
	}
	return s.repo.Update(ctx, d)
}

func (s *Service) DeleteDepartment(ctx context.Context, code string) error {
	return s.repo.Delete(ctx, code)
}

func (s *Service) checkDirector(ctx context.Context, directorID *int64) error {
	if directorID == nil {
		return nil
	}
	if _, err := s.doctors.Get(ctx, *directorID); err != nil {
		if pkgerrors.IsCode(err, pkgerrors.ErrNotFound) {
			return pkgerrors.Reference("director")
		}
		return err
	}
	return nil
}
