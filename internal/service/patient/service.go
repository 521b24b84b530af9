package patient

import (
	"context"

	"github.com/healthtrack/records-api/internal/model"
	"github.com/healthtrack/records-api/internal/repository"
)

type Service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePatient(ctx context.Context, p *model.Patient) (int64, error) {
	return s.repo.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*model.Patient, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, search string) ([]*model.Patient, error) {
	if search != "" {
		return s.repo.SearchByName(ctx, search)
	}
	return s.repo.List(ctx)
}

func (s *Service) UpdatePatient(ctx context.Context, p *model.Patient) error {
	return s.repo.Update(ctx, p)
}

func (s *Service) DeletePatient(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
