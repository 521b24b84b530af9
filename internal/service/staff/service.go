package staff

import (
	"context"

	"github.com/healthtrack/records-api/internal/model"
	"github.com/healthtrack/records-api/internal/repository"
	pkgerrors "github.com/healthtrack/records-api/pkg/errors"
)

// Service covers doctors and nurses. The two are distinct record kinds
// sharing only a field shape, so there is no common staff type; the
// service exists to keep department checks for nurses in one place.
type Service struct {
	doctors     repository.DoctorRepository
	nurses      repository.NurseRepository
	departments repository.DepartmentRepository
}

func NewService(
	doctors repository.DoctorRepository,
	nurses repository.NurseRepository,
	departments repository.DepartmentRepository,
) *Service {
	return &Service{doctors: doctors, nurses: nurses, departments: departments}
}

func (s *Service) CreateDoctor(ctx context.Context, d *model.Doctor) (int64, error) {
	return s.doctors.Create(ctx, d)
}

func (s *Service) GetDoctor(ctx context.Context, id int64) (*model.Doctor, error) {
	return s.doctors.Get(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context, speciality string) ([]*model.Doctor, error) {
	if speciality != "" {
		return s.doctors.ListBySpeciality(ctx, speciality)
	}
	return s.doctors.List(ctx)
}

func (s *Service) UpdateDoctor(ctx context.Context, d *model.Doctor) error {
	return s.doctors.Update(ctx, d)
}

func (s *Service) DeleteDoctor(ctx context.Context, id int64) error {
	return s.doctors.Delete(ctx, id)
}

func (s *Service) CreateNurse(ctx context.Context, n *model.Nurse) (int64, error) {
	if err := s.checkDepartment(ctx, n.DepartmentCode); err != nil {
		return 0, err
	}
	return s.nurses.Create(ctx, n)
}

func (s *Service) GetNurse(ctx context.Context, id int64) (*model.Nurse, error) {
	return s.nurses.Get(ctx, id)
}

func (s *Service) ListNurses(ctx context.Context, rotation string) ([]*model.Nurse, error) {
	if rotation != "" {
		return s.nurses.ListByRotation(ctx, rotation)
	}
	return s.nurses.List(ctx)
}

func (s *Service) UpdateNurse(ctx context.Context, n *model.Nurse) error {
	if err := s.checkDepartment(ctx, n.DepartmentCode); err != nil {
		return err
	}
	return s.nurses.Update(ctx, n)
}

func (s *Service) DeleteNurse(ctx context.Context, id int64) error {
	return s.nurses.Delete(ctx, id)
}

func (s *Service) checkDepartment(ctx context.Context, code string) error {
	if _, err := s.departments.Get(ctx, code); err != nil {
		if pkgerrors.IsCode(err, pkgerrors.ErrNotFound) {
			return pkgerrors.Reference("department")
		}
		return err
	}
	return nil
}
