package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/healthtrack/records-api/internal/model"
	"github.com/healthtrack/records-api/internal/repository"
	"github.com/healthtrack/records-api/pkg/logger"
)

// Service runs the read-only report queries. Results are cached in
// Redis for a short TTL because the underlying joins are the most
// expensive queries the system runs; a nil client disables caching.
type Service struct {
	repo   repository.ReportRepository
	cache  *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

func NewService(repo repository.ReportRepository, cache *redis.Client, ttl time.Duration, l *logger.Logger) *Service {
	return &Service{repo: repo, cache: cache, ttl: ttl, logger: l}
}

func (s *Service) StaysByDepartment(ctx context.Context, departmentCode string) ([]*model.PatientStayRow, error) {
	key := "report:stays:department:" + departmentCode
	var rows []*model.PatientStayRow
	if s.fromCache(ctx, key, &rows) {
		return rows, nil
	}
	rows, err := s.repo.StaysByDepartment(ctx, departmentCode)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, rows)
	return rows, nil
}

func (s *Service) StaysByPeriod(ctx context.Context, from, to time.Time) ([]*model.PatientStayRow, error) {
	key := fmt.Sprintf("report:stays:period:%s:%s", from.Format(time.DateOnly), to.Format(time.DateOnly))
	var rows []*model.PatientStayRow
	if s.fromCache(ctx, key, &rows) {
		return rows, nil
	}
	rows, err := s.repo.StaysByPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, rows)
	return rows, nil
}

func (s *Service) StaysByDiagnosis(ctx context.Context, keyword string) ([]*model.PatientStayRow, error) {
	key := "report:stays:diagnosis:" + keyword
	var rows []*model.PatientStayRow
	if s.fromCache(ctx, key, &rows) {
		return rows, nil
	}
	rows, err := s.repo.StaysByDiagnosis(ctx, keyword)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, rows)
	return rows, nil
}

func (s *Service) CurrentStays(ctx context.Context) ([]*model.PatientStayRow, error) {
	key := "report:stays:current"
	var rows []*model.PatientStayRow
	if s.fromCache(ctx, key, &rows) {
		return rows, nil
	}
	rows, err := s.repo.CurrentStays(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, rows)
	return rows, nil
}

func (s *Service) WardOccupancy(ctx context.Context) ([]*model.WardOccupancyRow, error) {
	key := "report:occupancy"
	var rows []*model.WardOccupancyRow
	if s.fromCache(ctx, key, &rows) {
		return rows, nil
	}
	rows, err := s.repo.WardOccupancy(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, rows)
	return rows, nil
}

func (s *Service) AdmissionStats(ctx context.Context) (*model.AdmissionStats, error) {
	key := "report:stats"
	var stats *model.AdmissionStats
	if s.fromCache(ctx, key, &stats) {
		return stats, nil
	}
	stats, err := s.repo.AdmissionStats(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, stats)
	return stats, nil
}

func (s *Service) DoctorsBySpeciality(ctx context.Context) ([]*model.DoctorSpecialityCount, error) {
	key := "report:staff:doctors"
	var rows []*model.DoctorSpecialityCount
	if s.fromCache(ctx, key, &rows) {
		return rows, nil
	}
	rows, err := s.repo.DoctorsBySpeciality(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, rows)
	return rows, nil
}

func (s *Service) NursesByDepartment(ctx context.Context) ([]*model.NurseDepartmentCount, error) {
	key := "report:staff:nurses"
	var rows []*model.NurseDepartmentCount
	if s.fromCache(ctx, key, &rows) {
		return rows, nil
	}
	rows, err := s.repo.NursesByDepartment(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, rows)
	return rows, nil
}

// fromCache loads key into dest, reporting a hit. Cache failures are
// logged and treated as misses; the report still comes from the
// database.
func (s *Service) fromCache(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	payload, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("report cache read failed", "key", key, "error", err.Error())
		}
		return false
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		s.logger.Warn("report cache entry corrupt", "key", key)
		return false
	}
	return true
}

func (s *Service) toCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		s.logger.Warn("report cache write failed", "key", key, "error", err.Error())
	}
}
