package hospitalization

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/healthtrack/records-api/internal/model"
	"github.com/healthtrack/records-api/internal/repository"
)

// ReferenceData resolves the entities an admission refers to. It is
// read-only from this package's perspective.
type ReferenceData interface {
	GetPatient(ctx context.Context, id int64) (*model.Patient, error)
	GetDoctor(ctx context.Context, id int64) (*model.Doctor, error)
	GetWard(ctx context.Context, departmentCode string, wardNumber int) (*model.Ward, error)
}

// cachedReferenceData backs the interface with the CRUD repositories
// and a short-lived in-process cache. Reference data changes rarely
// compared to how often admissions re-validate it.
type cachedReferenceData struct {
	patients repository.PatientRepository
	doctors  repository.DoctorRepository
	wards    repository.WardRepository
	cache    *cache.Cache
}

func NewReferenceData(
	patients repository.PatientRepository,
	doctors repository.DoctorRepository,
	wards repository.WardRepository,
	ttl, cleanupInterval time.Duration,
) ReferenceData {
	return &cachedReferenceData{
		patients: patients,
		doctors:  doctors,
		wards:    wards,
		cache:    cache.New(ttl, cleanupInterval),
	}
}

func (r *cachedReferenceData) GetPatient(ctx context.Context, id int64) (*model.Patient, error) {
	key := fmt.Sprintf("patient:%d", id)
	if v, ok := r.cache.Get(key); ok {
		return v.(*model.Patient), nil
	}
	p, err := r.patients.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(key, p)
	return p, nil
}

func (r *cachedReferenceData) GetDoctor(ctx context.Context, id int64) (*model.Doctor, error) {
	key := fmt.Sprintf("doctor:%d", id)
	if v, ok := r.cache.Get(key); ok {
		return v.(*model.Doctor), nil
	}
	d, err := r.doctors.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(key, d)
	return d, nil
}

func (r *cachedReferenceData) GetWard(ctx context.Context, departmentCode string, wardNumber int) (*model.Ward, error) {
	key := fmt.Sprintf("ward:%s:%d", departmentCode, wardNumber)
	if v, ok := r.cache.Get(key); ok {
		return v.(*model.Ward), nil
	}
	w, err := r.wards.Get(ctx, departmentCode, wardNumber)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(key, w)
	return w, nil
}
