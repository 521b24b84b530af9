package hospitalization

import (
	"context"
	"strings"
	"time"

	"github.com/healthtrack/records-api/internal/model"
	"github.com/healthtrack/records-api/internal/repository"
	pkgerrors "github.com/healthtrack/records-api/pkg/errors"
	"github.com/healthtrack/records-api/pkg/logger"
	"github.com/healthtrack/records-api/pkg/metrics"
)

// Service is the sole writer-facing entry point for the
// hospitalization lifecycle. Callers go through Admit, Amend,
// Discharge and Remove instead of the repository.
type Service struct {
	repo      repository.HospitalizationRepository
	refs      ReferenceData
	occupancy *OccupancyChecker
	metrics   *metrics.Metrics
	logger    *logger.Logger
	now       func() time.Time
}

func NewService(
	repo repository.HospitalizationRepository,
	refs ReferenceData,
	occupancy *OccupancyChecker,
	m *metrics.Metrics,
	l *logger.Logger,
) *Service {
	return &Service{
		repo:      repo,
		refs:      refs,
		occupancy: occupancy,
		metrics:   m,
		logger:    l,
		now:       time.Now,
	}
}

// dateOnly truncates a timestamp to its calendar date in UTC so
// admission and discharge compare at day granularity.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *Service) today() time.Time {
	return dateOnly(s.now())
}

// Admit validates a proposed admission and creates the open record.
// All violations are accumulated so the caller can present the full
// correction list in one pass; nothing is persisted unless every
// check passes.
func (s *Service) Admit(ctx context.Context, in model.AdmitInput) (int64, error) {
	errs := &pkgerrors.List{}

	if _, err := s.refs.GetPatient(ctx, in.PatientID); err != nil {
		if refErr := asReferenceFailure("patient", err); refErr != nil {
			errs.Add(refErr)
		} else {
			return 0, err
		}
	}

	ward, err := s.checkWard(ctx, in.DepartmentCode, in.WardNumber, errs)
	if err != nil {
		return 0, err
	}

	if _, err := s.refs.GetDoctor(ctx, in.DoctorID); err != nil {
		if refErr := asReferenceFailure("doctor", err); refErr != nil {
			errs.Add(refErr)
		} else {
			return 0, err
		}
	}

	s.checkCapacity(in.BedNumber, ward, errs)

	// The occupancy check runs after the referential checks and as
	// close to the insert as possible; the store's partial unique
	// index closes the remaining race window.
	slot := model.Slot{DepartmentCode: in.DepartmentCode, WardNumber: in.WardNumber, BedNumber: in.BedNumber}
	occupied, err := s.occupancy.Occupied(ctx, slot, nil)
	if err != nil {
		return 0, err
	}
	if occupied {
		s.metrics.OccupancyConflicts.Inc()
		errs.Add(pkgerrors.Occupancy(in.DepartmentCode, in.WardNumber, in.BedNumber))
	}

	s.checkDiagnosis(in.Diagnosis, errs)
	s.checkDates(in.AdmissionDate, in.DischargeDate, errs)

	if err := errs.Err(); err != nil {
		s.countFailures(errs)
		return 0, err
	}

	h := &model.Hospitalization{
		PatientID:      in.PatientID,
		DepartmentCode: in.DepartmentCode,
		WardNumber:     in.WardNumber,
		BedNumber:      in.BedNumber,
		Diagnosis:      strings.TrimSpace(in.Diagnosis),
		DoctorID:       in.DoctorID,
		AdmissionDate:  dateOnly(in.AdmissionDate),
	}
	if in.DischargeDate != nil {
		d := dateOnly(*in.DischargeDate)
		h.DischargeDate = &d
	}

	id, err := s.repo.Create(ctx, h)
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.ErrOccupancy) {
			s.metrics.OccupancyConflicts.Inc()
		}
		return 0, err
	}

	s.metrics.AdmissionsTotal.Inc()
	s.logger.Info("patient admitted", "hospitalization_id", id, "patient_id", in.PatientID,
		"department_code", in.DepartmentCode, "ward_number", in.WardNumber, "bed_number", in.BedNumber)
	return id, nil
}

// Amend replaces the mutable fields of an existing record. The patient
// reference cannot change; reassigning a patient means delete + admit.
// The bed occupancy check excludes the record itself, so moving a
// patient within their own bed never conflicts, while moving onto a
// bed held by a different open record is rejected.
func (s *Service) Amend(ctx context.Context, id int64, in model.AmendInput) error {
	errs := &pkgerrors.List{}

	ward, err := s.checkWard(ctx, in.DepartmentCode, in.WardNumber, errs)
	if err != nil {
		return err
	}

	if _, err := s.refs.GetDoctor(ctx, in.DoctorID); err != nil {
		if refErr := asReferenceFailure("doctor", err); refErr != nil {
			errs.Add(refErr)
		} else {
			return err
		}
	}

	s.checkCapacity(in.BedNumber, ward, errs)

	slot := model.Slot{DepartmentCode: in.DepartmentCode, WardNumber: in.WardNumber, BedNumber: in.BedNumber}
	occupied, err := s.occupancy.Occupied(ctx, slot, &id)
	if err != nil {
		return err
	}
	if occupied {
		s.metrics.OccupancyConflicts.Inc()
		errs.Add(pkgerrors.Occupancy(in.DepartmentCode, in.WardNumber, in.BedNumber))
	}

	s.checkDiagnosis(in.Diagnosis, errs)
	s.checkDates(in.AdmissionDate, in.DischargeDate, errs)

	if err := errs.Err(); err != nil {
		s.countFailures(errs)
		return err
	}

	h := &model.Hospitalization{
		ID:             id,
		DepartmentCode: in.DepartmentCode,
		WardNumber:     in.WardNumber,
		BedNumber:      in.BedNumber,
		Diagnosis:      strings.TrimSpace(in.Diagnosis),
		DoctorID:       in.DoctorID,
		AdmissionDate:  dateOnly(in.AdmissionDate),
	}
	if in.DischargeDate != nil {
		d := dateOnly(*in.DischargeDate)
		h.DischargeDate = &d
	}

	if err := s.repo.Update(ctx, h); err != nil {
		return err
	}

	s.logger.Info("hospitalization amended", "hospitalization_id", id)
	return nil
}

// Discharge closes an open hospitalization. A second discharge is an
// error rather than a no-op, so an operator cannot silently overwrite
// an earlier discharge date.
func (s *Service) Discharge(ctx context.Context, id int64, dischargeDate time.Time) error {
	h, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !h.Open() {
		return pkgerrors.AlreadyDischarged(id)
	}

	d := dateOnly(dischargeDate)
	errs := &pkgerrors.List{}
	if d.After(s.today()) {
		errs.Add(pkgerrors.Validation("discharge_date", "discharge date must not be in the future"))
	}
	if d.Before(dateOnly(h.AdmissionDate)) {
		errs.Add(pkgerrors.Validation("discharge_date", "discharge date must not be before admission date"))
	}
	if err := errs.Err(); err != nil {
		s.countFailures(errs)
		return err
	}

	if err := s.repo.Discharge(ctx, id, d); err != nil {
		return err
	}

	s.metrics.DischargesTotal.Inc()
	s.logger.Info("patient discharged", "hospitalization_id", id, "discharge_date", d.Format(time.DateOnly))
	return nil
}

// Remove deletes the record permanently. Open records may be removed;
// confirmation is the caller's concern.
func (s *Service) Remove(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("hospitalization removed", "hospitalization_id", id)
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Hospitalization, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Hospitalization, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListOpen(ctx context.Context) ([]*model.Hospitalization, error) {
	return s.repo.ListOpen(ctx)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*model.Hospitalization, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Hospitalization, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

// checkWard resolves the ward reference, recording a failure when it
// does not exist. A non-nil error is a storage failure that aborts
// the whole operation.
func (s *Service) checkWard(ctx context.Context, departmentCode string, wardNumber int, errs *pkgerrors.List) (*model.Ward, error) {
	ward, err := s.refs.GetWard(ctx, departmentCode, wardNumber)
	if err != nil {
		if refErr := asReferenceFailure("ward", err); refErr != nil {
			errs.Add(refErr)
			return nil, nil
		}
		return nil, err
	}
	return ward, nil
}

// checkCapacity validates the bed number. The upper bound can only be
// checked when the ward resolved; a missing ward already accumulated
// its own failure.
func (s *Service) checkCapacity(bedNumber int, ward *model.Ward, errs *pkgerrors.List) {
	if bedNumber < 1 {
		errs.Add(pkgerrors.Capacity("bed number must be a positive integer"))
		return
	}
	if ward != nil && bedNumber > ward.BedCount {
		errs.Add(pkgerrors.Capacity("bed number exceeds ward capacity"))
	}
}

func (s *Service) checkDiagnosis(diagnosis string, errs *pkgerrors.List) {
	if strings.TrimSpace(diagnosis) == "" {
		errs.Add(pkgerrors.Validation("diagnosis", "diagnosis is required"))
	}
}

func (s *Service) checkDates(admission time.Time, discharge *time.Time, errs *pkgerrors.List) {
	if admission.IsZero() {
		errs.Add(pkgerrors.Validation("admission_date", "admission date is required"))
		return
	}
	a := dateOnly(admission)
	if a.After(s.today()) {
		errs.Add(pkgerrors.Validation("admission_date", "admission date must not be in the future"))
	}
	if discharge != nil {
		d := dateOnly(*discharge)
		if d.Before(a) {
			errs.Add(pkgerrors.Validation("discharge_date", "discharge date must not be before admission date"))
		}
		if d.After(s.today()) {
			errs.Add(pkgerrors.Validation("discharge_date", "discharge date must not be in the future"))
		}
	}
}

// asReferenceFailure turns a repository not-found into a reference
// failure on the named entity. Storage failures pass through as nil so
// the caller aborts instead of misreporting them as bad input.
func asReferenceFailure(entity string, err error) *pkgerrors.AppError {
	if pkgerrors.IsCode(err, pkgerrors.ErrNotFound) {
		return pkgerrors.Reference(entity)
	}
	return nil
}

func (s *Service) countFailures(errs *pkgerrors.List) {
	for _, e := range errs.Errors {
		switch e.Code {
		case pkgerrors.ErrReference:
			s.metrics.ValidationFailures.WithLabelValues("reference").Inc()
		case pkgerrors.ErrCapacity:
			s.metrics.ValidationFailures.WithLabelValues("capacity").Inc()
		case pkgerrors.ErrOccupancy:
			s.metrics.ValidationFailures.WithLabelValues("occupancy").Inc()
		default:
			s.metrics.ValidationFailures.WithLabelValues("validation").Inc()
		}
	}
}
