package hospitalization

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthtrack/records-api/internal/model"
	pkgerrors "github.com/healthtrack/records-api/pkg/errors"
	"github.com/healthtrack/records-api/pkg/logger"
	"github.com/healthtrack/records-api/pkg/metrics"
)

// Shared across tests: promauto registers on the default registry and
// a second registration would panic.
var testMetrics = metrics.NewMetrics("healthtrack_test")

var fixedNow = time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC)

// fakeStore is an in-memory HospitalizationRepository mirroring the
// postgres implementation's contract, including the open-slot
// uniqueness guarantee of the partial index.
type fakeStore struct {
	nextID  int64
	records map[int64]*model.Hospitalization
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, records: make(map[int64]*model.Hospitalization)}
}

func (f *fakeStore) Create(_ context.Context, h *model.Hospitalization) (int64, error) {
	if h.DischargeDate == nil {
		slot := model.Slot{DepartmentCode: h.DepartmentCode, WardNumber: h.WardNumber, BedNumber: h.BedNumber}
		if f.openAt(slot, nil) {
			return 0, pkgerrors.Occupancy(h.DepartmentCode, h.WardNumber, h.BedNumber)
		}
	}
	h.ID = f.nextID
	f.nextID++
	cp := *h
	f.records[h.ID] = &cp
	return h.ID, nil
}

func (f *fakeStore) Get(_ context.Context, id int64) (*model.Hospitalization, error) {
	h, ok := f.records[id]
	if !ok {
		return nil, pkgerrors.NotFound("hospitalization", nil)
	}
	cp := *h
	return &cp, nil
}

func (f *fakeStore) List(_ context.Context) ([]*model.Hospitalization, error) {
	out := make([]*model.Hospitalization, 0, len(f.records))
	for _, h := range f.records {
		cp := *h
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeStore) ListOpen(ctx context.Context) ([]*model.Hospitalization, error) {
	all, _ := f.List(ctx)
	var out []*model.Hospitalization
	for _, h := range all {
		if h.Open() {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeStore) ListByPatient(ctx context.Context, patientID int64) ([]*model.Hospitalization, error) {
	all, _ := f.List(ctx)
	var out []*model.Hospitalization
	for _, h := range all {
		if h.PatientID == patientID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeStore) ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Hospitalization, error) {
	all, _ := f.List(ctx)
	var out []*model.Hospitalization
	for _, h := range all {
		if h.DoctorID == doctorID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeStore) Update(_ context.Context, h *model.Hospitalization) error {
	existing, ok := f.records[h.ID]
	if !ok {
		return pkgerrors.NotFound("hospitalization", nil)
	}
	if h.DischargeDate == nil {
		slot := model.Slot{DepartmentCode: h.DepartmentCode, WardNumber: h.WardNumber, BedNumber: h.BedNumber}
		if f.openAt(slot, &h.ID) {
			return pkgerrors.Occupancy(h.DepartmentCode, h.WardNumber, h.BedNumber)
		}
	}
	cp := *h
	cp.PatientID = existing.PatientID
	f.records[h.ID] = &cp
	return nil
}

func (f *fakeStore) Discharge(_ context.Context, id int64, dischargeDate time.Time) error {
	h, ok := f.records[id]
	if !ok {
		return pkgerrors.NotFound("hospitalization", nil)
	}
	if !h.Open() {
		return pkgerrors.AlreadyDischarged(id)
	}
	d := dischargeDate
	h.DischargeDate = &d
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.records[id]; !ok {
		return pkgerrors.NotFound("hospitalization", nil)
	}
	delete(f.records, id)
	return nil
}

func (f *fakeStore) IsSlotOccupied(_ context.Context, slot model.Slot, excludeID *int64) (bool, error) {
	return f.openAt(slot, excludeID), nil
}

func (f *fakeStore) openAt(slot model.Slot, excludeID *int64) bool {
	for id, h := range f.records {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if h.Open() && h.DepartmentCode == slot.DepartmentCode &&
			h.WardNumber == slot.WardNumber && h.BedNumber == slot.BedNumber {
			return true
		}
	}
	return false
}

// fakeRefs serves fixed reference data: patients 1-2, doctor 1,
// ward CARD/1 with two beds.
type fakeRefs struct {
	wards map[string]*model.Ward
}

func newFakeRefs() *fakeRefs {
	return &fakeRefs{wards: map[string]*model.Ward{
		"CARD/1": {DepartmentCode: "CARD", WardNumber: 1, BedCount: 2},
	}}
}

func (r *fakeRefs) GetPatient(_ context.Context, id int64) (*model.Patient, error) {
	if id == 1 || id == 2 {
		return &model.Patient{ID: id, FirstName: "Test", Surname: "Patient"}, nil
	}
	return nil, pkgerrors.NotFound("patient", nil)
}

func (r *fakeRefs) GetDoctor(_ context.Context, id int64) (*model.Doctor, error) {
	if id == 1 {
		return &model.Doctor{ID: id, Speciality: "cardiology"}, nil
	}
	return nil, pkgerrors.NotFound("doctor", nil)
}

func (r *fakeRefs) GetWard(_ context.Context, departmentCode string, wardNumber int) (*model.Ward, error) {
	key := departmentCode + "/1"
	if wardNumber != 1 {
		return nil, pkgerrors.NotFound("ward", nil)
	}
	w, ok := r.wards[key]
	if !ok {
		return nil, pkgerrors.NotFound("ward", nil)
	}
	return w, nil
}

func newTestService() (*Service, *fakeStore) {
	store := newFakeStore()
	svc := NewService(store, newFakeRefs(), NewOccupancyChecker(store), testMetrics, logger.NewLogger(nil))
	svc.now = func() time.Time { return fixedNow }
	return svc, store
}

func validAdmit() model.AdmitInput {
	return model.AdmitInput{
		PatientID:      1,
		DepartmentCode: "CARD",
		WardNumber:     1,
		BedNumber:      1,
		Diagnosis:      "flu",
		DoctorID:       1,
		AdmissionDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestAdmitCreatesOpenRecord(t *testing.T) {
	svc, _ := newTestService()

	id, err := svc.Admit(context.Background(), validAdmit())
	require.NoError(t, err)

	h, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, h.DischargeDate)
	assert.True(t, h.Open())
	assert.Equal(t, int64(1), h.PatientID)
}

func TestAdmitOccupiedBedThenDischargeFreesSlot(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Admit(ctx, validAdmit())
	require.NoError(t, err)

	second := validAdmit()
	second.PatientID = 2
	_, err = svc.Admit(ctx, second)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrOccupancy))

	require.NoError(t, svc.Discharge(ctx, first, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)))

	_, err = svc.Admit(ctx, second)
	assert.NoError(t, err)
}

func TestAdmitCapacityBoundaries(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	atCapacity := validAdmit()
	atCapacity.BedNumber = 2
	_, err := svc.Admit(ctx, atCapacity)
	assert.NoError(t, err, "bed number equal to ward capacity is accepted")

	over := validAdmit()
	over.PatientID = 2
	over.BedNumber = 3
	_, err = svc.Admit(ctx, over)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCapacity))

	zero := validAdmit()
	zero.PatientID = 2
	zero.BedNumber = 0
	_, err = svc.Admit(ctx, zero)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCapacity))
}

func TestAdmitDateBoundaries(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	today := validAdmit()
	today.AdmissionDate = fixedNow
	_, err := svc.Admit(ctx, today)
	assert.NoError(t, err, "admission today is accepted")

	tomorrow := validAdmit()
	tomorrow.PatientID = 2
	tomorrow.BedNumber = 2
	tomorrow.AdmissionDate = fixedNow.AddDate(0, 0, 1)
	_, err = svc.Admit(ctx, tomorrow)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrValidation))
}

func TestAdmitUnknownDoctorCreatesNothing(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	in := validAdmit()
	in.DoctorID = 9999
	_, err := svc.Admit(ctx, in)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrReference))

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "failed admit must not persist a record")
}

func TestAdmitAccumulatesAllViolations(t *testing.T) {
	svc, _ := newTestService()

	in := model.AdmitInput{
		PatientID:      999,
		DepartmentCode: "NOPE",
		WardNumber:     4,
		BedNumber:      0,
		Diagnosis:      "  ",
		DoctorID:       999,
		AdmissionDate:  fixedNow.AddDate(0, 0, 2),
	}
	_, err := svc.Admit(context.Background(), in)
	require.Error(t, err)

	var list *pkgerrors.List
	require.ErrorAs(t, err, &list)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrReference))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCapacity))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrValidation))
	assert.GreaterOrEqual(t, len(list.Errors), 5)
}

func TestDischargeTwiceFails(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	id, err := svc.Admit(ctx, validAdmit())
	require.NoError(t, err)

	d := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.Discharge(ctx, id, d))

	err = svc.Discharge(ctx, id, d.AddDate(0, 0, 1))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrAlreadyDischarged))
}

func TestDischargeBeforeAdmissionLeavesRecordOpen(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	id, err := svc.Admit(ctx, validAdmit())
	require.NoError(t, err)

	err = svc.Discharge(ctx, id, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrValidation))

	h, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, h.Open())
}

func TestAmendNeverChangesPatient(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	id, err := svc.Admit(ctx, validAdmit())
	require.NoError(t, err)

	err = svc.Amend(ctx, id, model.AmendInput{
		DepartmentCode: "CARD",
		WardNumber:     1,
		BedNumber:      2,
		Diagnosis:      "pneumonia",
		DoctorID:       1,
		AdmissionDate:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	h, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), h.PatientID)
	assert.Equal(t, 2, h.BedNumber)
	assert.Equal(t, "pneumonia", h.Diagnosis)
}

func TestAmendOntoOwnBedSucceeds(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	id, err := svc.Admit(ctx, validAdmit())
	require.NoError(t, err)

	// Same slot: the only open occupant is the record itself.
	err = svc.Amend(ctx, id, model.AmendInput{
		DepartmentCode: "CARD",
		WardNumber:     1,
		BedNumber:      1,
		Diagnosis:      "flu, revised",
		DoctorID:       1,
		AdmissionDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
}

func TestAmendOntoForeignOccupiedBedFails(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Admit(ctx, validAdmit())
	require.NoError(t, err)

	second := validAdmit()
	second.PatientID = 2
	second.BedNumber = 2
	secondID, err := svc.Admit(ctx, second)
	require.NoError(t, err)

	err = svc.Amend(ctx, secondID, model.AmendInput{
		DepartmentCode: "CARD",
		WardNumber:     1,
		BedNumber:      1,
		Diagnosis:      "flu",
		DoctorID:       1,
		AdmissionDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrOccupancy))
}

func TestAmendMissingRecordIsNotFound(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Amend(context.Background(), 404, model.AmendInput{
		DepartmentCode: "CARD",
		WardNumber:     1,
		BedNumber:      1,
		Diagnosis:      "flu",
		DoctorID:       1,
		AdmissionDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrNotFound))
}

func TestOpenSlotUniquenessHoldsAcrossOperations(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Admit(ctx, validAdmit())
	require.NoError(t, err)
	require.NoError(t, svc.Discharge(ctx, first, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)))

	second := validAdmit()
	second.PatientID = 2
	_, err = svc.Admit(ctx, second)
	require.NoError(t, err)

	open, err := svc.ListOpen(ctx)
	require.NoError(t, err)

	seen := make(map[model.Slot]int)
	for _, h := range open {
		seen[model.Slot{DepartmentCode: h.DepartmentCode, WardNumber: h.WardNumber, BedNumber: h.BedNumber}]++
	}
	for slot, n := range seen {
		assert.Equal(t, 1, n, "slot %v has more than one open record", slot)
	}
}

func TestRemoveOpenRecordIsAllowed(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	id, err := svc.Admit(ctx, validAdmit())
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, id))

	_, err = svc.Get(ctx, id)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrNotFound))

	err = svc.Remove(ctx, id)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrNotFound))
}

func TestAdmitWithDischargeDateCreatesClosedRecord(t *testing.T) {
	svc, _ := newTestService()

	in := validAdmit()
	d := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	in.DischargeDate = &d

	id, err := svc.Admit(context.Background(), in)
	require.NoError(t, err)

	h, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, h.Open())
}
