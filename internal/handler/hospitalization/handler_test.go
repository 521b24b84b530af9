package hospitalization

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthtrack/records-api/internal/handler"
	"github.com/healthtrack/records-api/internal/model"
	"github.com/healthtrack/records-api/internal/service/hospitalization"
	pkgerrors "github.com/healthtrack/records-api/pkg/errors"
	"github.com/healthtrack/records-api/pkg/logger"
	"github.com/healthtrack/records-api/pkg/metrics"
	"github.com/healthtrack/records-api/pkg/validator"
)

// Shared across tests: promauto registers on the default registry and
// a second registration would panic.
var testMetrics = metrics.NewMetrics("healthtrack_handler_test")

// memStore is a minimal in-memory HospitalizationRepository for
// driving the handler through a real service.
type memStore struct {
	nextID  int64
	records map[int64]*model.Hospitalization
}

func newMemStore() *memStore {
	return &memStore{nextID: 1, records: make(map[int64]*model.Hospitalization)}
}

func (m *memStore) Create(_ context.Context, h *model.Hospitalization) (int64, error) {
	h.ID = m.nextID
	m.nextID++
	cp := *h
	m.records[h.ID] = &cp
	return h.ID, nil
}

func (m *memStore) Get(_ context.Context, id int64) (*model.Hospitalization, error) {
	h, ok := m.records[id]
	if !ok {
		return nil, pkgerrors.NotFound("hospitalization", nil)
	}
	cp := *h
	return &cp, nil
}

func (m *memStore) List(ctx context.Context) ([]*model.Hospitalization, error) {
	var out []*model.Hospitalization
	for _, h := range m.records {
		cp := *h
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memStore) ListOpen(ctx context.Context) ([]*model.Hospitalization, error) {
	return m.List(ctx)
}

func (m *memStore) ListByPatient(ctx context.Context, _ int64) ([]*model.Hospitalization, error) {
	return m.List(ctx)
}

func (m *memStore) ListByDoctor(ctx context.Context, _ int64) ([]*model.Hospitalization, error) {
	return m.List(ctx)
}

func (m *memStore) Update(_ context.Context, h *model.Hospitalization) error {
	existing, ok := m.records[h.ID]
	if !ok {
		return pkgerrors.NotFound("hospitalization", nil)
	}
	cp := *h
	cp.PatientID = existing.PatientID
	m.records[h.ID] = &cp
	return nil
}

func (m *memStore) Discharge(_ context.Context, id int64, dischargeDate time.Time) error {
	h, ok := m.records[id]
	if !ok {
		return pkgerrors.NotFound("hospitalization", nil)
	}
	d := dischargeDate
	h.DischargeDate = &d
	return nil
}

func (m *memStore) Delete(_ context.Context, id int64) error {
	delete(m.records, id)
	return nil
}

func (m *memStore) IsSlotOccupied(context.Context, model.Slot, *int64) (bool, error) {
	return false, nil
}

// memRefs serves patient 1, doctor 1 and ward CARD/1 with two beds.
type memRefs struct{}

func (memRefs) GetPatient(_ context.Context, id int64) (*model.Patient, error) {
	if id != 1 {
		return nil, pkgerrors.NotFound("patient", nil)
	}
	return &model.Patient{ID: id}, nil
}

func (memRefs) GetDoctor(_ context.Context, id int64) (*model.Doctor, error) {
	if id != 1 {
		return nil, pkgerrors.NotFound("doctor", nil)
	}
	return &model.Doctor{ID: id}, nil
}

func (memRefs) GetWard(_ context.Context, departmentCode string, wardNumber int) (*model.Ward, error) {
	if departmentCode != "CARD" || wardNumber != 1 {
		return nil, pkgerrors.NotFound("ward", nil)
	}
	return &model.Ward{DepartmentCode: "CARD", WardNumber: 1, BedCount: 2}, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *memStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validator.Register())

	store := newMemStore()
	svc := hospitalization.NewService(
		store, memRefs{}, hospitalization.NewOccupancyChecker(store),
		testMetrics, logger.NewLogger(nil),
	)

	engine := gin.New()
	NewHandler(svc).RegisterRoutes(engine.Group("/api/v1"))
	return engine, store
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func admitBody() map[string]interface{} {
	return map[string]interface{}{
		"patient_id":      1,
		"department_code": "CARD",
		"ward_number":     1,
		"bed_number":      1,
		"diagnosis":       "flu",
		"doctor_id":       1,
		"admission_date":  "2024-01-01",
	}
}

func TestAmendWithoutAdmissionDateIsRejected(t *testing.T) {
	engine, store := newTestRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/hospitalizations", admitBody())
	require.Equal(t, http.StatusCreated, w.Code)

	amend := admitBody()
	delete(amend, "patient_id")
	delete(amend, "admission_date")
	amend["diagnosis"] = "pneumonia"

	w = doJSON(t, engine, http.MethodPut, "/api/v1/hospitalizations/1", amend)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	h, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "flu", h.Diagnosis)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), h.AdmissionDate)
}

func TestAmendKeepsSubmittedAdmissionDate(t *testing.T) {
	engine, store := newTestRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/hospitalizations", admitBody())
	require.Equal(t, http.StatusCreated, w.Code)

	amend := admitBody()
	delete(amend, "patient_id")
	amend["diagnosis"] = "pneumonia"

	w = doJSON(t, engine, http.MethodPut, "/api/v1/hospitalizations/1", amend)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	h, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "pneumonia", h.Diagnosis)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), h.AdmissionDate)
}

func TestAdmitDefaultsAdmissionDateToToday(t *testing.T) {
	engine, store := newTestRouter(t)

	body := admitBody()
	delete(body, "admission_date")

	w := doJSON(t, engine, http.MethodPost, "/api/v1/hospitalizations", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	h, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	today := time.Now().UTC().Format(time.DateOnly)
	assert.Equal(t, today, h.AdmissionDate.Format(time.DateOnly))
}

func TestAmendUnknownRecordIsNotFound(t *testing.T) {
	engine, _ := newTestRouter(t)

	amend := admitBody()
	delete(amend, "patient_id")

	w := doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/v1/hospitalizations/%d", 99), amend)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp handler.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
}
