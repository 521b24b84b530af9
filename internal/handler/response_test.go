package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/healthtrack/records-api/pkg/errors"
)

func perform(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	Error(c, err)
	return w
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", pkgerrors.Validation("diagnosis", "required"), http.StatusUnprocessableEntity},
		{"reference", pkgerrors.Reference("doctor"), http.StatusUnprocessableEntity},
		{"capacity", pkgerrors.Capacity("bed number exceeds ward capacity"), http.StatusUnprocessableEntity},
		{"occupancy", pkgerrors.Occupancy("CARD", 1, 2), http.StatusConflict},
		{"already discharged", pkgerrors.AlreadyDischarged(7), http.StatusConflict},
		{"not found", pkgerrors.NotFound("hospitalization", nil), http.StatusNotFound},
		{"persistence", pkgerrors.Persistence(nil), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(t, tt.err)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestErrorReturnsWholeValidationList(t *testing.T) {
	errs := &pkgerrors.List{}
	errs.Add(pkgerrors.Validation("diagnosis", "diagnosis is required"))
	errs.Add(pkgerrors.Capacity("bed number exceeds ward capacity"))
	errs.Add(pkgerrors.Reference("patient"))

	w := perform(t, errs.Err())

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Len(t, resp.Errors, 3)
}
