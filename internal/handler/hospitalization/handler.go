package hospitalization

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/healthtrack/records-api/internal/handler"
	"github.com/healthtrack/records-api/internal/model"
	"github.com/healthtrack/records-api/internal/service/hospitalization"
)

type Handler struct {
	service *hospitalization.Service
}

func NewHandler(service *hospitalization.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	stays := r.Group("/hospitalizations")
	{
		stays.POST("", h.Admit)
		stays.GET("", h.List)
		stays.GET("/:id", h.Get)
		stays.PUT("/:id", h.Amend)
		stays.POST("/:id/discharge", h.Discharge)
		stays.DELETE("/:id", h.Remove)
	}
}

func (h *Handler) Admit(c *gin.Context) {
	var req model.AdmitHospitalizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	in := model.AdmitInput{
		PatientID:      req.PatientID,
		DepartmentCode: req.DepartmentCode,
		WardNumber:     req.WardNumber,
		BedNumber:      req.BedNumber,
		Diagnosis:      req.Diagnosis,
		DoctorID:       req.DoctorID,
	}
	// An omitted admission date means the patient is admitted today.
	in.AdmissionDate = parseDateOr(req.AdmissionDate, time.Now())
	if req.DischargeDate != "" {
		d := parseDateOr(req.DischargeDate, time.Time{})
		in.DischargeDate = &d
	}

	id, err := h.service.Admit(c.Request.Context(), in)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(gin.H{"hospitalization_id": id}))
}

func (h *Handler) Amend(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	var req model.AmendHospitalizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	in := model.AmendInput{
		DepartmentCode: req.DepartmentCode,
		WardNumber:     req.WardNumber,
		BedNumber:      req.BedNumber,
		Diagnosis:      req.Diagnosis,
		DoctorID:       req.DoctorID,
	}
	// Binding requires the admission date on amendments, so there is
	// no today fallback that could overwrite the stored date.
	in.AdmissionDate = parseDateOr(req.AdmissionDate, time.Time{})
	if req.DischargeDate != "" {
		d := parseDateOr(req.DischargeDate, time.Time{})
		in.DischargeDate = &d
	}

	if err := h.service.Amend(c.Request.Context(), id, in); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"hospitalization_id": id}))
}

func (h *Handler) Discharge(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	var req model.DischargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	d, err := time.Parse(time.DateOnly, req.DischargeDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid discharge_date"))
		return
	}

	if err := h.service.Discharge(c.Request.Context(), id, d); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"hospitalization_id": id}))
}

func (h *Handler) Remove(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	stay, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(stay))
}

// List filters by at most one of open=true, patient_id or doctor_id.
func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if pid := c.Query("patient_id"); pid != "" {
		id, err := strconv.ParseInt(pid, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient_id"))
			return
		}
		stays, err := h.service.ListByPatient(ctx, id)
		if err != nil {
			handler.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, handler.NewSuccessResponse(stays))
		return
	}

	if did := c.Query("doctor_id"); did != "" {
		id, err := strconv.ParseInt(did, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor_id"))
			return
		}
		stays, err := h.service.ListByDoctor(ctx, id)
		if err != nil {
			handler.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, handler.NewSuccessResponse(stays))
		return
	}

	var (
		stays []*model.Hospitalization
		err   error
	)
	if c.Query("open") == "true" {
		stays, err = h.service.ListOpen(ctx)
	} else {
		stays, err = h.service.List(ctx)
	}
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(stays))
}

// parseDateOr assumes binding already checked the format; fallback
// covers the omitted case.
func parseDateOr(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fallback
	}
	return t
}
