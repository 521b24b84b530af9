package report

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/healthtrack/records-api/internal/handler"
	"github.com/healthtrack/records-api/internal/model"
	"github.com/healthtrack/records-api/internal/service/report"
)

type Handler struct {
	service *report.Service
}

func NewHandler(service *report.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	{
		reports.GET("/stays", h.Stays)
		reports.GET("/current-stays", h.CurrentStays)
		reports.GET("/occupancy", h.Occupancy)
		reports.GET("/stats", h.Stats)
		reports.GET("/staff/doctors", h.DoctorsBySpeciality)
		reports.GET("/staff/nurses", h.NursesByDepartment)
	}
}

// Stays runs one of three filtered stay reports depending on which
// query parameter is present: department_code, from/to, or diagnosis.
func (h *Handler) Stays(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		rows []*model.PatientStayRow
		err  error
	)
	switch {
	case c.Query("department_code") != "":
		rows, err = h.service.StaysByDepartment(ctx, c.Query("department_code"))
	case c.Query("from") != "" || c.Query("to") != "":
		from, perr := time.Parse(time.DateOnly, c.Query("from"))
		if perr != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid from date"))
			return
		}
		to, perr := time.Parse(time.DateOnly, c.Query("to"))
		if perr != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid to date"))
			return
		}
		rows, err = h.service.StaysByPeriod(ctx, from, to)
	case c.Query("diagnosis") != "":
		rows, err = h.service.StaysByDiagnosis(ctx, c.Query("diagnosis"))
	default:
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("one of department_code, from/to or diagnosis is required"))
		return
	}
	if err != nil {
		handler.Error(c, err)
		return
	}

	h.writeStays(c, rows)
}

func (h *Handler) CurrentStays(c *gin.Context) {
	rows, err := h.service.CurrentStays(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	h.writeStays(c, rows)
}

func (h *Handler) Occupancy(c *gin.Context) {
	rows, err := h.service.WardOccupancy(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	if c.Query("format") == "csv" {
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="occupancy.csv"`)
		if err := report.WriteOccupancyCSV(c.Writer, rows); err != nil {
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(rows))
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.AdmissionStats(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(stats))
}

func (h *Handler) DoctorsBySpeciality(c *gin.Context) {
	rows, err := h.service.DoctorsBySpeciality(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(rows))
}

func (h *Handler) NursesByDepartment(c *gin.Context) {
	rows, err := h.service.NursesByDepartment(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(rows))
}

func (h *Handler) writeStays(c *gin.Context, rows []*model.PatientStayRow) {
	if c.Query("format") == "csv" {
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="stays.csv"`)
		if err := report.WriteStaysCSV(c.Writer, rows); err != nil {
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(rows))
}
