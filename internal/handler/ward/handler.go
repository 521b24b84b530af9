package ward

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/healthtrack/records-api/internal/handler"
	"github.com/healthtrack/records-api/internal/model"
	"github.com/healthtrack/records-api/internal/service/ward"
)

type Handler struct {
	service *ward.Service
}

func NewHandler(service *ward.Service) *Handler {
	return &Handler{service: service}
}

// Wards hang off their department in the URL; the composite key is
// (department code, ward number).
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	wards := r.Group("/departments/:code/wards")
	{
		wards.POST("", h.CreateWard)
		wards.GET("", h.ListWards)
		wards.GET("/:number", h.GetWard)
		wards.PUT("/:number", h.UpdateWard)
		wards.DELETE("/:number", h.DeleteWard)
	}
}

func (h *Handler) CreateWard(c *gin.Context) {
	var req model.CreateWardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if req.DepartmentCode != c.Param("code") {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("department_code does not match URL"))
		return
	}

	w := &model.Ward{
		DepartmentCode: req.DepartmentCode,
		WardNumber:     req.WardNumber,
		BedCount:       req.BedCount,
		SupervisorID:   req.SupervisorID,
	}
	if err := h.service.CreateWard(c.Request.Context(), w); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(w))
}

func (h *Handler) GetWard(c *gin.Context) {
	number, ok := handler.PathInt(c, "number")
	if !ok {
		return
	}
	w, err := h.service.GetWard(c.Request.Context(), c.Param("code"), number)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(w))
}

func (h *Handler) ListWards(c *gin.Context) {
	if sup := c.Query("supervisor_id"); sup != "" {
		id, err := strconv.ParseInt(sup, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid supervisor_id"))
			return
		}
		wards, err := h.service.ListWardsBySupervisor(c.Request.Context(), id)
		if err != nil {
			handler.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, handler.NewSuccessResponse(wards))
		return
	}

	wards, err := h.service.ListWards(c.Request.Context(), c.Param("code"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(wards))
}

// UpdateWard addresses the record by its original key from the URL;
// the body may carry a new department code or ward number.
func (h *Handler) UpdateWard(c *gin.Context) {
	number, ok := handler.PathInt(c, "number")
	if !ok {
		return
	}

	var req model.UpdateWardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	w := &model.Ward{
		DepartmentCode: req.DepartmentCode,
		WardNumber:     req.WardNumber,
		BedCount:       req.BedCount,
		SupervisorID:   req.SupervisorID,
	}
	if err := h.service.UpdateWard(c.Request.Context(), c.Param("code"), number, w); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(w))
}

func (h *Handler) DeleteWard(c *gin.Context) {
	number, ok := handler.PathInt(c, "number")
	if !ok {
		return
	}
	if err := h.service.DeleteWard(c.Request.Context(), c.Param("code"), number); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
