package department

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthtrack/records-api/internal/handler"
	"github.com/healthtrack/records-api/internal/model"
	"github.com/healthtrack/records-api/internal/service/department"
)

type Handler struct {
	service *department.Service
}

func NewHandler(service *department.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	departments := r.Group("/departments")
	{
		departments.POST("", h.CreateDepartment)
		departments.GET("", h.ListDepartments)
		departments.GET("/:code", h.GetDepartment)
		departments.PUT("/:code", h.UpdateDepartment)
		departments.DELETE("/:code", h.DeleteDepartment)
	}
}

func (h *Handler) CreateDepartment(c *gin.Context) {
	var req model.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	d := &model.Department{
		Code:       req.Code,
		Name:       req.Name,
		Building:   req.Building,
		DirectorID: req.DirectorID,
	}
	if err := h.service.CreateDepartment(c.Request.Context(), d); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(gin.H{"department_code": d.Code}))
}

func (h *Handler) GetDepartment(c *gin.Context) {
	d, err := h.service.GetDepartment(c.Request.Context(), c.Param("code"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(d))
}

func (h *Handler) ListDepartments(c *gin.Context) {
	departments, err := h.service.ListDepartments(c.Request.Context(), c.Query("building"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(departments))
}

func (h *Handler) UpdateDepartment(c *gin.Context) {
	var req model.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	d := &model.Department{
		Code:       c.Param("code"),
		Name:       req.Name,
		Building:   req.Building,
		DirectorID: req.DirectorID,
	}
	if err := h.service.UpdateDepartment(c.Request.Context(), d); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"department_code": d.Code}))
}

func (h *Handler) DeleteDepartment(c *gin.Context) {
	if err := h.service.DeleteDepartment(c.Request.Context(), c.Param("code")); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
