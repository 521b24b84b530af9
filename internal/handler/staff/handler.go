package staff

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthtrack/records-api/internal/handler"
	"github.com/healthtrack/records-api/internal/model"
	"github.com/healthtrack/records-api/internal/service/staff"
)

// Handler serves both doctor and nurse endpoints; the two share the
// employee core and the same service.
type Handler struct {
	service *staff.Service
}

func NewHandler(service *staff.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors")
	{
		doctors.POST("", h.CreateDoctor)
		doctors.GET("", h.ListDoctors)
		doctors.GET("/:id", h.GetDoctor)
		doctors.PUT("/:id", h.UpdateDoctor)
		doctors.DELETE("/:id", h.DeleteDoctor)
	}

	nurses := r.Group("/nurses")
	{
		nurses.POST("", h.CreateNurse)
		nurses.GET("", h.ListNurses)
		nurses.GET("/:id", h.GetNurse)
		nurses.PUT("/:id", h.UpdateNurse)
		nurses.DELETE("/:id", h.DeleteNurse)
	}
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req model.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	d := doctorFromRequest(&req)
	id, err := h.service.CreateDoctor(c.Request.Context(), d)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(gin.H{"employee_id": id}))
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	d, err := h.service.GetDoctor(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(d))
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.service.ListDoctors(c.Request.Context(), c.Query("speciality"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	d := doctorFromRequest(&req)
	d.ID = id
	if err := h.service.UpdateDoctor(c.Request.Context(), d); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"employee_id": id}))
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteDoctor(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) CreateNurse(c *gin.Context) {
	var req model.CreateNurseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	n := nurseFromRequest(&req)
	id, err := h.service.CreateNurse(c.Request.Context(), n)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(gin.H{"employee_id": id}))
}

func (h *Handler) GetNurse(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	n, err := h.service.GetNurse(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(n))
}

func (h *Handler) ListNurses(c *gin.Context) {
	nurses, err := h.service.ListNurses(c.Request.Context(), c.Query("rotation"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nurses))
}

func (h *Handler) UpdateNurse(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateNurseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	n := nurseFromRequest(&req)
	n.ID = id
	if err := h.service.UpdateNurse(c.Request.Context(), n); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"employee_id": id}))
}

func (h *Handler) DeleteNurse(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteNurse(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func doctorFromRequest(req *model.CreateDoctorRequest) *model.Doctor {
	return &model.Doctor{
		Person: model.Person{
			FirstName: req.FirstName,
			Surname:   req.Surname,
			Address:   req.Address,
			Phone:     req.Phone,
		},
		Speciality: req.Speciality,
		Salary:     req.Salary,
	}
}

func nurseFromRequest(req *model.CreateNurseRequest) *model.Nurse {
	return &model.Nurse{
		Person: model.Person{
			FirstName: req.FirstName,
			Surname:   req.Surname,
			Address:   req.Address,
			Phone:     req.Phone,
		},
		Rotation:       req.Rotation,
		Salary:         req.Salary,
		DepartmentCode: req.DepartmentCode,
	}
}
