package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/healthtrack/records-api/pkg/errors"
)

type Response struct {
	Status  string                `json:"status"`
	Message string                `json:"message,omitempty"`
	Data    interface{}           `json:"data,omitempty"`
	Errors  []*pkgerrors.AppError `json:"errors,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// Error writes err with the HTTP status its error code maps to. A
// validation List is returned whole so the client can show every
// violation at once.
func Error(c *gin.Context, err error) {
	var list *pkgerrors.List
	if errors.As(err, &list) {
		c.JSON(statusFor(pkgerrors.Code(err)), &Response{
			Status:  "error",
			Message: "validation failed",
			Errors:  list.Errors,
		})
		return
	}

	var app *pkgerrors.AppError
	if errors.As(err, &app) {
		c.JSON(statusFor(app.Code), &Response{
			Status:  "error",
			Message: app.Message,
			Errors:  []*pkgerrors.AppError{app},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error()))
}

func statusFor(code pkgerrors.ErrorCode) int {
	switch code {
	case pkgerrors.ErrValidation, pkgerrors.ErrReference, pkgerrors.ErrCapacity:
		return http.StatusUnprocessableEntity
	case pkgerrors.ErrOccupancy, pkgerrors.ErrAlreadyDischarged:
		return http.StatusConflict
	case pkgerrors.ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
