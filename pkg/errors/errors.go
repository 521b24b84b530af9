package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error code
type ErrorCode int

// Common error codes
const (
	ErrValidation ErrorCode = iota + 1000
	ErrReference
	ErrCapacity
	ErrOccupancy
	ErrAlreadyDischarged
	ErrNotFound
	ErrPersistence
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Field   string    `json:"field,omitempty"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches AppErrors by code so callers can test the taxonomy
// with errors.Is without caring about message text.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// Error constructors
func Validation(field, message string) *AppError {
	return &AppError{Code: ErrValidation, Field: field, Message: message}
}

func Reference(entity string) *AppError {
	return &AppError{
		Code:    ErrReference,
		Field:   entity,
		Message: fmt.Sprintf("referenced %s does not exist", entity),
	}
}

func Capacity(message string) *AppError {
	return &AppError{Code: ErrCapacity, Field: "bed_number", Message: message}
}

func Occupancy(departmentCode string, wardNumber, bedNumber int) *AppError {
	return &AppError{
		Code:    ErrOccupancy,
		Field:   "bed_number",
		Message: fmt.Sprintf("bed %d in ward %s/%d is already occupied", bedNumber, departmentCode, wardNumber),
	}
}

func AlreadyDischarged(id int64) *AppError {
	return &AppError{
		Code:    ErrAlreadyDischarged,
		Message: fmt.Sprintf("hospitalization %d is already discharged", id),
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func Persistence(err error) *AppError {
	return &AppError{
		Code:    ErrPersistence,
		Message: "storage operation failed",
		Err:     err,
	}
}

// List accumulates validation failures so a caller gets every violation
// in one round trip instead of correcting them one at a time.
type List struct {
	Errors []*AppError `json:"errors"`
}

func (l *List) Add(err *AppError) {
	l.Errors = append(l.Errors, err)
}

func (l *List) Empty() bool {
	return len(l.Errors) == 0
}

// Err returns the list as an error, or nil when nothing accumulated.
func (l *List) Err() error {
	if l.Empty() {
		return nil
	}
	return l
}

func (l *List) Error() string {
	msgs := make([]string, 0, len(l.Errors))
	for _, e := range l.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Is reports whether any accumulated error matches target's code.
func (l *List) Is(target error) bool {
	for _, e := range l.Errors {
		if e.Is(target) {
			return true
		}
	}
	return false
}

// Code extracts the ErrorCode from err, unwrapping as needed.
// A List reports the code of its first entry. Errors outside the
// taxonomy report ErrPersistence.
func Code(err error) ErrorCode {
	var list *List
	if errors.As(err, &list) && !list.Empty() {
		return list.Errors[0].Code
	}
	var app *AppError
	if errors.As(err, &app) {
		return app.Code
	}
	return ErrPersistence
}

// IsCode reports whether err carries the given code, directly or inside a List.
func IsCode(err error, code ErrorCode) bool {
	var list *List
	if errors.As(err, &list) {
		for _, e := range list.Errors {
			if e.Code == code {
				return true
			}
		}
		return false
	}
	var app *AppError
	if errors.As(err, &app) {
		return app.Code == code
	}
	return false
}
