package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Field syntax rules shared by the binding layer and direct callers.
var (
	namePattern  = regexp.MustCompile(`^[a-zA-Z\s\-']+$`)
	phonePattern = regexp.MustCompile(`^[0-9\-\+\(\)\s]+$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// IsValidName reports whether name contains only letters, spaces,
// hyphens and apostrophes.
func IsValidName(name string) bool {
	return name != "" && namePattern.MatchString(name)
}

// IsValidPhone reports whether phone contains only digits and common
// phone punctuation.
func IsValidPhone(phone string) bool {
	return phone != "" && phonePattern.MatchString(phone)
}

// IsValidEmail reports whether email has a plausible mailbox shape.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Register installs the custom tags on gin's binding validator so
// request structs can use `binding:"person_name"` and `binding:"phone"`.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("person_name", func(fl validator.FieldLevel) bool {
		return IsValidName(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return IsValidPhone(fl.Field().String())
	})
}
