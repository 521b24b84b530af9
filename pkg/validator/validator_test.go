package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidName(t *testing.T) {
	assert.True(t, IsValidName("Mary-Jane O'Neil"))
	assert.True(t, IsValidName("John Smith"))
	assert.False(t, IsValidName(""))
	assert.False(t, IsValidName("R2D2"))
	assert.False(t, IsValidName("name@domain"))
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("+39 (055) 123-4567"))
	assert.True(t, IsValidPhone("0551234567"))
	assert.False(t, IsValidPhone(""))
	assert.False(t, IsValidPhone("phone"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("ward.clerk@hospital.org"))
	assert.False(t, IsValidEmail("not-an-email"))
}
