package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorIsMatchesByCode(t *testing.T) {
	err := Occupancy("CARD", 1, 2)
	assert.True(t, errors.Is(err, &AppError{Code: ErrOccupancy}))
	assert.False(t, errors.Is(err, &AppError{Code: ErrCapacity}))
}

func TestAppErrorWrapping(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Persistence(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestListAccumulates(t *testing.T) {
	var list List
	assert.NoError(t, list.Err())

	list.Add(Reference("patient"))
	list.Add(Validation("diagnosis", "diagnosis is required"))

	err := list.Err()
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrReference))
	assert.True(t, IsCode(err, ErrValidation))
	assert.False(t, IsCode(err, ErrOccupancy))
	assert.Contains(t, err.Error(), "diagnosis is required")
}

func TestCode(t *testing.T) {
	assert.Equal(t, ErrNotFound, Code(NotFound("hospitalization", nil)))
	assert.Equal(t, ErrPersistence, Code(fmt.Errorf("plain")))

	var list List
	list.Add(Capacity("bed number exceeds ward capacity"))
	assert.Equal(t, ErrCapacity, Code(list.Err()))
}

func TestCodeOfWrappedError(t *testing.T) {
	err := fmt.Errorf("admit: %w", Reference("doctor"))
	assert.Equal(t, ErrReference, Code(err))
	assert.True(t, IsCode(err, ErrReference))
}
