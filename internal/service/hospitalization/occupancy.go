package hospitalization

import (
	"context"

	"github.com/healthtrack/records-api/internal/model"
	"github.com/healthtrack/records-api/internal/repository"
)

// OccupancyChecker answers whether a bed currently holds an open
// hospitalization. It has no state of its own; the store is the
// source of truth, and the partial unique index there is the final
// guard against the check-then-act race.
type OccupancyChecker struct {
	repo repository.HospitalizationRepository
}

func NewOccupancyChecker(repo repository.HospitalizationRepository) *OccupancyChecker {
	return &OccupancyChecker{repo: repo}
}

// Occupied reports whether the slot has an open record. excludeID, when
// non-nil, leaves that record out so an amendment never conflicts with
// its own bed.
func (c *OccupancyChecker) Occupied(ctx context.Context, slot model.Slot, excludeID *int64) (bool, error) {
	return c.repo.IsSlotOccupied(ctx, slot, excludeID)
}
