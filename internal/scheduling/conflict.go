package scheduling

import (
	"context"
	"fmt"
	"time"
)

// SlotConflictChecker decides whether a doctor's slot at an exact instant is
// free. A slot is taken when any session for the same doctor has the same
// scheduledDate and an active status (scheduled, confirmed, in-progress).
// Equality is by exact timestamp; no duration-overlap logic is applied.
// This is a fast-path rejection only: the storage-layer uniqueness guard on
// the slot remains the authoritative protection against double booking.
type SlotConflictChecker struct {
	sessions SessionRepository
}

// NewSlotConflictChecker creates a checker over the given session store.
func NewSlotConflictChecker(sessions SessionRepository) *SlotConflictChecker {
	return &SlotConflictChecker{sessions: sessions}
}

// SlotAvailable reports whether the doctor can be booked at the instant.
// It has no side effects.
func (c *SlotConflictChecker) SlotAvailable(ctx context.Context, doctorID string, when time.Time) (bool, error) {
	existing, err := c.sessions.FindActiveByDoctorAndTime(ctx, doctorID, when)
	if err != nil {
		return false, fmt.Errorf("check slot availability: %w", err)
	}
	return existing == nil, nil
}
