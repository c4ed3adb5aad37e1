package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kennndev/mindflow/internal/models"
)

var (
	ErrDoctorNotFound        = errors.New("doctor not found")
	ErrDoctorNotApproved     = errors.New("doctor is not approved")
	ErrPatientProfileMissing = errors.New("patient profile not found")
	ErrSessionNotFound       = errors.New("session not found")
	ErrSlotUnavailable       = errors.New("this time slot is not available")
	ErrNotOwner              = errors.New("session does not belong to the requesting party")
	ErrInvalidTransition     = errors.New("invalid status transition")
)

// TransitionError reports an illegal status change and names the current
// status so the caller can explain the rejection. It matches
// ErrInvalidTransition under errors.Is.
type TransitionError struct {
	From models.SessionStatus
	To   models.SessionStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move session from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// SessionFilter narrows patient-facing session listings.
type SessionFilter struct {
	Status   models.SessionStatus // zero value: any status
	Upcoming bool                 // only active sessions from now on
	Now      time.Time            // reference instant for Upcoming
}

// ScheduleFilter narrows a doctor's schedule listing. Date limits results
// to one calendar day; otherwise everything from Now forward is returned.
type ScheduleFilter struct {
	Date *time.Time
	Now  time.Time
}

// SessionRepository contains the session store interactions the engine
// needs. FindActiveByDoctorAndTime returns (nil, nil) when the slot is
// free. Create must surface ErrSlotUnavailable when the storage-layer
// uniqueness guard on (doctor, instant, active) rejects the insert.
type SessionRepository interface {
	FindActiveByDoctorAndTime(ctx context.Context, doctorID string, when time.Time) (*models.Session, error)
	Create(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
	Count(ctx context.Context) (int64, error)
	ListByPatient(ctx context.Context, patientID string, filter SessionFilter) ([]models.Session, error)
	ListActiveByDoctor(ctx context.Context, doctorID string, filter ScheduleFilter) ([]models.Session, error)
}

// Directory resolves patient and doctor profiles for booking and ownership
// checks.
type Directory interface {
	FindDoctorByID(ctx context.Context, id string) (*models.Doctor, error)
	FindDoctorByUser(ctx context.Context, userID string) (*models.Doctor, error)
	FindPatientByUser(ctx context.Context, userID string) (*models.Patient, error)
	AssignDoctorIfUnset(ctx context.Context, patientID, doctorID string) error
}

// CheckInRepository persists patient check-in snapshots.
type CheckInRepository interface {
	Create(ctx context.Context, checkIn *models.CheckIn) error
	ListByPatient(ctx context.Context, patientID string, sessionID *string) ([]models.CheckIn, error)
}
