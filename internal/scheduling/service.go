package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/kennndev/mindflow/internal/models"
)

// Service owns the session lifecycle: booking, cancellation, status
// progression, check-in linkage and the clinical notes sub-resource. All
// callers are identified by their user account id; the service resolves
// patient/doctor profiles through the Directory.
type Service struct {
	sessions   SessionRepository
	directory  Directory
	checkIns   CheckInRepository
	checker    *SlotConflictChecker
	locker     SlotLocker
	linkExpiry time.Duration

	// Now is the clock used for all timestamps; overridable in tests.
	Now func() time.Time
}

// NewService wires the lifecycle engine to its collaborators. linkExpiry is
// how long after creation a video link stays valid for the token endpoint.
func NewService(sessions SessionRepository, directory Directory, checkIns CheckInRepository, locker SlotLocker, linkExpiry time.Duration) *Service {
	return &Service{
		sessions:   sessions,
		directory:  directory,
		checkIns:   checkIns,
		checker:    NewSlotConflictChecker(sessions),
		locker:     locker,
		linkExpiry: linkExpiry,
		Now:        time.Now,
	}
}

// slotKey derives the uniqueness-guard value stored while a session is
// active. It must be identical for two bookings of the same doctor and
// instant regardless of time zone representation.
func slotKey(doctorID string, at time.Time) string {
	return fmt.Sprintf("%s@%d", doctorID, at.Unix())
}

// BookingInput is the already-validated booking request handed to Book.
type BookingInput struct {
	PatientUserID string
	DoctorID      string
	ScheduledDate time.Time
	Duration      int // minutes; 0 means default
	Type          models.SessionType
	Mode          models.SessionMode
	Notes         string
}

// Book creates a new scheduled session. Preconditions: the doctor exists
// and is approved, the patient profile exists, and the slot is free. The
// conflict check runs under a per-slot lock; the unique index on the slot
// key backstops it, so a concurrent duplicate insert also surfaces as
// ErrSlotUnavailable. When the patient has no assigned doctor yet, booking
// assigns this one (first booking wins) as an explicit final step.
func (s *Service) Book(ctx context.Context, in BookingInput) (*models.Session, error) {
	patient, err := s.directory.FindPatientByUser(ctx, in.PatientUserID)
	if err != nil {
		return nil, err
	}

	doctor, err := s.directory.FindDoctorByID(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.IsApproved {
		return nil, ErrDoctorNotApproved
	}

	duration := in.Duration
	if duration <= 0 {
		duration = DefaultSessionDuration
	}
	sessionType := in.Type
	if sessionType == "" {
		sessionType = models.SessionTypeFollowUp
	}

	var created *models.Session

	err = s.locker.WithSlotLock(ctx, doctor.ID, in.ScheduledDate, func(lockCtx context.Context) error {
		available, err := s.checker.SlotAvailable(lockCtx, doctor.ID, in.ScheduledDate)
		if err != nil {
			return err
		}
		if !available {
			return ErrSlotUnavailable
		}

		now := s.Now()

		count, err := s.sessions.Count(lockCtx)
		if err != nil {
			return fmt.Errorf("count sessions: %w", err)
		}
		sessionID := fmt.Sprintf("S-%d-%d", now.UnixMilli(), count+1)

		key := slotKey(doctor.ID, in.ScheduledDate)
		session := &models.Session{
			SessionID:     sessionID,
			PatientID:     patient.ID,
			DoctorID:      doctor.ID,
			ScheduledDate: in.ScheduledDate,
			Duration:      duration,
			Type:          sessionType,
			Mode:          in.Mode,
			Status:        models.SessionScheduled,
			SlotKey:       &key,
			SessionNotes:  in.Notes,
		}

		if in.Mode == models.ModeVideo {
			roomID, err := VideoRoomID(sessionID, "")
			if err != nil {
				return err
			}
			linkExpiresAt := now.Add(s.linkExpiry)
			session.VideoRoomID = roomID
			session.VideoRoomURL = roomID // legacy alias
			session.LinkExpiresAt = &linkExpiresAt
		}

		if err := s.sessions.Create(lockCtx, session); err != nil {
			return err
		}
		created = session
		return nil
	})
	if err != nil {
		return nil, err
	}

	// First-booking-wins doctor assignment, deliberately a named step
	// rather than an incidental side effect of the insert.
	if patient.AssignedDoctorID == nil {
		if err := s.directory.AssignDoctorIfUnset(ctx, patient.ID, doctor.ID); err != nil {
			return nil, fmt.Errorf("assign doctor to patient: %w", err)
		}
	}

	return created, nil
}

// Cancel moves a session to cancelled. Only the involved patient or doctor
// may cancel, and only from scheduled, confirmed or in-progress.
func (s *Service) Cancel(ctx context.Context, sessionID, userID string, role models.Role, reason string) (*models.Session, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var by models.CancelledBy
	switch role {
	case models.RolePatient:
		patient, err := s.directory.FindPatientByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if session.PatientID != patient.ID {
			return nil, ErrNotOwner
		}
		by = models.CancelledByPatient
	case models.RoleDoctor:
		doctor, err := s.directory.FindDoctorByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if session.DoctorID != doctor.ID {
			return nil, ErrNotOwner
		}
		by = models.CancelledByDoctor
	default:
		by = models.CancelledBySystem
	}

	if !session.Status.IsActive() {
		return nil, &TransitionError{From: session.Status, To: models.SessionCancelled}
	}

	now := s.Now()
	session.Status = models.SessionCancelled
	session.CancelledBy = by
	session.CancellationReason = reason
	session.CancelledAt = &now
	session.SlotKey = nil // release the slot

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save cancelled session: %w", err)
	}
	return session, nil
}

// legalTransitions is the status progression table beyond booking and
// cancellation. Confirmation, start, completion and no-show marking are
// driven by the owning doctor (or operational tooling acting as one).
var legalTransitions = map[models.SessionStatus][]models.SessionStatus{
	models.SessionScheduled:  {models.SessionConfirmed, models.SessionInProgress, models.SessionNoShow},
	models.SessionConfirmed:  {models.SessionInProgress, models.SessionNoShow},
	models.SessionInProgress: {models.SessionCompleted},
}

func transitionAllowed(from, to models.SessionStatus) bool {
	for _, t := range legalTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// UpdateStatus advances a session along the lifecycle on behalf of its
// doctor. Cancellation goes through Cancel, not here.
func (s *Service) UpdateStatus(ctx context.Context, sessionID, doctorUserID string, to models.SessionStatus) (*models.Session, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	doctor, err := s.directory.FindDoctorByUser(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}
	if session.DoctorID != doctor.ID {
		return nil, ErrNotOwner
	}

	if !transitionAllowed(session.Status, to) {
		return nil, &TransitionError{From: session.Status, To: to}
	}

	now := s.Now()
	session.Status = to
	switch to {
	case models.SessionInProgress:
		session.ActualStartTime = &now
	case models.SessionCompleted:
		session.ActualEndTime = &now
		if session.ActualStartTime != nil {
			session.ActualDuration = int(now.Sub(*session.ActualStartTime).Minutes())
		}
	}
	if to.IsTerminal() {
		session.SlotKey = nil
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session status: %w", err)
	}
	return session, nil
}

// CheckInInput is an already-validated check-in submission. SessionID, when
// set, must reference a session owned by the submitting patient.
type CheckInInput struct {
	PatientUserID    string
	SessionID        *string
	Mood             int
	PrimaryConcern   models.PrimaryConcern
	Severity         int
	SpecificConcerns string
	Note             string
	SleepQuality     int
	EnergyLevel      int
	StressLevel      int
}

// SubmitCheckIn records a check-in and, when it references a session, links
// it: checkInId and checkInCompleted are set on the session. Linking a
// second check-in overwrites the first (last write wins), mirroring the
// product's current behavior.
func (s *Service) SubmitCheckIn(ctx context.Context, in CheckInInput) (*models.CheckIn, error) {
	patient, err := s.directory.FindPatientByUser(ctx, in.PatientUserID)
	if err != nil {
		return nil, err
	}

	var session *models.Session
	if in.SessionID != nil && *in.SessionID != "" {
		session, err = s.sessions.FindByID(ctx, *in.SessionID)
		if err != nil {
			return nil, err
		}
		if session.PatientID != patient.ID {
			return nil, ErrNotOwner
		}
	}

	checkIn := &models.CheckIn{
		PatientID:        patient.ID,
		SessionID:        in.SessionID,
		Mood:             in.Mood,
		PrimaryConcern:   in.PrimaryConcern,
		Severity:         in.Severity,
		SpecificConcerns: in.SpecificConcerns,
		Note:             in.Note,
		SleepQuality:     in.SleepQuality,
		EnergyLevel:      in.EnergyLevel,
		StressLevel:      in.StressLevel,
	}
	if err := s.checkIns.Create(ctx, checkIn); err != nil {
		return nil, fmt.Errorf("create check-in: %w", err)
	}

	if session != nil {
		session.CheckInID = &checkIn.ID
		session.CheckInCompleted = true
		if err := s.sessions.Save(ctx, session); err != nil {
			return nil, fmt.Errorf("link check-in to session: %w", err)
		}
	}

	return checkIn, nil
}

// ListCheckIns returns the patient's check-ins, optionally filtered to one
// session.
func (s *Service) ListCheckIns(ctx context.Context, patientUserID string, sessionID *string) ([]models.CheckIn, error) {
	patient, err := s.directory.FindPatientByUser(ctx, patientUserID)
	if err != nil {
		return nil, err
	}
	return s.checkIns.ListByPatient(ctx, patient.ID, sessionID)
}

// ListAppointments returns the patient's sessions, filterable by status and
// upcoming-only.
func (s *Service) ListAppointments(ctx context.Context, patientUserID string, status models.SessionStatus, upcoming bool) ([]models.Session, error) {
	patient, err := s.directory.FindPatientByUser(ctx, patientUserID)
	if err != nil {
		return nil, err
	}
	return s.sessions.ListByPatient(ctx, patient.ID, SessionFilter{
		Status:   status,
		Upcoming: upcoming,
		Now:      s.Now(),
	})
}

// DoctorSchedule returns the doctor's active sessions, optionally limited
// to one calendar day.
func (s *Service) DoctorSchedule(ctx context.Context, doctorUserID string, date *time.Time) ([]models.Session, error) {
	doctor, err := s.directory.FindDoctorByUser(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}
	return s.sessions.ListActiveByDoctor(ctx, doctor.ID, ScheduleFilter{Date: date, Now: s.Now()})
}

// GetSession returns one session after verifying the requesting party is
// involved in it.
func (s *Service) GetSession(ctx context.Context, sessionID, userID string, role models.Role) (*models.Session, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	switch role {
	case models.RolePatient:
		patient, err := s.directory.FindPatientByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if session.PatientID != patient.ID {
			return nil, ErrNotOwner
		}
	case models.RoleDoctor:
		doctor, err := s.directory.FindDoctorByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if session.DoctorID != doctor.ID {
			return nil, ErrNotOwner
		}
	}
	return session, nil
}
