package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/kennndev/mindflow/internal/models"
)

// SessionNotes is the doctor-authored clinical notes view of a session.
type SessionNotes struct {
	SessionNotes       string           `json:"sessionNotes"`
	PresentingConcerns string           `json:"presentingConcerns"`
	KeyObservations    string           `json:"keyObservations"`
	InterventionsUsed  string           `json:"interventionsUsed"`
	TreatmentPlan      string           `json:"treatmentPlan"`
	Homework           string           `json:"homework"`
	RiskAssessment     models.RiskLevel `json:"riskAssessment"`
	RiskNotes          string           `json:"riskNotes"`
	NotesUpdatedAt     *time.Time       `json:"notesUpdatedAt,omitempty"`
}

// NotesUpdate carries a partial clinical-notes edit. Nil fields are left
// untouched; supplied fields overwrite, including with empty strings.
type NotesUpdate struct {
	SessionNotes       *string
	PresentingConcerns *string
	KeyObservations    *string
	InterventionsUsed  *string
	TreatmentPlan      *string
	Homework           *string
	RiskAssessment     *models.RiskLevel
	RiskNotes          *string
}

func notesOf(session *models.Session) SessionNotes {
	risk := session.RiskAssessment
	if risk == "" {
		risk = models.RiskNone
	}
	return SessionNotes{
		SessionNotes:       session.SessionNotes,
		PresentingConcerns: session.PresentingConcerns,
		KeyObservations:    session.KeyObservations,
		InterventionsUsed:  session.InterventionsUsed,
		TreatmentPlan:      session.TreatmentPlan,
		Homework:           session.Homework,
		RiskAssessment:     risk,
		RiskNotes:          session.RiskNotes,
		NotesUpdatedAt:     session.NotesUpdatedAt,
	}
}

// ownedSession loads a session and verifies the requesting doctor is the
// assigned one.
func (s *Service) ownedSession(ctx context.Context, sessionID, doctorUserID string) (*models.Session, error) {
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
	return session, nil
}

// GetNotes returns a session's clinical notes to its assigned doctor.
func (s *Service) GetNotes(ctx context.Context, sessionID, doctorUserID string) (*SessionNotes, error) {
	session, err := s.ownedSession(ctx, sessionID, doctorUserID)
	if err != nil {
		return nil, err
	}
	notes := notesOf(session)
	return &notes, nil
}

// UpdateNotes applies a partial clinical-notes edit. Notes are editable by
// the assigned doctor at any lifecycle stage, any number of times; every
// save stamps notesUpdatedAt. Lifecycle status is never touched.
func (s *Service) UpdateNotes(ctx context.Context, sessionID, doctorUserID string, update NotesUpdate) (*SessionNotes, error) {
	session, err := s.ownedSession(ctx, sessionID, doctorUserID)
	if err != nil {
		return nil, err
	}

	if update.SessionNotes != nil {
		session.SessionNotes = *update.SessionNotes
	}
	if update.PresentingConcerns != nil {
		session.PresentingConcerns = *update.PresentingConcerns
	}
	if update.KeyObservations != nil {
		session.KeyObservations = *update.KeyObservations
	}
	if update.InterventionsUsed != nil {
		session.InterventionsUsed = *update.InterventionsUsed
	}
	if update.TreatmentPlan != nil {
		session.TreatmentPlan = *update.TreatmentPlan
	}
	if update.Homework != nil {
		session.Homework = *update.Homework
	}
	if update.RiskAssessment != nil {
		session.RiskAssessment = *update.RiskAssessment
	}
	if update.RiskNotes != nil {
		session.RiskNotes = *update.RiskNotes
	}

	now := s.Now()
	session.NotesUpdatedAt = &now

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session notes: %w", err)
	}
	notes := notesOf(session)
	return &notes, nil
}
