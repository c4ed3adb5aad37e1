package models

import (
	"time"
)

// SessionStatus represents the lifecycle state of a therapy session.
type SessionStatus string

const (
	SessionScheduled  SessionStatus = "scheduled"
	SessionConfirmed  SessionStatus = "confirmed"
	SessionInProgress SessionStatus = "in-progress"
	SessionCompleted  SessionStatus = "completed"
	SessionCancelled  SessionStatus = "cancelled"
	SessionNoShow     SessionStatus = "no-show"
)

// IsActive reports whether the status still occupies the doctor's slot.
func (s SessionStatus) IsActive() bool {
	return s == SessionScheduled || s == SessionConfirmed || s == SessionInProgress
}

// IsTerminal reports whether the session has reached a final state.
func (s SessionStatus) IsTerminal() bool {
	return s == SessionCompleted || s == SessionCancelled || s == SessionNoShow
}

// SessionType represents the kind of appointment.
type SessionType string

const (
	SessionTypeInitial   SessionType = "initial"
	SessionTypeFollowUp  SessionType = "follow-up"
	SessionTypeEmergency SessionType = "emergency"
	SessionTypeGroup     SessionType = "group"
)

// SessionMode represents how the session is conducted.
type SessionMode string

const (
	ModeVideo    SessionMode = "video"
	ModeInPerson SessionMode = "in-person"
	ModePhone    SessionMode = "phone"
)

// RiskLevel is the doctor's risk assessment recorded in clinical notes.
type RiskLevel string

const (
	RiskNone     RiskLevel = "none"
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// CancelledBy identifies which party cancelled a session.
type CancelledBy string

const (
	CancelledByPatient CancelledBy = "patient"
	CancelledByDoctor  CancelledBy = "doctor"
	CancelledBySystem  CancelledBy = "system"
)

// Session is one scheduled therapy appointment between one patient and one
// doctor. Sessions are never deleted; cancellation is a status.
//
// SlotKey is a derived column holding "<doctorId>@<unix start>" while the
// session is in an active status and NULL once terminal. The unique index on
// it is the authoritative double-booking guard: MySQL permits any number of
// NULLs, so released slots can be rebooked while two concurrent bookings of
// the same doctor and instant cannot both insert.
type Session struct {
	BaseModel
	SessionID string `gorm:"size:40;uniqueIndex;not null" json:"sessionId"`
	PatientID string `gorm:"size:36;index:idx_session_patient;not null" json:"patientId"`
	DoctorID  string `gorm:"size:36;index:idx_session_doctor;not null" json:"doctorId"`

	ScheduledDate time.Time     `gorm:"index;not null" json:"scheduledDate"`
	Duration      int           `gorm:"default:50" json:"duration"` // minutes
	Type          SessionType   `gorm:"size:20;default:'follow-up'" json:"type"`
	Mode          SessionMode   `gorm:"size:20;default:'video'" json:"mode"`
	Status        SessionStatus `gorm:"size:20;default:'scheduled';index" json:"status"`
	SlotKey       *string       `gorm:"size:80;uniqueIndex" json:"-"`

	// Video linkage, present iff Mode == ModeVideo. VideoRoomURL is a legacy
	// alias equal to VideoRoomID. LinkExpiresAt gates only the token-service
	// lookup path (creation + 15 minutes), not the join window.
	VideoRoomID   string     `gorm:"size:80" json:"videoRoomId,omitempty"`
	VideoRoomURL  string     `gorm:"size:80" json:"videoRoomUrl,omitempty"`
	LinkExpiresAt *time.Time `json:"linkExpiresAt,omitempty"`

	ActualStartTime *time.Time `json:"actualStartTime,omitempty"`
	ActualEndTime   *time.Time `json:"actualEndTime,omitempty"`
	ActualDuration  int        `json:"actualDuration,omitempty"`

	// Check-in linkage. CheckInCompleted is true iff CheckInID is set.
	CheckInID        *string `gorm:"size:36" json:"checkInId,omitempty"`
	CheckInCompleted bool    `gorm:"default:false" json:"checkInCompleted"`

	// Cancellation metadata, set only on transition into cancelled.
	CancelledBy        CancelledBy `gorm:"size:10" json:"cancelledBy,omitempty"`
	CancellationReason string      `gorm:"size:500" json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time  `json:"cancelledAt,omitempty"`

	ReminderSent   bool       `gorm:"default:false" json:"reminderSent"`
	ReminderSentAt *time.Time `json:"reminderSentAt,omitempty"`

	// Doctor-authored clinical notes sub-resource.
	SessionNotes       string     `gorm:"size:10000" json:"sessionNotes,omitempty"`
	PresentingConcerns string     `gorm:"size:2000" json:"presentingConcerns,omitempty"`
	KeyObservations    string     `gorm:"size:2000" json:"keyObservations,omitempty"`
	InterventionsUsed  string     `gorm:"size:2000" json:"interventionsUsed,omitempty"`
	TreatmentPlan      string     `gorm:"size:2000" json:"treatmentPlan,omitempty"`
	Homework           string     `gorm:"size:1000" json:"homework,omitempty"`
	RiskAssessment     RiskLevel  `gorm:"size:10;default:'none'" json:"riskAssessment"`
	RiskNotes          string     `gorm:"size:1000" json:"riskNotes,omitempty"`
	NotesUpdatedAt     *time.Time `json:"notesUpdatedAt,omitempty"`

	// Relations
	Patient Patient  `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  Doctor   `gorm:"foreignKey:DoctorID" json:"-"`
	CheckIn *CheckIn `gorm:"foreignKey:CheckInID" json:"-"`
}

// SessionEnd returns the scheduled end of the session.
func (s *Session) SessionEnd() time.Time {
	return s.ScheduledDate.Add(time.Duration(s.Duration) * time.Minute)
}
