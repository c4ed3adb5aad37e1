package models

import "time"

// PrimaryConcern enum for pre-session check-ins.
type PrimaryConcern string

const (
	ConcernAnxiety       PrimaryConcern = "Anxiety"
	ConcernDepression    PrimaryConcern = "Depression"
	ConcernStress        PrimaryConcern = "Stress"
	ConcernWorkSchool    PrimaryConcern = "Work/School"
	ConcernRelationships PrimaryConcern = "Relationships"
	ConcernSleep         PrimaryConcern = "Sleep"
	ConcernOther         PrimaryConcern = "Other"
)

// CheckIn is a patient-submitted wellness snapshot, optionally attached to
// one session at creation time.
type CheckIn struct {
	BaseModel
	PatientID string  `gorm:"size:36;index:idx_checkin_patient;not null" json:"patientId"`
	SessionID *string `gorm:"size:36;index" json:"sessionId,omitempty"`

	Mood             int            `gorm:"not null" json:"mood"` // 1-10
	PrimaryConcern   PrimaryConcern `gorm:"size:20;not null" json:"primaryConcern"`
	Severity         int            `gorm:"not null" json:"severity"`              // 1-5
	SpecificConcerns string         `gorm:"type:text" json:"specificConcerns,omitempty"` // comma-separated
	Note             string         `gorm:"size:1000" json:"note,omitempty"`
	SleepQuality     int            `json:"sleepQuality,omitempty"` // 1-10
	EnergyLevel      int            `json:"energyLevel,omitempty"`  // 1-10
	StressLevel      int            `json:"stressLevel,omitempty"`  // 1-10

	ReviewedByDoctor bool       `gorm:"default:false" json:"reviewedByDoctor"`
	ReviewedAt       *time.Time `json:"reviewedAt,omitempty"`

	// Relations
	Patient Patient  `gorm:"foreignKey:PatientID" json:"-"`
	Session *Session `gorm:"foreignKey:SessionID" json:"-"`
}
