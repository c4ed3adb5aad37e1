package models

import "time"

// Gender enum
type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderNonBinary      Gender = "non-binary"
	GenderPreferNotToSay Gender = "prefer-not-to-say"
	GenderOther          Gender = "other"
)

// Patient is the clinical profile attached to a user account with the
// patient role. PatientID is the short human-readable identifier (P-1234).
type Patient struct {
	BaseModel
	UserID         string     `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	PatientID      string     `gorm:"size:20;uniqueIndex;not null" json:"patientId"`
	FirstName      string     `gorm:"size:100;not null" json:"firstName"`
	LastName       string     `gorm:"size:100;not null" json:"lastName"`
	DateOfBirth    time.Time  `json:"dateOfBirth"`
	Gender         Gender     `gorm:"size:20" json:"gender,omitempty"`
	PhoneNumber    string     `gorm:"size:30" json:"phoneNumber,omitempty"`
	AddressStreet  string     `gorm:"size:255" json:"addressStreet,omitempty"`
	AddressCity    string     `gorm:"size:100" json:"addressCity,omitempty"`
	AddressState   string     `gorm:"size:100" json:"addressState,omitempty"`
	AddressZipCode string     `gorm:"size:20" json:"addressZipCode,omitempty"`
	AddressCountry string     `gorm:"size:100" json:"addressCountry,omitempty"`

	EmergencyContactName         string `gorm:"size:100" json:"emergencyContactName,omitempty"`
	EmergencyContactRelationship string `gorm:"size:50" json:"emergencyContactRelationship,omitempty"`
	EmergencyContactPhone        string `gorm:"size:30" json:"emergencyContactPhone,omitempty"`

	PrimaryConditions string `gorm:"type:text" json:"primaryConditions,omitempty"` // comma-separated
	Allergies         string `gorm:"type:text" json:"allergies,omitempty"`         // comma-separated

	// First-booking-wins assignment; set by the booking flow when empty.
	AssignedDoctorID *string `gorm:"size:36;index" json:"assignedDoctorId,omitempty"`

	ProfileCompleted    bool `gorm:"default:false" json:"profileCompleted"`
	OnboardingCompleted bool `gorm:"default:false" json:"onboardingCompleted"`

	// Relations
	User           User    `gorm:"foreignKey:UserID" json:"-"`
	AssignedDoctor *Doctor `gorm:"foreignKey:AssignedDoctorID" json:"-"`
}

// FullName returns the patient's display name.
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}
