package models

import "time"

// Doctor is the professional profile attached to a user account with the
// doctor role. DoctorID is the short human-readable identifier (D-1234).
// Doctors must be approved by an admin before they can be booked.
type Doctor struct {
	BaseModel
	UserID            string     `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	DoctorID          string     `gorm:"size:20;uniqueIndex;not null" json:"doctorId"`
	FirstName         string     `gorm:"size:100;not null" json:"firstName"`
	LastName          string     `gorm:"size:100;not null" json:"lastName"`
	Title             string     `gorm:"size:10;default:'Dr.'" json:"title"`
	Specialty         string     `gorm:"size:100;not null" json:"specialty"`
	SubSpecialties    string     `gorm:"type:text" json:"subSpecialties,omitempty"` // comma-separated
	LicenseNumber     string     `gorm:"size:50;uniqueIndex;not null" json:"licenseNumber"`
	LicenseState      string     `gorm:"size:50" json:"licenseState,omitempty"`
	PhoneNumber       string     `gorm:"size:30" json:"phoneNumber,omitempty"`
	Bio               string     `gorm:"size:1000" json:"bio,omitempty"`
	YearsOfExperience int        `json:"yearsOfExperience,omitempty"`
	WorkingHours      string     `gorm:"type:text" json:"workingHours,omitempty"` // JSON blob, per-weekday start/end
	IsApproved        bool       `gorm:"default:false" json:"isApproved"`
	ApprovedByID      *string    `gorm:"size:36" json:"approvedBy,omitempty"`
	ApprovedAt        *time.Time `json:"approvedAt,omitempty"`
	ProfileCompleted  bool       `gorm:"default:false" json:"profileCompleted"`

	// Relations
	User       User  `gorm:"foreignKey:UserID" json:"-"`
	ApprovedBy *User `gorm:"foreignKey:ApprovedByID" json:"-"`
}

// FullName returns the doctor's display name including title.
func (d *Doctor) FullName() string {
	return d.Title + " " + d.FirstName + " " + d.LastName
}
