package handlers

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kennndev/mindflow/internal/middleware"
	"github.com/kennndev/mindflow/internal/models"
	"github.com/kennndev/mindflow/internal/utils"
)

// ProfileHandler manages patient and doctor profile completion.
type ProfileHandler struct {
	DB *gorm.DB
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{DB: db}
}

// generateShortID produces the human-readable profile id (P-1234, D-1234),
// retrying on collision.
func generateShortID(db *gorm.DB, prefix, column string, model interface{}) (string, error) {
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("%s-%04d", prefix, 1000+rand.IntN(9000))
		var count int64
		if err := db.Model(model).Where(column+" = ?", id).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return id, nil
		}
	}
	return "", errors.New("could not allocate a unique profile id")
}

// PatientProfileRequest is the request body for completing a patient profile.
type PatientProfileRequest struct {
	FirstName   string        `json:"firstName" binding:"required,max=100"`
	LastName    string        `json:"lastName" binding:"required,max=100"`
	DateOfBirth time.Time     `json:"dateOfBirth" binding:"required"`
	Gender      models.Gender `json:"gender" binding:"omitempty,oneof=male female non-binary prefer-not-to-say other"`
	PhoneNumber string        `json:"phoneNumber" binding:"omitempty,max=30"`

	AddressStreet  string `json:"addressStreet" binding:"omitempty,max=255"`
	AddressCity    string `json:"addressCity" binding:"omitempty,max=100"`
	AddressState   string `json:"addressState" binding:"omitempty,max=100"`
	AddressZipCode string `json:"addressZipCode" binding:"omitempty,max=20"`
	AddressCountry string `json:"addressCountry" binding:"omitempty,max=100"`

	EmergencyContactName         string `json:"emergencyContactName" binding:"omitempty,max=100"`
	EmergencyContactRelationship string `json:"emergencyContactRelationship" binding:"omitempty,max=50"`
	EmergencyContactPhone        string `json:"emergencyContactPhone" binding:"omitempty,max=30"`

	PrimaryConditions []string `json:"primaryConditions" binding:"omitempty,dive,max=100"`
	Allergies         []string `json:"allergies" binding:"omitempty,dive,max=100"`
}

// CompletePatientProfile creates or updates the authenticated patient's
// profile and marks it completed.
func (h *ProfileHandler) CompletePatientProfile(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req PatientProfileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var patient models.Patient
	err := h.DB.Where("user_id = ?", userID).First(&patient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		patientID, idErr := generateShortID(h.DB, "P", "patient_id", &models.Patient{})
		if idErr != nil {
			utils.InternalServerError(c, "Failed to create profile", idErr)
			return
		}
		patient = models.Patient{UserID: userID, PatientID: patientID}
	} else if err != nil {
		utils.InternalServerError(c, "Failed to load profile", err)
		return
	}

	patient.FirstName = req.FirstName
	patient.LastName = req.LastName
	patient.DateOfBirth = req.DateOfBirth
	patient.Gender = req.Gender
	patient.PhoneNumber = req.PhoneNumber
	patient.AddressStreet = req.AddressStreet
	patient.AddressCity = req.AddressCity
	patient.AddressState = req.AddressState
	patient.AddressZipCode = req.AddressZipCode
	patient.AddressCountry = req.AddressCountry
	patient.EmergencyContactName = req.EmergencyContactName
	patient.EmergencyContactRelationship = req.EmergencyContactRelationship
	patient.EmergencyContactPhone = req.EmergencyContactPhone
	patient.PrimaryConditions = strings.Join(req.PrimaryConditions, ",")
	patient.Allergies = strings.Join(req.Allergies, ",")
	patient.ProfileCompleted = true

	if err := h.DB.Save(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to save profile", err)
		return
	}

	utils.Success(c, "Patient profile saved", patient)
}

// DoctorProfileRequest is the request body for completing a doctor profile.
type DoctorProfileRequest struct {
	FirstName         string   `json:"firstName" binding:"required,max=100"`
	LastName          string   `json:"lastName" binding:"required,max=100"`
	Title             string   `json:"title" binding:"omitempty,max=10"`
	Specialty         string   `json:"specialty" binding:"required,max=100"`
	SubSpecialties    []string `json:"subSpecialties" binding:"omitempty,dive,max=100"`
	LicenseNumber     string   `json:"licenseNumber" binding:"required,max=50"`
	LicenseState      string   `json:"licenseState" binding:"omitempty,max=50"`
	PhoneNumber       string   `json:"phoneNumber" binding:"omitempty,max=30"`
	Bio               string   `json:"bio" binding:"omitempty,max=1000"`
	YearsOfExperience int      `json:"yearsOfExperience" binding:"omitempty,min=0,max=80"`
	WorkingHours      string   `json:"workingHours" binding:"omitempty,max=2000"`
}

// CompleteDoctorProfile creates or updates the authenticated doctor's
// profile. New profiles start unapproved; an admin approves them before
// they appear in the directory.
func (h *ProfileHandler) CompleteDoctorProfile(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req DoctorProfileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var doctor models.Doctor
	err := h.DB.Where("user_id = ?", userID).First(&doctor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		doctorID, idErr := generateShortID(h.DB, "D", "doctor_id", &models.Doctor{})
		if idErr != nil {
			utils.InternalServerError(c, "Failed to create profile", idErr)
			return
		}
		doctor = models.Doctor{UserID: userID, DoctorID: doctorID}
	} else if err != nil {
		utils.InternalServerError(c, "Failed to load profile", err)
		return
	}

	doctor.FirstName = req.FirstName
	doctor.LastName = req.LastName
	if req.Title != "" {
		doctor.Title = req.Title
	}
	doctor.Specialty = req.Specialty
	doctor.SubSpecialties = strings.Join(req.SubSpecialties, ",")
	doctor.LicenseNumber = req.LicenseNumber
	doctor.LicenseState = req.LicenseState
	doctor.PhoneNumber = req.PhoneNumber
	doctor.Bio = req.Bio
	doctor.YearsOfExperience = req.YearsOfExperience
	doctor.WorkingHours = req.WorkingHours
	doctor.ProfileCompleted = true

	if err := h.DB.Save(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to save profile", err)
		return
	}

	utils.Success(c, "Doctor profile saved", doctor)
}

// GetMyProfile returns the role-specific profile for the authenticated user.
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)

	switch role {
	case models.RolePatient:
		var patient models.Patient
		if err := h.DB.Where("user_id = ?", userID).First(&patient).Error; err != nil {
			utils.NotFound(c, "Patient profile not found")
			return
		}
		utils.Success(c, "Profile fetched", patient)
	case models.RoleDoctor:
		var doctor models.Doctor
		if err := h.DB.Where("user_id = ?", userID).First(&doctor).Error; err != nil {
			utils.NotFound(c, "Doctor profile not found")
			return
		}
		utils.Success(c, "Profile fetched", doctor)
	default:
		utils.NotFound(c, "No profile for this role")
	}
}
