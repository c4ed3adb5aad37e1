package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kennndev/mindflow/internal/middleware"
	"github.com/kennndev/mindflow/internal/models"
	"github.com/kennndev/mindflow/internal/utils"
)

// UserHandler exposes the doctor directory, doctor selection and the admin
// approval flow.
type UserHandler struct {
	DB *gorm.DB
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// ListDoctors returns the approved doctor directory, optionally filtered by
// specialty.
func (h *UserHandler) ListDoctors(c *gin.Context) {
	query := h.DB.Where("is_approved = ?", true)
	if specialty := c.Query("specialty"); specialty != "" {
		query = query.Where("specialty = ?", specialty)
	}

	var doctors []models.Doctor
	if err := query.Order("last_name asc").Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to list doctors", err)
		return
	}

	utils.Success(c, "Doctors fetched", doctors)
}

// GetDoctor returns one approved doctor by profile id.
func (h *UserHandler) GetDoctor(c *gin.Context) {
	var doctor models.Doctor
	err := h.DB.Where("id = ? AND is_approved = ?", c.Param("id"), true).First(&doctor).Error
	if err != nil {
		utils.NotFound(c, "Doctor not found")
		return
	}
	utils.Success(c, "Doctor fetched", doctor)
}

// SelectDoctorRequest is the request body for choosing a doctor.
type SelectDoctorRequest struct {
	DoctorID string `json:"doctorId" binding:"required"`
}

// SelectDoctor lets a patient explicitly choose their assigned doctor. The
// booking flow also assigns one on the first booking when none is set; this
// endpoint overrides either way.
func (h *UserHandler) SelectDoctor(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req SelectDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var doctor models.Doctor
	err := h.DB.Where("id = ? AND is_approved = ?", req.DoctorID, true).First(&doctor).Error
	if err != nil {
		utils.NotFound(c, "Doctor not found")
		return
	}

	var patient models.Patient
	if err := h.DB.Where("user_id = ?", userID).First(&patient).Error; err != nil {
		utils.NotFound(c, "Patient profile not found")
		return
	}

	patient.AssignedDoctorID = &doctor.ID
	if err := h.DB.Save(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to select doctor", err)
		return
	}

	utils.Success(c, "Doctor selected", patient)
}

// MyPatients returns the patients assigned to the authenticated doctor.
func (h *UserHandler) MyPatients(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var doctor models.Doctor
	if err := h.DB.Where("user_id = ?", userID).First(&doctor).Error; err != nil {
		utils.NotFound(c, "Doctor profile not found")
		return
	}

	var patients []models.Patient
	err := h.DB.Where("assigned_doctor_id = ?", doctor.ID).
		Order("last_name asc").Find(&patients).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to list patients", err)
		return
	}

	utils.Success(c, "Patients fetched", patients)
}

// ListPendingDoctors returns doctors awaiting admin approval.
func (h *UserHandler) ListPendingDoctors(c *gin.Context) {
	var doctors []models.Doctor
	err := h.DB.Where("is_approved = ? AND profile_completed = ?", false, true).
		Order("created_at asc").Find(&doctors).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to list pending doctors", err)
		return
	}
	utils.Success(c, "Pending doctors fetched", doctors)
}

// ApproveDoctor marks a doctor approved so they can be booked.
func (h *UserHandler) ApproveDoctor(c *gin.Context) {
	adminID, _ := middleware.GetUserIDFromContext(c)

	var doctor models.Doctor
	err := h.DB.First(&doctor, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Failed to approve doctor", err)
		}
		return
	}
	if doctor.IsApproved {
		utils.BadRequest(c, "Doctor is already approved")
		return
	}

	now := time.Now()
	doctor.IsApproved = true
	doctor.ApprovedByID = &adminID
	doctor.ApprovedAt = &now
	if err := h.DB.Save(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to approve doctor", err)
		return
	}

	utils.Success(c, "Doctor approved", doctor)
}
