package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kennndev/mindflow/internal/middleware"
	"github.com/kennndev/mindflow/internal/models"
	"github.com/kennndev/mindflow/internal/utils"
)

// JournalHandler exposes patient journal and mood tracking.
type JournalHandler struct {
	DB *gorm.DB
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(db *gorm.DB) *JournalHandler {
	return &JournalHandler{DB: db}
}

func (h *JournalHandler) patientFor(c *gin.Context) (*models.Patient, bool) {
	userID, _ := middleware.GetUserIDFromContext(c)
	var patient models.Patient
	if err := h.DB.Where("user_id = ?", userID).First(&patient).Error; err != nil {
		utils.NotFound(c, "Patient profile not found")
		return nil, false
	}
	return &patient, true
}

// JournalEntryRequest is the request body for writing a journal entry.
type JournalEntryRequest struct {
	Mood      models.JournalMood `json:"mood" binding:"required,oneof=great good okay struggling difficult"`
	Content   string             `json:"content" binding:"required,max=5000"`
	Tags      []string           `json:"tags" binding:"omitempty,dive,max=50"`
	IsPrivate *bool              `json:"isPrivate" binding:"omitempty"`
}

// CreateEntry writes a journal entry for the authenticated patient. Entries
// are private unless explicitly shared.
func (h *JournalHandler) CreateEntry(c *gin.Context) {
	patient, ok := h.patientFor(c)
	if !ok {
		return
	}

	var req JournalEntryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	entry := models.JournalEntry{
		PatientID: patient.ID,
		UserID:    patient.UserID,
		Mood:      req.Mood,
		Content:   req.Content,
		Tags:      strings.Join(req.Tags, ","),
		IsPrivate: true,
	}
	if req.IsPrivate != nil {
		entry.IsPrivate = *req.IsPrivate
	}

	if err := h.DB.Create(&entry).Error; err != nil {
		utils.InternalServerError(c, "Failed to save journal entry", err)
		return
	}

	utils.Created(c, "Journal entry saved", entry)
}

// ListEntries returns the authenticated patient's journal, newest first.
func (h *JournalHandler) ListEntries(c *gin.Context) {
	patient, ok := h.patientFor(c)
	if !ok {
		return
	}

	var entries []models.JournalEntry
	err := h.DB.Where("patient_id = ?", patient.ID).
		Order("created_at desc").Find(&entries).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to list journal entries", err)
		return
	}

	utils.Success(c, "Journal entries fetched", entries)
}

// MoodEntryRequest is the request body for logging a mood.
type MoodEntryRequest struct {
	Mood       models.JournalMood `json:"mood" binding:"required,oneof=great good okay struggling difficult"`
	MoodScore  int                `json:"moodScore" binding:"required,min=1,max=10"`
	Note       string             `json:"note" binding:"omitempty,max=500"`
	Triggers   []string           `json:"triggers" binding:"omitempty,dive,max=50"`
	Activities []string           `json:"activities" binding:"omitempty,dive,max=50"`
}

// CreateMood logs a quick mood entry for the authenticated patient.
func (h *JournalHandler) CreateMood(c *gin.Context) {
	patient, ok := h.patientFor(c)
	if !ok {
		return
	}

	var req MoodEntryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	entry := models.MoodEntry{
		PatientID:  patient.ID,
		UserID:     patient.UserID,
		Mood:       req.Mood,
		MoodScore:  req.MoodScore,
		Note:       req.Note,
		Triggers:   strings.Join(req.Triggers, ","),
		Activities: strings.Join(req.Activities, ","),
	}

	if err := h.DB.Create(&entry).Error; err != nil {
		utils.InternalServerError(c, "Failed to save mood entry", err)
		return
	}

	utils.Created(c, "Mood entry saved", entry)
}

// ListMoods returns the authenticated patient's mood history, newest first.
func (h *JournalHandler) ListMoods(c *gin.Context) {
	patient, ok := h.patientFor(c)
	if !ok {
		return
	}

	var entries []models.MoodEntry
	err := h.DB.Where("patient_id = ?", patient.ID).
		Order("created_at desc").Find(&entries).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to list mood entries", err)
		return
	}

	utils.Success(c, "Mood entries fetched", entries)
}
