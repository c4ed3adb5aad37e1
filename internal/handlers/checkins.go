package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kennndev/mindflow/internal/middleware"
	"github.com/kennndev/mindflow/internal/models"
	"github.com/kennndev/mindflow/internal/scheduling"
	"github.com/kennndev/mindflow/internal/utils"
)

// CheckInHandler exposes pre-session wellness check-ins.
type CheckInHandler struct {
	Svc *scheduling.Service
}

// NewCheckInHandler creates a new CheckInHandler.
func NewCheckInHandler(svc *scheduling.Service) *CheckInHandler {
	return &CheckInHandler{Svc: svc}
}

// CheckInRequest is the request body for submitting a check-in.
type CheckInRequest struct {
	SessionID        *string               `json:"sessionId" binding:"omitempty"`
	Mood             int                   `json:"mood" binding:"required,min=1,max=10"`
	PrimaryConcern   models.PrimaryConcern `json:"primaryConcern" binding:"required,oneof=Anxiety Depression Stress Work/School Relationships Sleep Other"`
	Severity         int                   `json:"severity" binding:"required,min=1,max=5"`
	SpecificConcerns []string              `json:"specificConcerns" binding:"omitempty,dive,max=100"`
	Note             string                `json:"note" binding:"omitempty,max=1000"`
	SleepQuality     int                   `json:"sleepQuality" binding:"omitempty,min=1,max=10"`
	EnergyLevel      int                   `json:"energyLevel" binding:"omitempty,min=1,max=10"`
	StressLevel      int                   `json:"stressLevel" binding:"omitempty,min=1,max=10"`
}

// Create records a check-in for the authenticated patient. When sessionId is
// supplied, the check-in is linked to that session.
func (h *CheckInHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req CheckInRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	checkIn, err := h.Svc.SubmitCheckIn(c.Request.Context(), scheduling.CheckInInput{
		PatientUserID:    userID,
		SessionID:        req.SessionID,
		Mood:             req.Mood,
		PrimaryConcern:   req.PrimaryConcern,
		Severity:         req.Severity,
		SpecificConcerns: strings.Join(req.SpecificConcerns, ","),
		Note:             req.Note,
		SleepQuality:     req.SleepQuality,
		EnergyLevel:      req.EnergyLevel,
		StressLevel:      req.StressLevel,
	})
	if err != nil {
		respondSchedulingError(c, err, "Failed to submit check-in")
		return
	}

	utils.Created(c, "Check-in submitted", checkIn)
}

// List returns the authenticated patient's check-ins, optionally limited to
// one session via ?sessionId=.
func (h *CheckInHandler) List(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var sessionID *string
	if raw := c.Query("sessionId"); raw != "" {
		sessionID = &raw
	}

	checkIns, err := h.Svc.ListCheckIns(c.Request.Context(), userID, sessionID)
	if err != nil {
		respondSchedulingError(c, err, "Failed to list check-ins")
		return
	}

	utils.Success(c, "Check-ins fetched", checkIns)
}
