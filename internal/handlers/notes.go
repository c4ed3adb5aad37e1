package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/kennndev/mindflow/internal/middleware"
	"github.com/kennndev/mindflow/internal/models"
	"github.com/kennndev/mindflow/internal/scheduling"
	"github.com/kennndev/mindflow/internal/utils"
)

// NotesHandler exposes the clinical notes sub-resource of a session.
// Doctor-only; both endpoints verify ownership through the service.
type NotesHandler struct {
	Svc *scheduling.Service
}

// NewNotesHandler creates a new NotesHandler.
func NewNotesHandler(svc *scheduling.Service) *NotesHandler {
	return &NotesHandler{Svc: svc}
}

// Get returns a session's clinical notes.
func (h *NotesHandler) Get(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	notes, err := h.Svc.GetNotes(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondSchedulingError(c, err, "Failed to fetch session notes")
		return
	}

	utils.Success(c, "Session notes fetched", notes)
}

// NotesRequest is the partial-update body for clinical notes. Absent fields
// are left untouched; present fields overwrite, empty strings included.
type NotesRequest struct {
	SessionNotes       *string           `json:"sessionNotes" binding:"omitempty,max=10000"`
	PresentingConcerns *string           `json:"presentingConcerns" binding:"omitempty,max=2000"`
	KeyObservations    *string           `json:"keyObservations" binding:"omitempty,max=2000"`
	InterventionsUsed  *string           `json:"interventionsUsed" binding:"omitempty,max=2000"`
	TreatmentPlan      *string           `json:"treatmentPlan" binding:"omitempty,max=2000"`
	Homework           *string           `json:"homework" binding:"omitempty,max=1000"`
	RiskAssessment     *models.RiskLevel `json:"riskAssessment" binding:"omitempty,oneof=none low moderate high"`
	RiskNotes          *string           `json:"riskNotes" binding:"omitempty,max=1000"`
}

// Update applies a partial edit to a session's clinical notes. Notes stay
// editable at every lifecycle stage.
func (h *NotesHandler) Update(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req NotesRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	notes, err := h.Svc.UpdateNotes(c.Request.Context(), c.Param("id"), userID, scheduling.NotesUpdate{
		SessionNotes:       req.SessionNotes,
		PresentingConcerns: req.PresentingConcerns,
		KeyObservations:    req.KeyObservations,
		InterventionsUsed:  req.InterventionsUsed,
		TreatmentPlan:      req.TreatmentPlan,
		Homework:           req.Homework,
		RiskAssessment:     req.RiskAssessment,
		RiskNotes:          req.RiskNotes,
	})
	if err != nil {
		respondSchedulingError(c, err, "Failed to update session notes")
		return
	}

	utils.Success(c, "Session notes updated", notes)
}
