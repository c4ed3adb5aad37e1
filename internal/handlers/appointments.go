package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kennndev/mindflow/internal/middleware"
	"github.com/kennndev/mindflow/internal/models"
	"github.com/kennndev/mindflow/internal/scheduling"
	"github.com/kennndev/mindflow/internal/utils"
)

// AppointmentHandler exposes the session lifecycle over HTTP: booking,
// listing, cancellation, status updates and the doctor schedule.
type AppointmentHandler struct {
	Svc *scheduling.Service
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(svc *scheduling.Service) *AppointmentHandler {
	return &AppointmentHandler{Svc: svc}
}

// sessionView is a session plus its computed join window, so clients never
// reimplement the gating rule.
type sessionView struct {
	*models.Session
	JoinWindow scheduling.JoinWindow `json:"joinWindow"`
}

func (h *AppointmentHandler) view(s *models.Session) sessionView {
	return sessionView{
		Session:    s,
		JoinWindow: scheduling.EvaluateJoinWindow(h.Svc.Now(), s.ScheduledDate, s.Duration),
	}
}

func (h *AppointmentHandler) views(sessions []models.Session) []sessionView {
	out := make([]sessionView, len(sessions))
	for i := range sessions {
		out[i] = h.view(&sessions[i])
	}
	return out
}

// BookingRequest is the request body for booking a session.
type BookingRequest struct {
	DoctorID      string             `json:"doctorId" binding:"required"`
	ScheduledDate time.Time          `json:"scheduledDate" binding:"required"`
	Duration      int                `json:"duration" binding:"omitempty,min=15,max=240"`
	Type          models.SessionType `json:"type" binding:"omitempty,oneof=initial follow-up emergency group"`
	Mode          models.SessionMode `json:"mode" binding:"required,oneof=video in-person phone"`
	Notes         string             `json:"notes" binding:"omitempty,max=10000"`
}

// Create books a new session for the authenticated patient.
func (h *AppointmentHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req BookingRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if !req.ScheduledDate.After(h.Svc.Now()) {
		utils.BadRequest(c, "scheduledDate must be in the future")
		return
	}

	session, err := h.Svc.Book(c.Request.Context(), scheduling.BookingInput{
		PatientUserID: userID,
		DoctorID:      req.DoctorID,
		ScheduledDate: req.ScheduledDate,
		Duration:      req.Duration,
		Type:          req.Type,
		Mode:          req.Mode,
		Notes:         req.Notes,
	})
	if err != nil {
		respondSchedulingError(c, err, "Failed to book appointment")
		return
	}

	utils.Created(c, "Appointment booked", h.view(session))
}

// List returns the authenticated patient's sessions. Supports ?status= and
// ?upcoming=true filters.
func (h *AppointmentHandler) List(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	status := models.SessionStatus(c.Query("status"))
	upcoming := c.Query("upcoming") == "true"

	sessions, err := h.Svc.ListAppointments(c.Request.Context(), userID, status, upcoming)
	if err != nil {
		respondSchedulingError(c, err, "Failed to list appointments")
		return
	}

	utils.Success(c, "Appointments fetched", h.views(sessions))
}

// Get returns one session the caller is involved in.
func (h *AppointmentHandler) Get(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)

	session, err := h.Svc.GetSession(c.Request.Context(), c.Param("id"), userID, role)
	if err != nil {
		respondSchedulingError(c, err, "Failed to fetch appointment")
		return
	}

	utils.Success(c, "Appointment fetched", h.view(session))
}

// CancelRequest is the optional request body for cancelling a session.
type CancelRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

// Cancel cancels a session on behalf of the involved patient or doctor.
// Cancellation is a status transition; the record is kept.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)

	var req CancelRequest
	if c.Request.ContentLength > 0 && !utils.BindAndValidate(c, &req) {
		return
	}

	session, err := h.Svc.Cancel(c.Request.Context(), c.Param("id"), userID, role, req.Reason)
	if err != nil {
		respondSchedulingError(c, err, "Failed to cancel appointment")
		return
	}

	utils.Success(c, "Appointment cancelled", h.view(session))
}

// StatusUpdateRequest is the request body for a status transition.
type StatusUpdateRequest struct {
	Status models.SessionStatus `json:"status" binding:"required,oneof=confirmed in-progress completed no-show"`
}

// UpdateStatus advances a session's lifecycle status. Doctor-only; the
// cancelled status goes through Cancel instead.
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req StatusUpdateRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	session, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), userID, req.Status)
	if err != nil {
		respondSchedulingError(c, err, "Failed to update appointment status")
		return
	}

	utils.Success(c, "Appointment status updated", h.view(session))
}

// Schedule returns the authenticated doctor's active sessions. Supports
// ?date=2006-01-02 to limit to one calendar day.
func (h *AppointmentHandler) Schedule(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.BadRequest(c, "date must be formatted as YYYY-MM-DD")
			return
		}
		date = &parsed
	}

	sessions, err := h.Svc.DoctorSchedule(c.Request.Context(), userID, date)
	if err != nil {
		respondSchedulingError(c, err, "Failed to fetch schedule")
		return
	}

	utils.Success(c, "Schedule fetched", h.views(sessions))
}
