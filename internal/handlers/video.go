package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kennndev/mindflow/internal/config"
	"github.com/kennndev/mindflow/internal/middleware"
	"github.com/kennndev/mindflow/internal/models"
	"github.com/kennndev/mindflow/internal/scheduling"
	"github.com/kennndev/mindflow/internal/utils"
)

// VideoHandler mints short-lived room credentials for video sessions. Two
// independent gates apply: the link-expiry gate on the stored room link and
// the join window around the scheduled time.
type VideoHandler struct {
	Svc *scheduling.Service
	Cfg *config.Config
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(svc *scheduling.Service, cfg *config.Config) *VideoHandler {
	return &VideoHandler{Svc: svc, Cfg: cfg}
}

// Token returns a room credential for the session's video room. Only the
// involved patient or doctor may request one, only while the session's join
// window is open, and only while the stored link has not expired.
func (h *VideoHandler) Token(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)

	session, err := h.Svc.GetSession(c.Request.Context(), c.Param("id"), userID, role)
	if err != nil {
		respondSchedulingError(c, err, "Failed to load session")
		return
	}

	if session.Mode != models.ModeVideo || session.VideoRoomID == "" {
		utils.BadRequest(c, "This session has no video room")
		return
	}
	if !session.Status.IsActive() {
		utils.BadRequest(c, "This session is no longer active")
		return
	}

	now := h.Svc.Now()
	if session.LinkExpiresAt != nil && now.After(*session.LinkExpiresAt) {
		utils.Error(c, http.StatusGone, "The video link for this session has expired", "")
		return
	}

	window := scheduling.EvaluateJoinWindow(now, session.ScheduledDate, session.Duration)
	if !window.CanJoin() {
		utils.Forbidden(c, "The session cannot be joined at this time")
		return
	}

	ttl := time.Duration(h.Cfg.VideoTokenExpiryMinutes) * time.Minute
	token, expiresAt, err := utils.GenerateVideoToken(session.VideoRoomID, userID, h.Cfg.VideoTokenSecret, ttl)
	if err != nil {
		utils.InternalServerError(c, "Failed to mint video token", err)
		return
	}

	utils.Success(c, "Video token issued", gin.H{
		"roomId":    session.VideoRoomID,
		"token":     token,
		"expiresAt": expiresAt,
		"window":    window,
	})
}
