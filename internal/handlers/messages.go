package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kennndev/mindflow/internal/middleware"
	"github.com/kennndev/mindflow/internal/models"
	"github.com/kennndev/mindflow/internal/scheduling"
	"github.com/kennndev/mindflow/internal/utils"
)

// MessageHandler exposes secure patient<->doctor messaging. Threads are
// addressed by the conversation id derived from the two user ids, so no
// conversation rows exist.
type MessageHandler struct {
	DB *gorm.DB
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(db *gorm.DB) *MessageHandler {
	return &MessageHandler{DB: db}
}

// SendMessageRequest is the request body for sending a message.
type SendMessageRequest struct {
	RecipientID string `json:"recipientId" binding:"required"`
	Content     string `json:"content" binding:"required,max=2000"`
}

// Send delivers a message to another user. Only patient<->doctor pairs may
// message each other.
func (h *MessageHandler) Send(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)

	var req SendMessageRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if req.RecipientID == userID {
		utils.BadRequest(c, "Cannot send a message to yourself")
		return
	}

	var recipient models.User
	if err := h.DB.First(&recipient, "id = ?", req.RecipientID).Error; err != nil {
		utils.NotFound(c, "Recipient not found")
		return
	}
	if (role == models.RolePatient && recipient.Role != models.RoleDoctor) ||
		(role == models.RoleDoctor && recipient.Role != models.RolePatient) {
		utils.Forbidden(c, "Messaging is only available between patients and doctors")
		return
	}

	message := models.Message{
		SenderID:       userID,
		SenderRole:     role,
		RecipientID:    recipient.ID,
		RecipientRole:  recipient.Role,
		ConversationID: scheduling.ConversationID(userID, recipient.ID),
		Content:        req.Content,
	}
	if err := h.DB.Create(&message).Error; err != nil {
		utils.InternalServerError(c, "Failed to send message", err)
		return
	}

	utils.Created(c, "Message sent", message)
}

// Conversation returns the message thread between the authenticated user and
// the user in the path, oldest first.
func (h *MessageHandler) Conversation(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	otherID := c.Param("userId")

	conversationID := scheduling.ConversationID(userID, otherID)

	var messages []models.Message
	err := h.DB.Where("conversation_id = ?", conversationID).
		Order("created_at asc").Find(&messages).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch conversation", err)
		return
	}

	utils.Success(c, "Conversation fetched", gin.H{
		"conversationId": conversationID,
		"messages":       messages,
	})
}

// MarkRead marks every unread message addressed to the authenticated user in
// the given conversation as read.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	otherID := c.Param("userId")

	conversationID := scheduling.ConversationID(userID, otherID)
	now := time.Now()

	result := h.DB.Model(&models.Message{}).
		Where("conversation_id = ? AND recipient_id = ? AND is_read = ?", conversationID, userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now})
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to mark messages read", result.Error)
		return
	}

	utils.Success(c, "Messages marked read", gin.H{"updated": result.RowsAffected})
}

// UnreadCount returns how many unread messages the authenticated user has.
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var count int64
	err := h.DB.Model(&models.Message{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to count unread messages", err)
		return
	}

	utils.Success(c, "Unread count fetched", gin.H{"unread": count})
}
