package models

import "time"

// Message is a single patient<->doctor message. ConversationID is derived
// from the two user ids (sorted, joined with "-") so both parties address
// the same thread without a registry lookup.
type Message struct {
	BaseModel
	SenderID       string `gorm:"size:36;index;not null" json:"senderId"`
	SenderRole     Role   `gorm:"size:20;not null" json:"senderRole"`
	RecipientID    string `gorm:"size:36;index;not null" json:"recipientId"`
	RecipientRole  Role   `gorm:"size:20;not null" json:"recipientRole"`
	ConversationID string `gorm:"size:80;index:idx_message_conversation;not null" json:"conversationId"`
	Content        string `gorm:"size:2000;not null" json:"content"`

	IsRead bool       `gorm:"default:false" json:"isRead"`
	ReadAt *time.Time `json:"readAt,omitempty"`

	// Relations
	Sender    User `gorm:"foreignKey:SenderID" json:"-"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"-"`
}
