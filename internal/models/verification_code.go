package models

import "time"

// VerificationCodeType enum
type VerificationCodeType string

const (
	CodeTypeLogin         VerificationCodeType = "login"
	CodeTypeVerifyEmail   VerificationCodeType = "verify-email"
	CodeTypePasswordReset VerificationCodeType = "password-reset"
)

// VerificationCode is a single-use, short-lived email code.
type VerificationCode struct {
	BaseModel
	Email     string               `gorm:"size:255;not null;index:idx_code_lookup" json:"email"`
	Code      string               `gorm:"size:10;not null;index:idx_code_lookup" json:"-"`
	Type      VerificationCodeType `gorm:"size:20;not null;index:idx_code_lookup" json:"type"`
	ExpiresAt time.Time            `gorm:"not null" json:"expiresAt"`
	Used      bool                 `gorm:"default:false" json:"used"`
}

// IsExpired reports whether the code can no longer be redeemed.
func (v *VerificationCode) IsExpired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}
