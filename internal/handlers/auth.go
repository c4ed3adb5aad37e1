package handlers

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kennndev/mindflow/internal/config"
	"github.com/kennndev/mindflow/internal/mailer"
	"github.com/kennndev/mindflow/internal/middleware"
	"github.com/kennndev/mindflow/internal/models"
	"github.com/kennndev/mindflow/internal/utils"
)

// AuthHandler handles registration, login and email-code verification.
type AuthHandler struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Mailer mailer.Mailer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config, m mailer.Mailer) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg, Mailer: m}
}

func generateCode() string {
	return fmt.Sprintf("%06d", 100000+rand.IntN(900000))
}

// RegisterRequest represents the request body for creating an account.
type RegisterRequest struct {
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=6"`
	Role     models.Role `json:"role" binding:"required,oneof=patient doctor"`
}

// Register creates a new unverified account and emails a verification code.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var existing models.User
	err := h.DB.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		utils.BadRequest(c, "An account with this email already exists")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InternalServerError(c, "Failed to register", err)
		return
	}

	user := models.User{
		Email: req.Email,
		Role:  req.Role,
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to register", err)
		return
	}

	if err := h.DB.Create(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to register", err)
		return
	}

	if err := h.issueCode(user.Email, models.CodeTypeVerifyEmail); err != nil {
		utils.InternalServerError(c, "Failed to send verification code", err)
		return
	}

	utils.Created(c, "Account created, verification code sent", user.Sanitize())
}

// LoginRequest represents the request body for password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates with email and password and returns token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}
	if !user.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}
	if !user.IsActive {
		utils.Forbidden(c, "This account has been deactivated")
		return
	}

	now := time.Now()
	user.LastLogin = &now
	if err := h.DB.Save(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to log in", err)
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to log in", err)
		return
	}

	utils.Success(c, "Logged in successfully", gin.H{
		"user":         user.Sanitize(),
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// RequestCodeRequest represents the request body for an email code.
type RequestCodeRequest struct {
	Email string                      `json:"email" binding:"required,email"`
	Type  models.VerificationCodeType `json:"type" binding:"required,oneof=login verify-email password-reset"`
}

// RequestCode generates and sends a fresh verification code. Also serves
// resends; previous unused codes for the same purpose are invalidated.
func (h *AuthHandler) RequestCode(c *gin.Context) {
	var req RequestCodeRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "No account found for this email")
		} else {
			utils.InternalServerError(c, "Failed to request code", err)
		}
		return
	}

	if err := h.DB.Model(&models.VerificationCode{}).
		Where("email = ? AND type = ? AND used = ?", req.Email, req.Type, false).
		Update("used", true).Error; err != nil {
		utils.InternalServerError(c, "Failed to request code", err)
		return
	}

	if err := h.issueCode(req.Email, req.Type); err != nil {
		utils.InternalServerError(c, "Failed to send code", err)
		return
	}

	utils.Success(c, "Verification code sent", nil)
}

func (h *AuthHandler) issueCode(email string, codeType models.VerificationCodeType) error {
	code := models.VerificationCode{
		Email:     email,
		Code:      generateCode(),
		Type:      codeType,
		ExpiresAt: time.Now().Add(time.Duration(h.Cfg.VerificationCodeExpiry) * time.Minute),
	}
	if err := h.DB.Create(&code).Error; err != nil {
		return err
	}
	return h.Mailer.SendVerificationCode(email, code.Code)
}

// VerifyCodeRequest represents the request body for redeeming a code.
type VerifyCodeRequest struct {
	Email string                      `json:"email" binding:"required,email"`
	Code  string                      `json:"code" binding:"required,len=6"`
	Type  models.VerificationCodeType `json:"type" binding:"required,oneof=login verify-email password-reset"`
}

// VerifyCode redeems a single-use code. Login codes return a token pair;
// verify-email codes mark the account verified.
func (h *AuthHandler) VerifyCode(c *gin.Context) {
	var req VerifyCodeRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var code models.VerificationCode
	err := h.DB.Where("email = ? AND code = ? AND type = ? AND used = ?",
		req.Email, req.Code, req.Type, false).First(&code).Error
	if err != nil {
		utils.BadRequest(c, "Invalid verification code")
		return
	}
	if code.IsExpired(time.Now()) {
		utils.BadRequest(c, "Verification code has expired")
		return
	}

	code.Used = true
	if err := h.DB.Save(&code).Error; err != nil {
		utils.InternalServerError(c, "Failed to verify code", err)
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.NotFound(c, "No account found for this email")
		return
	}

	switch req.Type {
	case models.CodeTypeVerifyEmail:
		user.IsVerified = true
		if err := h.DB.Save(&user).Error; err != nil {
			utils.InternalServerError(c, "Failed to verify account", err)
			return
		}
		utils.Success(c, "Email verified", user.Sanitize())
	case models.CodeTypeLogin:
		accessToken, refreshToken, err := utils.GenerateTokens(&user, h.Cfg)
		if err != nil {
			utils.InternalServerError(c, "Failed to log in", err)
			return
		}
		utils.Success(c, "Logged in successfully", gin.H{
			"user":         user.Sanitize(),
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		})
	default:
		utils.Success(c, "Code verified", nil)
	}
}

// RefreshTokenRequest represents the request body for refreshing tokens.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshToken exchanges a valid refresh token for a new token pair.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	claims, err := utils.ValidateToken(req.RefreshToken, h.Cfg.JWTRefreshSecret)
	if err != nil {
		utils.Unauthorized(c, "Invalid or expired refresh token")
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
		utils.Unauthorized(c, "Account no longer exists")
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to refresh tokens", err)
		return
	}

	utils.Success(c, "Tokens refreshed", gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// GetProfile returns the authenticated account.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.NotFound(c, "Account not found")
		return
	}

	utils.Success(c, "Profile fetched", user.Sanitize())
}

// Logout acknowledges logout. Tokens are stateless; clients drop them.
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.Success(c, "Logged out successfully", nil)
}
