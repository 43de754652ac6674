package handler

import (
	"net/http"

	"github.com/coverpoint/clubhouse/internal/apperrors"
	"github.com/coverpoint/clubhouse/internal/service"
	"github.com/coverpoint/clubhouse/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService  *service.AuthService
	isProduction bool
}

func NewAuthHandler(authService *service.AuthService, isProduction bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		isProduction: isProduction,
	}
}

type RegisterRequest struct {
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Email        string `json:"email"`
	Password     string `json:"password" binding:"required"`
	Category     string `json:"category"`
	Specialties  string `json:"specialties"`
	BattingStyle string `json:"batting_style"`
	BowlingStyle string `json:"bowling_style"`
	Age          int    `json:"age"`
}

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type VerifyCodeRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// Register creates a pending account.
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Registration request parsing failed",
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	logger.Log.Info("Registration attempt",
		zap.String("phone", req.Phone),
		zap.String("ip", c.ClientIP()),
	)

	account, err := h.authService.Register(service.RegisterInput{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Password:     req.Password,
		Category:     req.Category,
		Specialties:  req.Specialties,
		BattingStyle: req.BattingStyle,
		BowlingStyle: req.BowlingStyle,
		Age:          req.Age,
	})
	if err != nil {
		status, message := apperrors.HTTPStatus(err)
		c.JSON(status, gin.H{"message": message})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration submitted, awaiting approval",
		"account": account,
	})
}

// Login issues the session token as an HTTP-only cookie and in the body.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Login request parsing failed",
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	account, token, err := h.authService.Login(req.Phone, req.Password)
	if err != nil {
		status, message := apperrors.HTTPStatus(err)
		c.JSON(status, gin.H{"message": message})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		"token",
		token,
		24*60*60, // maxAge (1 day in seconds)
		"/",
		"",             // domain (empty = current domain)
		h.isProduction, // secure (HTTPS-only in production)
		true,           // httpOnly
	)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"account": gin.H{
			"id":       account.ID,
			"username": account.Username,
			"phone":    account.Phone,
			"role":     account.Role,
		},
	})
}

// ForgotPassword starts the two-phase reset: generate, store and mail a code.
// POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil {
		status, message := apperrors.HTTPStatus(err)
		c.JSON(status, gin.H{"message": message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent to your email"})
}

// VerifyCode checks a reset code without consuming it.
// POST /api/auth/verify-code
func (h *AuthHandler) VerifyCode(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if err := h.authService.VerifyCode(req.Email, req.Code); err != nil {
		status, message := apperrors.HTTPStatus(err)
		c.JSON(status, gin.H{"message": message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Code verified"})
}

// ResetPassword commits the reset and consumes the code.
// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if err := h.authService.ResetPassword(req.Email, req.Code, req.NewPassword); err != nil {
		status, message := apperrors.HTTPStatus(err)
		c.JSON(status, gin.H{"message": message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
