package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskdeck/internal/service"
)

// AuthHandler mantiene dependencias para endpoints de autenticación.
type AuthHandler struct {
	logger   *zap.Logger
	authServ *service.AuthService
	jwtServ  *service.JWTService
}

// NewAuthHandler crea una instancia de AuthHandler con dependencias necesarias.
func NewAuthHandler(logger *zap.Logger, authServ *service.AuthService, jwtServ *service.JWTService) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		authServ: authServ,
		jwtServ:  jwtServ,
	}
}

// codeValue acepta el código como string JSON o como número JSON.
type codeValue string

func (c *codeValue) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = codeValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = codeValue(n.String())
	return nil
}

// Login maneja POST /api/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields."})
		return
	}

	user, err := h.authServ.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields."})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "User not found."})
		case errors.Is(err, service.ErrInvalidPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid password."})
		default:
			h.logger.Error("login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not login."})
		}
		return
	}

	token, err := h.jwtServ.Generate(user)
	if err != nil {
		h.logger.Error("jwt issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not issue token."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Register maneja POST /api/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email     string  `json:"email"`
		Password  string  `json:"password"`
		FirstName string  `json:"firstName"`
		LastName  string  `json:"lastName"`
		Bio       *string `json:"bio"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid register request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields."})
		return
	}

	err := h.authServ.Register(c.Request.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields."})
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists."})
		case errors.Is(err, service.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests."})
		case errors.Is(err, service.ErrEmailSendFailure):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification email."})
		default:
			h.logger.Error("register failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not register user."})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully. Please verify your email."})
}

// VerifyEmail maneja POST /api/verify-email.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req struct {
		Email string    `json:"email"`
		Code  codeValue `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid verify request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verification code."})
		return
	}

	if err := h.authServ.VerifyEmail(c.Request.Context(), req.Email, string(req.Code)); err != nil {
		if errors.Is(err, service.ErrInvalidCode) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verification code."})
			return
		}
		h.logger.Error("verify email failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not verify email."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully."})
}

// ForgotPassword maneja POST /api/forgot-password.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid forgot password request", zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
		return
	}

	if err := h.authServ.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
		case errors.Is(err, service.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests."})
		case errors.Is(err, service.ErrEmailSendFailure):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification email."})
		default:
			h.logger.Error("forgot password failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not send reset code."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset code sent."})
}

// ChangePassword maneja POST /api/change-password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req struct {
		Email       string    `json:"email"`
		Code        codeValue `json:"code"`
		NewPassword string    `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid change password request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verification code."})
		return
	}

	err := h.authServ.ChangePassword(c.Request.Context(), req.Email, string(req.Code), req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields."})
		case errors.Is(err, service.ErrInvalidCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verification code."})
		default:
			h.logger.Error("change password failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not change password."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully."})
}
