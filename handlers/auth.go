package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"innroutes/config"
	"innroutes/models"
	"innroutes/services/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes the OTP login flow.
type AuthHandler struct {
	Svc auth.AuthService
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
var digitsOnly = regexp.MustCompile(`\D`)

// normalizeContact validates the contact for the chosen channel.
// Emails are lowercased; phones are stripped to digits, must carry at
// least 10 of them, and get the default country prefix when bare.
func normalizeContact(contact string, method models.ContactMethod) (string, error) {
	contact = strings.TrimSpace(contact)
	switch method {
	case models.MethodEmail:
		contact = strings.ToLower(contact)
		if !emailPattern.MatchString(contact) {
			return "", errors.New("please enter a valid email address")
		}
		return contact, nil
	case models.MethodPhone:
		hadPrefix := strings.HasPrefix(contact, "+")
		digits := digitsOnly.ReplaceAllString(contact, "")
		if len(digits) < 10 {
			return "", errors.New("please enter a valid phone number")
		}
		if hadPrefix {
			return "+" + digits, nil
		}
		return config.AppConfig.DefaultPhonePrefix + digits, nil
	default:
		return "", errors.New("unsupported login method")
	}
}

// authErrorStatus maps auth service errors onto HTTP responses.
func authErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrInvalidCode):
		return http.StatusUnauthorized, "That code didn't work. Please check and try again."
	case errors.Is(err, auth.ErrCodeExpired):
		return http.StatusUnauthorized, "That code has expired. Please request a new one."
	case errors.Is(err, auth.ErrSessionExpired):
		return http.StatusUnauthorized, "Your login session has expired. Please request a new code."
	case errors.Is(err, auth.ErrSessionMismatch):
		return http.StatusUnauthorized, "This code was requested for a different contact. Please request a new one."
	case errors.Is(err, auth.ErrNetwork):
		return http.StatusServiceUnavailable, "Could not reach the login service. Please try again."
	case errors.Is(err, auth.ErrDelivery):
		return http.StatusBadGateway, "We couldn't send your code. Please try again."
	default:
		return http.StatusInternalServerError, "Something went wrong. Please try again."
	}
}

// InitiateLoginHandler handles POST /api/auth/login.
func (h *AuthHandler) InitiateLoginHandler(c *gin.Context) {
	logger := getLogger(c)
	var req models.InitiateLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact, err := normalizeContact(req.Contact, req.Method)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Svc.InitiateLogin(c.Request.Context(), req.DeviceID, contact, req.Method, req.FCMToken); err != nil {
		logger.Warn("initiate login failed", zap.String("method", string(req.Method)), zap.Error(err))
		status, msg := authErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent", "contact": contact})
}

// VerifyLoginHandler handles POST /api/auth/verify.
func (h *AuthHandler) VerifyLoginHandler(c *gin.Context) {
	logger := getLogger(c)
	var req models.VerifyLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact, err := normalizeContact(req.Contact, req.Method)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.Svc.VerifyLogin(c.Request.Context(), req.DeviceID, contact, req.Code, req.Method)
	if err != nil {
		logger.Warn("verify login failed", zap.String("method", string(req.Method)), zap.Error(err))
		status, msg := authErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LogoutHandler handles POST /api/auth/logout. Requires authentication.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	userID := c.GetString("userID")
	deviceID := c.GetString("deviceID")
	if err := h.Svc.Logout(c.Request.Context(), userID, deviceID); err != nil {
		getLogger(c).Warn("logout failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
