package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/heriaond/healthy-lifestyle-tips/internal/service"
	"github.com/heriaond/healthy-lifestyle-tips/pkg/logger"
	"github.com/heriaond/healthy-lifestyle-tips/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthService is the slice of the auth service the handler needs.
type AuthService interface {
	SendCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) (*service.VerifyResult, error)
}

// AuthHandler serves /api/auth.
type AuthHandler struct {
	auth AuthService
}

func NewAuthHandler(auth AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// SendOTP handles POST /api/auth/send-otp: it issues a one-time code
// for the email and dispatches it out-of-band.
func (h *AuthHandler) SendOTP(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		prometheus.RecordAPIError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if err := h.auth.SendCode(c.Request().Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrValidation) {
			prometheus.RecordOTP("send", "invalid")
		} else {
			prometheus.RecordOTP("send", "error")
		}
		return respondError(c, err)
	}

	prometheus.RecordOTP("send", "ok")
	log.Info("Verification code sent", zap.String("email", req.Email))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// VerifyOTP handles POST /api/auth/verify-otp: it consumes a one-time
// code and signs the user in, returning a session token.
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		prometheus.RecordAPIError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	result, err := h.auth.VerifyCode(c.Request().Context(), req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCode):
			prometheus.RecordOTP("verify", "invalid")
		case errors.Is(err, service.ErrCodeExpired):
			prometheus.RecordOTP("verify", "expired")
		default:
			prometheus.RecordOTP("verify", "error")
		}
		return respondError(c, err)
	}

	prometheus.RecordOTP("verify", "ok")
	log.Info("Verification code accepted",
		zap.String("email", req.Email),
		zap.Uint("user_id", result.User.ID))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"userId":  result.User.ID,
		"token":   result.Token,
		"user":    result.User,
	})
}
