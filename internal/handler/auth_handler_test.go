package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heriaond/healthy-lifestyle-tips/internal/model"
	"github.com/heriaond/healthy-lifestyle-tips/internal/service"
)

type stubAuthService struct {
	gotEmail string
	gotCode  string

	result *service.VerifyResult
	err    error
}

func (s *stubAuthService) SendCode(_ context.Context, email string) error {
	s.gotEmail = email
	return s.err
}

func (s *stubAuthService) VerifyCode(_ context.Context, email, code string) (*service.VerifyResult, error) {
	s.gotEmail = email
	s.gotCode = code
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestSendOTP_Success(t *testing.T) {
	stub := &stubAuthService{}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/auth/send-otp", `{"email":"alice@example.com"}`)
	require.NoError(t, h.SendOTP(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice@example.com", stub.gotEmail)
	assert.JSONEq(t, `{"success": true}`, rec.Body.String())
}

func TestSendOTP_MissingEmail(t *testing.T) {
	stub := &stubAuthService{err: service.ErrValidation}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/auth/send-otp", `{}`)
	require.NoError(t, h.SendOTP(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyOTP_Success(t *testing.T) {
	email := "alice@example.com"
	stub := &stubAuthService{result: &service.VerifyResult{
		User:  &model.User{ID: 7, Email: &email, Role: model.RoleUser},
		Token: "session-token",
	}}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/auth/verify-otp",
		`{"email":"alice@example.com","otp":"123456"}`)
	require.NoError(t, h.VerifyOTP(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice@example.com", stub.gotEmail)
	assert.Equal(t, "123456", stub.gotCode)

	var body struct {
		Success bool   `json:"success"`
		UserID  uint   `json:"userId"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, uint(7), body.UserID)
	assert.Equal(t, "session-token", body.Token)
}

func TestVerifyOTP_CodeErrorsAreBadRequests(t *testing.T) {
	for _, err := range []error{service.ErrInvalidCode, service.ErrCodeExpired} {
		h := NewAuthHandler(&stubAuthService{err: err})

		c, rec := newTestContext(http.MethodPost, "/api/auth/verify-otp",
			`{"email":"alice@example.com","otp":"000000"}`)
		require.NoError(t, h.VerifyOTP(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), err.Error())
	}
}
