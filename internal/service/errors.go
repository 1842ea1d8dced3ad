package service

import "errors"

// Sentinel errors for domain-level error discrimination. Handlers map
// these to HTTP status codes; anything else surfaces as an opaque
// internal error so store details never leak to callers.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrInvalidCode  = errors.New("invalid verification code")
	ErrCodeExpired  = errors.New("verification code expired")
)
