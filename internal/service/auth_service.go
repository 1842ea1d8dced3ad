package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/heriaond/healthy-lifestyle-tips/internal/model"
)

// codeTTL is how long an issued one-time code stays valid.
const codeTTL = 10 * time.Minute

// Mailer dispatches the one-time code out-of-band.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

// TokenSigner issues the session token handed out after verification.
type TokenSigner interface {
	GenerateToken(email string, userID uint, role string) (string, error)
}

// VerifyResult is returned on successful code verification.
type VerifyResult struct {
	User  *model.User
	Token string
}

// AuthService implements the email one-time-code sign-in flow.
type AuthService struct {
	tokens TokenStore
	users  UserStore
	mailer Mailer
	signer TokenSigner
	now    func() time.Time
}

func NewAuthService(tokens TokenStore, users UserStore, mailer Mailer, signer TokenSigner) *AuthService {
	return &AuthService{
		tokens: tokens,
		users:  users,
		mailer: mailer,
		signer: signer,
		now:    time.Now,
	}
}

// SendCode issues a fresh 6-digit code for the email, replacing any
// prior code, and dispatches it. The code expires after ten minutes.
func (s *AuthService) SendCode(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	expires := s.now().Add(codeTTL)
	if err := s.tokens.Upsert(ctx, email, code, expires); err != nil {
		return fmt.Errorf("store code: %w", err)
	}

	body := fmt.Sprintf("Your verification code is: %s\n\nThis code will expire in 10 minutes.\n\nIf you didn't request this code, you can safely ignore this email.", code)
	if err := s.mailer.SendEmail(email, "Your verification code", body); err != nil {
		return fmt.Errorf("send code email: %w", err)
	}
	return nil
}

// VerifyCode consumes a one-time code. An unknown (email, code) pair
// yields ErrInvalidCode; a known but stale pair is deleted and yields
// ErrCodeExpired. A live pair signs the user in: the user record is
// created or its email-verified timestamp refreshed, the code is deleted
// so it cannot be replayed, and a session token is issued.
func (s *AuthService) VerifyCode(ctx context.Context, email, code string) (*VerifyResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || code == "" {
		return nil, fmt.Errorf("%w: email and code are required", ErrValidation)
	}

	token, err := s.tokens.Get(ctx, email, code)
	if err != nil {
		return nil, fmt.Errorf("load code: %w", err)
	}
	if token == nil {
		return nil, ErrInvalidCode
	}

	if s.now().After(token.Expires) {
		if err := s.tokens.Delete(ctx, email, code); err != nil {
			return nil, fmt.Errorf("delete expired code: %w", err)
		}
		return nil, ErrCodeExpired
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	verifiedAt := s.now()
	if user == nil {
		user = &model.User{
			Email:         &email,
			EmailVerified: &verifiedAt,
			Role:          model.RoleUser,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
	} else {
		user.EmailVerified = &verifiedAt
		if err := s.users.Save(ctx, user); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
	}

	if err := s.tokens.Delete(ctx, email, code); err != nil {
		return nil, fmt.Errorf("delete used code: %w", err)
	}

	signed, err := s.signer.GenerateToken(email, user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	return &VerifyResult{User: user, Token: signed}, nil
}

// generateCode returns a random 6-digit numeric code, zero-padded.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
