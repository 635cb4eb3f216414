// Package auth runs the email-verification flows: sign-up, code resend,
// login with a device challenge and password reset.
//
// The service owns no state. Pending codes live in a codestore.Store and
// accounts in the account repository; uniqueness is finally decided by the
// repository, so concurrent verifications never create duplicate accounts.
package auth

import (
	"context"
	"time"

	accountRepo "portfolio/database/repository/account"
	"portfolio/models"
	"portfolio/services/codestore"
	"portfolio/services/credentials"
	"portfolio/services/notification"
)

// DefaultCodeTTL is how long an emailed code stays valid.
const DefaultCodeTTL = 3 * time.Minute

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) error
	VerifyEmail(ctx context.Context, email, code string) (*AuthResponse, error)
	ResendCode(ctx context.Context, email string) error
	Login(ctx context.Context, req models.LoginRequest) (*LoginResult, error)
	VerifyLoginEmail(ctx context.Context, email, code string) (*AuthResponse, error)
	ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) (*AuthResponse, error)
}

// DefaultAuthService is the production implementation.
type DefaultAuthService struct {
	Repo     accountRepo.AccountRepository
	Codes    codestore.Store
	Hasher   credentials.Hasher
	Tokens   credentials.TokenIssuer
	Notifier notification.Sender

	// CodeTTL defaults to DefaultCodeTTL.
	CodeTTL time.Duration
	// VerifyLinkBase is the frontend page that confirms a sign-up.
	VerifyLinkBase string

	// Now and GenerateCode default to time.Now and a crypto/rand 6-digit code.
	Now          func() time.Time
	GenerateCode func() (string, error)
}

// AuthResponse is returned wherever a session token is issued.
type AuthResponse struct {
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	DeviceID  string    `json:"deviceId"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginResult holds either a session or, when Challenge is set, nothing:
// a code was emailed to confirm the new device.
type LoginResult struct {
	Challenge bool
	Auth      *AuthResponse
}

func (s *DefaultAuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultAuthService) codeTTL() time.Duration {
	if s.CodeTTL > 0 {
		return s.CodeTTL
	}
	return DefaultCodeTTL
}
