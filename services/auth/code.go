package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"portfolio/models"
	"portfolio/services/codestore"
	"portfolio/services/notification"
	"portfolio/utils"

	"go.uber.org/zap"
)

var codeRange = big.NewInt(900000)

// GenerateCode returns a uniformly random code in [100000, 999999].
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeRange)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func codesMatch(want, got string) bool {
	return subtle.ConstantTimeCompare([]byte(want), []byte(strings.TrimSpace(got))) == 1
}

func (s *DefaultAuthService) newCode() (string, error) {
	if s.GenerateCode != nil {
		return s.GenerateCode()
	}
	return GenerateCode()
}

// issueCode stores a fresh code for email, replacing any previous one, and mails it.
// The record is kept when delivery fails so the user can ask for a resend.
func (s *DefaultAuthService) issueCode(ctx context.Context, email string, payload models.PendingPayload) error {
	code, err := s.newCode()
	if err != nil {
		return utils.NewInternalError(msgInternal, fmt.Errorf("generate code: %w", err))
	}
	record := models.PendingVerification{
		Email:     email,
		Code:      code,
		ExpiresAt: s.now().Add(s.codeTTL()),
		Payload:   payload,
	}
	if err := s.Codes.Put(ctx, record); err != nil {
		return utils.NewInternalError(msgInternal, err)
	}

	subject, body, err := s.renderEmail(email, code, payload.Kind())
	if err != nil {
		return utils.NewInternalError(msgSendFailed, err)
	}
	if err := s.Notifier.Send(ctx, email, subject, body); err != nil {
		utils.GetLogger().Error("Failed to send verification email", zap.String("email", email), zap.Error(err))
		return utils.NewInternalError(msgSendFailed, err)
	}
	return nil
}

func (s *DefaultAuthService) renderEmail(email, code string, kind models.PayloadKind) (subject, body string, err error) {
	link, err := notification.VerificationLink(s.VerifyLinkBase, email, code)
	if err != nil {
		return "", "", err
	}
	if kind == models.PayloadDeviceChange {
		body, err = notification.RenderLogin(link, code, s.codeTTL())
		return notification.LoginSubject, body, err
	}
	body, err = notification.RenderRegistration(link, code, s.codeTTL())
	return notification.RegistrationSubject, body, err
}

// consumeCode checks code against the pending record for email. It does not
// delete a matching record; callers delete it once the action succeeded.
// An expired record is evicted by the store. A record of another kind is
// treated as absent and left alone.
func (s *DefaultAuthService) consumeCode(ctx context.Context, email, code string, kind models.PayloadKind) (*models.PendingVerification, error) {
	record, err := s.Codes.Get(ctx, email)
	switch {
	case errors.Is(err, codestore.ErrNotFound):
		return nil, utils.NewNotFoundError(msgNoCode)
	case errors.Is(err, codestore.ErrExpired):
		return nil, utils.NewExpiredError(msgCodeExpired)
	case err != nil:
		return nil, utils.NewInternalError(msgInternal, err)
	}
	if record.Payload == nil || record.Payload.Kind() != kind {
		return nil, utils.NewNotFoundError(msgNoCode)
	}
	if !codesMatch(record.Code, code) {
		return nil, utils.NewInvalidCodeError(msgInvalidCode)
	}
	return record, nil
}

func (s *DefaultAuthService) authResponse(account *models.Account, deviceID string) (*AuthResponse, error) {
	token, err := s.Tokens.Issue(account.ID)
	if err != nil {
		return nil, utils.NewInternalError(msgInternal, err)
	}
	return &AuthResponse{
		FullName:  account.FullName,
		Email:     account.Email,
		Token:     token,
		DeviceID:  deviceID,
		CreatedAt: account.CreatedAt,
	}, nil
}
