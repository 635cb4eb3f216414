package auth

import (
	"context"
	"strings"

	"portfolio/models"
	"portfolio/utils"

	"go.uber.org/zap"
)

// Login returns a session when the device matches the one bound to the
// account. From any other device it mails a code and returns a challenge;
// the account is left untouched.
func (s *DefaultAuthService) Login(ctx context.Context, req models.LoginRequest) (*LoginResult, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" || req.DeviceID == "" {
		return nil, utils.NewValidationError(msgMissingFields)
	}
	account, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, utils.NewInternalError(msgInternal, err)
	}
	if account == nil {
		return nil, utils.NewNotFoundError(msgNotRegistered)
	}
	if !s.Hasher.Verify(req.Password, account.PasswordHash) {
		return nil, utils.NewForbiddenError(msgWrongPassword)
	}

	if account.DeviceID != req.DeviceID {
		if err := s.issueCode(ctx, email, models.DeviceChangePayload{DeviceID: req.DeviceID}); err != nil {
			return nil, err
		}
		utils.GetLogger().Info("Login from new device challenged", zap.String("email", email))
		return &LoginResult{Challenge: true}, nil
	}

	resp, err := s.authResponse(account, account.DeviceID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Auth: resp}, nil
}

// VerifyLoginEmail confirms a device challenge and issues a session. The
// confirmed device is echoed back but not bound to the account.
func (s *DefaultAuthService) VerifyLoginEmail(ctx context.Context, email, code string) (*AuthResponse, error) {
	email = normalizeEmail(email)
	if email == "" || strings.TrimSpace(code) == "" {
		return nil, utils.NewValidationError(msgMissingCode)
	}
	record, err := s.consumeCode(ctx, email, code, models.PayloadDeviceChange)
	if err != nil {
		return nil, err
	}
	device := record.Payload.(models.DeviceChangePayload)

	account, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, utils.NewInternalError(msgInternal, err)
	}
	if account == nil {
		return nil, utils.NewNotFoundError(msgNotRegistered)
	}
	if err := s.Codes.Delete(ctx, email); err != nil {
		return nil, utils.NewInternalError(msgInternal, err)
	}
	return s.authResponse(account, device.DeviceID)
}
