package auth

import (
	"context"
	"errors"
	"strings"

	accountRepo "portfolio/database/repository/account"
	"portfolio/models"
	"portfolio/services/codestore"
	"portfolio/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Register checks that neither the email nor the device is taken and mails a
// verification code. No account exists until VerifyEmail succeeds.
func (s *DefaultAuthService) Register(ctx context.Context, req models.RegisterRequest) error {
	email := normalizeEmail(req.Email)
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" || email == "" || req.Password == "" || req.DeviceID == "" {
		return utils.NewValidationError(msgMissingFields)
	}
	if err := s.checkAvailable(ctx, email, req.DeviceID); err != nil {
		return err
	}
	return s.issueCode(ctx, email, models.RegistrationPayload{
		FullName: fullName,
		Password: req.Password,
		DeviceID: req.DeviceID,
	})
}

// VerifyEmail confirms a sign-up code and creates the account.
func (s *DefaultAuthService) VerifyEmail(ctx context.Context, email, code string) (*AuthResponse, error) {
	email = normalizeEmail(email)
	if email == "" || strings.TrimSpace(code) == "" {
		return nil, utils.NewValidationError(msgMissingCode)
	}
	record, err := s.consumeCode(ctx, email, code, models.PayloadRegistration)
	if err != nil {
		return nil, err
	}
	reg := record.Payload.(models.RegistrationPayload)

	// Someone may have registered the email or device since the code was sent.
	if err := s.checkAvailable(ctx, email, reg.DeviceID); err != nil {
		return nil, err
	}

	hash, err := s.Hasher.Hash(reg.Password)
	if err != nil {
		return nil, utils.NewInternalError(msgInternal, err)
	}
	now := s.now()
	account := &models.Account{
		ID:           uuid.New().String(),
		FullName:     reg.FullName,
		Email:        email,
		PasswordHash: hash,
		DeviceID:     reg.DeviceID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, account); err != nil {
		switch {
		case errors.Is(err, accountRepo.ErrEmailTaken):
			return nil, utils.NewConflictError(msgEmailTaken)
		case errors.Is(err, accountRepo.ErrDeviceTaken):
			return nil, utils.NewConflictError(msgDeviceTaken)
		}
		return nil, utils.NewInternalError(msgInternal, err)
	}

	if err := s.Codes.Delete(ctx, email); err != nil {
		// The account exists; a leftover code can only hit the conflict check.
		utils.GetLogger().Warn("Failed to delete consumed verification code", zap.String("email", email), zap.Error(err))
	}
	return s.authResponse(account, account.DeviceID)
}

// ResendCode replaces the pending sign-up code with a fresh one, keeping the
// registration fields it was issued for.
func (s *DefaultAuthService) ResendCode(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return utils.NewValidationError(msgEmailRequired)
	}
	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return utils.NewInternalError(msgInternal, err)
	}
	if existing != nil {
		return utils.NewConflictError(msgAlreadyRegistered)
	}

	record, err := s.Codes.Get(ctx, email)
	switch {
	case errors.Is(err, codestore.ErrNotFound), errors.Is(err, codestore.ErrExpired):
		return utils.NewNotFoundError(msgNoPending)
	case err != nil:
		return utils.NewInternalError(msgInternal, err)
	}
	if record.Payload == nil || record.Payload.Kind() != models.PayloadRegistration {
		return utils.NewNotFoundError(msgNoPending)
	}
	return s.issueCode(ctx, email, record.Payload)
}

func (s *DefaultAuthService) checkAvailable(ctx context.Context, email, deviceID string) error {
	byEmail, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return utils.NewInternalError(msgInternal, err)
	}
	if byEmail != nil {
		return utils.NewConflictError(msgEmailTaken)
	}
	byDevice, err := s.Repo.GetByDeviceID(ctx, deviceID)
	if err != nil {
		return utils.NewInternalError(msgInternal, err)
	}
	if byDevice != nil {
		return utils.NewConflictError(msgDeviceTaken)
	}
	return nil
}
