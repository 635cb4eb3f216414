package auth

import (
	"context"
	"errors"

	accountRepo "portfolio/database/repository/account"
	"portfolio/models"
	"portfolio/utils"
)

// ForgotPassword sets a new password for the account and issues a session.
// It is not gated by an emailed code.
// TODO: require a confirmed code before updating the password.
func (s *DefaultAuthService) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.NewPassword == "" || req.DeviceID == "" {
		return nil, utils.NewValidationError(msgMissingFields)
	}
	account, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, utils.NewInternalError(msgInternal, err)
	}
	if account == nil {
		return nil, utils.NewNotFoundError(msgUserNotFound)
	}

	hash, err := s.Hasher.Hash(req.NewPassword)
	if err != nil {
		return nil, utils.NewInternalError(msgInternal, err)
	}
	if err := s.Repo.UpdatePassword(ctx, email, hash); err != nil {
		if errors.Is(err, accountRepo.ErrAccountNotFound) {
			return nil, utils.NewNotFoundError(msgUserNotFound)
		}
		return nil, utils.NewInternalError(msgInternal, err)
	}
	return s.authResponse(account, account.DeviceID)
}
