package accountRepo

import (
	"context"
	"errors"

	"portfolio/models"
)

var (
	// ErrEmailTaken is returned by Create when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrDeviceTaken is returned by Create when the device is bound to another account.
	ErrDeviceTaken = errors.New("device already registered")
	// ErrAccountNotFound is returned by updates that match no account.
	ErrAccountNotFound = errors.New("account not found")
)

// AccountRepository defines methods for account data access.
// Lookups return (nil, nil) when nothing matches.
type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByDeviceID(ctx context.Context, deviceID string) (*models.Account, error)
	// Create inserts an account, failing with ErrEmailTaken or ErrDeviceTaken
	// when a uniqueness constraint is violated.
	Create(ctx context.Context, account *models.Account) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}
