package testutil

import (
	"context"
	"sync"

	accountRepo "portfolio/database/repository/account"
	"portfolio/models"
)

// AccountRepo is an in-memory AccountRepository. Create checks both unique
// keys under one lock, like the unique indexes of the Mongo collection.
type AccountRepo struct {
	mu       sync.Mutex
	accounts map[string]models.Account

	// Err, when set, is returned by every call.
	Err error
}

func NewAccountRepo() *AccountRepo {
	return &AccountRepo{accounts: make(map[string]models.Account)}
}

func (r *AccountRepo) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if a, ok := r.accounts[email]; ok {
		return &a, nil
	}
	return nil, nil
}

func (r *AccountRepo) GetByDeviceID(_ context.Context, deviceID string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, a := range r.accounts {
		if a.DeviceID == deviceID {
			return &a, nil
		}
	}
	return nil, nil
}

func (r *AccountRepo) Create(_ context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.accounts[account.Email]; ok {
		return accountRepo.ErrEmailTaken
	}
	for _, a := range r.accounts {
		if a.DeviceID == account.DeviceID {
			return accountRepo.ErrDeviceTaken
		}
	}
	r.accounts[account.Email] = *account
	return nil
}

func (r *AccountRepo) UpdatePassword(_ context.Context, email, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	a, ok := r.accounts[email]
	if !ok {
		return accountRepo.ErrAccountNotFound
	}
	a.PasswordHash = passwordHash
	r.accounts[email] = a
	return nil
}

// Count returns the number of stored accounts.
func (r *AccountRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.accounts)
}

// Insert stores an account directly, bypassing uniqueness checks.
func (r *AccountRepo) Insert(account models.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[account.Email] = account
}
