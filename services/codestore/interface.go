// Package codestore keeps pending verification codes keyed by email.
//
// At most one record exists per email: Put overwrites, so a newer code always
// invalidates the older one. Expiry is checked lazily on Get, which evicts an
// expired record and reports ErrExpired; later Gets see ErrNotFound.
package codestore

import (
	"context"
	"errors"
	"time"

	"portfolio/models"
)

var (
	ErrNotFound = errors.New("no pending verification")
	ErrExpired  = errors.New("pending verification expired")
)

// Store is safe for concurrent use.
type Store interface {
	Put(ctx context.Context, record models.PendingVerification) error
	Get(ctx context.Context, email string) (*models.PendingVerification, error)
	Delete(ctx context.Context, email string) error
}

// Clock returns the current time. Stores default to time.Now.
type Clock func() time.Time

func orNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}
