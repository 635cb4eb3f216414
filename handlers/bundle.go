package handlers

import (
	"portfolio/services/credentials"
)

// HandlerBundle groups the endpoint handlers for route registration.
type HandlerBundle struct {
	Auth    *AuthHandler
	Posts   *PostHandler
	Storage *StorageHandler

	// Tokens guards the write endpoints.
	Tokens credentials.TokenIssuer
}
