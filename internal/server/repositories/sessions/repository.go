// Package sessions stores opaque session tokens.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.Session) error

	// Find returns common.ErrorNotFound for an unknown token. Expired rows
	// are returned as-is; deciding expiry is up to the caller.
	Find(ctx context.Context, token string) (*models.Session, error)

	// Delete removes the session. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
}
