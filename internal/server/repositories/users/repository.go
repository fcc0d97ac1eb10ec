// Package users declares the persistence contract for user records and its
// database/sql implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Repository is the user side of the persistence port.
type Repository interface {
	// Create inserts user and fills in its ID. A duplicate username or email
	// surfaces as a driver constraint error (see dbx.IsUniqueViolation).
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername returns common.ErrorNotFound when no user matches.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByID returns common.ErrorNotFound when no user matches.
	GetByID(ctx context.Context, id int64) (*models.User, error)

	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
