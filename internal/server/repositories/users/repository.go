// Package users is the credential store: a durable mapping from username to
// account record with username uniqueness enforced by the database.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Repository stores account records. Create fails with
// common.ErrorDuplicateUsername when the username exists; the lookups fail
// with common.ErrorNotFound when nothing matches.
type Repository interface {
	Create(ctx context.Context, username, passwordHash string) (*models.User, error)
	GetUserByLogin(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}
