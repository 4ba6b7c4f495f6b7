// Package users persists rows of the users table.
package users

import (
	"context"

	"github.com/dmitrijs2005/tasktracker/internal/models"
)

// Repository is the CRUD surface over the users table. Lookups return
// common.ErrorNotFound when no row matches; constraint violations carry the
// sentinels of package common.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// Delete removes the user; the engine cascades the delete to its tasks.
	Delete(ctx context.Context, id int64) error
}
