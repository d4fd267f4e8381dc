package repositories

import (
	"errors"

	"katalog/internal/models"
)

// ErrUserNotFound is returned when a lookup targets an unknown user.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}
