package port

//go:generate mockgen -source=user_port.go -destination=../mocks/mock_user_port.go -package=mocks

import (
	"context"

	"session-hub/app/domain"
)

// UserRepository defines user record data access. The store is the
// single owner of user records; callers never cache them.
type UserRepository interface {
	// GetByID returns the user or domain.ErrUserNotFound.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// Upsert inserts the user or updates an existing record in a
	// single atomic statement.
	Upsert(ctx context.Context, user *domain.User) error
}
