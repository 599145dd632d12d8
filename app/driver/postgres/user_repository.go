package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"session-hub/app/domain"
	"session-hub/app/port"
)

// UserRepository implements port.UserRepository for PostgreSQL
type UserRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db DatabaseIface, logger *slog.Logger) port.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger.With("component", "user_repository"),
	}
}

// GetByID returns the user record or domain.ErrUserNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, name, access_token, refresh_token
		FROM users
		WHERE id = $1`

	user := &domain.User{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.AccessToken,
		&user.RefreshToken,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		r.logger.Error("failed to get user", "user_id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// Upsert inserts or updates the user record in a single statement.
// The COALESCE on refresh_token enforces the sticky-refresh-token
// invariant at the store boundary as well: a NULL in the incoming
// record never clears a stored token.
func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, name, access_token, refresh_token, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			access_token = EXCLUDED.access_token,
			refresh_token = COALESCE(EXCLUDED.refresh_token, users.refresh_token),
			updated_at = NOW()`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.AccessToken,
		user.RefreshToken,
	)
	if err != nil {
		r.logger.Error("failed to upsert user", "user_id", user.ID, "error", err)
		return fmt.Errorf("%w: %v", domain.ErrPersistenceFailed, err)
	}

	r.logger.Debug("user upserted", "user_id", user.ID)
	return nil
}
