package domain

import (
	"fmt"
	"strings"
)

// User represents a persisted identity backed by a Google account.
// ID is the provider subject claim; it is stable for the lifetime of
// the account and is the primary key in the users table.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccessToken string `json:"-"` // exclude from JSON
	// RefreshToken is granted on first consent only and is not
	// reissued by a refresh, so once set it must stay set.
	RefreshToken *string `json:"-"`
}

// NewUser creates a user record with validation.
func NewUser(id, name, accessToken string, refreshToken *string) (*User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if accessToken == "" {
		return nil, fmt.Errorf("access token is required")
	}

	return &User{
		ID:           id,
		Name:         name,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// HasRefreshToken reports whether a refresh token is on record.
func (u *User) HasRefreshToken() bool {
	return u.RefreshToken != nil && *u.RefreshToken != ""
}

// TokenUpdate is a partial update to a user's provider credentials.
// A nil RefreshToken means "leave the stored value alone"; it never
// clears an existing token.
type TokenUpdate struct {
	AccessToken  string
	RefreshToken *string
}

// ApplyTokenUpdate overwrites only the fields the update carries.
func (u *User) ApplyTokenUpdate(update TokenUpdate) {
	if update.AccessToken != "" {
		u.AccessToken = update.AccessToken
	}
	if update.RefreshToken != nil {
		u.RefreshToken = update.RefreshToken
	}
}
