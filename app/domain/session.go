package domain

import "fmt"

// SessionIDLength is the character length of a minted session ID.
// 32 base64url characters carry 192 bits of entropy.
const SessionIDLength = 32

// Session binds an opaque browser session ID to exactly one user.
// Sessions are volatile: they live in the session cache and are never
// explicitly expired server-side; the cookie's own expiry is the only
// TTL the client observes. Minting a new session for the same user
// orphans the old ID rather than invalidating it.
type Session struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
}

// NewSession creates a session binding with validation.
func NewSession(sessionID, userID string) (*Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	return &Session{
		SessionID: sessionID,
		UserID:    userID,
	}, nil
}
