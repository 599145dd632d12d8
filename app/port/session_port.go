package port

//go:generate mockgen -source=session_port.go -destination=../mocks/mock_session_port.go -package=mocks

import "context"

// SessionCache maps opaque session IDs to user IDs. Implementations
// must be safe for concurrent use and must distinguish "key absent"
// (domain.ErrSessionNotFound) from both empty values and transport
// errors, so the in-process map and a distributed cache are
// interchangeable behind this interface.
type SessionCache interface {
	// Get returns the user ID bound to sessionID, or
	// domain.ErrSessionNotFound.
	Get(ctx context.Context, sessionID string) (string, error)

	// Set binds sessionID to userID, overwriting any previous binding.
	Set(ctx context.Context, sessionID, userID string) error

	// Delete removes the binding. Deleting an absent key is a no-op.
	Delete(ctx context.Context, sessionID string) error
}
