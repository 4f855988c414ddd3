package session

import (
	"context"

	"barberhub/models"
)

// SessionService is the single provider responsible for reading and writing
// persisted sessions. Views receive a Session through it instead of poking
// at shared global state.
type SessionService interface {
	// SignInGuest opens an anonymous session.
	SignInGuest(ctx context.Context, device models.DeviceInfo) (*models.Session, string, error)
	// SignInOwner exchanges a Firebase ID token for an owner session bound
	// to the business record matching the token's email.
	SignInOwner(ctx context.Context, idToken string, device models.DeviceInfo) (*models.Session, string, error)
	// SignInAdmin verifies platform-operator credentials.
	SignInAdmin(ctx context.Context, email, password string, device models.DeviceInfo) (*models.Session, string, error)
	// GetSession loads a session by ID and refreshes its last-seen stamp.
	// Expired or unknown sessions return (nil, nil).
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	// SignOut deletes the persisted session.
	SignOut(ctx context.Context, sessionID string) error
	// OnAuthChange registers a callback fired on every sign-in and
	// sign-out (nil session on sign-out). Returns the disposal handle.
	OnAuthChange(fn func(*models.Session)) func()
}
