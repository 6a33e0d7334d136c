package domain

import "context"

// AuthEvent names a session-change notification from the auth service.
type AuthEvent string

const (
	AuthEventSignedIn  AuthEvent = "SIGNED_IN"
	AuthEventSignedOut AuthEvent = "SIGNED_OUT"
)

// AuthSession is the authenticated session as exposed by the auth service.
type AuthSession struct {
	User  *User
	Token string
}

// AuthClient is the consumed contract of the hosted auth service. The client
// sync layer depends on this interface only, never on a concrete transport.
type AuthClient interface {
	// GetSession returns the current session, or (nil, nil) when none exists.
	GetSession(ctx context.Context) (*AuthSession, error)
	SignInWithPassword(ctx context.Context, email, password string) (*AuthSession, error)
	SignUp(ctx context.Context, email, password, fullName string, role Role) (*AuthSession, error)
	SignOut(ctx context.Context) error
	// OnAuthStateChange registers a handler invoked on every session change.
	// The returned function unsubscribes the handler.
	OnAuthStateChange(handler func(AuthEvent, *AuthSession)) (unsubscribe func())
}

// ConferenceAPI is the consumed contract of the hosted data store for the
// client sync layer. Listing is filtered server-side by the caller's role
// and ordered descending by start_date.
type ConferenceAPI interface {
	ListConferences(ctx context.Context) ([]*Conference, error)
	CreateConference(ctx context.Context, draft ConferenceDraft) (*Conference, error)
	UpdateConference(ctx context.Context, id string, patch ConferencePatch) (*Conference, error)
}
