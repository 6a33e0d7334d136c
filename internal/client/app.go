package client

import (
	"context"
	"log/slog"

	"convomanage/internal/adapters/convoapi"
	"convomanage/internal/domain"
)

// App bundles the sync layer over one configured backend endpoint.
type App struct {
	Session     *SessionStore
	Conferences *ConferenceList
}

// New builds the sync layer from the configured API endpoint and key. A
// failed client construction (missing endpoint or key) is not returned:
// it is recorded once, and every subsequent operation reports it, so the
// caller always gets a usable App.
func New(apiURL, apiKey string, logger *slog.Logger) *App {
	api, err := convoapi.NewClient(apiURL, apiKey, nil)
	var auth domain.AuthClient = api
	var conferences domain.ConferenceAPI = api
	if err != nil {
		backend := &unconfiguredBackend{err: err}
		auth = backend
		conferences = backend
	}
	return &App{
		Session:     NewSessionStore(auth, err, logger),
		Conferences: NewConferenceList(conferences, logger),
	}
}

// unconfiguredBackend stands in for the real client when construction
// failed. Every call reports the construction error.
type unconfiguredBackend struct {
	err error
}

var _ domain.AuthClient = (*unconfiguredBackend)(nil)
var _ domain.ConferenceAPI = (*unconfiguredBackend)(nil)

func (b *unconfiguredBackend) GetSession(context.Context) (*domain.AuthSession, error) {
	return nil, b.err
}

func (b *unconfiguredBackend) SignInWithPassword(context.Context, string, string) (*domain.AuthSession, error) {
	return nil, b.err
}

func (b *unconfiguredBackend) SignUp(context.Context, string, string, string, domain.Role) (*domain.AuthSession, error) {
	return nil, b.err
}

func (b *unconfiguredBackend) SignOut(context.Context) error {
	return b.err
}

func (b *unconfiguredBackend) OnAuthStateChange(func(domain.AuthEvent, *domain.AuthSession)) func() {
	return func() {}
}

func (b *unconfiguredBackend) ListConferences(context.Context) ([]*domain.Conference, error) {
	return nil, b.err
}

func (b *unconfiguredBackend) CreateConference(context.Context, domain.ConferenceDraft) (*domain.Conference, error) {
	return nil, b.err
}

func (b *unconfiguredBackend) UpdateConference(context.Context, string, domain.ConferencePatch) (*domain.Conference, error) {
	return nil, b.err
}
