package client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"convomanage/internal/domain"
)

// ConferenceList is the client-held copy of the conference list visible to
// the current identity. The server filters by role and orders descending by
// start_date; the list only mirrors what the server returned, adjusted by
// confirmed create and update calls.
type ConferenceList struct {
	api    domain.ConferenceAPI
	logger *slog.Logger

	mu          sync.RWMutex
	conferences []*domain.Conference
	loading     bool
	fetchGen    uint64
}

func NewConferenceList(api domain.ConferenceAPI, logger *slog.Logger) *ConferenceList {
	return &ConferenceList{
		api:    api,
		logger: logger,
	}
}

// Refresh reloads the list from the server. Overlapping refreshes can resolve
// out of order, so each carries a generation token and only the newest
// generation's result is applied. A failed refresh is logged and leaves the
// cached list at its previous value.
func (l *ConferenceList) Refresh(ctx context.Context) {
	l.mu.Lock()
	l.fetchGen++
	gen := l.fetchGen
	l.loading = true
	l.mu.Unlock()

	conferences, err := l.api.ListConferences(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.fetchGen {
		// A newer refresh owns the cache now.
		return
	}
	l.loading = false
	if err != nil {
		l.logger.Error("failed to fetch conferences", "error", err)
		return
	}
	l.conferences = conferences
}

// Create submits a new conference and, on success, prepends the
// server-returned record to the cached list. A failed create leaves the
// cache untouched.
func (l *ConferenceList) Create(ctx context.Context, draft domain.ConferenceDraft) (*domain.Conference, error) {
	created, err := l.api.CreateConference(ctx, draft)
	if err != nil {
		return nil, rewriteNotConfigured(err)
	}

	l.mu.Lock()
	l.conferences = append([]*domain.Conference{created}, l.conferences...)
	l.mu.Unlock()
	return created, nil
}

// Update submits a partial update and, on success, replaces the matching
// cached record with the server-returned one, keeping its position. The
// cache changes only after server confirmation.
func (l *ConferenceList) Update(ctx context.Context, id string, patch domain.ConferencePatch) (*domain.Conference, error) {
	updated, err := l.api.UpdateConference(ctx, id, patch)
	if err != nil {
		return nil, rewriteNotConfigured(err)
	}

	l.mu.Lock()
	for i, c := range l.conferences {
		if c.ID == id {
			l.conferences[i] = updated
			break
		}
	}
	l.mu.Unlock()
	return updated, nil
}

// Conferences returns a snapshot of the cached list.
func (l *ConferenceList) Conferences() []*domain.Conference {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*domain.Conference, len(l.conferences))
	copy(out, l.conferences)
	return out
}

// Loading reports whether a refresh is in flight.
func (l *ConferenceList) Loading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loading
}

// Get returns the cached conference with the given id.
func (l *ConferenceList) Get(id string) (*domain.Conference, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, c := range l.conferences {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("conference %s: %w", id, domain.ErrNotFound)
}
