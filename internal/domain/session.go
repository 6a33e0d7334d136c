package domain

import (
	"context"
	"time"
)

// Session represents a sub-event (talk, workshop) inside a conference.
// swagger:model Session
type Session struct {
	ID           string    `json:"id"`
	ConferenceID string    `json:"conference_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	SpeakerID    *string   `json:"speaker_id,omitempty"`
	MaxAttendees *int      `json:"max_attendees,omitempty"`
	MeetingURL   *string   `json:"meeting_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewSession returns a new Session with the given fields. ID is typically set by the repository on create.
func NewSession(conferenceID, title, description string, startTime, endTime time.Time, createdAt, updatedAt time.Time) *Session {
	return &Session{
		ConferenceID: conferenceID,
		Title:        title,
		Description:  description,
		StartTime:    startTime,
		EndTime:      endTime,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// SessionRepository defines storage operations for conference sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	ListByConferenceID(ctx context.Context, conferenceID string) ([]*Session, error)
}

// SessionDraft is a session payload lacking id and timestamps.
type SessionDraft struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	SpeakerID    *string   `json:"speaker_id,omitempty"`
	MaxAttendees *int      `json:"max_attendees,omitempty"`
	MeetingURL   *string   `json:"meeting_url,omitempty"`
}

// SessionService defines the business logic for conference sessions.
type SessionService interface {
	// Create adds a session to a conference. Only the conference organizer
	// may add sessions.
	Create(ctx context.Context, conferenceID, userID string, draft SessionDraft) (*Session, error)
	ListByConference(ctx context.Context, conferenceID string) ([]*Session, error)
}
