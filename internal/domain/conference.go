package domain

import (
	"context"
	"encoding/json"
	"strconv"
	"time"
)

// ConferenceStatus is the closed set of conference states.
type ConferenceStatus string

const (
	StatusDraft     ConferenceStatus = "draft"
	StatusPublished ConferenceStatus = "published"
	StatusLive      ConferenceStatus = "live"
	StatusCompleted ConferenceStatus = "completed"
	StatusCancelled ConferenceStatus = "cancelled"
)

// ParseConferenceStatus returns the status for s, and whether s named a known status.
func ParseConferenceStatus(s string) (ConferenceStatus, bool) {
	switch ConferenceStatus(s) {
	case StatusDraft, StatusPublished, StatusLive, StatusCompleted, StatusCancelled:
		return ConferenceStatus(s), true
	}
	return "", false
}

// Valid reports whether the status is one of the known states.
func (s ConferenceStatus) Valid() bool {
	_, ok := ParseConferenceStatus(string(s))
	return ok
}

// Conference represents a conference event
// swagger:model Conference
type Conference struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	StartDate    time.Time        `json:"start_date"`
	EndDate      time.Time        `json:"end_date"`
	Timezone     string           `json:"timezone"`
	Status       ConferenceStatus `json:"status"`
	IsPaid       bool             `json:"is_paid"`
	TicketPrice  *float64         `json:"ticket_price"`
	MaxAttendees *int             `json:"max_attendees"`
	OrganizerID  string           `json:"organizer_id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ConferenceDraft is a conference payload lacking id, timestamps, and
// organizer_id; those are assigned server-side. TicketPrice is accepted as a
// raw JSON value because callers may submit it as a string.
type ConferenceDraft struct {
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	StartDate    time.Time        `json:"start_date"`
	EndDate      time.Time        `json:"end_date"`
	Timezone     string           `json:"timezone"`
	Status       ConferenceStatus `json:"status"`
	IsPaid       bool             `json:"is_paid"`
	TicketPrice  any              `json:"ticket_price,omitempty"`
	MaxAttendees *int             `json:"max_attendees,omitempty"`
}

// NormalizeTicketPrice coerces a raw ticket price into its stored form.
// A free conference always stores nil. A paid conference stores the numeric
// value of a number, numeric string, or json.Number; anything else is nil.
func NormalizeTicketPrice(isPaid bool, raw any) *float64 {
	if !isPaid || raw == nil {
		return nil
	}
	switch v := raw.(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return &f
		}
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
	}
	return nil
}

// ConferencePatch is a partial field set for updates. Nil fields are unchanged.
type ConferencePatch struct {
	Title        *string           `json:"title,omitempty"`
	Description  *string           `json:"description,omitempty"`
	StartDate    *time.Time        `json:"start_date,omitempty"`
	EndDate      *time.Time        `json:"end_date,omitempty"`
	Timezone     *string           `json:"timezone,omitempty"`
	Status       *ConferenceStatus `json:"status,omitempty"`
	IsPaid       *bool             `json:"is_paid,omitempty"`
	TicketPrice  *float64          `json:"ticket_price,omitempty"`
	MaxAttendees *int              `json:"max_attendees,omitempty"`
}

// Empty reports whether the patch carries no field at all.
func (p ConferencePatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.StartDate == nil &&
		p.EndDate == nil && p.Timezone == nil && p.Status == nil &&
		p.IsPaid == nil && p.TicketPrice == nil && p.MaxAttendees == nil
}

// ConferenceRepository defines the interface for conference storage.
// List results are ordered descending by start_date.
type ConferenceRepository interface {
	Create(ctx context.Context, c *Conference) error
	GetByID(ctx context.Context, id string) (*Conference, error)
	ListByOrganizerID(ctx context.Context, organizerID string) ([]*Conference, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Conference, error)
	ListByStatus(ctx context.Context, status ConferenceStatus) ([]*Conference, error)
	Update(ctx context.Context, id string, patch ConferencePatch) (*Conference, error)
}

// ConferenceService defines the business logic for conference management.
type ConferenceService interface {
	// ListForUser returns the conferences visible to the user given their
	// role: organizers see their own, attendees see their confirmed
	// registrations, everyone else sees published conferences.
	ListForUser(ctx context.Context, userID string) ([]*Conference, error)
	Create(ctx context.Context, organizerID string, draft ConferenceDraft) (*Conference, error)
	Update(ctx context.Context, id, userID string, patch ConferencePatch) (*Conference, error)
	GetByID(ctx context.Context, id string) (*Conference, error)
}
