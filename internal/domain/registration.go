package domain

import (
	"context"
	"time"
)

// RegistrationStatus is the closed set of registration states.
type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationCancelled RegistrationStatus = "cancelled"
)

// PaymentStatus tracks payment progress for paid conferences.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Registration links an attendee to a conference.
// swagger:model Registration
type Registration struct {
	ID              string             `json:"id"`
	ConferenceID    string             `json:"conference_id"`
	UserID          string             `json:"user_id"`
	Status          RegistrationStatus `json:"status"`
	PaymentStatus   *PaymentStatus     `json:"payment_status,omitempty"`
	PaymentIntentID *string            `json:"payment_intent_id,omitempty"`
	RegisteredAt    time.Time          `json:"registered_at"`
}

// NewRegistration creates a new Registration. ID is typically set by the repository on create.
func NewRegistration(conferenceID, userID string, status RegistrationStatus, registeredAt time.Time) *Registration {
	return &Registration{
		ConferenceID: conferenceID,
		UserID:       userID,
		Status:       status,
		RegisteredAt: registeredAt,
	}
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	GetByConferenceAndUser(ctx context.Context, conferenceID, userID string) (*Registration, error)
	ListByUserID(ctx context.Context, userID string) ([]*Registration, error)
	// ConfirmedConferenceIDs returns the conference ids for which the user
	// has a registration with status confirmed.
	ConfirmedConferenceIDs(ctx context.Context, userID string) ([]string, error)
}

// RegistrationService defines attendee-facing registration operations.
type RegistrationService interface {
	// Register registers the user for the conference. Returns (reg, created,
	// err): created is false if the user was already registered.
	Register(ctx context.Context, conferenceID, userID string) (*Registration, bool, error)
	ListMyRegistrations(ctx context.Context, userID string) ([]*Registration, error)
}
