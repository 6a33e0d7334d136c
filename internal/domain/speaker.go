package domain

import (
	"context"
	"time"
)

// Speaker is the speaker profile attached to a user with the speaker role.
type Speaker struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	Bio         string            `json:"bio"`
	Expertise   []string          `json:"expertise"`
	SocialLinks map[string]string `json:"social_links,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// SpeakerRepository defines storage operations for speaker profiles.
type SpeakerRepository interface {
	Create(ctx context.Context, sp *Speaker) error
	GetByUserID(ctx context.Context, userID string) (*Speaker, error)
}
