package domain

import (
	"context"
	"time"
)

// NotificationType is the closed set of notification kinds.
type NotificationType string

const (
	NotificationConferenceUpdate    NotificationType = "conference_update"
	NotificationSessionReminder     NotificationType = "session_reminder"
	NotificationPaymentConfirmation NotificationType = "payment_confirmation"
	NotificationGeneral             NotificationType = "general"
)

// Notification is an in-app notification for a user.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

// NotificationRepository defines storage operations for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUserID(ctx context.Context, userID string) ([]*Notification, error)
}

// Mailer sends an email. Implementations may use SES or a no-op sender.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// Notifier records a notification and optionally emails the user.
type Notifier interface {
	Notify(ctx context.Context, user *User, typ NotificationType, title, message string) error
	ListForUser(ctx context.Context, userID string) ([]*Notification, error)
}
