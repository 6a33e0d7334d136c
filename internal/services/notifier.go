package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"convomanage/internal/domain"
)

type notifier struct {
	notificationRepo domain.NotificationRepository
	mailer           domain.Mailer
	logger           *slog.Logger
}

// NewNotifier creates a Notifier that persists notifications and mails the
// user a copy. mailer may be nil.
func NewNotifier(notificationRepo domain.NotificationRepository, mailer domain.Mailer, logger *slog.Logger) domain.Notifier {
	return &notifier{
		notificationRepo: notificationRepo,
		mailer:           mailer,
		logger:           logger,
	}
}

func (n *notifier) Notify(ctx context.Context, user *domain.User, typ domain.NotificationType, title, message string) error {
	notification := &domain.Notification{
		UserID:    user.ID,
		Type:      typ,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := n.notificationRepo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	if n.mailer != nil {
		html := fmt.Sprintf("<p>%s</p>", message)
		if err := n.mailer.Send(user.Email, title, html, message); err != nil {
			// The in-app notification already exists.
			n.logger.Warn("failed to send notification email", "user_id", user.ID, "error", err)
		}
	}
	return nil
}

func (n *notifier) ListForUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	notifications, err := n.notificationRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}
