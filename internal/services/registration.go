package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"convomanage/internal/domain"
)

type registrationService struct {
	registrationRepo domain.RegistrationRepository
	conferenceRepo   domain.ConferenceRepository
	userRepo         domain.UserRepository
	notifier         domain.Notifier
	logger           *slog.Logger
}

// NewRegistrationService creates a RegistrationService. notifier may be nil.
func NewRegistrationService(registrationRepo domain.RegistrationRepository, conferenceRepo domain.ConferenceRepository, userRepo domain.UserRepository, notifier domain.Notifier, logger *slog.Logger) domain.RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		conferenceRepo:   conferenceRepo,
		userRepo:         userRepo,
		notifier:         notifier,
		logger:           logger,
	}
}

func (s *registrationService) Register(ctx context.Context, conferenceID, userID string) (*domain.Registration, bool, error) {
	conference, err := s.conferenceRepo.GetByID(ctx, conferenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, fmt.Errorf("failed to get conference: %w", err)
	}

	// Registering twice returns the existing registration.
	existing, err := s.registrationRepo.GetByConferenceAndUser(ctx, conferenceID, userID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to check registration: %w", err)
	}

	status := domain.RegistrationConfirmed
	var payment *domain.PaymentStatus
	if conference.IsPaid {
		status = domain.RegistrationPending
		p := domain.PaymentPending
		payment = &p
	}

	reg := domain.NewRegistration(conferenceID, userID, status, time.Now())
	reg.PaymentStatus = payment
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		// A concurrent registration can win between the existence check
		// and the insert. Treat the conflict as the idempotent case.
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			existing, readErr := s.registrationRepo.GetByConferenceAndUser(ctx, conferenceID, userID)
			if readErr != nil {
				return nil, false, fmt.Errorf("failed to check registration: %w", readErr)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("failed to create registration: %w", err)
	}

	s.notifyRegistered(ctx, conference, reg, userID)

	return reg, true, nil
}

// notifyRegistered is best effort: a failed notification never fails the
// registration itself.
func (s *registrationService) notifyRegistered(ctx context.Context, conference *domain.Conference, reg *domain.Registration, userID string) {
	if s.notifier == nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to load user for notification", "user_id", userID, "error", err)
		return
	}

	typ := domain.NotificationGeneral
	title := "Registration confirmed"
	message := fmt.Sprintf("You are registered for %s.", conference.Title)
	if reg.Status == domain.RegistrationPending {
		typ = domain.NotificationPaymentConfirmation
		title = "Payment required"
		message = fmt.Sprintf("Complete payment to confirm your spot at %s.", conference.Title)
	}
	if err := s.notifier.Notify(ctx, user, typ, title, message); err != nil {
		s.logger.Warn("failed to send registration notification", "user_id", userID, "error", err)
	}
}

func (s *registrationService) ListMyRegistrations(ctx context.Context, userID string) ([]*domain.Registration, error) {
	regs, err := s.registrationRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return regs, nil
}
