package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"convomanage/internal/domain"
)

type conferenceService struct {
	conferenceRepo   domain.ConferenceRepository
	registrationRepo domain.RegistrationRepository
	userRepo         domain.UserRepository
	logger           *slog.Logger
}

func NewConferenceService(conferenceRepo domain.ConferenceRepository, registrationRepo domain.RegistrationRepository, userRepo domain.UserRepository, logger *slog.Logger) domain.ConferenceService {
	return &conferenceService{
		conferenceRepo:   conferenceRepo,
		registrationRepo: registrationRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// ListForUser returns the conferences visible to the given user.
// Organizers see every conference they own regardless of status.
// Attendees see the conferences they hold a confirmed registration for;
// if that lookup fails or comes back empty they see an empty list, never
// an error. Everyone else sees published conferences.
func (s *conferenceService) ListForUser(ctx context.Context, userID string) ([]*domain.Conference, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	switch user.Role {
	case domain.RoleOrganizer:
		conferences, err := s.conferenceRepo.ListByOrganizerID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list conferences: %w", err)
		}
		return conferences, nil
	case domain.RoleAttendee:
		ids, err := s.registrationRepo.ConfirmedConferenceIDs(ctx, userID)
		if err != nil {
			s.logger.Warn("failed to load registrations, returning empty list",
				"user_id", userID, "error", err)
			return []*domain.Conference{}, nil
		}
		if len(ids) == 0 {
			return []*domain.Conference{}, nil
		}
		conferences, err := s.conferenceRepo.ListByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to list conferences: %w", err)
		}
		return conferences, nil
	default:
		conferences, err := s.conferenceRepo.ListByStatus(ctx, domain.StatusPublished)
		if err != nil {
			return nil, fmt.Errorf("failed to list conferences: %w", err)
		}
		return conferences, nil
	}
}

func (s *conferenceService) Create(ctx context.Context, organizerID string, draft domain.ConferenceDraft) (*domain.Conference, error) {
	user, err := s.userRepo.GetByID(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user.Role != domain.RoleOrganizer {
		return nil, domain.ErrForbidden
	}

	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	status := draft.Status
	if status == "" {
		status = domain.StatusDraft
	}
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status %q", status)
	}
	timezone := draft.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	now := time.Now()
	conference := &domain.Conference{
		Title:        title,
		Description:  draft.Description,
		StartDate:    draft.StartDate,
		EndDate:      draft.EndDate,
		Timezone:     timezone,
		IsPaid:       draft.IsPaid,
		TicketPrice:  domain.NormalizeTicketPrice(draft.IsPaid, draft.TicketPrice),
		MaxAttendees: draft.MaxAttendees,
		Status:       status,
		OrganizerID:  organizerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.conferenceRepo.Create(ctx, conference); err != nil {
		return nil, fmt.Errorf("failed to create conference: %w", err)
	}
	return conference, nil
}

func (s *conferenceService) Update(ctx context.Context, id, userID string, patch domain.ConferencePatch) (*domain.Conference, error) {
	conference, err := s.conferenceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get conference: %w", err)
	}
	if conference.OrganizerID != userID {
		return nil, domain.ErrForbidden
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, fmt.Errorf("invalid status %q", *patch.Status)
	}
	// A conference marked free never keeps a price.
	if patch.IsPaid != nil && !*patch.IsPaid {
		patch.TicketPrice = nil
	}
	if patch.Empty() {
		return conference, nil
	}

	updated, err := s.conferenceRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update conference: %w", err)
	}
	return updated, nil
}

func (s *conferenceService) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	conference, err := s.conferenceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get conference: %w", err)
	}
	return conference, nil
}
