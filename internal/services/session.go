package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"convomanage/internal/domain"
)

type sessionService struct {
	sessionRepo    domain.SessionRepository
	conferenceRepo domain.ConferenceRepository
}

func NewSessionService(sessionRepo domain.SessionRepository, conferenceRepo domain.ConferenceRepository) domain.SessionService {
	return &sessionService{sessionRepo: sessionRepo, conferenceRepo: conferenceRepo}
}

func (s *sessionService) Create(ctx context.Context, conferenceID, userID string, draft domain.SessionDraft) (*domain.Session, error) {
	conference, err := s.conferenceRepo.GetByID(ctx, conferenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get conference: %w", err)
	}
	if conference.OrganizerID != userID {
		return nil, domain.ErrForbidden
	}

	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if !draft.EndTime.After(draft.StartTime) {
		return nil, fmt.Errorf("end_time must be after start_time")
	}

	now := time.Now()
	session := domain.NewSession(conferenceID, title, draft.Description, draft.StartTime, draft.EndTime, now, now)
	session.SpeakerID = draft.SpeakerID
	session.MaxAttendees = draft.MaxAttendees
	session.MeetingURL = draft.MeetingURL
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

func (s *sessionService) ListByConference(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	if _, err := s.conferenceRepo.GetByID(ctx, conferenceID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get conference: %w", err)
	}
	sessions, err := s.sessionRepo.ListByConferenceID(ctx, conferenceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}
