package postgres

import (
	"context"
	"database/sql"

	"convomanage/internal/domain"
)

type sessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &sessionRepository{DB: db}
}

func (r *sessionRepository) Create(ctx context.Context, s *domain.Session) error {
	query := `
		INSERT INTO sessions (conference_id, title, description, start_time, end_time, speaker_id, max_attendees, meeting_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	var speakerNull, urlNull sql.NullString
	if s.SpeakerID != nil {
		speakerNull = sql.NullString{String: *s.SpeakerID, Valid: true}
	}
	if s.MeetingURL != nil {
		urlNull = sql.NullString{String: *s.MeetingURL, Valid: true}
	}
	var maxNull sql.NullInt64
	if s.MaxAttendees != nil {
		maxNull = sql.NullInt64{Int64: int64(*s.MaxAttendees), Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query,
		s.ConferenceID, s.Title, s.Description, s.StartTime, s.EndTime,
		speakerNull, maxNull, urlNull,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *sessionRepository) ListByConferenceID(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	query := `
		SELECT id, conference_id, title, description, start_time, end_time, speaker_id, max_attendees, meeting_url, created_at, updated_at
		FROM sessions
		WHERE conference_id = $1
		ORDER BY start_time ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, conferenceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sessions := make([]*domain.Session, 0)
	for rows.Next() {
		s := &domain.Session{}
		var speakerNull, urlNull sql.NullString
		var maxNull sql.NullInt64
		if err := rows.Scan(&s.ID, &s.ConferenceID, &s.Title, &s.Description, &s.StartTime, &s.EndTime, &speakerNull, &maxNull, &urlNull, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if speakerNull.Valid {
			s.SpeakerID = &speakerNull.String
		}
		if maxNull.Valid {
			m := int(maxNull.Int64)
			s.MaxAttendees = &m
		}
		if urlNull.Valid {
			s.MeetingURL = &urlNull.String
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
