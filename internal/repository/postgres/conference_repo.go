package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"convomanage/internal/domain"
)

const conferenceColumns = "id, title, description, start_date, end_date, timezone, status, is_paid, ticket_price, max_attendees, organizer_id, created_at, updated_at"

type conferenceRepository struct {
	DB *sql.DB
}

func NewConferenceRepository(db *sql.DB) domain.ConferenceRepository {
	return &conferenceRepository{DB: db}
}

func (r *conferenceRepository) Create(ctx context.Context, c *domain.Conference) error {
	query := `
		INSERT INTO conferences (title, description, start_date, end_date, timezone, status, is_paid, ticket_price, max_attendees, organizer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	var ticketNull sql.NullFloat64
	if c.TicketPrice != nil {
		ticketNull = sql.NullFloat64{Float64: *c.TicketPrice, Valid: true}
	}
	var maxNull sql.NullInt64
	if c.MaxAttendees != nil {
		maxNull = sql.NullInt64{Int64: int64(*c.MaxAttendees), Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query,
		c.Title, c.Description, c.StartDate, c.EndDate, c.Timezone, c.Status,
		c.IsPaid, ticketNull, maxNull, c.OrganizerID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *conferenceRepository) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	query := fmt.Sprintf(`SELECT %s FROM conferences WHERE id = $1`, conferenceColumns)
	c, err := scanConference(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *conferenceRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Conference, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM conferences
		WHERE organizer_id = $1
		ORDER BY start_date DESC
	`, conferenceColumns)
	return r.list(ctx, query, organizerID)
}

func (r *conferenceRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Conference, error) {
	// An empty id set matches nothing; never fall through to an
	// unconstrained query.
	if len(ids) == 0 {
		return []*domain.Conference{}, nil
	}
	query := fmt.Sprintf(`
		SELECT %s FROM conferences
		WHERE id = ANY($1)
		ORDER BY start_date DESC
	`, conferenceColumns)
	return r.list(ctx, query, pq.Array(ids))
}

func (r *conferenceRepository) ListByStatus(ctx context.Context, status domain.ConferenceStatus) ([]*domain.Conference, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM conferences
		WHERE status = $1
		ORDER BY start_date DESC
	`, conferenceColumns)
	return r.list(ctx, query, status)
}

func (r *conferenceRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Conference, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	conferences := make([]*domain.Conference, 0)
	for rows.Next() {
		c, err := scanConference(rows)
		if err != nil {
			return nil, err
		}
		conferences = append(conferences, c)
	}
	return conferences, rows.Err()
}

func (r *conferenceRepository) Update(ctx context.Context, id string, patch domain.ConferencePatch) (*domain.Conference, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	add := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.StartDate != nil {
		add("start_date", *patch.StartDate)
	}
	if patch.EndDate != nil {
		add("end_date", *patch.EndDate)
	}
	if patch.Timezone != nil {
		add("timezone", *patch.Timezone)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.IsPaid != nil {
		add("is_paid", *patch.IsPaid)
	}
	if patch.TicketPrice != nil {
		add("ticket_price", *patch.TicketPrice)
	} else if patch.IsPaid != nil && !*patch.IsPaid {
		setClauses = append(setClauses, "ticket_price = NULL")
	}
	if patch.MaxAttendees != nil {
		add("max_attendees", *patch.MaxAttendees)
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE conferences SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, conferenceColumns)
	c, err := scanConference(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanConference(row scanner) (*domain.Conference, error) {
	c := &domain.Conference{}
	var ticketNull sql.NullFloat64
	var maxNull sql.NullInt64
	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &c.StartDate, &c.EndDate, &c.Timezone,
		&c.Status, &c.IsPaid, &ticketNull, &maxNull, &c.OrganizerID,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if ticketNull.Valid {
		c.TicketPrice = &ticketNull.Float64
	}
	if maxNull.Valid {
		m := int(maxNull.Int64)
		c.MaxAttendees = &m
	}
	return c, nil
}
