package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"convomanage/internal/domain"
)

const registrationColumns = "id, conference_id, user_id, status, payment_status, payment_intent_id, registered_at"

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{DB: db}
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (conference_id, user_id, status, payment_status, registered_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var payNull sql.NullString
	if reg.PaymentStatus != nil {
		payNull = sql.NullString{String: string(*reg.PaymentStatus), Valid: true}
	}
	err := r.DB.QueryRowContext(ctx, query, reg.ConferenceID, reg.UserID, reg.Status, payNull, reg.RegisteredAt).Scan(&reg.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

func (r *registrationRepository) GetByConferenceAndUser(ctx context.Context, conferenceID, userID string) (*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE conference_id = $1 AND user_id = $2
	`
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx, query, conferenceID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE user_id = $1
		ORDER BY registered_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (r *registrationRepository) ConfirmedConferenceIDs(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT conference_id
		FROM registrations
		WHERE user_id = $1 AND status = $2
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, domain.RegistrationConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanRegistration(row scanner) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var payNull, intentNull sql.NullString
	err := row.Scan(&reg.ID, &reg.ConferenceID, &reg.UserID, &reg.Status, &payNull, &intentNull, &reg.RegisteredAt)
	if err != nil {
		return nil, err
	}
	if payNull.Valid {
		ps := domain.PaymentStatus(payNull.String)
		reg.PaymentStatus = &ps
	}
	if intentNull.Valid {
		reg.PaymentIntentID = &intentNull.String
	}
	return reg, nil
}
