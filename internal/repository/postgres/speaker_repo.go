package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/lib/pq"

	"convomanage/internal/domain"
)

type speakerRepository struct {
	DB *sql.DB
}

func NewSpeakerRepository(db *sql.DB) domain.SpeakerRepository {
	return &speakerRepository{DB: db}
}

func (r *speakerRepository) Create(ctx context.Context, sp *domain.Speaker) error {
	links, err := json.Marshal(sp.SocialLinks)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO speakers (user_id, bio, expertise, social_links)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRowContext(ctx, query, sp.UserID, sp.Bio, pq.Array(sp.Expertise), links).
		Scan(&sp.ID, &sp.CreatedAt, &sp.UpdatedAt)
}

func (r *speakerRepository) GetByUserID(ctx context.Context, userID string) (*domain.Speaker, error) {
	query := `
		SELECT id, user_id, bio, expertise, social_links, created_at, updated_at
		FROM speakers
		WHERE user_id = $1
	`
	sp := &domain.Speaker{}
	var links []byte
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&sp.ID, &sp.UserID, &sp.Bio, pq.Array(&sp.Expertise), &links,
		&sp.CreatedAt, &sp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if len(links) > 0 {
		if err := json.Unmarshal(links, &sp.SocialLinks); err != nil {
			return nil, err
		}
	}
	return sp, nil
}
