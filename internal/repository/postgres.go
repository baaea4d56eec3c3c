package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tagihin/backend/internal/domain"
)

// PostgresProfileStore keeps profiles in a user_profiles table.
type PostgresProfileStore struct {
	db *pgxpool.Pool
}

func NewPostgresProfileStore(db *pgxpool.Pool) *PostgresProfileStore {
	return &PostgresProfileStore{db: db}
}

func (s *PostgresProfileStore) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `
		SELECT id, user_id, plan, premium_until, wa_reminder_count, wa_reset_date
		FROM user_profiles WHERE user_id = $1 ORDER BY created_at LIMIT 1
	`
	row := s.db.QueryRow(ctx, query, userID)
	var p domain.Profile
	err := row.Scan(&p.ID, &p.UserID, &p.Plan, &p.PremiumUntil, &p.WAReminderCount, &p.WAResetDate)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // no profile yet
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return &p, nil
}

func (s *PostgresProfileStore) Create(ctx context.Context, p *domain.Profile) error {
	query := `
		INSERT INTO user_profiles (id, user_id, plan, premium_until, wa_reminder_count, wa_reset_date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.Exec(ctx, query,
		p.ID, p.UserID, p.Plan, p.PremiumUntil, p.WAReminderCount, p.WAResetDate,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (s *PostgresProfileStore) Update(ctx context.Context, id string, p *domain.Profile) error {
	query := `
		UPDATE user_profiles SET plan = $1, premium_until = $2, wa_reminder_count = $3
		WHERE id = $4
	`
	_, err := s.db.Exec(ctx, query, p.Plan, p.PremiumUntil, p.WAReminderCount, id)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

func (s *PostgresProfileStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
