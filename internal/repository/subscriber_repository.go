package repository

import (
	"context"
	"fmt"

	"ott-admin/internal/domain"
	"ott-admin/pkg/database"

	"github.com/jackc/pgx/v5"
)

type PostgresSubscriberRepository struct {
	db *database.PostgresDB
}

func NewPostgresSubscriberRepository(db *database.PostgresDB) *PostgresSubscriberRepository {
	return &PostgresSubscriberRepository{db: db}
}

// List retrieves all subscribers, newest first
func (r *PostgresSubscriberRepository) List(ctx context.Context) ([]domain.Subscriber, error) {
	query := `
		SELECT id, COALESCE(email, ''), COALESCE(name, ''), COALESCE(phone, ''),
		       COALESCE(avatar_url, ''), COALESCE(subscription_status, 'inactive'),
		       created_at, updated_at
		FROM users
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	var subscribers []domain.Subscriber
	for rows.Next() {
		var s domain.Subscriber
		err := rows.Scan(
			&s.ID,
			&s.Email,
			&s.Name,
			&s.Phone,
			&s.AvatarURL,
			&s.SubscriptionStatus,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		subscribers = append(subscribers, s)
	}

	return subscribers, rows.Err()
}

// GetByID retrieves a subscriber by ID
func (r *PostgresSubscriberRepository) GetByID(ctx context.Context, id string) (*domain.Subscriber, error) {
	var s domain.Subscriber
	query := `
		SELECT id, COALESCE(email, ''), COALESCE(name, ''), COALESCE(phone, ''),
		       COALESCE(avatar_url, ''), COALESCE(subscription_status, 'inactive'),
		       created_at, updated_at
		FROM users
		WHERE id = $1
	`

	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.Email,
		&s.Name,
		&s.Phone,
		&s.AvatarURL,
		&s.SubscriptionStatus,
		&s.CreatedAt,
		&s.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscriber: %w", err)
	}

	return &s, nil
}

// UpdateSubscriptionStatus sets a subscriber's subscription_status
func (r *PostgresSubscriberRepository) UpdateSubscriptionStatus(ctx context.Context, id, status string) error {
	query := `
		UPDATE users
		SET subscription_status = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update subscription status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}
