package repository

import (
	"context"
	"fmt"

	"ott-admin/internal/domain"
	"ott-admin/pkg/database"
)

type PostgresSubscriptionRepository struct {
	db *database.PostgresDB
}

func NewPostgresSubscriptionRepository(db *database.PostgresDB) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{db: db}
}

// List retrieves all subscriptions with their plan rows joined in, newest
// first. Subscriptions whose plan row is gone still come back, with a nil
// Plan.
func (r *PostgresSubscriptionRepository) List(ctx context.Context) ([]domain.Subscription, error) {
	query := `
		SELECT s.id, s.user_id, s.plan_id, COALESCE(s.status, ''),
		       s.start_date, s.end_date, s.created_at,
		       p.id, p.name, p.price, p.duration_days, p.tier
		FROM user_subscriptions s
		LEFT JOIN subscription_plans p ON p.id = s.plan_id
		ORDER BY s.created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	var subscriptions []domain.Subscription
	for rows.Next() {
		var sub domain.Subscription
		var planID, planName, planTier *string
		var planPrice *float64
		var planDuration *int

		err := rows.Scan(
			&sub.ID,
			&sub.UserID,
			&sub.PlanID,
			&sub.Status,
			&sub.StartDate,
			&sub.EndDate,
			&sub.CreatedAt,
			&planID,
			&planName,
			&planPrice,
			&planDuration,
			&planTier,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}

		if planID != nil {
			plan := domain.Plan{ID: *planID}
			if planName != nil {
				plan.Name = *planName
			}
			if planPrice != nil {
				plan.Price = *planPrice
			}
			if planDuration != nil {
				plan.DurationDays = *planDuration
			}
			if planTier != nil {
				plan.Tier = *planTier
			}
			sub.Plan = &plan
		}

		subscriptions = append(subscriptions, sub)
	}

	return subscriptions, rows.Err()
}
