package repository

import (
	"context"
	"fmt"

	"ott-admin/internal/domain"
	"ott-admin/pkg/database"
)

type PostgresPaymentRepository struct {
	db *database.PostgresDB
}

func NewPostgresPaymentRepository(db *database.PostgresDB) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{db: db}
}

// List retrieves the most recent payments up to limit, newest first.
// Amounts are stored in minor units (paise).
func (r *PostgresPaymentRepository) List(ctx context.Context, limit int) ([]domain.Payment, error) {
	query := `
		SELECT id, COALESCE(user_id, ''), COALESCE(user_email, ''),
		       COALESCE(plan_id, ''), amount, COALESCE(status, ''),
		       COALESCE(method, ''), COALESCE(razorpay_payment_id, ''),
		       COALESCE(razorpay_order_id, ''), created_at, completed_at
		FROM payments
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.UserEmail,
			&p.PlanID,
			&p.Amount,
			&p.Status,
			&p.Method,
			&p.GatewayPaymentID,
			&p.GatewayOrderID,
			&p.CreatedAt,
			&p.CompletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}
