package repository

import (
	"context"
	"errors"
	"fmt"

	"ott-admin/internal/domain"
	"ott-admin/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// undefinedTable is raised when the auth_logs table has not been created
// in a deployment. The dashboard treats that as an empty log.
const undefinedTable = "42P01"

type PostgresAuthLogRepository struct {
	db  *database.PostgresDB
	log *zap.Logger
}

func NewPostgresAuthLogRepository(db *database.PostgresDB, log *zap.Logger) *PostgresAuthLogRepository {
	return &PostgresAuthLogRepository{db: db, log: log}
}

// ListRecent retrieves the most recent auth events up to limit
func (r *PostgresAuthLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuthLog, error) {
	query := `
		SELECT id, COALESCE(user_id, ''), COALESCE(action, ''), COALESCE(method, ''),
		       COALESCE(phone, ''), COALESCE(email, ''), COALESCE(ip_address, ''),
		       COALESCE(user_agent, ''), COALESCE(success, false), created_at
		FROM auth_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == undefinedTable {
			r.log.Warn("auth_logs table missing, returning empty log")
			return []domain.AuthLog{}, nil
		}
		return nil, fmt.Errorf("failed to list auth logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.AuthLog
	for rows.Next() {
		var l domain.AuthLog
		err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.Method, &l.Phone, &l.Email,
			&l.IPAddress, &l.UserAgent, &l.Success, &l.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan auth log: %w", err)
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}
