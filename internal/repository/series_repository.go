package repository

import (
	"context"
	"errors"
	"fmt"

	"ott-admin/internal/domain"
	"ott-admin/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// undefinedColumn is the Postgres error code raised when a query names a
// column that does not exist. Older deployments predate the visible
// column, so series reads retry without it and treat every row as visible.
const undefinedColumn = "42703"

type PostgresSeriesRepository struct {
	db  *database.PostgresDB
	log *zap.Logger
}

func NewPostgresSeriesRepository(db *database.PostgresDB, log *zap.Logger) *PostgresSeriesRepository {
	return &PostgresSeriesRepository{db: db, log: log}
}

func isUndefinedColumn(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == undefinedColumn
}

// List retrieves all series, newest first
func (r *PostgresSeriesRepository) List(ctx context.Context) ([]domain.Series, error) {
	series, err := r.listWithVisibility(ctx)
	if err == nil {
		return series, nil
	}
	if !isUndefinedColumn(err) {
		return nil, err
	}

	r.log.Warn("series_meta has no visible column, treating all series as visible")
	return r.listWithoutVisibility(ctx)
}

func (r *PostgresSeriesRepository) listWithVisibility(ctx context.Context) ([]domain.Series, error) {
	query := `
		SELECT id, COALESCE(title, ''), COALESCE(genre, ''), COALESCE(description, ''),
		       COALESCE(category, ''), COALESCE(poster_url, ''), COALESCE(episode_count, 0),
		       COALESCE(status, ''), COALESCE(visible, true), COALESCE(is_featured, false),
		       created_at
		FROM series_meta
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}
	defer rows.Close()

	return scanSeriesRows(rows, true)
}

func (r *PostgresSeriesRepository) listWithoutVisibility(ctx context.Context) ([]domain.Series, error) {
	query := `
		SELECT id, COALESCE(title, ''), COALESCE(genre, ''), COALESCE(description, ''),
		       COALESCE(category, ''), COALESCE(poster_url, ''), COALESCE(episode_count, 0),
		       COALESCE(status, ''), COALESCE(is_featured, false), created_at
		FROM series_meta
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}
	defer rows.Close()

	return scanSeriesRows(rows, false)
}

func scanSeriesRows(rows pgx.Rows, withVisible bool) ([]domain.Series, error) {
	var series []domain.Series
	for rows.Next() {
		var s domain.Series
		var err error
		if withVisible {
			err = rows.Scan(&s.ID, &s.Title, &s.Genre, &s.Description, &s.Category,
				&s.PosterURL, &s.EpisodeCount, &s.Status, &s.Visible, &s.IsFeatured, &s.CreatedAt)
		} else {
			err = rows.Scan(&s.ID, &s.Title, &s.Genre, &s.Description, &s.Category,
				&s.PosterURL, &s.EpisodeCount, &s.Status, &s.IsFeatured, &s.CreatedAt)
			s.Visible = true
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan series: %w", err)
		}
		series = append(series, s)
	}
	return series, rows.Err()
}

// GetByID retrieves a series by ID
func (r *PostgresSeriesRepository) GetByID(ctx context.Context, id string) (*domain.Series, error) {
	var s domain.Series
	query := `
		SELECT id, COALESCE(title, ''), COALESCE(genre, ''), COALESCE(description, ''),
		       COALESCE(category, ''), COALESCE(poster_url, ''), COALESCE(episode_count, 0),
		       COALESCE(status, ''), COALESCE(visible, true), COALESCE(is_featured, false),
		       created_at
		FROM series_meta
		WHERE id = $1
	`

	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Title, &s.Genre, &s.Description, &s.Category,
		&s.PosterURL, &s.EpisodeCount, &s.Status, &s.Visible, &s.IsFeatured, &s.CreatedAt,
	)
	if isUndefinedColumn(err) {
		return r.getByIDWithoutVisibility(ctx, id)
	}
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get series: %w", err)
	}

	return &s, nil
}

func (r *PostgresSeriesRepository) getByIDWithoutVisibility(ctx context.Context, id string) (*domain.Series, error) {
	var s domain.Series
	query := `
		SELECT id, COALESCE(title, ''), COALESCE(genre, ''), COALESCE(description, ''),
		       COALESCE(category, ''), COALESCE(poster_url, ''), COALESCE(episode_count, 0),
		       COALESCE(status, ''), COALESCE(is_featured, false), created_at
		FROM series_meta
		WHERE id = $1
	`

	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Title, &s.Genre, &s.Description, &s.Category,
		&s.PosterURL, &s.EpisodeCount, &s.Status, &s.IsFeatured, &s.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get series: %w", err)
	}

	s.Visible = true
	return &s, nil
}

// Create inserts a series and its episodes in one transaction
func (r *PostgresSeriesRepository) Create(ctx context.Context, series *domain.Series, episodes []domain.Episode) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO series_meta (id, title, genre, description, category, poster_url,
		                    episode_count, status, visible, is_featured, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING created_at
	`
	err = tx.QueryRow(ctx, query,
		series.ID,
		series.Title,
		series.Genre,
		series.Description,
		series.Category,
		series.PosterURL,
		series.EpisodeCount,
		series.Status,
		series.Visible,
		series.IsFeatured,
	).Scan(&series.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create series: %w", err)
	}

	if err := insertEpisodes(ctx, tx, series.ID, episodes); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Update rewrites a series row and replaces its episodes in one transaction
func (r *PostgresSeriesRepository) Update(ctx context.Context, series *domain.Series, episodes []domain.Episode) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE series_meta
		SET title = $2, genre = $3, description = $4, poster_url = $5,
		    episode_count = $6, status = $7, is_featured = $8
		WHERE id = $1
	`
	tag, err := tx.Exec(ctx, query,
		series.ID,
		series.Title,
		series.Genre,
		series.Description,
		series.PosterURL,
		series.EpisodeCount,
		series.Status,
		series.IsFeatured,
	)
	if err != nil {
		return fmt.Errorf("failed to update series: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if _, err := tx.Exec(ctx, `DELETE FROM episodes WHERE series_id = $1`, series.ID); err != nil {
		return fmt.Errorf("failed to clear episodes: %w", err)
	}
	if err := insertEpisodes(ctx, tx, series.ID, episodes); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Delete removes a series and its episodes in one transaction
func (r *PostgresSeriesRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM episodes WHERE series_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete episodes: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM series_meta WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete series: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return tx.Commit(ctx)
}

// SetVisibility sets the visible flag on a series
func (r *PostgresSeriesRepository) SetVisibility(ctx context.Context, id string, visible bool) error {
	tag, err := r.db.Pool.Exec(ctx, `UPDATE series_meta SET visible = $2 WHERE id = $1`, id, visible)
	if err != nil {
		return fmt.Errorf("failed to set visibility: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SetFeatured makes id the only featured series. The clear and the set
// happen in the same transaction so readers never observe two featured
// rows or none.
func (r *PostgresSeriesRepository) SetFeatured(ctx context.Context, id string) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE series_meta SET is_featured = false WHERE is_featured = true`); err != nil {
		return fmt.Errorf("failed to clear featured flags: %w", err)
	}

	tag, err := tx.Exec(ctx, `UPDATE series_meta SET is_featured = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to set featured flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return tx.Commit(ctx)
}

// ClearFeatured unsets the featured flag everywhere
func (r *PostgresSeriesRepository) ClearFeatured(ctx context.Context) error {
	_, err := r.db.Pool.Exec(ctx, `UPDATE series_meta SET is_featured = false WHERE is_featured = true`)
	if err != nil {
		return fmt.Errorf("failed to clear featured flags: %w", err)
	}
	return nil
}

// Count returns the number of series rows
func (r *PostgresSeriesRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM series_meta`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count series: %w", err)
	}
	return count, nil
}

// ListEpisodes retrieves the episodes of a series in episode order
func (r *PostgresSeriesRepository) ListEpisodes(ctx context.Context, seriesID string) ([]domain.Episode, error) {
	query := `
		SELECT id, series_id, COALESCE(title, ''), episode_number,
		       COALESCE(video_url, ''), COALESCE(thumbnail_url, '')
		FROM episodes
		WHERE series_id = $1
		ORDER BY episode_number ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, seriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to list episodes: %w", err)
	}
	defer rows.Close()

	var episodes []domain.Episode
	for rows.Next() {
		var e domain.Episode
		err := rows.Scan(&e.ID, &e.SeriesID, &e.Title, &e.EpisodeNumber, &e.VideoURL, &e.ThumbnailURL)
		if err != nil {
			return nil, fmt.Errorf("failed to scan episode: %w", err)
		}
		episodes = append(episodes, e)
	}

	return episodes, rows.Err()
}

func insertEpisodes(ctx context.Context, tx pgx.Tx, seriesID string, episodes []domain.Episode) error {
	query := `
		INSERT INTO episodes (id, series_id, title, episode_number, video_url, thumbnail_url)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, e := range episodes {
		_, err := tx.Exec(ctx, query, e.ID, seriesID, e.Title, e.EpisodeNumber, e.VideoURL, e.ThumbnailURL)
		if err != nil {
			return fmt.Errorf("failed to insert episode %d: %w", e.EpisodeNumber, err)
		}
	}
	return nil
}
