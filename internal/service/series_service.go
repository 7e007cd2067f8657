package service

import (
	"context"
	"fmt"
	"strings"

	"ott-admin/internal/domain"
	"ott-admin/internal/repository"
	"ott-admin/pkg/errors"
	"ott-admin/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Video kinds recognised by the player
const (
	VideoKindHLS = "hls"
	VideoKindMP4 = "mp4"
)

// ValidateVideoURL classifies a CDN video URL as HLS or MP4. Embed player
// URLs are rejected outright because the mobile clients play streams
// directly and cannot load an iframe.
func ValidateVideoURL(rawURL string) (string, error) {
	url := strings.TrimSpace(rawURL)
	if url == "" {
		return "", errors.NewValidationError("video URL is required", nil)
	}

	lower := strings.ToLower(url)
	if strings.Contains(lower, "iframe.mediadelivery.net") || strings.Contains(lower, "/embed/") {
		return "", errors.NewValidationError("embed player URLs cannot be played directly, use the CDN stream URL", nil)
	}

	if strings.Contains(lower, ".b-cdn.net") {
		if strings.Contains(lower, "playlist.m3u8") {
			return VideoKindHLS, nil
		}
		if strings.Contains(lower, ".mp4") || strings.Contains(lower, "play_") {
			return VideoKindMP4, nil
		}
	}
	if strings.Contains(lower, ".m3u8") {
		return VideoKindHLS, nil
	}
	if strings.Contains(lower, ".mp4") {
		return VideoKindMP4, nil
	}

	return "", errors.NewValidationError("unsupported video URL, expected an HLS playlist or MP4 stream", nil)
}

type seriesService struct {
	repo   repository.SeriesRepository
	logger *logger.Logger
}

// NewSeriesService creates a new series service
func NewSeriesService(repo repository.SeriesRepository, log *logger.Logger) SeriesService {
	return &seriesService{repo: repo, logger: log}
}

// List returns all series. Rows written by the legacy uploader carry the
// status "active", which maps to completed here.
func (s *seriesService) List(ctx context.Context) ([]domain.Series, error) {
	series, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range series {
		series[i].Status = normalizeSeriesStatus(series[i].Status)
	}
	return series, nil
}

func normalizeSeriesStatus(status string) string {
	if status == "active" {
		return domain.SeriesStatusCompleted
	}
	return status
}

// Get returns a series with its episodes
func (s *seriesService) Get(ctx context.Context, id string) (*domain.Series, []domain.Episode, error) {
	series, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if series == nil {
		return nil, nil, errors.NewNotFoundError("series not found")
	}
	series.Status = normalizeSeriesStatus(series.Status)

	episodes, err := s.repo.ListEpisodes(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return series, episodes, nil
}

func validateSeriesInput(input domain.SeriesInput, requireEpisodes bool) error {
	if strings.TrimSpace(input.Title) == "" {
		return errors.NewValidationError("title is required", nil)
	}
	if strings.TrimSpace(input.PosterURL) == "" {
		return errors.NewValidationError("poster URL is required", nil)
	}
	if input.Genre != "" && !domain.IsValidGenre(input.Genre) {
		return errors.NewValidationError(fmt.Sprintf("unknown genre %q", input.Genre), nil)
	}
	if requireEpisodes && len(input.Episodes) == 0 {
		return errors.NewValidationError("at least one episode is required", nil)
	}
	for i, ep := range input.Episodes {
		if _, err := ValidateVideoURL(ep.VideoURL); err != nil {
			return errors.NewValidationError(fmt.Sprintf("episode %d: %s", i+1, err.Error()), nil)
		}
	}
	return nil
}

func buildEpisodes(seriesID string, inputs []domain.EpisodeInput) []domain.Episode {
	episodes := make([]domain.Episode, 0, len(inputs))
	for i, in := range inputs {
		title := strings.TrimSpace(in.Title)
		if title == "" {
			title = fmt.Sprintf("Episode %d", i+1)
		}
		episodes = append(episodes, domain.Episode{
			ID:            uuid.New().String(),
			SeriesID:      seriesID,
			Title:         title,
			EpisodeNumber: i + 1,
			VideoURL:      strings.TrimSpace(in.VideoURL),
			ThumbnailURL:  strings.TrimSpace(in.ThumbnailURL),
		})
	}
	return episodes
}

// Publish creates a fully uploaded series with its episodes
func (s *seriesService) Publish(ctx context.Context, input domain.SeriesInput) (*domain.Series, error) {
	if err := validateSeriesInput(input, true); err != nil {
		return nil, err
	}

	genre := input.Genre
	if genre == "" {
		genre = domain.DefaultGenre
	}

	series := &domain.Series{
		ID:           uuid.New().String(),
		Title:        strings.TrimSpace(input.Title),
		Genre:        genre,
		Description:  strings.TrimSpace(input.Description),
		Category:     domain.SeriesCategoryLatest,
		PosterURL:    strings.TrimSpace(input.PosterURL),
		EpisodeCount: len(input.Episodes),
		Status:       domain.SeriesStatusCompleted,
		Visible:      true,
	}
	episodes := buildEpisodes(series.ID, input.Episodes)

	if err := s.repo.Create(ctx, series, episodes); err != nil {
		return nil, err
	}

	if input.Featured {
		if err := s.repo.SetFeatured(ctx, series.ID); err != nil {
			return nil, err
		}
		series.IsFeatured = true
	}

	s.logger.WithFields(map[string]interface{}{
		"series_id": series.ID,
		"episodes":  len(episodes),
	}).Info("Published series")

	return series, nil
}

// SaveComingSoon creates a teaser entry with no playable episodes
func (s *seriesService) SaveComingSoon(ctx context.Context, input domain.SeriesInput) (*domain.Series, error) {
	if err := validateSeriesInput(input, false); err != nil {
		return nil, err
	}

	genre := input.Genre
	if genre == "" {
		genre = domain.DefaultGenre
	}

	series := &domain.Series{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(input.Title),
		Genre:       genre,
		Description: strings.TrimSpace(input.Description),
		Category:    domain.SeriesCategoryLatest,
		PosterURL:   strings.TrimSpace(input.PosterURL),
		Status:      domain.SeriesStatusComingSoon,
		Visible:     true,
	}

	if err := s.repo.Create(ctx, series, nil); err != nil {
		return nil, err
	}

	s.logger.WithField("series_id", series.ID).Info("Saved coming-soon series")
	return series, nil
}

// Update rewrites a series and wholesale replaces its episodes
func (s *seriesService) Update(ctx context.Context, id string, input domain.SeriesInput) (*domain.Series, error) {
	if err := validateSeriesInput(input, false); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errors.NewNotFoundError("series not found")
	}

	series := *existing
	series.Title = strings.TrimSpace(input.Title)
	if input.Genre != "" {
		series.Genre = input.Genre
	}
	series.Description = strings.TrimSpace(input.Description)
	series.PosterURL = strings.TrimSpace(input.PosterURL)
	if len(input.Episodes) > 0 {
		series.EpisodeCount = len(input.Episodes)
		series.Status = domain.SeriesStatusCompleted
	}

	episodes := buildEpisodes(series.ID, input.Episodes)
	if err := s.repo.Update(ctx, &series, episodes); err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.NewNotFoundError("series not found")
		}
		return nil, err
	}

	if input.Featured && !series.IsFeatured {
		if err := s.repo.SetFeatured(ctx, series.ID); err != nil {
			return nil, err
		}
		series.IsFeatured = true
	}

	return &series, nil
}

// Delete removes a series and its episodes
func (s *seriesService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if err == pgx.ErrNoRows {
		return errors.NewNotFoundError("series not found")
	}
	return err
}

// SetVisibility flips the visible flag
func (s *seriesService) SetVisibility(ctx context.Context, id string, visible bool) error {
	err := s.repo.SetVisibility(ctx, id, visible)
	if err == pgx.ErrNoRows {
		return errors.NewNotFoundError("series not found")
	}
	return err
}

// SetFeatured makes id the only featured series
func (s *seriesService) SetFeatured(ctx context.Context, id string) error {
	err := s.repo.SetFeatured(ctx, id)
	if err == pgx.ErrNoRows {
		return errors.NewNotFoundError("series not found")
	}
	return err
}

// ClearFeatured unsets the featured flag everywhere
func (s *seriesService) ClearFeatured(ctx context.Context) error {
	return s.repo.ClearFeatured(ctx)
}
