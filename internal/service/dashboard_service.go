package service

import (
	"context"
	"encoding/json"

	"ott-admin/internal/domain"
	"ott-admin/internal/repository"
	"ott-admin/pkg/logger"
	"ott-admin/pkg/redis"
)

// dashboardService builds the overview payload from the payment snapshot,
// the subscriber store and the series count, caching the assembled result
// in Redis for a short window.
type dashboardService struct {
	payments    PaymentProvider
	subscribers SubscriberService
	seriesRepo  repository.SeriesRepository
	cache       *redis.Client
	logger      *logger.Logger
}

// NewDashboardService creates a new dashboard service. cache may be nil;
// the summary is then rebuilt on every call.
func NewDashboardService(
	payments PaymentProvider,
	subscribers SubscriberService,
	seriesRepo repository.SeriesRepository,
	cache *redis.Client,
	log *logger.Logger,
) DashboardService {
	return &dashboardService{
		payments:    payments,
		subscribers: subscribers,
		seriesRepo:  seriesRepo,
		cache:       cache,
		logger:      log,
	}
}

// Summary returns the cached dashboard overview, rebuilding it on a miss
func (s *dashboardService) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	if s.cache != nil {
		key := s.cache.KeyBuilder.KeyDashboardSummary()
		if cached, err := s.cache.Get(ctx, key); err == nil {
			var summary domain.DashboardSummary
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return &summary, nil
			}
			s.logger.Warn("Discarding undecodable cached dashboard summary")
		} else if err != redis.Nil {
			s.logger.WithError(err).Warn("Dashboard cache read failed, rebuilding")
		}
	}

	summary, err := s.build(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(summary); err == nil {
			key := s.cache.KeyBuilder.KeyDashboardSummary()
			if err := s.cache.Set(ctx, key, encoded, redis.TTLDashboardSummary); err != nil {
				s.logger.WithError(err).Warn("Dashboard cache write failed")
			}
		}
	}

	return summary, nil
}

func (s *dashboardService) build(ctx context.Context) (*domain.DashboardSummary, error) {
	now := timeNow()

	stats, err := s.subscribers.Stats(ctx)
	if err != nil {
		return nil, err
	}

	seriesCount, err := s.seriesRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardSummary{
		Revenue:     SummarizeRevenue(s.payments.Snapshot(), now),
		Subscribers: stats,
		SeriesCount: seriesCount,
		GeneratedAt: now,
	}, nil
}
