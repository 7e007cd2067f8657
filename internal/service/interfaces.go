package service

import (
	"context"

	"ott-admin/internal/domain"
)

// SubscriptionService builds the enriched subscription views the dashboard
// lists and exports
type SubscriptionService interface {
	// ListEnriched returns enriched subscriptions matching the query
	ListEnriched(ctx context.Context, query domain.SubscriptionQuery) ([]domain.EnrichedSubscription, error)

	// ExportCSV renders the enriched subscriptions matching the query as
	// CSV and returns the payload with its download filename
	ExportCSV(ctx context.Context, query domain.SubscriptionQuery) ([]byte, string, error)
}

// SubscriberService serves the subscriber list from an in-memory store
// kept fresh by realtime change events
type SubscriberService interface {
	// Start loads the store and begins applying realtime changes
	Start(ctx context.Context) error

	// Stop tears down the realtime subscription
	Stop()

	// List returns subscriber summaries, newest first
	List(ctx context.Context) ([]domain.SubscriberSummary, error)

	// Stats returns aggregate subscriber counts
	Stats(ctx context.Context) (domain.SubscriberStats, error)

	// SetActive flips a subscriber's subscription status
	SetActive(ctx context.Context, id string, active bool) (*domain.Subscriber, error)
}

// SeriesService manages the series catalog
type SeriesService interface {
	List(ctx context.Context) ([]domain.Series, error)
	Get(ctx context.Context, id string) (*domain.Series, []domain.Episode, error)
	Publish(ctx context.Context, input domain.SeriesInput) (*domain.Series, error)
	SaveComingSoon(ctx context.Context, input domain.SeriesInput) (*domain.Series, error)
	Update(ctx context.Context, id string, input domain.SeriesInput) (*domain.Series, error)
	Delete(ctx context.Context, id string) error
	SetVisibility(ctx context.Context, id string, visible bool) error
	SetFeatured(ctx context.Context, id string) error
	ClearFeatured(ctx context.Context) error
}

// DashboardService assembles the cached dashboard overview
type DashboardService interface {
	Summary(ctx context.Context) (*domain.DashboardSummary, error)
}

// PaymentProvider hands out the most recently polled payment set
type PaymentProvider interface {
	Snapshot() []domain.Payment
}
