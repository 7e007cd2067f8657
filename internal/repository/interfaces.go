package repository

import (
	"context"

	"ott-admin/internal/domain"
)

// SubscriberRepository defines the interface for subscriber data operations
type SubscriberRepository interface {
	// List retrieves all subscribers, newest first
	List(ctx context.Context) ([]domain.Subscriber, error)

	// GetByID retrieves a subscriber by ID
	GetByID(ctx context.Context, id string) (*domain.Subscriber, error)

	// UpdateSubscriptionStatus sets a subscriber's subscription_status
	UpdateSubscriptionStatus(ctx context.Context, id, status string) error
}

// SubscriptionRepository defines the interface for subscription data operations
type SubscriptionRepository interface {
	// List retrieves all subscriptions with their plan rows joined in,
	// newest first
	List(ctx context.Context) ([]domain.Subscription, error)
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// List retrieves the most recent payments up to limit, newest first
	List(ctx context.Context, limit int) ([]domain.Payment, error)
}

// SeriesRepository defines the interface for series and episode operations
type SeriesRepository interface {
	// List retrieves all series, newest first
	List(ctx context.Context) ([]domain.Series, error)

	// GetByID retrieves a series by ID
	GetByID(ctx context.Context, id string) (*domain.Series, error)

	// Create inserts a series and its episodes in one transaction
	Create(ctx context.Context, series *domain.Series, episodes []domain.Episode) error

	// Update rewrites a series row and replaces its episodes in one
	// transaction
	Update(ctx context.Context, series *domain.Series, episodes []domain.Episode) error

	// Delete removes a series and its episodes in one transaction
	Delete(ctx context.Context, id string) error

	// SetVisibility sets the visible flag on a series
	SetVisibility(ctx context.Context, id string, visible bool) error

	// SetFeatured makes id the only featured series, atomically
	SetFeatured(ctx context.Context, id string) error

	// ClearFeatured unsets the featured flag everywhere
	ClearFeatured(ctx context.Context) error

	// Count returns the number of series rows
	Count(ctx context.Context) (int, error)

	// ListEpisodes retrieves the episodes of a series in episode order
	ListEpisodes(ctx context.Context, seriesID string) ([]domain.Episode, error)
}

// AuthLogRepository defines the interface for auth event lookups
type AuthLogRepository interface {
	// ListRecent retrieves the most recent auth events up to limit
	ListRecent(ctx context.Context, limit int) ([]domain.AuthLog, error)
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Subscriber   SubscriberRepository
	Subscription SubscriptionRepository
	Payment      PaymentRepository
	Series       SeriesRepository
	AuthLog      AuthLogRepository
}
