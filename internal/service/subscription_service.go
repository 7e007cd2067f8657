package service

import (
	"context"
	"fmt"

	"ott-admin/internal/domain"
	"ott-admin/internal/repository"
	"ott-admin/pkg/logger"
)

// subscriptionService assembles the enriched subscription list from the
// subscription, user and payment tables
type subscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
	subscriberRepo   repository.SubscriberRepository
	paymentRepo      repository.PaymentRepository
	payments         PaymentProvider
	paymentLimit     int
	logger           *logger.Logger
}

// NewSubscriptionService creates a new subscription service. payments may
// be nil, in which case every call reads the payment table directly.
func NewSubscriptionService(
	repos *repository.Repositories,
	payments PaymentProvider,
	paymentLimit int,
	log *logger.Logger,
) SubscriptionService {
	return &subscriptionService{
		subscriptionRepo: repos.Subscription,
		subscriberRepo:   repos.Subscriber,
		paymentRepo:      repos.Payment,
		payments:         payments,
		paymentLimit:     paymentLimit,
		logger:           log,
	}
}

func (s *subscriptionService) loadPayments(ctx context.Context) ([]domain.Payment, error) {
	if s.payments != nil {
		if snapshot := s.payments.Snapshot(); len(snapshot) > 0 {
			return snapshot, nil
		}
	}
	return s.paymentRepo.List(ctx, s.paymentLimit)
}

// ListEnriched returns enriched subscriptions matching the query
func (s *subscriptionService) ListEnriched(ctx context.Context, query domain.SubscriptionQuery) ([]domain.EnrichedSubscription, error) {
	subscriptions, err := s.subscriptionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}

	subscribers, err := s.subscriberRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscribers: %w", err)
	}

	payments, err := s.loadPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	enriched := BuildEnrichedSubscriptions(subscriptions, subscribers, payments)
	filtered := FilterSubscriptions(enriched, payments, query)

	s.logger.WithFields(map[string]interface{}{
		"total":    len(enriched),
		"filtered": len(filtered),
	}).Debug("Built enriched subscription list")

	return filtered, nil
}

// ExportCSV renders the subscriber summaries matching the query as CSV.
// The export is subscriber-level: one row per user with that user's
// payment aggregates, not one row per subscription.
func (s *subscriptionService) ExportCSV(ctx context.Context, query domain.SubscriptionQuery) ([]byte, string, error) {
	subscribers, err := s.subscriberRepo.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load subscribers: %w", err)
	}

	payments, err := s.loadPayments(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load payments: %w", err)
	}

	summaries := BuildSubscriberSummaries(subscribers, payments)
	filtered := FilterSubscriberSummaries(summaries, payments, query)

	return BuildSubscriptionsCSV(filtered), ExportFilename(timeNow()), nil
}
