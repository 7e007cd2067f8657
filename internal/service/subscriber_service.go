package service

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"ott-admin/internal/domain"
	"ott-admin/internal/repository"
	"ott-admin/pkg/errors"
	"ott-admin/pkg/logger"
	"ott-admin/pkg/supabase"

	"github.com/jackc/pgx/v5"
)

// subscriberService keeps the users table mirrored in memory so list and
// stats reads never fan out to Postgres. Realtime change events keep the
// mirror fresh; events that race the initial bulk load are buffered and
// replayed once the load lands.
type subscriberService struct {
	repo     repository.SubscriberRepository
	payments PaymentProvider
	realtime *supabase.Client
	logger   *logger.Logger

	mu      sync.RWMutex
	byID    map[string]domain.Subscriber
	loaded  bool
	pending []supabase.ChangeEvent

	sub *supabase.Subscription
}

// NewSubscriberService creates a new subscriber service. realtime may be
// nil when Supabase credentials are not configured; the mirror then only
// reflects writes made through this process.
func NewSubscriberService(
	repo repository.SubscriberRepository,
	payments PaymentProvider,
	realtime *supabase.Client,
	log *logger.Logger,
) SubscriberService {
	return &subscriberService{
		repo:     repo,
		payments: payments,
		realtime: realtime,
		logger:   log,
		byID:     make(map[string]domain.Subscriber),
	}
}

// Start loads the store and begins applying realtime changes. The
// subscription opens before the bulk load so no change can fall between
// the two.
func (s *subscriberService) Start(ctx context.Context) error {
	if s.realtime != nil {
		sub, err := s.realtime.Subscribe(ctx, "users", s.handleChange)
		if err != nil {
			return err
		}
		s.sub = sub
	}

	subscribers, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	for _, subr := range subscribers {
		s.byID[subr.ID] = subr
	}
	s.loaded = true
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, ev := range pending {
		s.applyChange(ev)
	}

	s.logger.WithFields(map[string]interface{}{
		"subscribers": len(subscribers),
		"replayed":    len(pending),
		"realtime":    s.realtime != nil,
	}).Info("Subscriber store loaded")

	return nil
}

// Stop tears down the realtime subscription
func (s *subscriberService) Stop() {
	if s.sub != nil {
		s.sub.Close()
	}
}

func (s *subscriberService) handleChange(ev supabase.ChangeEvent) {
	s.mu.Lock()
	if !s.loaded {
		s.pending = append(s.pending, ev)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.applyChange(ev)
}

// applyChange folds one change event into the mirror. Updates carrying an
// updated_at older than the row we already hold are stale replays and get
// dropped.
func (s *subscriberService) applyChange(ev supabase.ChangeEvent) {
	switch ev.Type {
	case "INSERT", "UPDATE":
		var subr domain.Subscriber
		if err := json.Unmarshal(ev.Record, &subr); err != nil {
			s.logger.WithError(err).Warn("Dropping undecodable subscriber change")
			return
		}
		s.mu.Lock()
		existing, ok := s.byID[subr.ID]
		if ok && existing.UpdatedAt.After(subr.UpdatedAt) {
			s.mu.Unlock()
			s.logger.WithField("subscriber_id", subr.ID).Debug("Dropping stale subscriber change")
			return
		}
		s.byID[subr.ID] = subr
		s.mu.Unlock()
	case "DELETE":
		var subr domain.Subscriber
		if err := json.Unmarshal(ev.OldRecord, &subr); err != nil || subr.ID == "" {
			s.logger.Warn("Dropping delete event without a usable old record")
			return
		}
		s.mu.Lock()
		delete(s.byID, subr.ID)
		s.mu.Unlock()
	}
}

func (s *subscriberService) snapshot(ctx context.Context) ([]domain.Subscriber, error) {
	s.mu.RLock()
	loaded := s.loaded
	subscribers := make([]domain.Subscriber, 0, len(s.byID))
	for _, subr := range s.byID {
		subscribers = append(subscribers, subr)
	}
	s.mu.RUnlock()

	if !loaded {
		return s.repo.List(ctx)
	}

	sort.Slice(subscribers, func(i, j int) bool {
		if !subscribers[i].CreatedAt.Equal(subscribers[j].CreatedAt) {
			return subscribers[i].CreatedAt.After(subscribers[j].CreatedAt)
		}
		return subscribers[i].ID < subscribers[j].ID
	})
	return subscribers, nil
}

// List returns subscriber summaries, newest first
func (s *subscriberService) List(ctx context.Context) ([]domain.SubscriberSummary, error) {
	subscribers, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var payments []domain.Payment
	if s.payments != nil {
		payments = s.payments.Snapshot()
	}

	return BuildSubscriberSummaries(subscribers, payments), nil
}

// Stats returns aggregate subscriber counts
func (s *subscriberService) Stats(ctx context.Context) (domain.SubscriberStats, error) {
	subscribers, err := s.snapshot(ctx)
	if err != nil {
		return domain.SubscriberStats{}, err
	}

	now := timeNow()
	var stats domain.SubscriberStats
	for _, subr := range subscribers {
		stats.Total++
		if subr.IsActive() {
			stats.Active++
		}
		switch subr.AuthMethod() {
		case domain.AuthMethodOTP:
			stats.OTP++
		case domain.AuthMethodGoogle:
			stats.Google++
		}
		if subr.CreatedAt.Year() == now.Year() && subr.CreatedAt.Month() == now.Month() {
			stats.NewThisMonth++
		}
	}
	return stats, nil
}

// SetActive flips a subscriber's subscription status
func (s *subscriberService) SetActive(ctx context.Context, id string, active bool) (*domain.Subscriber, error) {
	status := domain.StatusInactive
	if active {
		status = domain.StatusActive
	}

	if err := s.repo.UpdateSubscriptionStatus(ctx, id, status); err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.NewNotFoundError("subscriber not found")
		}
		return nil, err
	}

	subr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if subr == nil {
		return nil, errors.NewNotFoundError("subscriber not found")
	}

	s.mu.Lock()
	if s.loaded {
		s.byID[subr.ID] = *subr
	}
	s.mu.Unlock()

	return subr, nil
}
