package service

import (
	"context"
	"sync"
	"time"

	"ott-admin/internal/domain"
	"ott-admin/internal/repository"
	"ott-admin/pkg/logger"

	"github.com/go-co-op/gocron"
)

// PaymentMonitor polls the payments table on a fixed schedule and serves
// the latest result set from memory. Enrichment and revenue reads hit the
// snapshot instead of re-querying Postgres on every request.
type PaymentMonitor struct {
	repo      repository.PaymentRepository
	limit     int
	interval  time.Duration
	logger    *logger.Logger
	scheduler *gocron.Scheduler

	mu       sync.RWMutex
	payments []domain.Payment
	fetched  time.Time
}

// NewPaymentMonitor creates a payment monitor polling every interval
func NewPaymentMonitor(repo repository.PaymentRepository, limit int, interval time.Duration, log *logger.Logger) *PaymentMonitor {
	return &PaymentMonitor{
		repo:     repo,
		limit:    limit,
		interval: interval,
		logger:   log,
	}
}

// Start primes the snapshot and begins the polling schedule. The first
// fetch runs inline so callers see data as soon as Start returns.
func (m *PaymentMonitor) Start(ctx context.Context) error {
	if err := m.refresh(ctx); err != nil {
		return err
	}

	m.scheduler = gocron.NewScheduler(time.UTC)
	m.scheduler.Every(m.interval).WaitForSchedule().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := m.refresh(ctx); err != nil {
			m.logger.WithError(err).Warn("Payment poll failed, keeping previous snapshot")
		}
	})
	m.scheduler.StartAsync()

	return nil
}

// Stop halts the polling schedule
func (m *PaymentMonitor) Stop() {
	if m.scheduler != nil {
		m.scheduler.Stop()
	}
}

func (m *PaymentMonitor) refresh(ctx context.Context) error {
	payments, err := m.repo.List(ctx, m.limit)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.payments = payments
	m.fetched = timeNow()
	m.mu.Unlock()

	m.logger.WithField("payments", len(payments)).Debug("Refreshed payment snapshot")
	return nil
}

// Snapshot returns the most recently polled payment set. The slice is
// shared; callers must not mutate it.
func (m *PaymentMonitor) Snapshot() []domain.Payment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.payments
}

// FetchedAt reports when the snapshot was last refreshed
func (m *PaymentMonitor) FetchedAt() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fetched
}
