package service

import (
	"context"
	"testing"
	"time"

	"ott-admin/internal/domain"
	"ott-admin/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestCache(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := redis.NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return mr, client
}

func newDashboardFixture(t *testing.T, cache *redis.Client) (DashboardService, *fakeSeriesRepo, *staticPaymentsRef) {
	t.Helper()

	payments := &staticPaymentsRef{payments: []domain.Payment{
		{ID: "p1", Status: domain.PaymentStatusPaid, Amount: 19900, CreatedAt: time.Now()},
	}}

	subscriberRepo := newFakeSubscriberRepo(
		domain.Subscriber{ID: "u1", SubscriptionStatus: domain.StatusActive, CreatedAt: time.Now()},
	)
	subscribers := NewSubscriberService(subscriberRepo, payments, nil, testLogger(t))
	require.NoError(t, subscribers.Start(context.Background()))

	seriesRepo := newFakeSeriesRepo()
	seriesRepo.series["s1"] = &domain.Series{ID: "s1", Title: "One"}

	svc := NewDashboardService(payments, subscribers, seriesRepo, cache, testLogger(t))
	return svc, seriesRepo, payments
}

// staticPaymentsRef allows swapping the snapshot mid-test
type staticPaymentsRef struct {
	payments []domain.Payment
}

func (s *staticPaymentsRef) Snapshot() []domain.Payment { return s.payments }

func TestDashboardSummary(t *testing.T) {
	_, cache := setupTestCache(t)
	svc, _, _ := newDashboardFixture(t, cache)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 199.0, summary.Revenue.Total)
	assert.Equal(t, "INR", summary.Revenue.Currency)
	assert.Equal(t, 1, summary.Subscribers.Total)
	assert.Equal(t, 1, summary.SeriesCount)
	assert.False(t, summary.GeneratedAt.IsZero())
}

func TestDashboardSummaryServesFromCache(t *testing.T) {
	mr, cache := setupTestCache(t)
	svc, seriesRepo, _ := newDashboardFixture(t, cache)
	ctx := context.Background()

	first, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.SeriesCount)

	// New series within the TTL window stays invisible
	seriesRepo.series["s2"] = &domain.Series{ID: "s2", Title: "Two"}

	second, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, second.SeriesCount, "cached summary served")

	// After expiry the summary rebuilds
	mr.FastForward(redis.TTLDashboardSummary + time.Second)

	third, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, third.SeriesCount)
}

func TestDashboardSummaryWithoutCache(t *testing.T) {
	svc, seriesRepo, _ := newDashboardFixture(t, nil)
	ctx := context.Background()

	first, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.SeriesCount)

	seriesRepo.series["s2"] = &domain.Series{ID: "s2", Title: "Two"}

	second, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, second.SeriesCount, "no cache means always fresh")
}
