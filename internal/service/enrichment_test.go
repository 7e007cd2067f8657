package service

import (
	"testing"
	"time"

	"ott-admin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(day int, hour int) time.Time {
	return time.Date(2025, 4, day, hour, 0, 0, 0, time.UTC)
}

func TestMostRecentSettledPayment(t *testing.T) {
	payments := []domain.Payment{
		{ID: "pay_a", UserID: "u1", PlanID: "p1", Status: domain.PaymentStatusPaid, CreatedAt: ts(1, 10)},
		{ID: "pay_b", UserID: "u1", PlanID: "p1", Status: domain.PaymentStatusCaptured, CreatedAt: ts(3, 10)},
		{ID: "pay_c", UserID: "u1", PlanID: "p1", Status: domain.PaymentStatusCreated, CreatedAt: ts(5, 10)},
		{ID: "pay_d", UserID: "u2", PlanID: "p1", Status: domain.PaymentStatusPaid, CreatedAt: ts(6, 10)},
	}

	got := MostRecentSettledPayment(payments, "u1", "p1")
	require.NotNil(t, got)
	assert.Equal(t, "pay_b", got.ID, "unsettled and other-user payments must lose")

	assert.Nil(t, MostRecentSettledPayment(payments, "u3", "p1"))
	assert.Nil(t, MostRecentSettledPayment(payments, "u1", "p9"))
}

func TestMostRecentSettledPaymentTieBreak(t *testing.T) {
	same := ts(2, 12)
	payments := []domain.Payment{
		{ID: "pay_a", UserID: "u1", PlanID: "p1", Status: domain.PaymentStatusPaid, CreatedAt: same},
		{ID: "pay_z", UserID: "u1", PlanID: "p1", Status: domain.PaymentStatusPaid, CreatedAt: same},
		{ID: "pay_m", UserID: "u1", PlanID: "p1", Status: domain.PaymentStatusPaid, CreatedAt: same},
	}

	got := MostRecentSettledPayment(payments, "u1", "p1")
	require.NotNil(t, got)
	assert.Equal(t, "pay_z", got.ID, "equal timestamps fall to the larger ID")
}

func TestBuildEnrichedSubscriptions(t *testing.T) {
	subscribers := []domain.Subscriber{
		{ID: "u1", Email: "a@example.com", Name: "Asha", Phone: "+911112223334"},
		{ID: "u2", Email: "b@example.com", Name: "Bilal"},
	}
	plan := &domain.Plan{ID: "p1", Name: "Monthly Plan", Price: 199}
	subscriptions := []domain.Subscription{
		{ID: "s1", UserID: "u1", PlanID: "p1", Status: domain.StatusActive, CreatedAt: ts(1, 0), Plan: plan},
		{ID: "s2", UserID: "u2", PlanID: "p1", Status: domain.StatusInactive, CreatedAt: ts(2, 0), Plan: plan},
		{ID: "s3", UserID: "ghost", PlanID: "p1", Status: domain.StatusActive, CreatedAt: ts(3, 0), Plan: plan},
	}
	payments := []domain.Payment{
		{ID: "pay_1", UserID: "u1", PlanID: "p1", Status: domain.PaymentStatusCaptured, Amount: 19900, CreatedAt: ts(1, 1)},
	}

	enriched := BuildEnrichedSubscriptions(subscriptions, subscribers, payments)
	require.Len(t, enriched, 3)

	// Settled payment drives amount and status
	assert.True(t, enriched[0].IsVerified)
	assert.Equal(t, 199.0, enriched[0].Amount)
	assert.Equal(t, domain.PaymentStatusCaptured, enriched[0].PaymentStatus)
	require.NotNil(t, enriched[0].User)
	assert.Equal(t, "Asha", enriched[0].User.Name)

	// No payment falls back to plan price and subscription status
	assert.False(t, enriched[1].IsVerified)
	assert.Equal(t, 199.0, enriched[1].Amount)
	assert.Equal(t, "Inactive", enriched[1].PaymentStatus)

	// Missing user row keeps the subscription visible
	assert.Nil(t, enriched[2].User)
	assert.Equal(t, "Active", enriched[2].PaymentStatus)
}

func buildFilterFixture() ([]domain.EnrichedSubscription, []domain.Payment) {
	premium := &domain.Plan{ID: "p1", Name: "Monthly Plan", Price: 199}
	free := &domain.Plan{ID: "p2", Name: "Mini Plan", Price: 49}
	subscribers := []domain.Subscriber{
		{ID: "u1", Email: "asha@example.com", Name: "Asha Kumar", Phone: "+911112223334"},
		{ID: "u2", Email: "bilal@example.com", Name: "Bilal Shah"},
		{ID: "u3", Email: "chitra@example.com", Name: "Chitra Rao"},
	}
	start1 := ts(1, 0)
	start3 := ts(12, 0)
	subscriptions := []domain.Subscription{
		{ID: "s1", UserID: "u1", PlanID: "p1", Status: domain.StatusActive, StartDate: &start1, CreatedAt: ts(1, 0), Plan: premium},
		{ID: "s2", UserID: "u2", PlanID: "p2", Status: domain.StatusInactive, CreatedAt: ts(10, 0), Plan: free},
		{ID: "s3", UserID: "u3", PlanID: "p2", Status: domain.StatusActive, StartDate: &start3, CreatedAt: ts(11, 0), Plan: free},
	}
	payments := []domain.Payment{
		{
			ID: "pay_1", UserID: "u1", PlanID: "p1", Status: domain.PaymentStatusPaid,
			Amount: 19900, GatewayPaymentID: "pay_razor123", GatewayOrderID: "order_xyz",
			CreatedAt: ts(1, 1),
		},
		{
			ID: "pay_2", UserID: "u3", PlanID: "p2", Status: domain.PaymentStatusFailed,
			Amount: 4900, GatewayPaymentID: "pay_declined9", CreatedAt: ts(11, 1),
		},
	}
	return BuildEnrichedSubscriptions(subscriptions, subscribers, payments), payments
}

func TestFilterSubscriptions(t *testing.T) {
	rows, payments := buildFilterFixture()

	tests := []struct {
		name  string
		query domain.SubscriptionQuery
		want  []string
	}{
		{
			name:  "default matches everything",
			query: domain.DefaultSubscriptionQuery(),
			want:  []string{"s1", "s2", "s3"},
		},
		{
			name:  "search by name fragment",
			query: domain.SubscriptionQuery{Search: "asha"},
			want:  []string{"s1"},
		},
		{
			name:  "search by phone",
			query: domain.SubscriptionQuery{Search: "111222"},
			want:  []string{"s1"},
		},
		{
			name:  "search by subscriber id",
			query: domain.SubscriptionQuery{Search: "u2"},
			want:  []string{"s2"},
		},
		{
			name:  "search by gateway payment id",
			query: domain.SubscriptionQuery{Search: "pay_razor123"},
			want:  []string{"s1"},
		},
		{
			name:  "search by gateway order id",
			query: domain.SubscriptionQuery{Search: "order_xyz"},
			want:  []string{"s1"},
		},
		{
			name:  "search by payment plan id",
			query: domain.SubscriptionQuery{Search: "p2"},
			want:  []string{"s3"},
		},
		{
			name:  "search by payment status",
			query: domain.SubscriptionQuery{Search: "failed"},
			want:  []string{"s3"},
		},
		{
			name:  "status filter",
			query: domain.SubscriptionQuery{Status: "inactive"},
			want:  []string{"s2"},
		},
		{
			name:  "plan tier filter",
			query: domain.SubscriptionQuery{Plan: "premium"},
			want:  []string{"s1"},
		},
		{
			name:  "auth method filter",
			query: domain.SubscriptionQuery{AuthMethod: "google"},
			want:  []string{"s2", "s3"},
		},
		{
			name:  "payment status filter",
			query: domain.SubscriptionQuery{PaymentStatus: domain.PaymentStatusPaid},
			want:  []string{"s1"},
		},
		{
			name:  "failed payments are findable",
			query: domain.SubscriptionQuery{PaymentStatus: domain.PaymentStatusFailed},
			want:  []string{"s3"},
		},
		{
			name:  "none means zero payments of any status",
			query: domain.SubscriptionQuery{PaymentStatus: domain.PaymentFilterNone},
			want:  []string{"s2"},
		},
		{
			name: "combined filters are ANDed",
			query: domain.SubscriptionQuery{
				Status: "inactive",
				Plan:   "premium",
			},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterSubscriptions(rows, payments, tt.query)
			ids := make([]string, 0, len(got))
			for _, row := range got {
				ids = append(ids, row.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilterSubscriptionsDateRange(t *testing.T) {
	rows, payments := buildFilterFixture()

	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	got := FilterSubscriptions(rows, payments, domain.SubscriptionQuery{From: &from, To: &to})
	require.Len(t, got, 1)
	assert.Equal(t, "s1", got[0].ID, "bound days are inclusive")

	// s2 was created inside this window but has no start date, so a range
	// never matches it; s3 started on the 12th.
	to2 := time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC)
	got = FilterSubscriptions(rows, payments, domain.SubscriptionQuery{From: &from, To: &to2})
	require.Len(t, got, 2)
	assert.Equal(t, "s1", got[0].ID)
	assert.Equal(t, "s3", got[1].ID)

	// The range keys off the start date even when creation falls outside it
	from3 := time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC)
	got = FilterSubscriptions(rows, payments, domain.SubscriptionQuery{From: &from3, To: &to2})
	require.Len(t, got, 1)
	assert.Equal(t, "s3", got[0].ID)
}

func TestBuildSubscriberSummaries(t *testing.T) {
	subscribers := []domain.Subscriber{
		{ID: "u1", SubscriptionStatus: domain.StatusActive, Phone: "+911112223334"},
		{ID: "u2", SubscriptionStatus: domain.StatusInactive},
	}
	payments := []domain.Payment{
		{ID: "pay_1", UserID: "u1", Status: domain.PaymentStatusPaid, Amount: 19900, CreatedAt: ts(1, 0)},
		{ID: "pay_2", UserID: "u1", Status: domain.PaymentStatusCaptured, Amount: 4900, CreatedAt: ts(5, 0)},
		{ID: "pay_3", UserID: "u1", Status: domain.PaymentStatusFailed, Amount: 100000, CreatedAt: ts(6, 0)},
	}

	summaries := BuildSubscriberSummaries(subscribers, payments)
	require.Len(t, summaries, 2)

	// Every payment counts toward the aggregates, failed attempts included,
	// and the latest is the most recently created one.
	assert.Equal(t, 3, summaries[0].TotalPayments)
	assert.Equal(t, 1248.0, summaries[0].TotalAmount)
	require.NotNil(t, summaries[0].LatestPayment)
	assert.Equal(t, "pay_3", summaries[0].LatestPayment.ID)
	assert.Equal(t, domain.PaymentStatusFailed, summaries[0].LatestPayment.Status)
	assert.Equal(t, domain.TierPremium, summaries[0].Tier)
	assert.Equal(t, domain.AuthMethodOTP, summaries[0].AuthMethod)
	assert.NotNil(t, summaries[0].SubscriptionEnd)

	assert.Zero(t, summaries[1].TotalPayments)
	assert.Nil(t, summaries[1].LatestPayment)
	assert.Equal(t, domain.TierFree, summaries[1].Tier)
	assert.Nil(t, summaries[1].SubscriptionEnd)
}

func TestFilterSubscriberSummaries(t *testing.T) {
	subscribers := []domain.Subscriber{
		{ID: "u1", Email: "asha@example.com", Name: "Asha Kumar", Phone: "+911112223334", SubscriptionStatus: domain.StatusActive},
		{ID: "u2", Email: "bilal@example.com", Name: "Bilal Shah", SubscriptionStatus: domain.StatusInactive},
		{ID: "u3", Email: "chitra@example.com", Name: "Chitra Rao", SubscriptionStatus: domain.StatusInactive},
	}
	payments := []domain.Payment{
		{ID: "pay_1", UserID: "u1", PlanID: "p1", Status: domain.PaymentStatusPaid, Amount: 19900, GatewayPaymentID: "pay_razor123", CreatedAt: ts(1, 0)},
		{ID: "pay_2", UserID: "u3", PlanID: "p2", Status: domain.PaymentStatusFailed, Amount: 4900, CreatedAt: ts(2, 0)},
	}
	summaries := BuildSubscriberSummaries(subscribers, payments)

	tests := []struct {
		name  string
		query domain.SubscriptionQuery
		want  []string
	}{
		{name: "no filters", query: domain.SubscriptionQuery{}, want: []string{"u1", "u2", "u3"}},
		{name: "search by gateway id", query: domain.SubscriptionQuery{Search: "pay_razor123"}, want: []string{"u1"}},
		{name: "search by subscriber id", query: domain.SubscriptionQuery{Search: "u2"}, want: []string{"u2"}},
		{name: "status active", query: domain.SubscriptionQuery{Status: "active"}, want: []string{"u1"}},
		{name: "premium tier", query: domain.SubscriptionQuery{Plan: "premium"}, want: []string{"u1"}},
		{name: "otp users", query: domain.SubscriptionQuery{AuthMethod: "otp"}, want: []string{"u1"}},
		{name: "failed payments", query: domain.SubscriptionQuery{PaymentStatus: domain.PaymentStatusFailed}, want: []string{"u3"}},
		{name: "none excludes users with failed payments", query: domain.SubscriptionQuery{PaymentStatus: domain.PaymentFilterNone}, want: []string{"u2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterSubscriberSummaries(summaries, payments, tt.query)
			ids := make([]string, 0, len(got))
			for _, row := range got {
				ids = append(ids, row.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
