package service

import (
	"strings"
	"testing"
	"time"

	"ott-admin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSubscriptionsCSV(t *testing.T) {
	end := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	rows := []domain.SubscriberSummary{
		{
			Subscriber: domain.Subscriber{
				ID:        "u1",
				Email:     "asha@example.com",
				Name:      `Asha "AK" Kumar`,
				Phone:     "+911112223334",
				CreatedAt: time.Date(2025, 4, 1, 9, 30, 0, 0, time.UTC),
			},
			AuthMethod:      domain.AuthMethodOTP,
			Tier:            domain.TierPremium,
			Active:          true,
			SubscriptionEnd: &end,
			TotalPayments:   3,
			TotalAmount:     248.5,
			LatestPayment:   &domain.Payment{GatewayPaymentID: "pay_123", Status: domain.PaymentStatusPaid},
		},
	}

	out := string(BuildSubscriptionsCSV(rows))
	lines := strings.Split(strings.TrimRight(out, "\r\n"), "\r\n")
	require.Len(t, lines, 2)

	assert.Equal(t, `"User Email","Name","Phone","Plan","Status","Auth Method","Subscription End","Total Payments","Total Amount (₹)","Latest Payment ID","Latest Payment Status","Created Date"`, lines[0])
	assert.Equal(t, `"asha@example.com","Asha ""AK"" Kumar","+911112223334","Premium","Active","otp","01/05/2025","3","248.5","pay_123","paid","01/04/2025"`, lines[1])
}

func TestBuildSubscriptionsCSVNoPayments(t *testing.T) {
	rows := []domain.SubscriberSummary{
		{
			Subscriber: domain.Subscriber{
				ID:        "u2",
				CreatedAt: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
			},
			AuthMethod: domain.AuthMethodGoogle,
			Tier:       domain.TierFree,
		},
	}

	out := string(BuildSubscriptionsCSV(rows))
	lines := strings.Split(strings.TrimRight(out, "\r\n"), "\r\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"","","","Free","Inactive","google","","0","0","","","02/04/2025"`, lines[1])
}

func TestBuildSubscriptionsCSVEmpty(t *testing.T) {
	out := string(BuildSubscriptionsCSV(nil))
	lines := strings.Split(strings.TrimRight(out, "\r\n"), "\r\n")
	assert.Len(t, lines, 1, "header only")
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2025, 4, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "subscriptions_2025-04-15.csv", ExportFilename(now))
}
