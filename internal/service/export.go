package service

import (
	"bytes"
	"strconv"
	"time"

	"ott-admin/internal/domain"
)

const exportDateFormat = "02/01/2006"

var exportHeader = []string{
	"User Email", "Name", "Phone", "Plan", "Status", "Auth Method",
	"Subscription End", "Total Payments", "Total Amount (₹)",
	"Latest Payment ID", "Latest Payment Status", "Created Date",
}

// BuildSubscriptionsCSV renders subscriber summaries as CSV, one row per
// subscriber. Every field is quoted, matching the format the finance
// team's import tooling expects.
func BuildSubscriptionsCSV(rows []domain.SubscriberSummary) []byte {
	var buf bytes.Buffer
	writeCSVRow(&buf, exportHeader)

	for _, row := range rows {
		status := "Inactive"
		if row.Active {
			status = "Active"
		}
		subscriptionEnd := ""
		if row.SubscriptionEnd != nil {
			subscriptionEnd = row.SubscriptionEnd.Format(exportDateFormat)
		}
		latestID, latestStatus := "", ""
		if row.LatestPayment != nil {
			latestID = row.LatestPayment.GatewayPaymentID
			latestStatus = row.LatestPayment.Status
		}

		writeCSVRow(&buf, []string{
			row.Email,
			row.Name,
			row.Phone,
			row.Tier,
			status,
			row.AuthMethod,
			subscriptionEnd,
			strconv.Itoa(row.TotalPayments),
			strconv.FormatFloat(row.TotalAmount, 'f', -1, 64),
			latestID,
			latestStatus,
			row.CreatedAt.Format(exportDateFormat),
		})
	}

	return buf.Bytes()
}

// writeCSVRow quotes every field unconditionally. encoding/csv only quotes
// fields that need it, which the downstream importer does not accept.
func writeCSVRow(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		for j := 0; j < len(f); j++ {
			if f[j] == '"' {
				buf.WriteString(`""`)
			} else {
				buf.WriteByte(f[j])
			}
		}
		buf.WriteByte('"')
	}
	buf.WriteString("\r\n")
}

// ExportFilename is the download name for a subscriptions export made now.
func ExportFilename(now time.Time) string {
	return "subscriptions_" + now.Format("2006-01-02") + ".csv"
}
