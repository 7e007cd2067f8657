package service

import (
	"time"

	"ott-admin/internal/domain"
)

// Settlement amounts are bucketed on Indian wall-clock days regardless of
// where the server runs.
var istZone = time.FixedZone("IST", 5*3600+30*60)

// SummarizeRevenue totals settled payments, in rupees, into the dashboard
// buckets. Today and yesterday are IST calendar days; the weekend bucket
// counts Saturday and Sunday settlements across all time.
func SummarizeRevenue(payments []domain.Payment, now time.Time) domain.RevenueSummary {
	nowIST := now.In(istZone)
	today := nowIST.Format("2006-01-02")
	yesterday := nowIST.AddDate(0, 0, -1).Format("2006-01-02")
	month := nowIST.Format("2006-01")

	summary := domain.RevenueSummary{Currency: "INR", UpdatedAt: now}
	for _, p := range payments {
		if !p.IsSettled() {
			continue
		}
		amount := p.AmountRupees()
		settled := p.SettledAt().In(istZone)
		day := settled.Format("2006-01-02")

		summary.Total += amount
		if day == today {
			summary.Today += amount
		}
		if day == yesterday {
			summary.Yesterday += amount
		}
		if wd := settled.Weekday(); wd == time.Saturday || wd == time.Sunday {
			summary.Weekend += amount
		}
		if settled.Format("2006-01") == month {
			summary.MonthToDate += amount
		}
	}
	return summary
}
