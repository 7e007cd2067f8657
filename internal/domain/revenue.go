package domain

import "time"

// RevenueSummary aggregates settled payment amounts, in rupees, over the
// operational buckets the dashboard shows. All bucket boundaries are
// computed in Indian Standard Time.
type RevenueSummary struct {
	Today       float64   `json:"today"`
	Yesterday   float64   `json:"yesterday"`
	Weekend     float64   `json:"weekend"`
	MonthToDate float64   `json:"month_to_date"`
	Total       float64   `json:"total"`
	Currency    string    `json:"currency"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DashboardSummary is the payload behind the dashboard overview endpoint.
type DashboardSummary struct {
	Revenue     RevenueSummary  `json:"revenue"`
	Subscribers SubscriberStats `json:"subscribers"`
	SeriesCount int             `json:"series_count"`
	GeneratedAt time.Time       `json:"generated_at"`
}
