package domain

import (
	"strings"
	"time"
)

// FilterAll is the sentinel meaning a filter dimension is not applied
const FilterAll = "all"

// SubscriptionQuery describes the filters applied to the enriched
// subscription list. Zero or "all" values leave a dimension unfiltered.
// From and To are inclusive and compared at day granularity.
type SubscriptionQuery struct {
	Search        string     `json:"search,omitempty"`
	Status        string     `json:"status,omitempty"`
	Plan          string     `json:"plan,omitempty"`
	AuthMethod    string     `json:"auth_method,omitempty"`
	PaymentStatus string     `json:"payment_status,omitempty"`
	From          *time.Time `json:"from,omitempty"`
	To            *time.Time `json:"to,omitempty"`
}

// DefaultSubscriptionQuery returns a query that matches everything.
func DefaultSubscriptionQuery() SubscriptionQuery {
	return SubscriptionQuery{
		Status:        FilterAll,
		Plan:          FilterAll,
		AuthMethod:    FilterAll,
		PaymentStatus: FilterAll,
	}
}

// HasSearch reports whether a free-text search term is set.
func (q SubscriptionQuery) HasSearch() bool {
	return strings.TrimSpace(q.Search) != ""
}

// NormalizedSearch returns the lower-cased, trimmed search term.
func (q SubscriptionQuery) NormalizedSearch() string {
	return strings.ToLower(strings.TrimSpace(q.Search))
}

// InDateRange reports whether t falls inside the query's inclusive
// day-granular date window. A nil bound is open.
func (q SubscriptionQuery) InDateRange(t time.Time) bool {
	day := t.Truncate(24 * time.Hour)
	if q.From != nil && day.Before(q.From.Truncate(24*time.Hour)) {
		return false
	}
	if q.To != nil && day.After(q.To.Truncate(24*time.Hour)) {
		return false
	}
	return true
}
