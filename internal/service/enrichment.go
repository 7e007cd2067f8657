package service

import (
	"strings"
	"time"

	"ott-admin/internal/domain"
)

// timeNow is swapped out in tests
var timeNow = time.Now

// MostRecentSettledPayment picks the settled payment for a user and plan
// with the latest settlement time. Ties on the timestamp fall to the
// lexicographically larger payment ID so the choice is stable across runs.
func MostRecentSettledPayment(payments []domain.Payment, userID, planID string) *domain.Payment {
	var best *domain.Payment
	for i := range payments {
		p := &payments[i]
		if !p.IsSettled() || p.UserID != userID || p.PlanID != planID {
			continue
		}
		if best == nil {
			best = p
			continue
		}
		switch {
		case p.SettledAt().After(best.SettledAt()):
			best = p
		case p.SettledAt().Equal(best.SettledAt()) && p.ID > best.ID:
			best = p
		}
	}
	return best
}

// BuildEnrichedSubscriptions joins each subscription with its subscriber
// row and its most recent settled payment. Subscriptions whose user row is
// missing still come through, with a nil User.
func BuildEnrichedSubscriptions(
	subscriptions []domain.Subscription,
	subscribers []domain.Subscriber,
	payments []domain.Payment,
) []domain.EnrichedSubscription {
	byID := make(map[string]*domain.Subscriber, len(subscribers))
	for i := range subscribers {
		byID[subscribers[i].ID] = &subscribers[i]
	}

	enriched := make([]domain.EnrichedSubscription, 0, len(subscriptions))
	for _, sub := range subscriptions {
		e := domain.EnrichedSubscription{Subscription: sub}
		e.User = byID[sub.UserID]
		e.Payment = MostRecentSettledPayment(payments, sub.UserID, sub.PlanID)

		if e.Payment != nil {
			e.IsVerified = true
			e.Amount = e.Payment.AmountRupees()
			e.PaymentStatus = e.Payment.Status
		} else {
			if sub.Plan != nil {
				e.Amount = sub.Plan.Price
			}
			if strings.EqualFold(sub.Status, domain.StatusActive) {
				e.PaymentStatus = "Active"
			} else {
				e.PaymentStatus = "Inactive"
			}
		}

		enriched = append(enriched, e)
	}
	return enriched
}

// paymentsByUser groups the payment list by owning user. The search and
// payment-status predicates look at every payment a user has, not just
// the one selected during enrichment.
func paymentsByUser(payments []domain.Payment) map[string][]domain.Payment {
	byUser := make(map[string][]domain.Payment)
	for _, p := range payments {
		byUser[p.UserID] = append(byUser[p.UserID], p)
	}
	return byUser
}

// FilterSubscriptions applies every active dimension of the query; a row
// must satisfy all of them to pass.
func FilterSubscriptions(rows []domain.EnrichedSubscription, payments []domain.Payment, q domain.SubscriptionQuery) []domain.EnrichedSubscription {
	byUser := paymentsByUser(payments)
	out := make([]domain.EnrichedSubscription, 0, len(rows))
	for _, row := range rows {
		if matchesQuery(row, byUser[row.UserID], q) {
			out = append(out, row)
		}
	}
	return out
}

func matchesQuery(row domain.EnrichedSubscription, userPayments []domain.Payment, q domain.SubscriptionQuery) bool {
	if q.HasSearch() && !matchesSearch(row, userPayments, q.NormalizedSearch()) {
		return false
	}
	if filterActive(q.Status) && !strings.EqualFold(row.Status, q.Status) {
		return false
	}
	if filterActive(q.Plan) {
		if row.Plan == nil || row.Plan.EffectiveTier() != strings.ToLower(q.Plan) {
			return false
		}
	}
	if filterActive(q.AuthMethod) {
		if row.User == nil || row.User.AuthMethod() != strings.ToLower(q.AuthMethod) {
			return false
		}
	}
	if !matchesPaymentStatus(userPayments, q.PaymentStatus) {
		return false
	}
	// The date range applies to the subscription start date; rows without
	// one never fall inside a range.
	if q.From != nil || q.To != nil {
		if row.StartDate == nil || !q.InDateRange(*row.StartDate) {
			return false
		}
	}
	return true
}

// matchesPaymentStatus checks the user's full payment history: "none"
// means the user has no payments at all, any other value means at least
// one payment carries that exact status, settled or not.
func matchesPaymentStatus(userPayments []domain.Payment, status string) bool {
	if !filterActive(status) {
		return true
	}
	if status == domain.PaymentFilterNone {
		return len(userPayments) == 0
	}
	for _, p := range userPayments {
		if strings.EqualFold(p.Status, status) {
			return true
		}
	}
	return false
}

func matchesSearch(row domain.EnrichedSubscription, userPayments []domain.Payment, term string) bool {
	if row.User != nil {
		if strings.Contains(strings.ToLower(row.User.Email), term) ||
			strings.Contains(strings.ToLower(row.User.Name), term) ||
			strings.Contains(strings.ToLower(row.User.Phone), term) ||
			strings.Contains(strings.ToLower(row.User.ID), term) {
			return true
		}
	}
	return anyPaymentMatches(userPayments, term)
}

// anyPaymentMatches reports whether any payment's gateway identifiers,
// plan id or status contains the search term.
func anyPaymentMatches(payments []domain.Payment, term string) bool {
	for _, p := range payments {
		if strings.Contains(strings.ToLower(p.GatewayPaymentID), term) ||
			strings.Contains(strings.ToLower(p.GatewayOrderID), term) ||
			strings.Contains(strings.ToLower(p.PlanID), term) ||
			strings.Contains(strings.ToLower(p.Status), term) {
			return true
		}
	}
	return false
}

func filterActive(v string) bool {
	return v != "" && v != domain.FilterAll
}

// BuildSubscriberSummaries decorates each subscriber with derived
// attributes and payment aggregates. Every payment counts, whatever its
// status: the totals are attempt counts, not settled revenue, and the
// latest payment is picked by creation time so a failed retry shows up
// as the latest status.
func BuildSubscriberSummaries(subscribers []domain.Subscriber, payments []domain.Payment) []domain.SubscriberSummary {
	type agg struct {
		count  int
		amount float64
		latest *domain.Payment
	}
	byUser := make(map[string]*agg)
	for i := range payments {
		p := &payments[i]
		a := byUser[p.UserID]
		if a == nil {
			a = &agg{}
			byUser[p.UserID] = a
		}
		a.count++
		a.amount += p.AmountRupees()
		switch {
		case a.latest == nil:
			a.latest = p
		case p.CreatedAt.After(a.latest.CreatedAt):
			a.latest = p
		case p.CreatedAt.Equal(a.latest.CreatedAt) && p.ID > a.latest.ID:
			a.latest = p
		}
	}

	now := timeNow()
	summaries := make([]domain.SubscriberSummary, 0, len(subscribers))
	for _, s := range subscribers {
		summary := domain.SubscriberSummary{
			Subscriber:      s,
			AuthMethod:      s.AuthMethod(),
			Tier:            s.Tier(),
			Active:          s.IsActive(),
			SubscriptionEnd: s.SubscriptionEnd(now),
		}
		if a := byUser[s.ID]; a != nil {
			summary.TotalPayments = a.count
			summary.TotalAmount = a.amount
			summary.LatestPayment = a.latest
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// FilterSubscriberSummaries applies the query to the subscriber-level
// view backing the export. Summaries carry no start date, so the date
// range does not apply here.
func FilterSubscriberSummaries(rows []domain.SubscriberSummary, payments []domain.Payment, q domain.SubscriptionQuery) []domain.SubscriberSummary {
	byUser := paymentsByUser(payments)
	out := make([]domain.SubscriberSummary, 0, len(rows))
	for _, row := range rows {
		if matchesSummaryQuery(row, byUser[row.ID], q) {
			out = append(out, row)
		}
	}
	return out
}

func matchesSummaryQuery(row domain.SubscriberSummary, userPayments []domain.Payment, q domain.SubscriptionQuery) bool {
	if q.HasSearch() {
		term := q.NormalizedSearch()
		userMatch := strings.Contains(strings.ToLower(row.Email), term) ||
			strings.Contains(strings.ToLower(row.Name), term) ||
			strings.Contains(strings.ToLower(row.Phone), term) ||
			strings.Contains(strings.ToLower(row.ID), term)
		if !userMatch && !anyPaymentMatches(userPayments, term) {
			return false
		}
	}
	if filterActive(q.Status) && row.Active != strings.EqualFold(q.Status, domain.StatusActive) {
		return false
	}
	if filterActive(q.Plan) && !strings.EqualFold(row.Tier, q.Plan) {
		return false
	}
	if filterActive(q.AuthMethod) && row.AuthMethod != strings.ToLower(q.AuthMethod) {
		return false
	}
	return matchesPaymentStatus(userPayments, q.PaymentStatus)
}
