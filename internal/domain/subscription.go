package domain

import "time"

// Plan tiers as stored on the subscription_plans table
const (
	PlanTierPremium = "premium"
	PlanTierFree    = "free"
)

// Plan is a row from the subscription_plans table. Price is the list price
// in rupees. Tier is a newer column; older rows may carry an empty tier and
// fall back to name-based bucketing (see LegacyPlanTier).
type Plan struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	DurationDays int     `json:"duration_days"`
	Tier         string  `json:"tier,omitempty"`
}

// EffectiveTier returns the plan's tier attribute, falling back to the
// legacy name mapping when the column is unset.
func (p *Plan) EffectiveTier() string {
	if p == nil {
		return ""
	}
	if p.Tier != "" {
		return p.Tier
	}
	return LegacyPlanTier(p.Name)
}

// LegacyPlanTier maps historical plan names to tiers. Only the two names the
// old dashboard knew about are bucketed; everything else is unclassified.
func LegacyPlanTier(name string) string {
	switch name {
	case "Monthly Plan":
		return PlanTierPremium
	case "Mini Plan":
		return PlanTierFree
	default:
		return ""
	}
}

// Subscription is a row from the user_subscriptions table joined with its
// plan. Read-only in this service.
type Subscription struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	PlanID    string     `json:"plan_id"`
	Status    string     `json:"status"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	Plan      *Plan      `json:"plan,omitempty"`
}

// EnrichedSubscription is the admin view of one subscription: the raw row
// joined in memory with its subscriber and its settled payment, if any.
type EnrichedSubscription struct {
	Subscription
	User          *Subscriber `json:"user,omitempty"`
	Payment       *Payment    `json:"payment,omitempty"`
	IsVerified    bool        `json:"is_verified"`
	Amount        float64     `json:"amount"`
	PaymentStatus string      `json:"payment_status"`
}
