package domain

import (
	"strings"
	"time"
)

// Subscription status flags as stored on the users table
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Derived authentication methods
const (
	AuthMethodOTP    = "otp"
	AuthMethodGoogle = "google"
)

// Derived subscription tier labels
const (
	TierPremium = "Premium"
	TierFree    = "Free"
)

// activeGrantDays is the length of the access window implied by an active
// status flag; the users table carries no explicit end date.
const activeGrantDays = 30

// Subscriber represents a row in the externally-owned users table. Rows are
// created by the auth system; the dashboard only ever flips
// subscription_status.
type Subscriber struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Phone              string    `json:"phone,omitempty"`
	AvatarURL          string    `json:"avatar_url,omitempty"`
	SubscriptionStatus string    `json:"subscription_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// AuthMethod derives how the subscriber signed up: OTP users have a phone
// number on record, everyone else came through Google OAuth.
func (s *Subscriber) AuthMethod() string {
	if strings.TrimSpace(s.Phone) != "" {
		return AuthMethodOTP
	}
	return AuthMethodGoogle
}

// IsActive reports whether the subscription status flag is active. The
// flag is compared case-insensitively; the auth system has written both
// "active" and "Active" over time.
func (s *Subscriber) IsActive() bool {
	return strings.EqualFold(s.SubscriptionStatus, StatusActive)
}

// Tier derives the display tier label from the status flag
func (s *Subscriber) Tier() string {
	if s.IsActive() {
		return TierPremium
	}
	return TierFree
}

// SubscriptionEnd derives the access window end for an active subscriber.
// Inactive subscribers have no window.
func (s *Subscriber) SubscriptionEnd(now time.Time) *time.Time {
	if !s.IsActive() {
		return nil
	}
	end := now.AddDate(0, 0, activeGrantDays)
	return &end
}

// SubscriberSummary is the per-subscriber listing row: the raw subscriber
// plus derived fields and payment aggregates, materialized for serialization
// and CSV export.
type SubscriberSummary struct {
	Subscriber
	AuthMethod      string     `json:"auth_method"`
	Tier            string     `json:"subscription_tier"`
	Active          bool       `json:"is_active"`
	SubscriptionEnd *time.Time `json:"subscription_end,omitempty"`
	TotalPayments   int        `json:"total_payments"`
	TotalAmount     float64    `json:"total_amount"`
	LatestPayment   *Payment   `json:"latest_payment,omitempty"`
}

// SubscriberStats is the bucket breakdown shown on the users page
type SubscriberStats struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	OTP          int `json:"otp"`
	Google       int `json:"google"`
	NewThisMonth int `json:"new_this_month"`
}

// AuthLog is a row from the optional auth_logs table
type AuthLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	Method    string    `json:"method"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	Success   bool      `json:"success"`
	CreatedAt time.Time `json:"created_at"`
}
