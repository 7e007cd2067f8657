package domain

import "time"

// Payment statuses as reported by the payment gateway
const (
	PaymentStatusCreated  = "created"
	PaymentStatusPaid     = "paid"
	PaymentStatusCaptured = "captured"
	PaymentStatusFailed   = "failed"
)

// PaymentFilterNone is the payment-status filter value matching subscribers
// with zero payments
const PaymentFilterNone = "none"

// Payment is a row from the payments table, written by the gateway webhook
// and read-only here. Amount is in minor units (paise).
type Payment struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	UserEmail        string     `json:"user_email,omitempty"`
	PlanID           string     `json:"plan_id,omitempty"`
	Amount           int64      `json:"amount"`
	Status           string     `json:"status"`
	Method           string     `json:"payment_method,omitempty"`
	GatewayPaymentID string     `json:"razorpay_payment_id,omitempty"`
	GatewayOrderID   string     `json:"razorpay_order_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// IsSettled reports whether money actually moved for this payment
func (p *Payment) IsSettled() bool {
	return p.Status == PaymentStatusPaid || p.Status == PaymentStatusCaptured
}

// AmountRupees converts the minor-unit amount to rupees
func (p *Payment) AmountRupees() float64 {
	return float64(p.Amount) / 100
}

// SettledAt is the timestamp used for revenue bucketing: completion time
// when known, creation time otherwise.
func (p *Payment) SettledAt() time.Time {
	if p.CompletedAt != nil {
		return *p.CompletedAt
	}
	return p.CreatedAt
}
