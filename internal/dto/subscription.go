package dto

import "time"

// SubscriptionState is the canonical, normalized view of a profile's
// subscription. All four fields are null together when the stored record is
// absent or too partial to interpret; expiresAt is always derived, never
// stored.
type SubscriptionState struct {
	Plan        *string    `json:"plan"`
	Cycle       *string    `json:"cycle"`
	ActivatedAt *time.Time `json:"activatedAt"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

// NoSubscription is the all-null state malformed or missing records degrade to.
func NoSubscription() SubscriptionState {
	return SubscriptionState{}
}

// HasPlan reports whether a plan is present.
func (s SubscriptionState) HasPlan() bool {
	return s.Plan != nil && *s.Plan != ""
}

// PlanOrDefault returns the stored plan string, or "" when absent.
func (s SubscriptionState) PlanOrDefault() string {
	if s.Plan == nil {
		return ""
	}
	return *s.Plan
}

// AssignSubscriptionRequest is the admin upsert payload.
type AssignSubscriptionRequest struct {
	Plan         string  `json:"plan" binding:"required" validate:"plan"`
	BillingCycle string  `json:"billingCycle" binding:"required" validate:"cycle"`
	Status       string  `json:"status" validate:"omitempty,oneof=active cancelled expired"`
	Amount       float64 `json:"amount" validate:"gte=0"`
	EndDate      *string `json:"endDate"`
}

// CheckoutRequest asks for a payment-gateway order.
type CheckoutRequest struct {
	Plan  string `json:"plan" binding:"required" validate:"plan"`
	Cycle string `json:"cycle" binding:"required" validate:"cycle"`
}

// CheckoutSession is the created payment order handed to the frontend.
type CheckoutSession struct {
	OrderID  string `json:"orderId"`
	Amount   int    `json:"amount"` // smallest currency unit (paise)
	Currency string `json:"currency"`
	Key      string `json:"key"`
	Receipt  string `json:"receipt"`
}

// ConfirmPaymentRequest closes the loop after the gateway checkout: the
// frontend posts back the order, payment and signature for verification.
type ConfirmPaymentRequest struct {
	OrderID   string `json:"orderId" binding:"required"`
	PaymentID string `json:"paymentId" binding:"required"`
	Signature string `json:"signature" binding:"required"`
	Plan      string `json:"plan" binding:"required" validate:"plan"`
	Cycle     string `json:"cycle" binding:"required" validate:"cycle"`
}
