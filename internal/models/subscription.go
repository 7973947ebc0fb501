package models

import (
	"time"
)

// Subscription is the stored billing record for a profile. Legacy rows may
// carry only Plan (shorthand written by early admin tooling) with no cycle or
// activation date; services.NormalizeSubscription is the only reader that
// should interpret this shape.
type Subscription struct {
	BaseModel
	ProfileID string `gorm:"type:uuid;uniqueIndex;not null" json:"profileId"`

	Plan         string             `gorm:"type:varchar(32)" json:"plan"`         // novice | corporate | elite, possibly empty
	BillingCycle string             `gorm:"type:varchar(16)" json:"billingCycle"` // monthly | quarterly, empty on legacy rows
	Status       SubscriptionStatus `gorm:"type:varchar(16);default:'active'" json:"status"`

	ActivatedAt *time.Time `json:"activatedAt"`
	EndDate     *time.Time `json:"endDate"`

	PaymentID string  `json:"paymentId"` // "admin_manual" for admin-assigned subscriptions
	Amount    float64 `json:"amount"`
	Currency  string  `gorm:"default:'INR'" json:"currency"`
	AutoRenew bool    `gorm:"default:true" json:"autoRenew"`
}
