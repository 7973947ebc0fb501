package models

// ProfileStatus is the activation lifecycle of a card profile.
// The transition pending_activation -> active is one-way.
type ProfileStatus string

const (
	ProfileStatusPending ProfileStatus = "pending_activation"
	ProfileStatusActive  ProfileStatus = "active"
)

// SubscriptionStatus is the billing lifecycle of a subscription record.
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
)
