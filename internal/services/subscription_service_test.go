package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandy-the-earth/nfc-backend/internal/models"
)

func ts(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestNormalizeSubscriptionNil(t *testing.T) {
	state := NormalizeSubscription(nil)
	assert.Nil(t, state.Plan)
	assert.Nil(t, state.Cycle)
	assert.Nil(t, state.ActivatedAt)
	assert.Nil(t, state.ExpiresAt)
}

func TestNormalizeSubscriptionPartialRecords(t *testing.T) {
	activated := ts(2026, time.January, 15)

	tests := []struct {
		name string
		sub  *models.Subscription
	}{
		{"missing plan", &models.Subscription{BillingCycle: "monthly", ActivatedAt: &activated}},
		{"unknown plan", &models.Subscription{Plan: "gold", BillingCycle: "monthly", ActivatedAt: &activated}},
		{"missing cycle", &models.Subscription{Plan: "elite", ActivatedAt: &activated}},
		{"unknown cycle", &models.Subscription{Plan: "elite", BillingCycle: "yearly", ActivatedAt: &activated}},
		{"missing activation", &models.Subscription{Plan: "elite", BillingCycle: "monthly"}},
		{"zero activation", &models.Subscription{Plan: "elite", BillingCycle: "monthly", ActivatedAt: &time.Time{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// All four fields null together: a partially valid record never
			// yields a partially populated state.
			state := NormalizeSubscription(tt.sub)
			assert.Nil(t, state.Plan)
			assert.Nil(t, state.Cycle)
			assert.Nil(t, state.ActivatedAt)
			assert.Nil(t, state.ExpiresAt)
		})
	}
}

func TestNormalizeSubscriptionMonthly(t *testing.T) {
	activated := ts(2026, time.March, 15)
	state := NormalizeSubscription(&models.Subscription{
		Plan:         "corporate",
		BillingCycle: "monthly",
		ActivatedAt:  &activated,
	})

	require.NotNil(t, state.Plan)
	assert.Equal(t, "corporate", *state.Plan)
	assert.Equal(t, "monthly", *state.Cycle)
	assert.Equal(t, activated, *state.ActivatedAt)
	assert.Equal(t, ts(2026, time.April, 15), *state.ExpiresAt)
}

func TestNormalizeSubscriptionQuarterly(t *testing.T) {
	activated := ts(2026, time.February, 10)
	state := NormalizeSubscription(&models.Subscription{
		Plan:         "elite",
		BillingCycle: "quarterly",
		ActivatedAt:  &activated,
	})

	require.NotNil(t, state.ExpiresAt)
	assert.Equal(t, ts(2026, time.May, 10), *state.ExpiresAt)
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{"plain month", ts(2026, time.March, 15), 1, ts(2026, time.April, 15)},
		{"jan 31 to feb", ts(2026, time.January, 31), 1, ts(2026, time.February, 28)},
		{"jan 31 leap year", ts(2024, time.January, 31), 1, ts(2024, time.February, 29)},
		{"oct 31 quarterly", ts(2025, time.October, 31), 3, ts(2026, time.January, 31)},
		{"nov 30 quarterly", ts(2025, time.November, 30), 3, ts(2026, time.February, 28)},
		{"year rollover", ts(2025, time.December, 5), 1, ts(2026, time.January, 5)},
		{"may 31 to jun 30", ts(2026, time.May, 31), 1, ts(2026, time.June, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, addMonthsClamped(tt.start, tt.months))
		})
	}
}

func TestAddMonthsClampedPreservesClock(t *testing.T) {
	start := time.Date(2026, time.January, 31, 23, 59, 58, 123, time.UTC)
	got := addMonthsClamped(start, 1)

	assert.Equal(t, 23, got.Hour())
	assert.Equal(t, 59, got.Minute())
	assert.Equal(t, 58, got.Second())
	assert.Equal(t, time.February, got.Month())
	assert.Equal(t, 28, got.Day())
}

func TestStateForInactiveStatus(t *testing.T) {
	activated := ts(2026, time.March, 1)
	svc := &subscriptionService{now: func() time.Time { return ts(2026, time.March, 10) }}

	profile := &models.Profile{
		Subscription: &models.Subscription{
			Plan:         "elite",
			BillingCycle: "monthly",
			Status:       models.SubscriptionStatusCancelled,
			ActivatedAt:  &activated,
		},
	}

	state := svc.StateFor(profile)
	assert.Nil(t, state.Plan)
}

func TestStateForActive(t *testing.T) {
	activated := ts(2026, time.March, 1)
	svc := &subscriptionService{now: func() time.Time { return ts(2026, time.March, 10) }}

	profile := &models.Profile{
		Subscription: &models.Subscription{
			Plan:         "novice",
			BillingCycle: "monthly",
			Status:       models.SubscriptionStatusActive,
			ActivatedAt:  &activated,
		},
	}

	state := svc.StateFor(profile)
	require.NotNil(t, state.Plan)
	assert.Equal(t, "novice", *state.Plan)
	assert.Equal(t, ts(2026, time.April, 1), *state.ExpiresAt)
}

func TestStateForNoSubscription(t *testing.T) {
	svc := &subscriptionService{now: time.Now}
	assert.Nil(t, svc.StateFor(&models.Profile{}).Plan)
	assert.Nil(t, svc.StateFor(nil).Plan)
}
