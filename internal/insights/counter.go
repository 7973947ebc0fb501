package insights

import (
	"bytes"
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/sandy-the-earth/nfc-backend/internal/plans"
)

// ExchangeCounter tracks contact-exchange consumption against a monthly
// quota. Count is consumption inside the current calendar month; LastReset
// records which month that is.
type ExchangeCounter struct {
	Count     int       `json:"count"`
	LastReset time.Time `json:"lastReset"`
}

// ResetIfStale zeroes the counter when LastReset falls in a different
// calendar month or year than now, and reports whether it did. Callers must
// persist the mutation: the reset is externally visible state, and it must
// land before any quota check or increment is applied.
func (c *ExchangeCounter) ResetIfStale(now time.Time) bool {
	if c.LastReset.Year() == now.Year() && c.LastReset.Month() == now.Month() {
		return false
	}
	c.Count = 0
	c.LastReset = now
	return true
}

// ApplyExchange advances the counter for one exchange attempt: a stale
// counter resets to the current month first, then the quota is checked and,
// when the exchange is allowed, the count incremented. It returns the
// resulting counter, whether the exchange was allowed, and whether a reset
// occurred. A reset is externally visible state and must be persisted by the
// caller even when the exchange itself is refused.
func ApplyExchange(c ExchangeCounter, quota plans.Allowance, now time.Time) (ExchangeCounter, bool, bool) {
	reset := c.ResetIfStale(now)
	if !quota.IsUnlimited() && c.Count >= int(quota) {
		return c, false, reset
	}
	c.Count++
	return c, true, reset
}

// Remaining returns quota minus consumption, floored at zero. An unlimited
// quota stays the unlimited sentinel.
func (c ExchangeCounter) Remaining(quota plans.Allowance) plans.Allowance {
	if quota.IsUnlimited() {
		return plans.Unlimited
	}
	left := int(quota) - c.Count
	if left < 0 {
		left = 0
	}
	return plans.Allowance(left)
}

// DecodeCounter reads the stored counter column. Missing or invalid data
// decodes to the zero counter, which the next ResetIfStale initializes.
func DecodeCounter(raw datatypes.JSON) ExchangeCounter {
	var c ExchangeCounter
	if len(raw) == 0 {
		return c
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return c
	}
	if err := json.Unmarshal(trimmed, &c); err != nil {
		return ExchangeCounter{}
	}
	if c.Count < 0 {
		c.Count = 0
	}
	return c
}

// EncodeCounter serializes the counter back into the stored column.
func EncodeCounter(c ExchangeCounter) datatypes.JSON {
	raw, err := json.Marshal(c)
	if err != nil {
		return datatypes.JSON([]byte(`{"count":0}`))
	}
	return datatypes.JSON(raw)
}
