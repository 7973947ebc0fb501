package insights

import (
	"sort"
	"time"

	"github.com/sandy-the-earth/nfc-backend/internal/dto"
	"github.com/sandy-the-earth/nfc-backend/internal/models"
	"github.com/sandy-the-earth/nfc-backend/internal/plans"
)

// visitorKeySep joins (ip, userAgent) into a uniqueness key. The unit
// separator does not occur in IP literals or User-Agent strings.
const visitorKeySep = "\x1f"

// Activity is one profile's full activity history, already decoded into the
// unified shapes. Absent collections are zero values, not errors.
type Activity struct {
	Views            []models.ViewEvent
	LinkTaps         LinkTapList
	Exchanges        ExchangeCounter
	ContactSaves     int
	ContactDownloads int
	LastViewedAt     *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DateCount is one bucket of the per-day view series.
type DateCount struct {
	Date  string `json:"date"` // UTC calendar date, YYYY-MM-DD
	Count int    `json:"count"`
}

// Summary is the full aggregation output, before tier visibility filtering.
type Summary struct {
	TotalViews               int
	UniqueVisitors           int
	ViewCountsOverTime       []DateCount
	ViewsByIndustry          map[string]int
	ViewsByLocation          map[string]int
	TotalLinkTaps            int64
	TopLink                  string
	ContactExchanges         int
	ContactExchangeLimit     plans.Allowance
	ContactExchangeRemaining plans.Allowance
	ContactSaves             int
	ContactDownloads         int
	LastViewedAt             *time.Time
	CreatedAt                time.Time
	UpdatedAt                time.Time
	Subscription             dto.SubscriptionState
}

// Aggregate computes the analytics summary for one profile. Pure and
// idempotent: identical inputs yield identical output, and nothing here
// mutates its arguments (quota resets happen before this call, at the
// exchange entry point).
func Aggregate(a Activity, state dto.SubscriptionState) Summary {
	tier := plans.ParseTier(state.PlanOrDefault())
	rule := plans.Rules(tier)

	s := Summary{
		TotalViews:           len(a.Views),
		UniqueVisitors:       uniqueVisitors(a.Views),
		ViewCountsOverTime:   viewCountsByDay(a.Views),
		TotalLinkTaps:        a.LinkTaps.Total(),
		TopLink:              a.LinkTaps.Top(),
		ContactExchanges:     a.Exchanges.Count,
		ContactExchangeLimit: rule.ContactQuota,
		ContactSaves:         a.ContactSaves,
		ContactDownloads:     a.ContactDownloads,
		LastViewedAt:         lastViewed(a),
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
		Subscription:         state,
	}
	s.ContactExchangeRemaining = a.Exchanges.Remaining(rule.ContactQuota)

	// Per-segment breakdowns are only computed for the tiers that can see
	// them; the work is skipped, not just hidden, for Novice.
	if rule.AllowsFacet(plans.FacetViewsByIndustry) {
		s.ViewsByIndustry = countBy(a.Views, func(v models.ViewEvent) string { return v.Industry })
	}
	if rule.AllowsFacet(plans.FacetViewsByLocation) {
		s.ViewsByLocation = countBy(a.Views, func(v models.ViewEvent) string { return v.Location })
	}

	return s
}

func uniqueVisitors(views []models.ViewEvent) int {
	seen := make(map[string]struct{}, len(views))
	for _, v := range views {
		seen[v.IP+visitorKeySep+v.UserAgent] = struct{}{}
	}
	return len(seen)
}

func viewCountsByDay(views []models.ViewEvent) []DateCount {
	buckets := make(map[string]int)
	for _, v := range views {
		buckets[v.Date.UTC().Format("2006-01-02")]++
	}

	out := make([]DateCount, 0, len(buckets))
	for date, count := range buckets {
		out = append(out, DateCount{Date: date, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// countBy groups views by a non-empty key.
func countBy(views []models.ViewEvent, key func(models.ViewEvent) string) map[string]int {
	out := make(map[string]int)
	for _, v := range views {
		if k := key(v); k != "" {
			out[k]++
		}
	}
	return out
}

// lastViewed prefers the stored watermark and falls back to the newest view
// event; the caller keeps the two in sync on each view-recording write.
func lastViewed(a Activity) *time.Time {
	if a.LastViewedAt != nil {
		return a.LastViewedAt
	}
	if len(a.Views) == 0 {
		return nil
	}
	last := a.Views[len(a.Views)-1].Date
	return &last
}
