package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandy-the-earth/nfc-backend/internal/dto"
	"github.com/sandy-the-earth/nfc-backend/internal/models"
	"github.com/sandy-the-earth/nfc-backend/internal/plans"
)

func planState(plan string) dto.SubscriptionState {
	cycle := "monthly"
	activated := date(2026, time.January, 1)
	expires := date(2026, time.February, 1)
	return dto.SubscriptionState{
		Plan:        &plan,
		Cycle:       &cycle,
		ActivatedAt: &activated,
		ExpiresAt:   &expires,
	}
}

func view(day int, ip, ua string) models.ViewEvent {
	return models.ViewEvent{Date: date(2026, time.March, day), IP: ip, UserAgent: ua}
}

func TestAggregateTotalsAndUniques(t *testing.T) {
	a := Activity{
		Views: []models.ViewEvent{
			view(1, "1.1.1.1", "chrome"),
			view(1, "1.1.1.1", "chrome"), // repeat visitor
			view(2, "1.1.1.1", "safari"), // same IP, new agent
			view(2, "2.2.2.2", "chrome"),
		},
	}

	s := Aggregate(a, dto.NoSubscription())
	assert.Equal(t, 4, s.TotalViews)
	assert.Equal(t, 3, s.UniqueVisitors)
}

func TestAggregateViewCountsOverTime(t *testing.T) {
	a := Activity{
		Views: []models.ViewEvent{
			view(3, "a", "x"),
			view(1, "b", "x"),
			view(3, "c", "x"),
			view(2, "d", "x"),
		},
	}

	s := Aggregate(a, dto.NoSubscription())
	assert.Equal(t, []DateCount{
		{Date: "2026-03-01", Count: 1},
		{Date: "2026-03-02", Count: 1},
		{Date: "2026-03-03", Count: 2},
	}, s.ViewCountsOverTime)
}

func TestAggregateBucketsInUTC(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	// 01:30 IST on March 2 is 20:00 UTC on March 1.
	a := Activity{
		Views: []models.ViewEvent{
			{Date: time.Date(2026, time.March, 2, 1, 30, 0, 0, ist), IP: "a", UserAgent: "x"},
		},
	}

	s := Aggregate(a, dto.NoSubscription())
	require.Len(t, s.ViewCountsOverTime, 1)
	assert.Equal(t, "2026-03-01", s.ViewCountsOverTime[0].Date)
}

func TestAggregateSegmentsGatedByTier(t *testing.T) {
	a := Activity{
		Views: []models.ViewEvent{
			{Date: date(2026, time.March, 1), IP: "a", UserAgent: "x", Industry: "fintech", Location: "Mumbai"},
			{Date: date(2026, time.March, 1), IP: "b", UserAgent: "x", Industry: "fintech"},
			{Date: date(2026, time.March, 2), IP: "c", UserAgent: "x", Location: "Pune"},
		},
	}

	novice := Aggregate(a, planState("novice"))
	assert.Nil(t, novice.ViewsByIndustry)
	assert.Nil(t, novice.ViewsByLocation)

	corporate := Aggregate(a, planState("corporate"))
	assert.Equal(t, map[string]int{"fintech": 2}, corporate.ViewsByIndustry)
	assert.Equal(t, map[string]int{"Mumbai": 1, "Pune": 1}, corporate.ViewsByLocation)
}

func TestAggregateLinkTapsAndQuota(t *testing.T) {
	a := Activity{
		LinkTaps:  LinkTapList{{LinkID: "github", Count: 5}, {LinkID: "site", Count: 2}},
		Exchanges: ExchangeCounter{Count: 12},
	}

	s := Aggregate(a, planState("novice"))
	assert.Equal(t, int64(7), s.TotalLinkTaps)
	assert.Equal(t, "github", s.TopLink)
	assert.Equal(t, 12, s.ContactExchanges)
	assert.Equal(t, plans.Allowance(20), s.ContactExchangeLimit)
	assert.Equal(t, plans.Allowance(8), s.ContactExchangeRemaining)

	elite := Aggregate(a, planState("elite"))
	assert.Equal(t, plans.Unlimited, elite.ContactExchangeLimit)
	assert.Equal(t, plans.Unlimited, elite.ContactExchangeRemaining)
}

func TestAggregateLastViewedPrefersWatermark(t *testing.T) {
	mark := date(2026, time.April, 7)
	a := Activity{
		Views:        []models.ViewEvent{view(1, "a", "x")},
		LastViewedAt: &mark,
	}

	s := Aggregate(a, dto.NoSubscription())
	require.NotNil(t, s.LastViewedAt)
	assert.Equal(t, mark, *s.LastViewedAt)

	// Without a watermark the newest event stands in.
	noMark := Activity{Views: []models.ViewEvent{view(1, "a", "x"), view(5, "b", "x")}}
	s = Aggregate(noMark, dto.NoSubscription())
	require.NotNil(t, s.LastViewedAt)
	assert.Equal(t, date(2026, time.March, 5), *s.LastViewedAt)

	empty := Aggregate(Activity{}, dto.NoSubscription())
	assert.Nil(t, empty.LastViewedAt)
}

func TestAggregateIdempotent(t *testing.T) {
	a := Activity{
		Views: []models.ViewEvent{
			view(1, "a", "x"), view(2, "b", "y"), view(2, "a", "x"),
		},
		LinkTaps:  LinkTapList{{LinkID: "l1", Count: 3}},
		Exchanges: ExchangeCounter{Count: 4, LastReset: date(2026, time.March, 1)},
	}
	state := planState("elite")

	first := Aggregate(a, state)
	second := Aggregate(a, state)
	assert.Equal(t, first, second)

	// The input counter is untouched: resets happen at the exchange entry
	// point, never inside aggregation.
	assert.Equal(t, 4, a.Exchanges.Count)
}

func TestAggregateEmptyActivity(t *testing.T) {
	s := Aggregate(Activity{}, dto.NoSubscription())

	assert.Equal(t, 0, s.TotalViews)
	assert.Equal(t, 0, s.UniqueVisitors)
	assert.Empty(t, s.ViewCountsOverTime)
	assert.Equal(t, int64(0), s.TotalLinkTaps)
	assert.Equal(t, "", s.TopLink)
	assert.Equal(t, 0, s.ContactExchanges)
}
