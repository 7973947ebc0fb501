package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandy-the-earth/nfc-backend/internal/dto"
	"github.com/sandy-the-earth/nfc-backend/internal/plans"
)

func fullSummary() Summary {
	mark := date(2026, time.March, 9)
	return Summary{
		TotalViews:               10,
		UniqueVisitors:           6,
		ViewCountsOverTime:       []DateCount{{Date: "2026-03-01", Count: 10}},
		ViewsByIndustry:          map[string]int{"fintech": 4},
		ViewsByLocation:          map[string]int{"Mumbai": 3},
		TotalLinkTaps:            12,
		TopLink:                  "github",
		ContactExchanges:         3,
		ContactExchangeLimit:     plans.Allowance(20),
		ContactExchangeRemaining: plans.Allowance(17),
		ContactSaves:             2,
		ContactDownloads:         1,
		LastViewedAt:             &mark,
		CreatedAt:                date(2026, time.January, 1),
		UpdatedAt:                date(2026, time.March, 9),
		Subscription:             dto.NoSubscription(),
	}
}

func TestFilterForNovice(t *testing.T) {
	p := FilterForTier(fullSummary(), plans.TierNovice)

	assert.Contains(t, p, "totalViews")
	assert.Contains(t, p, "uniqueVisitors")
	assert.Contains(t, p, "viewCountsOverTime")
	assert.Contains(t, p, "contactExchanges")
	assert.Contains(t, p, "contactExchangeLimit")
	assert.Contains(t, p, "contactExchangeRemaining")
	assert.Contains(t, p, "contactSaves")
	assert.Contains(t, p, "subscription")

	// Omitted, not nulled.
	assert.NotContains(t, p, "viewsByIndustry")
	assert.NotContains(t, p, "viewsByLocation")
	assert.NotContains(t, p, "totalLinkTaps")
	assert.NotContains(t, p, "topLink")
	assert.NotContains(t, p, "lastViewedAt")
	assert.NotContains(t, p, "contactDownloads")
}

func TestFilterForCorporate(t *testing.T) {
	p := FilterForTier(fullSummary(), plans.TierCorporate)

	assert.Contains(t, p, "viewsByIndustry")
	assert.Contains(t, p, "viewsByLocation")
	assert.Contains(t, p, "contactDownloads")

	assert.NotContains(t, p, "totalLinkTaps")
	assert.NotContains(t, p, "topLink")
	assert.NotContains(t, p, "lastViewedAt")
	assert.NotContains(t, p, "createdAt")
}

func TestFilterForElite(t *testing.T) {
	p := FilterForTier(fullSummary(), plans.TierElite)

	for _, f := range plans.Rules(plans.TierElite).Facets {
		assert.Contains(t, p, string(f))
	}
	assert.Equal(t, "github", p["topLink"])
	assert.Equal(t, int64(12), p["totalLinkTaps"])
}

func TestFilterKeySetIsSubsetOfRule(t *testing.T) {
	for _, tier := range []plans.Tier{plans.TierNovice, plans.TierCorporate, plans.TierElite} {
		rule := plans.Rules(tier)
		p := FilterForTier(fullSummary(), tier)
		for key := range p {
			assert.True(t, rule.AllowsFacet(plans.Facet(key)),
				"tier %s leaked facet %s", tier, key)
		}
	}
}

func TestFilterRendersEmptyCollections(t *testing.T) {
	// Nil maps in the summary must surface as empty values, never null.
	s := Summary{}
	p := FilterForTier(s, plans.TierElite)

	require.Contains(t, p, "viewsByIndustry")
	assert.Equal(t, map[string]int{}, p["viewsByIndustry"])
	require.Contains(t, p, "viewCountsOverTime")
	assert.Equal(t, []DateCount{}, p["viewCountsOverTime"])
}
