package plans

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTier(t *testing.T) {
	tests := []struct {
		input string
		want  Tier
	}{
		{"novice", TierNovice},
		{"corporate", TierCorporate},
		{"elite", TierElite},
		{"ELITE", TierElite},
		{" Corporate ", TierCorporate},
		{"", TierNovice},
		{"premium", TierNovice},
		{"gold", TierNovice},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTier(tt.input))
		})
	}
}

func TestValidTier(t *testing.T) {
	assert.True(t, ValidTier("novice"))
	assert.True(t, ValidTier("Corporate"))
	assert.True(t, ValidTier("elite"))
	assert.False(t, ValidTier(""))
	assert.False(t, ValidTier("premium"))
}

func TestCycleMonths(t *testing.T) {
	assert.Equal(t, 1, CycleMonthly.Months())
	assert.Equal(t, 3, CycleQuarterly.Months())
}

func TestNoviceRule(t *testing.T) {
	rule := Rules(TierNovice)

	assert.ElementsMatch(t,
		[]string{"name", "title", "subtitle", "tags", "phone", "socialLinks"},
		rule.Fields)
	assert.Equal(t, Allowance(20), rule.ContactQuota)

	assert.True(t, rule.AllowsField("name"))
	assert.True(t, rule.AllowsField("tags"))
	assert.False(t, rule.AllowsField("industry"))
	assert.False(t, rule.AllowsField("website"))
	assert.False(t, rule.AllowsField("calendlyLink"))
	assert.False(t, rule.AllowsField("bio"))

	assert.True(t, rule.AllowsFacet(FacetTotalViews))
	assert.True(t, rule.AllowsFacet(FacetViewCountsOverTime))
	assert.False(t, rule.AllowsFacet(FacetViewsByIndustry))
	assert.False(t, rule.AllowsFacet(FacetTopLink))
	assert.False(t, rule.AllowsFacet(FacetTotalLinkTaps))
}

func TestCorporateRule(t *testing.T) {
	rule := Rules(TierCorporate)

	assert.Equal(t, Allowance(50), rule.ContactQuota)

	// Everything Novice has, plus the business fields.
	for _, f := range Rules(TierNovice).Fields {
		assert.True(t, rule.AllowsField(f), f)
	}
	assert.True(t, rule.AllowsField("industry"))
	assert.True(t, rule.AllowsField("website"))
	assert.True(t, rule.AllowsField("calendlyLink"))
	assert.False(t, rule.AllowsField("bio"))

	assert.True(t, rule.AllowsFacet(FacetViewsByIndustry))
	assert.True(t, rule.AllowsFacet(FacetViewsByLocation))
	assert.False(t, rule.AllowsFacet(FacetTopLink))
	assert.False(t, rule.AllowsFacet(FacetLastViewedAt))
}

func TestEliteRule(t *testing.T) {
	rule := Rules(TierElite)

	// nil field list means no filtering at all.
	assert.Nil(t, rule.Fields)
	assert.True(t, rule.AllowsField("bio"))
	assert.True(t, rule.AllowsField("exclusiveBadge"))
	assert.True(t, rule.AllowsField("anything"))

	assert.True(t, rule.ContactQuota.IsUnlimited())

	assert.True(t, rule.AllowsFacet(FacetTopLink))
	assert.True(t, rule.AllowsFacet(FacetTotalLinkTaps))
	assert.True(t, rule.AllowsFacet(FacetLastViewedAt))
	assert.True(t, rule.AllowsFacet(FacetCreatedAt))
	assert.True(t, rule.AllowsFacet(FacetUpdatedAt))
}

func TestFacetSetsNest(t *testing.T) {
	novice := Rules(TierNovice)
	corporate := Rules(TierCorporate)
	elite := Rules(TierElite)

	for _, f := range novice.Facets {
		assert.True(t, corporate.AllowsFacet(f), "corporate missing %s", f)
	}
	for _, f := range corporate.Facets {
		assert.True(t, elite.AllowsFacet(f), "elite missing %s", f)
	}
}

func TestAllowanceMarshalJSON(t *testing.T) {
	raw, err := json.Marshal(Unlimited)
	require.NoError(t, err)
	assert.Equal(t, `"Unlimited"`, string(raw))

	raw, err = json.Marshal(Allowance(20))
	require.NoError(t, err)
	assert.Equal(t, `20`, string(raw))

	raw, err = json.Marshal(Allowance(0))
	require.NoError(t, err)
	assert.Equal(t, `0`, string(raw))
}

func TestCatalogPrice(t *testing.T) {
	catalog := DefaultCatalog()

	price, ok := catalog.Price(TierNovice, CycleMonthly)
	require.True(t, ok)
	assert.Equal(t, 99, price)

	price, ok = catalog.Price(TierElite, CycleQuarterly)
	require.True(t, ok)
	assert.Equal(t, 599, price)

	_, ok = catalog.Price(TierElite, Cycle("yearly"))
	assert.False(t, ok)
}
