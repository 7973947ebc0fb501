package insights

import (
	"github.com/sandy-the-earth/nfc-backend/internal/plans"
)

// Payload is the tier-visible analytics output. Facets a tier cannot see are
// omitted entirely, never set to null, so consumers can distinguish "not
// entitled" (key absent) from "legitimately zero" (key present, value 0).
type Payload map[string]any

// FilterForTier narrows a full summary down to the facets the tier's rule
// permits. The output key set is always a subset of the rule table's facet
// set for that tier.
func FilterForTier(s Summary, tier plans.Tier) Payload {
	rule := plans.Rules(tier)

	out := make(Payload, len(rule.Facets))
	for _, facet := range rule.Facets {
		if value, ok := facetValue(s, facet); ok {
			out[string(facet)] = value
		}
	}
	return out
}

// facetValue resolves one facet against the summary. The switch is
// exhaustive over the facet constants; an unknown facet is simply skipped.
func facetValue(s Summary, facet plans.Facet) (any, bool) {
	switch facet {
	case plans.FacetTotalViews:
		return s.TotalViews, true
	case plans.FacetUniqueVisitors:
		return s.UniqueVisitors, true
	case plans.FacetContactExchanges:
		return s.ContactExchanges, true
	case plans.FacetContactExchangeLimit:
		return s.ContactExchangeLimit, true
	case plans.FacetContactExchangeRemaining:
		return s.ContactExchangeRemaining, true
	case plans.FacetContactSaves:
		return s.ContactSaves, true
	case plans.FacetContactDownloads:
		return s.ContactDownloads, true
	case plans.FacetViewCountsOverTime:
		if s.ViewCountsOverTime == nil {
			return []DateCount{}, true
		}
		return s.ViewCountsOverTime, true
	case plans.FacetViewsByIndustry:
		if s.ViewsByIndustry == nil {
			return map[string]int{}, true
		}
		return s.ViewsByIndustry, true
	case plans.FacetViewsByLocation:
		if s.ViewsByLocation == nil {
			return map[string]int{}, true
		}
		return s.ViewsByLocation, true
	case plans.FacetLastViewedAt:
		return s.LastViewedAt, true
	case plans.FacetTotalLinkTaps:
		return s.TotalLinkTaps, true
	case plans.FacetTopLink:
		return s.TopLink, true
	case plans.FacetCreatedAt:
		return s.CreatedAt, true
	case plans.FacetUpdatedAt:
		return s.UpdatedAt, true
	case plans.FacetSubscription:
		return s.Subscription, true
	}
	return nil, false
}
