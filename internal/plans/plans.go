// Package plans is the single source of truth for tier gating: which profile
// fields a tier exposes publicly, its monthly contact-exchange quota, and
// which analytics facets it may see. Nothing else in the codebase hardcodes
// per-tier behavior.
package plans

import (
	"encoding/json"
	"strings"
)

// Tier is a subscription plan level. The set is closed; anything unparseable
// degrades to Novice, the most restrictive tier.
type Tier int

const (
	TierNovice Tier = iota
	TierCorporate
	TierElite
)

func (t Tier) String() string {
	switch t {
	case TierCorporate:
		return "corporate"
	case TierElite:
		return "elite"
	default:
		return "novice"
	}
}

// ParseTier maps a stored plan string onto a Tier. Matching is
// case-insensitive; unknown or empty input yields Novice.
func ParseTier(s string) Tier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "corporate":
		return TierCorporate
	case "elite":
		return TierElite
	default:
		return TierNovice
	}
}

// ValidTier reports whether s names one of the three tiers exactly.
func ValidTier(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "novice", "corporate", "elite":
		return true
	}
	return false
}

// Cycle is a billing cycle.
type Cycle string

const (
	CycleMonthly   Cycle = "monthly"
	CycleQuarterly Cycle = "quarterly"
)

// ValidCycle reports whether s is a known billing cycle.
func ValidCycle(s string) bool {
	switch Cycle(strings.ToLower(strings.TrimSpace(s))) {
	case CycleMonthly, CycleQuarterly:
		return true
	}
	return false
}

// Months returns the calendar length of the cycle.
func (c Cycle) Months() int {
	if c == CycleQuarterly {
		return 3
	}
	return 1
}

// Allowance is a monthly quota. Unlimited is rendered as the string
// "Unlimited" in JSON rather than a numeric literal, so clients never treat
// it as a countable number.
type Allowance int

// Unlimited is the no-quota sentinel. Quota checks always pass against it.
const Unlimited Allowance = -1

func (a Allowance) IsUnlimited() bool { return a == Unlimited }

func (a Allowance) MarshalJSON() ([]byte, error) {
	if a.IsUnlimited() {
		return json.Marshal("Unlimited")
	}
	return json.Marshal(int(a))
}

// Facet names one slice of the analytics payload. The JSON keys mirror the
// insight field names the frontend already consumes.
type Facet string

const (
	FacetTotalViews               Facet = "totalViews"
	FacetUniqueVisitors           Facet = "uniqueVisitors"
	FacetContactExchanges         Facet = "contactExchanges"
	FacetContactExchangeLimit     Facet = "contactExchangeLimit"
	FacetContactExchangeRemaining Facet = "contactExchangeRemaining"
	FacetContactSaves             Facet = "contactSaves"
	FacetContactDownloads         Facet = "contactDownloads"
	FacetViewCountsOverTime       Facet = "viewCountsOverTime"
	FacetViewsByIndustry          Facet = "viewsByIndustry"
	FacetViewsByLocation          Facet = "viewsByLocation"
	FacetLastViewedAt             Facet = "lastViewedAt"
	FacetTotalLinkTaps            Facet = "totalLinkTaps"
	FacetTopLink                  Facet = "topLink"
	FacetCreatedAt                Facet = "createdAt"
	FacetUpdatedAt                Facet = "updatedAt"
	FacetSubscription             Facet = "subscription"
)

// Rule is the gating row for one tier.
type Rule struct {
	// Fields lists the content fields the tier exposes publicly, on top of
	// the common fields every tier gets. nil means no filtering (Elite).
	Fields []string

	// ContactQuota is the monthly contact-exchange allowance.
	ContactQuota Allowance

	// Facets the tier may see in analytics output.
	Facets []Facet
}

// AllowsField reports whether the rule exposes the named content field.
func (r Rule) AllowsField(name string) bool {
	if r.Fields == nil {
		return true
	}
	for _, f := range r.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// AllowsFacet reports whether the rule exposes the named analytics facet.
func (r Rule) AllowsFacet(f Facet) bool {
	for _, v := range r.Facets {
		if v == f {
			return true
		}
	}
	return false
}

var noviceFields = []string{
	"name", "title", "subtitle", "tags", "phone", "socialLinks",
}

var corporateFields = append(append([]string{}, noviceFields...),
	"industry", "website", "calendlyLink",
)

var noviceFacets = []Facet{
	FacetTotalViews,
	FacetUniqueVisitors,
	FacetContactExchanges,
	FacetContactExchangeLimit,
	FacetContactExchangeRemaining,
	FacetContactSaves,
	FacetViewCountsOverTime,
	FacetSubscription,
}

var corporateFacets = append(append([]Facet{}, noviceFacets...),
	FacetContactDownloads,
	FacetViewsByIndustry,
	FacetViewsByLocation,
)

var eliteFacets = append(append([]Facet{}, corporateFacets...),
	FacetLastViewedAt,
	FacetTotalLinkTaps,
	FacetTopLink,
	FacetCreatedAt,
	FacetUpdatedAt,
)

var ruleTable = map[Tier]Rule{
	TierNovice: {
		Fields:       noviceFields,
		ContactQuota: 20,
		Facets:       noviceFacets,
	},
	TierCorporate: {
		Fields:       corporateFields,
		ContactQuota: 50,
		Facets:       corporateFacets,
	},
	TierElite: {
		Fields:       nil, // no filtering
		ContactQuota: Unlimited,
		Facets:       eliteFacets,
	},
}

// Rules returns the gating rule for the tier. The lookup is exhaustive over
// the closed enum; ParseTier already folded unknown input into Novice.
func Rules(t Tier) Rule {
	if r, ok := ruleTable[t]; ok {
		return r
	}
	return ruleTable[TierNovice]
}

// CommonFields are always exposed regardless of tier. "slug" is the custom
// slug when set, else the activation code.
var CommonFields = []string{"slug", "bannerUrl", "avatarUrl", "theme", "createdAt", "email"}
