package plans

// PlanInfo is one entry of the public pricing catalog. Prices are in whole
// rupees; the payment service converts to paise when creating orders.
type PlanInfo struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Prices   map[Cycle]int `json:"prices"`
	Tagline  string        `json:"tagline"`
	Benefits []Benefit     `json:"benefits"`
	CTALabel string        `json:"ctaLabel"`
}

// Benefit is a marketing bullet on the pricing page.
type Benefit struct {
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

// Catalog is the versioned pricing table. Injected where needed; there are
// no per-endpoint copies.
type Catalog struct {
	Version string
	Plans   []PlanInfo
}

// Price returns the price for a plan/cycle pair, or false when either is
// unknown.
func (c Catalog) Price(tier Tier, cycle Cycle) (int, bool) {
	for _, p := range c.Plans {
		if p.ID != tier.String() {
			continue
		}
		price, ok := p.Prices[cycle]
		return price, ok
	}
	return 0, false
}

// DefaultCatalog mirrors the published commaCards pricing.
func DefaultCatalog() Catalog {
	return Catalog{
		Version: "2024-06",
		Plans: []PlanInfo{
			{
				ID:      "novice",
				Name:    "Novice",
				Prices:  map[Cycle]int{CycleMonthly: 99, CycleQuarterly: 199},
				Tagline: "Launch your digital presence",
				Benefits: []Benefit{
					{Title: "Branded Digital Profile", Detail: "Showcase your name, photo, banner, role, Company/University and more"},
					{Title: "Essential Analytics", Detail: "See total views & unique visitors in real time"},
					{Title: "20 Contact Exchange Credits/mo"},
					{Title: "3 Theme Styles", Detail: "Choose from Classic or Chrome, each in 3 accent colors"},
				},
				CTALabel: "Start Novice – ₹99/mo",
			},
			{
				ID:      "corporate",
				Name:    "Corporate",
				Prices:  map[Cycle]int{CycleMonthly: 199, CycleQuarterly: 399},
				Tagline: "Elevate your professional brand",
				Benefits: []Benefit{
					{Title: "All Novice Features", Detail: "Plus advanced company & portfolio links"},
					{Title: "Custom Link Library", Detail: "Share brochures, websites & Portfolio URLs"},
					{Title: "Calendar Integration", Detail: "Embed your Calendly for instant bookings"},
					{Title: "50 Contact Exchange Credits/mo"},
					{Title: "Advanced Insights", Detail: "Break down views by sector, Contact download counts, etc."},
				},
				CTALabel: "Start Corporate – ₹199/mo",
			},
			{
				ID:      "elite",
				Name:    "Elite",
				Prices:  map[Cycle]int{CycleMonthly: 299, CycleQuarterly: 599},
				Tagline: "Unlock the networking power that only few hold",
				Benefits: []Benefit{
					{Title: "Access to every single feature that is coded"},
					{Title: "Deep Performance Analytics", Detail: "Pinpoint your top-performing links, Founder-level insights and lot more"},
					{Title: "Never worry about monthly limits for Contact Shares"},
					{Title: "Stand out with our elite membership badge"},
					{Title: "24/7 Priority Support"},
				},
				CTALabel: "Start Elite – ₹299/mo",
			},
		},
	}
}
