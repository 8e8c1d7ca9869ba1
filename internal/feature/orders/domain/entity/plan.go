package entity

// Plan describes one purchasable report tier.
type Plan struct {
	Code        string // Stable identifier used on the wire (e.g. "essential")
	Name        string // Human-readable tier name
	AmountCents int64  // Price in US cents
	Currency    string // ISO currency code, lower case
}

// DefaultPlanCode is the tier selected when a request names no plan.
const DefaultPlanCode = "essential"

// planCatalog is the fixed set of report tiers, in display order.
var planCatalog = []Plan{
	{Code: "essential", Name: "Essential Report", AmountCents: 2999, Currency: "usd"},
	{Code: "premium", Name: "Premium Report", AmountCents: 4999, Currency: "usd"},
	{Code: "ultimate", Name: "Ultimate Report", AmountCents: 6999, Currency: "usd"},
}

// Plans returns the full catalog in display order. The returned slice is a
// copy; callers may not mutate the catalog.
func Plans() []Plan {
	out := make([]Plan, len(planCatalog))
	copy(out, planCatalog)
	return out
}

// PlanByCode looks up a tier by its code.
func PlanByCode(code string) (Plan, bool) {
	for _, p := range planCatalog {
		if p.Code == code {
			return p, true
		}
	}
	return Plan{}, false
}
