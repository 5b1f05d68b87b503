package entities

import "fmt"

// Tier represents a membership level granting borrowing entitlements
type Tier string

const (
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
	TierScholar  Tier = "scholar"
)

// TierRule defines the entitlements and one-time cost of a membership tier
type TierRule struct {
	MaxBooks        int
	LoanDays        int
	MaxReservations int
	CostCents       int64
}

// tierRules is the static policy table. Costs are in cents.
var tierRules = map[Tier]TierRule{
	TierStandard: {MaxBooks: 2, LoanDays: 14, MaxReservations: 0, CostCents: 0},
	TierPremium:  {MaxBooks: 5, LoanDays: 30, MaxReservations: 3, CostCents: 2000},
	TierScholar:  {MaxBooks: 10, LoanDays: 60, MaxReservations: 5, CostCents: 5000},
}

// IsValid reports whether the tier is a known membership level
func (t Tier) IsValid() bool {
	_, ok := tierRules[t]
	return ok
}

// Rule returns the entitlements for this tier
func (t Tier) Rule() (TierRule, error) {
	rule, ok := tierRules[t]
	if !ok {
		return TierRule{}, fmt.Errorf("unknown tier %q", t)
	}
	return rule, nil
}

// MustRule returns the entitlements for this tier, panicking on an unknown
// tier. Only for use after the tier has been validated.
func (t Tier) MustRule() TierRule {
	rule, err := t.Rule()
	if err != nil {
		panic(err)
	}
	return rule
}

// AllowsReservations reports whether this tier may place reservations
func (t Tier) AllowsReservations() bool {
	return tierRules[t].MaxReservations > 0
}
