package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierRules(t *testing.T) {
	tests := []struct {
		tier Tier
		want TierRule
	}{
		{TierStandard, TierRule{MaxBooks: 2, LoanDays: 14, MaxReservations: 0, CostCents: 0}},
		{TierPremium, TierRule{MaxBooks: 5, LoanDays: 30, MaxReservations: 3, CostCents: 2000}},
		{TierScholar, TierRule{MaxBooks: 10, LoanDays: 60, MaxReservations: 5, CostCents: 5000}},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			assert.True(t, tt.tier.IsValid())
			rule, err := tt.tier.Rule()
			require.NoError(t, err)
			assert.Equal(t, tt.want, rule)
		})
	}
}

func TestTier_Unknown(t *testing.T) {
	unknown := Tier("platinum")
	assert.False(t, unknown.IsValid())
	_, err := unknown.Rule()
	assert.Error(t, err)
}

func TestTier_AllowsReservations(t *testing.T) {
	assert.False(t, TierStandard.AllowsReservations())
	assert.True(t, TierPremium.AllowsReservations())
	assert.True(t, TierScholar.AllowsReservations())
}
