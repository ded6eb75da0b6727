package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_KnownPlans(t *testing.T) {
	tests := []struct {
		planID string
		price  int64
	}{
		{"standard", 2900},
		{"couple", 4900},
		{"deluxe", 5500},
	}
	for _, tt := range tests {
		p := Lookup(tt.planID)
		assert.Equal(t, tt.planID, p.ID)
		assert.Equal(t, tt.price, p.Price)
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Description)
	}
}

func TestLookup_UnknownPlanFallsBackToStandard(t *testing.T) {
	for _, planID := range []string{"", "premium", "STANDARD", "gold"} {
		p := Lookup(planID)
		assert.Equal(t, "standard", p.ID, "plan %q should coerce to standard", planID)
	}
}

func TestChargeLines_BaseOnly(t *testing.T) {
	lines := ChargeLines(Lookup("standard"), false, false, false)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(2900), Total(lines))
}

func TestChargeLines_OneLinePerComponent(t *testing.T) {
	lines := ChargeLines(Lookup("deluxe"), true, true, true)
	// base + urgent + video + GST + QST
	require.Len(t, lines, 5)

	subtotal := int64(5500 + 1500 + 2500)
	assert.Equal(t, subtotal, lines[0].Amount+lines[1].Amount+lines[2].Amount)
}

func TestChargeLines_AddOnsUntaxed(t *testing.T) {
	lines := ChargeLines(Lookup("standard"), true, true, false)
	require.Len(t, lines, 3)
	assert.Equal(t, int64(2900+1500+2500), Total(lines))
}

func TestChargeLines_TaxedCoupleUrgent(t *testing.T) {
	lines := ChargeLines(Lookup("couple"), true, false, true)
	require.Len(t, lines, 4)

	// subtotal 4900+1500=6400, GST round(6400*0.05)=320, QST round(6400*0.09975)=638
	assert.Equal(t, int64(320), lines[2].Amount)
	assert.Equal(t, int64(638), lines[3].Amount)
	assert.Equal(t, int64(7358), Total(lines))
}

func TestChargeLines_TaxesRoundedIndependently(t *testing.T) {
	// standard alone: 2900 -> GST 145, QST round(289.275)=289
	lines := ChargeLines(Lookup("standard"), false, false, true)
	require.Len(t, lines, 3)
	assert.Equal(t, int64(145), lines[1].Amount)
	assert.Equal(t, int64(289), lines[2].Amount)
	assert.Equal(t, int64(2900+145+289), Total(lines))
}
