package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateLeadCost(t *testing.T) {
	calc := NewCalculator(DefaultCostTable())

	tests := []struct {
		name   string
		source string
		want   *float64
	}{
		{"google", "google", floatPtr(5.50)},
		{"facebook", "facebook", floatPtr(3.20)},
		{"instagram", "instagram", floatPtr(2.80)},
		{"organic site", "site", floatPtr(0.00)},
		{"whatsapp", "whatsapp", floatPtr(1.50)},
		{"email", "email", floatPtr(0.50)},
		{"case and whitespace normalized", "  GoOgLe ", floatPtr(5.50)},
		{"unknown source", "tiktok", nil},
		{"empty source", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.EstimateLeadCost(Params{Source: tt.source})
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 0.001)
		})
	}
}

func TestEstimateLeadCostDoesNotShareTable(t *testing.T) {
	table := DefaultCostTable()
	calc := NewCalculator(table)

	// Mutating the caller's map must not leak into the calculator.
	table["google"] = 99.99

	got := calc.EstimateLeadCost(Params{Source: "google"})
	require.NotNil(t, got)
	assert.InDelta(t, 5.50, *got, 0.001)
}

func TestDescribeSource(t *testing.T) {
	calc := NewCalculator(DefaultCostTable())

	t.Run("full bundle", func(t *testing.T) {
		got := calc.DescribeSource(Params{
			Source:   "google",
			Medium:   "cpc",
			Campaign: "black-friday",
		})
		assert.Equal(t, "google | cpc | black-friday", got)
	})

	t.Run("partial bundle skips blanks", func(t *testing.T) {
		got := calc.DescribeSource(Params{
			Source:      "facebook",
			LandingPage: "/veiculos/onix",
		})
		assert.Equal(t, "facebook | /veiculos/onix", got)
	})

	t.Run("empty bundle", func(t *testing.T) {
		got := calc.DescribeSource(Params{})
		assert.Equal(t, UnattributedSource, got)
	})
}

func floatPtr(f float64) *float64 { return &f }
