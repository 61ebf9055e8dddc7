package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name     string
		subtotal float64
		tax      float64
		total    float64
	}{
		{"zero", 0, 0, 0},
		{"sample order", 25.00, 4.50, 29.50},
		{"hundred", 100, 18, 118},
		{"small", 1, 0.18, 1.18},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeTotals(tc.subtotal)
			assert.Equal(t, tc.subtotal, got.Subtotal)
			assert.InDelta(t, tc.tax, got.Tax, 1e-9)
			assert.InDelta(t, tc.total, got.Total, 1e-9)
		})
	}
}

func TestComputeTotalsInvariant(t *testing.T) {
	for _, subtotal := range []float64{0, 0.01, 7.35, 25, 999.99, 123456.78} {
		got := ComputeTotals(subtotal)
		assert.Equal(t, subtotal*TaxRate, got.Tax)
		assert.Equal(t, subtotal+subtotal*TaxRate, got.Total)
	}
}
