package checkout

// TaxRate is applied to every order. Fixed, not configurable.
const TaxRate = 0.18

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeTotals derives tax and total from a cart subtotal. Pure; recomputed on
// every evaluation.
func ComputeTotals(subtotal float64) Totals {
	tax := subtotal * TaxRate
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}
