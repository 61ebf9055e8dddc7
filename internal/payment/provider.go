package payment

import "context"

type Confirmation struct {
	PaymentID string `json:"paymentId"`
}

// Provider charges a payment instrument and returns a gateway confirmation.
// A real gateway integration plugs in here; Simulated stands in for local
// development and tests.
type Provider interface {
	Charge(ctx context.Context, amount float64) (Confirmation, error)
}
