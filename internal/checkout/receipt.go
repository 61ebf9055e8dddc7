package checkout

import (
	"time"

	"github.com/HirthickCoder/D3R/internal/cart"
)

// Receipt is the order summary handed to the payment-success screen. It is not
// persisted anywhere durable.
type Receipt struct {
	PaymentID     string      `json:"paymentId"`
	Amount        float64     `json:"amount"`
	Items         []cart.Item `json:"items"`
	PaymentMethod string      `json:"paymentMethod"`
	CreatedAt     time.Time   `json:"createdAt"`
}
