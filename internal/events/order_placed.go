package events

import (
	"time"

	"github.com/HirthickCoder/D3R/internal/cart"
	"github.com/HirthickCoder/D3R/internal/checkout"
)

const (
	EventsExchange        = "storefront.events"
	OrderPlacedRoutingKey = "order.placed.v1"
	EventTypeOrderPlaced  = "OrderPlaced"

	producerName = "storefront"
)

// OrderPlaced announces a completed checkout to the rest of the system.
type OrderPlaced struct {
	EventType     string      `json:"eventType"`
	PaymentID     string      `json:"paymentId"`
	UserID        string      `json:"userId"`
	Items         []cart.Item `json:"items"`
	Amount        float64     `json:"amount"`
	PaymentMethod string      `json:"paymentMethod"`
	Producer      string      `json:"producer"`
	Timestamp     time.Time   `json:"timestamp"`
}

func newOrderPlaced(userID string, rc *checkout.Receipt) OrderPlaced {
	return OrderPlaced{
		EventType:     EventTypeOrderPlaced,
		PaymentID:     rc.PaymentID,
		UserID:        userID,
		Items:         rc.Items,
		Amount:        rc.Amount,
		PaymentMethod: rc.PaymentMethod,
		Producer:      producerName,
		Timestamp:     rc.CreatedAt,
	}
}
