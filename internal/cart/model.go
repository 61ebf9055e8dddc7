package cart

import "time"

type Item struct {
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type Cart struct {
	ID        string    `json:"cartId"`
	UserID    string    `json:"userId"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Snapshot is the view the checkout screen renders from: the ordered items plus
// a subtotal recomputed on every read. The subtotal is never stored.
type Snapshot struct {
	Items    []Item  `json:"items"`
	Subtotal float64 `json:"subtotal"`
}

func (c *Cart) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	s := Snapshot{Items: c.Items}
	for _, it := range c.Items {
		s.Subtotal += float64(it.Quantity) * it.Price
	}
	return s
}

func (s Snapshot) Empty() bool {
	return len(s.Items) == 0
}
