package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotSubtotal(t *testing.T) {
	c := &Cart{
		ID:     "c1",
		UserID: "u1",
		Items: []Item{
			{ItemID: "m1", Name: "Margherita", Price: 10, Quantity: 2},
			{ItemID: "m2", Name: "Garlic Bread", Price: 5, Quantity: 1},
		},
	}

	snap := c.Snapshot()

	assert.Equal(t, 25.0, snap.Subtotal)
	assert.Len(t, snap.Items, 2)
	assert.False(t, snap.Empty())
}

func TestSnapshotNilCart(t *testing.T) {
	var c *Cart

	snap := c.Snapshot()

	assert.True(t, snap.Empty())
	assert.Zero(t, snap.Subtotal)
}

func TestSnapshotPreservesItemOrder(t *testing.T) {
	c := &Cart{Items: []Item{
		{ItemID: "b"}, {ItemID: "a"}, {ItemID: "c"},
	}}

	snap := c.Snapshot()

	assert.Equal(t, "b", snap.Items[0].ItemID)
	assert.Equal(t, "a", snap.Items[1].ItemID)
	assert.Equal(t, "c", snap.Items[2].ItemID)
}
