package payment

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// Simulated approves every charge after a fixed delay and issues a
// gateway-style identifier.
type Simulated struct {
	delay time.Duration
}

func NewSimulated(delay time.Duration) *Simulated {
	return &Simulated{delay: delay}
}

func (s *Simulated) Charge(ctx context.Context, amount float64) (Confirmation, error) {
	if amount <= 0 {
		return Confirmation{}, fmt.Errorf("invalid charge amount: %.2f", amount)
	}

	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return Confirmation{}, ctx.Err()
		case <-t.C:
		}
	}

	return Confirmation{PaymentID: newPaymentID()}, nil
}

const paymentIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// newPaymentID builds "pi_" plus 14 base-36 characters. Not cryptographic;
// collisions are acceptable for a simulation.
func newPaymentID() string {
	b := make([]byte, 14)
	for i := range b {
		b[i] = paymentIDAlphabet[rand.Intn(len(paymentIDAlphabet))]
	}
	return "pi_" + string(b)
}
