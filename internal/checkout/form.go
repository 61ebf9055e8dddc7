package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/HirthickCoder/D3R/internal/cart"
	"github.com/HirthickCoder/D3R/internal/nav"
	"github.com/HirthickCoder/D3R/internal/payment"
)

// ErrSubmitInFlight is returned when Submit is re-triggered before the
// in-flight submission finished.
var ErrSubmitInFlight = errors.New("checkout: submit already in flight")

// ErrPaymentFailed wraps provider failures so callers can tell them from
// validation and infrastructure errors.
var ErrPaymentFailed = errors.New("payment failed")

const paymentFailedMessage = "Payment failed. Please try again."

// ValidationError is a malformed payment field. Recoverable by re-editing.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// ReceiptPublisher notifies the rest of the system that an order was placed.
// Publishing is best effort; a failure never fails the checkout.
type ReceiptPublisher interface {
	PublishOrderPlaced(ctx context.Context, userID string, rc *Receipt) error
}

// Form is the checkout screen controller. Field setters normalize raw input;
// Submit validates, charges and hands the receipt to the next screen. All
// collaborators are injected.
type Form struct {
	userID   string
	store    cart.Store
	provider payment.Provider
	nav      nav.Navigator
	events   ReceiptPublisher
	logger   *log.Logger

	CardNumber string
	ExpiryDate string
	CVC        string
	Err        string

	busy atomic.Bool
}

// NewForm builds a checkout form for one user's cart. events may be nil.
func NewForm(userID string, store cart.Store, provider payment.Provider, navigator nav.Navigator, events ReceiptPublisher, logger *log.Logger) *Form {
	if logger == nil {
		logger = log.Default()
	}
	return &Form{
		userID:   userID,
		store:    store,
		provider: provider,
		nav:      navigator,
		events:   events,
		logger:   logger,
	}
}

func (f *Form) SetCardNumber(raw string) {
	f.CardNumber = FormatCardNumber(raw)
}

func (f *Form) SetExpiryDate(raw string) {
	f.ExpiryDate = FormatExpiry(raw)
}

func (f *Form) SetCVC(raw string) {
	f.CVC = FormatCVC(raw)
}

// Busy reports whether a submission is in flight.
func (f *Form) Busy() bool {
	return f.busy.Load()
}

// Refresh re-evaluates the empty-cart guard. It returns the current snapshot
// and whether the form may render; an empty cart redirects to the cart view
// instead. Call it again whenever the cart changes.
func (f *Form) Refresh(ctx context.Context) (cart.Snapshot, bool, error) {
	snap, err := f.store.Snapshot(ctx)
	if err != nil {
		return cart.Snapshot{}, false, fmt.Errorf("cart snapshot: %w", err)
	}
	if snap.Empty() {
		f.nav.Navigate(nav.RouteCart, nil)
		return snap, false, nil
	}
	return snap, true, nil
}

// Submit validates the payment fields in order (first failure wins), charges
// the cart total, clears the cart and navigates to the payment-success screen
// with a populated receipt. Err carries the human-readable message on every
// failure path; the busy flag is released no matter the outcome.
func (f *Form) Submit(ctx context.Context) error {
	if !f.busy.CompareAndSwap(false, true) {
		return ErrSubmitInFlight
	}
	defer f.busy.Store(false)

	f.Err = ""

	if verr := f.validate(); verr != nil {
		f.Err = verr.Msg
		return verr
	}

	snap, err := f.store.Snapshot(ctx)
	if err != nil {
		f.Err = paymentFailedMessage
		return fmt.Errorf("cart snapshot: %w", err)
	}
	if snap.Empty() {
		f.nav.Navigate(nav.RouteCart, nil)
		return nil
	}

	totals := ComputeTotals(snap.Subtotal)

	conf, err := f.provider.Charge(ctx, totals.Total)
	if err != nil {
		f.Err = paymentFailedMessage
		return fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	digits := strings.ReplaceAll(f.CardNumber, " ", "")
	receipt := &Receipt{
		PaymentID:     conf.PaymentID,
		Amount:        totals.Total,
		Items:         snap.Items,
		PaymentMethod: "Card ending in " + digits[len(digits)-4:],
		CreatedAt:     time.Now().UTC(),
	}

	if err := f.store.Clear(ctx); err != nil {
		f.Err = paymentFailedMessage
		return fmt.Errorf("clear cart: %w", err)
	}

	if f.events != nil {
		if err := f.events.PublishOrderPlaced(ctx, f.userID, receipt); err != nil {
			f.logger.Printf("publish order placed: %v", err)
		}
	}

	f.nav.Navigate(nav.RoutePaymentSuccess, receipt)

	// payment instrument input is never kept past a successful submit
	f.CardNumber, f.ExpiryDate, f.CVC = "", "", ""
	return nil
}

func (f *Form) validate() *ValidationError {
	digits := strings.ReplaceAll(f.CardNumber, " ", "")
	if len(digits) < 16 || digitsOnly(digits) != digits {
		return &ValidationError{Msg: "Please enter a valid card number"}
	}
	if len(f.ExpiryDate) < 5 {
		return &ValidationError{Msg: "Please enter a valid expiry date"}
	}
	if len(f.CVC) < 3 {
		return &ValidationError{Msg: "Please enter a valid CVC"}
	}
	return nil
}
