package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/HirthickCoder/D3R/internal/auth"
	"github.com/HirthickCoder/D3R/internal/authclient"
	"github.com/HirthickCoder/D3R/internal/cart"
	"github.com/HirthickCoder/D3R/internal/checkout"
	"github.com/HirthickCoder/D3R/internal/clipboard"
	"github.com/HirthickCoder/D3R/internal/middleware"
	"github.com/HirthickCoder/D3R/internal/model"
	"github.com/HirthickCoder/D3R/internal/nav"
	"github.com/HirthickCoder/D3R/internal/payment"
	"github.com/HirthickCoder/D3R/internal/session"
)

// Handler exposes the checkout and auth screens as JSON endpoints.
type Handler struct {
	logger   *log.Logger
	cartRepo cart.Repository
	provider payment.Provider
	authAPI  auth.API
	storage  session.Store
	clip     clipboard.Writer
	events   checkout.ReceiptPublisher
}

// NewHandler wires the screen controllers' collaborators. events may be nil.
func NewHandler(logger *log.Logger, cartRepo cart.Repository, provider payment.Provider, authAPI auth.API, storage session.Store, clip clipboard.Writer, events checkout.ReceiptPublisher) *Handler {
	return &Handler{
		logger:   logger,
		cartRepo: cartRepo,
		provider: provider,
		authAPI:  authAPI,
		storage:  storage,
		clip:     clip,
		events:   events,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "storefront"})
}

type cartView struct {
	Items    []cart.Item `json:"items"`
	Subtotal float64     `json:"subtotal"`
	Tax      float64     `json:"tax"`
	Total    float64     `json:"total"`
}

func newCartView(snap cart.Snapshot) cartView {
	totals := checkout.ComputeTotals(snap.Subtotal)
	items := snap.Items
	if items == nil {
		items = []cart.Item{}
	}
	return cartView{Items: items, Subtotal: totals.Subtotal, Tax: totals.Tax, Total: totals.Total}
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeError(w, r, http.StatusBadRequest, "missing userId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	snap, err := cart.ForUser(h.cartRepo, userID).Snapshot(ctx)
	if err != nil {
		h.logger.Printf("load cart for %s: %v", userID, err)
		writeError(w, r, http.StatusInternalServerError, "failed to load cart")
		return
	}

	writeJSON(w, http.StatusOK, newCartView(snap))
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeError(w, r, http.StatusBadRequest, "missing userId")
		return
	}

	var body struct {
		ItemID   string  `json:"itemId"`
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Quantity int     `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json")
		return
	}
	if body.ItemID == "" || body.Quantity < 1 {
		writeError(w, r, http.StatusBadRequest, "itemId and quantity >= 1 are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.cartRepo.GetCart(ctx, userID)
	if err != nil {
		h.logger.Printf("load cart for %s: %v", userID, err)
		writeError(w, r, http.StatusInternalServerError, "failed to load cart")
		return
	}
	if c == nil {
		c = &cart.Cart{UserID: userID}
	}

	updated := false
	for i := range c.Items {
		if c.Items[i].ItemID == body.ItemID {
			c.Items[i].Quantity += body.Quantity
			c.Items[i].Price = body.Price
			updated = true
			break
		}
	}
	if !updated {
		c.Items = append(c.Items, cart.Item{
			ItemID:   body.ItemID,
			Name:     body.Name,
			Price:    body.Price,
			Quantity: body.Quantity,
		})
	}

	if err := h.cartRepo.UpsertCart(ctx, c); err != nil {
		h.logger.Printf("save cart for %s: %v", userID, err)
		writeError(w, r, http.StatusInternalServerError, "failed to save cart")
		return
	}

	writeJSON(w, http.StatusOK, newCartView(c.Snapshot()))
}

func (h *Handler) CheckoutSummary(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeError(w, r, http.StatusBadRequest, "missing userId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	rec := &nav.Recorder{}
	form := h.checkoutForm(userID, rec)

	snap, ok, err := form.Refresh(ctx)
	if err != nil {
		h.logger.Printf("checkout summary for %s: %v", userID, err)
		writeError(w, r, http.StatusInternalServerError, "failed to load cart")
		return
	}
	if !ok {
		writeRedirect(w, rec)
		return
	}

	writeJSON(w, http.StatusOK, newCartView(snap))
}

func (h *Handler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeError(w, r, http.StatusBadRequest, "missing userId")
		return
	}

	var body struct {
		CardNumber string `json:"cardNumber"`
		ExpiryDate string `json:"expiryDate"`
		CVC        string `json:"cvc"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	rec := &nav.Recorder{}
	form := h.checkoutForm(userID, rec)
	form.SetCardNumber(body.CardNumber)
	form.SetExpiryDate(body.ExpiryDate)
	form.SetCVC(body.CVC)

	err := form.Submit(r.Context())
	var verr *checkout.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, r, http.StatusBadRequest, verr.Msg)
		return
	case errors.Is(err, checkout.ErrPaymentFailed):
		writeError(w, r, http.StatusBadGateway, form.Err)
		return
	case err != nil:
		h.logger.Printf("checkout for %s: %v", userID, err)
		writeError(w, r, http.StatusInternalServerError, "checkout failed")
		return
	}

	last, ok := rec.Last()
	if !ok {
		writeError(w, r, http.StatusInternalServerError, "checkout failed")
		return
	}
	if last.Route == nav.RouteCart {
		writeRedirect(w, rec)
		return
	}

	writeJSON(w, http.StatusCreated, last.State)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	rec := &nav.Recorder{}
	form := auth.NewForm(h.authAPI, h.storage, rec, h.clip)
	form.RegisterData = auth.RegisterFields{Email: body.Email, Name: body.Name}

	if err := form.SubmitRegister(r.Context()); err != nil {
		writeDetail(w, authStatus(err), form.Err)
		return
	}

	writeJSON(w, http.StatusCreated, form.Credentials)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ClientID  string `json:"client_id"`
		ClientKey string `json:"client_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	rec := &nav.Recorder{}
	form := auth.NewForm(h.authAPI, h.storage, rec, h.clip)
	form.LoginData = auth.LoginFields{ClientID: body.ClientID, ClientKey: body.ClientKey}

	if err := form.SubmitLogin(r.Context()); err != nil {
		writeDetail(w, authStatus(err), form.Err)
		return
	}

	last, _ := rec.Last()
	writeJSON(w, http.StatusOK, map[string]string{"redirect": last.Route})
}

func (h *Handler) checkoutForm(userID string, navigator nav.Navigator) *checkout.Form {
	store := cart.ForUser(h.cartRepo, userID)
	return checkout.NewForm(userID, store, h.provider, navigator, h.events, h.logger)
}

// authStatus maps an auth submission failure onto a response status: the
// backend's own status when it answered, 502 when it was unreachable.
func authStatus(err error) int {
	var apiErr *authclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return http.StatusBadGateway
}

func writeRedirect(w http.ResponseWriter, rec *nav.Recorder) {
	last, ok := rec.Last()
	if !ok {
		return
	}
	w.Header().Set("Location", last.Route)
	writeJSON(w, http.StatusSeeOther, map[string]string{"redirect": last.Route})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{
		Error:         msg,
		CorrelationID: middleware.GetCorrelationID(r.Context()),
	})
}

// writeDetail mirrors the auth backend's error body shape.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
