package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	mw "github.com/HirthickCoder/D3R/internal/middleware"
)

func NewRouter(h *Handler, allowOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)
	r.Use(mw.CorrelationID)
	r.Use(mw.CORS(allowOrigins))

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/cart/{userId}", h.GetCart)
		r.Post("/cart/{userId}/items", h.AddItem)

		r.Get("/checkout/{userId}", h.CheckoutSummary)
		r.Post("/checkout/{userId}", h.SubmitCheckout)

		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)
	})

	return r
}
