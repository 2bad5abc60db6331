package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studioline/studioline-api/internal/domain/user"
)

// Routes returns booking routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)

	r.With(user.RequireCapability(user.ActionBookingView)).Get("/", h.List)
	r.With(user.RequireCapability(user.ActionBookingView)).Get("/{id}", h.Get)
	r.With(user.RequireCapability(user.ActionBookingCreate)).Post("/", h.Create)
	r.With(user.RequireCapability(user.ActionBookingUpdate)).Put("/{id}", h.Update)
	r.With(user.RequireCapability(user.ActionBookingDelete)).Delete("/{id}", h.Delete)
	r.With(user.RequireCapability(user.ActionBookingAllocate)).Post("/{id}/allocate-studio-number", h.AllocateStudioNumber)
	r.With(user.RequireCapability(user.ActionBookingSign)).Post("/{id}/signature", h.SignConsent)

	return r
}
