package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studioline/studioline-api/internal/domain/user"
)

// Routes returns auth routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/me", h.Me)
		r.With(user.RequireCapability(user.ActionUserManage)).Post("/register", h.Register)
	})

	return r
}
