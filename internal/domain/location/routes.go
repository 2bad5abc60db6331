package location

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studioline/studioline-api/internal/domain/user"
)

// Routes returns location routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(user.RequireCapability(user.ActionLocationManage))
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	return r
}
