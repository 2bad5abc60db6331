package user

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/studioline/studioline-api/internal/pkg/errorhandler"
	"github.com/studioline/studioline-api/internal/pkg/response"
)

// Handler handles user HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates user handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /users?role=SALES_PERSON
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var role *Role
	if raw := r.URL.Query().Get("role"); raw != "" {
		if !IsValidRole(raw) {
			response.BadRequest(w, "Invalid role filter")
			return
		}
		v := Role(raw)
		role = &v
	}

	users, err := h.repo.List(r.Context(), role)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "USER_LIST_FAILED", "Failed to list users", err)
		return
	}

	items := make([]*Response, len(users))
	for i := range users {
		items[i] = users[i].ToResponse()
	}
	response.OK(w, items)
}

// Get handles GET /users/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	u, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "USER_GET_FAILED", "Failed to load user", err)
		return
	}
	if u == nil {
		response.NotFound(w, "User not found")
		return
	}

	response.OK(w, u.ToResponse())
}

// Delete handles DELETE /users/{id} (requires user.manage)
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "USER_DELETE_FAILED", "Failed to delete user", err)
		return
	}
	response.NoContent(w)
}

// Routes returns user routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.With(RequireCapability(ActionUserManage)).Delete("/{id}", h.Delete)

	return r
}
