package settings

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studioline/studioline-api/internal/domain/user"
	"github.com/studioline/studioline-api/internal/pkg/errorhandler"
	"github.com/studioline/studioline-api/internal/pkg/response"
)

// UpdateRequest for PUT /settings
type UpdateRequest struct {
	Settings map[string]string `json:"settings"`
}

// Handler handles app settings HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates settings handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// Get handles GET /settings
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.repo.GetAll(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "SETTINGS_GET_FAILED", "Failed to load settings", err)
		return
	}

	values := make(map[string]string, len(settings))
	for _, s := range settings {
		values[s.Key] = s.Value
	}
	response.OK(w, values)
}

// Update handles PUT /settings
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if len(req.Settings) == 0 {
		response.BadRequest(w, "No settings provided")
		return
	}

	for key, value := range req.Settings {
		if err := h.repo.Upsert(r.Context(), key, value); err != nil {
			errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "SETTINGS_UPDATE_FAILED", "Failed to update settings", err)
			return
		}
	}

	h.Get(w, r)
}

// Routes returns settings routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Get("/", h.Get)
	r.With(user.RequireCapability(user.ActionSettingsManage)).Put("/", h.Update)

	return r
}
