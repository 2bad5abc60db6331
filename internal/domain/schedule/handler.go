package schedule

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/studioline/studioline-api/internal/domain/user"
	"github.com/studioline/studioline-api/internal/pkg/errorhandler"
	"github.com/studioline/studioline-api/internal/pkg/response"
	"github.com/studioline/studioline-api/internal/pkg/validator"
)

// kindFromSlug maps URL path segments to catalog kinds
var kindFromSlug = map[string]Kind{
	"collection-dates":      KindCollectionDate,
	"session-times":         KindSessionTime,
	"special-request-times": KindSpecialRequestTime,
}

// Handler handles slot catalog HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates schedule handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) kind(w http.ResponseWriter, r *http.Request) (Kind, bool) {
	kind, ok := kindFromSlug[chi.URLParam(r, "catalog")]
	if !ok {
		response.NotFound(w, "Unknown catalog")
		return "", false
	}
	return kind, true
}

// List handles GET /schedule/{catalog}
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kind(w, r)
	if !ok {
		return
	}

	entries, err := h.repo.ListByKind(r.Context(), kind)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CATALOG_LIST_FAILED", "Failed to list catalog", err)
		return
	}

	items := make([]*Response, len(entries))
	for i := range entries {
		items[i] = entries[i].ToResponse()
	}
	response.OK(w, items)
}

// Create handles POST /schedule/{catalog}
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kind(w, r)
	if !ok {
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	// Collection dates are ISO dates, the time catalogs are HH:MM
	var tag string
	if kind == KindCollectionDate {
		tag = "datetime=2006-01-02"
	} else {
		tag = "datetime=15:04"
	}
	if err := validator.ValidateVar(req.Value, tag); err != nil {
		response.BadRequest(w, "Invalid value format")
		return
	}

	entry := &Entry{
		ID:        uuid.New(),
		Kind:      kind,
		Value:     req.Value,
		CreatedAt: time.Now(),
	}

	if err := h.repo.Create(r.Context(), entry); err != nil {
		if errors.Is(err, ErrDuplicateEntry) {
			response.Conflict(w, "Catalog entry already exists")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CATALOG_CREATE_FAILED", "Failed to create catalog entry", err)
		return
	}

	response.Created(w, entry.ToResponse())
}

// Delete handles DELETE /schedule/{catalog}/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kind(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid entry ID")
		return
	}

	if err := h.repo.Delete(r.Context(), kind, id); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			response.NotFound(w, "Catalog entry not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CATALOG_DELETE_FAILED", "Failed to delete catalog entry", err)
		return
	}
	response.NoContent(w)
}

// Routes returns slot catalog routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Get("/{catalog}", h.List)

	r.Group(func(r chi.Router) {
		r.Use(user.RequireCapability(user.ActionScheduleManage))
		r.Post("/{catalog}", h.Create)
		r.Delete("/{catalog}/{id}", h.Delete)
	})

	return r
}
