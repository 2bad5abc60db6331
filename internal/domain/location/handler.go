package location

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/studioline/studioline-api/internal/pkg/errorhandler"
	"github.com/studioline/studioline-api/internal/pkg/response"
	"github.com/studioline/studioline-api/internal/pkg/validator"
)

// Handler handles location HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates location handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// Create handles POST /locations
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	now := time.Now()
	loc := &Location{
		ID:             uuid.New(),
		Name:           req.Name,
		Code:           DeriveCode(req.Name),
		SalesPersonIDs: req.SalesPersonIDs,
		Dates:          req.Dates,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := h.repo.Create(r.Context(), loc); err != nil {
		if errors.Is(err, ErrNameAlreadyTaken) {
			response.Conflict(w, "Location name already taken")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "LOCATION_CREATE_FAILED", "Failed to create location", err)
		return
	}

	response.Created(w, loc.ToResponse())
}

// List handles GET /locations
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	locs, err := h.repo.List(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "LOCATION_LIST_FAILED", "Failed to list locations", err)
		return
	}

	items := make([]*Response, len(locs))
	for i := range locs {
		items[i] = locs[i].ToResponse()
	}
	response.OK(w, items)
}

// Get handles GET /locations/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid location ID")
		return
	}

	loc, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "LOCATION_GET_FAILED", "Failed to load location", err)
		return
	}
	if loc == nil {
		response.NotFound(w, "Location not found")
		return
	}

	response.OK(w, loc.ToResponse())
}

// Update handles PUT /locations/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid location ID")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	loc, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "LOCATION_GET_FAILED", "Failed to load location", err)
		return
	}
	if loc == nil {
		response.NotFound(w, "Location not found")
		return
	}

	if req.Name != nil {
		loc.Name = *req.Name
		loc.Code = DeriveCode(*req.Name)
	}
	if req.SalesPersonIDs != nil {
		loc.SalesPersonIDs = req.SalesPersonIDs
	}
	if req.Dates != nil {
		loc.Dates = req.Dates
	}

	if err := h.repo.Update(r.Context(), loc); err != nil {
		if errors.Is(err, ErrNameAlreadyTaken) {
			response.Conflict(w, "Location name already taken")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "LOCATION_UPDATE_FAILED", "Failed to update location", err)
		return
	}

	response.OK(w, loc.ToResponse())
}

// Delete handles DELETE /locations/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid location ID")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrLocationNotFound) {
			response.NotFound(w, "Location not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "LOCATION_DELETE_FAILED", "Failed to delete location", err)
		return
	}
	response.NoContent(w)
}
