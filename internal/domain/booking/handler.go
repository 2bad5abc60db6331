package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/studioline/studioline-api/internal/domain/user"
	"github.com/studioline/studioline-api/internal/middleware"
	"github.com/studioline/studioline-api/internal/pkg/errorhandler"
	"github.com/studioline/studioline-api/internal/pkg/response"
	"github.com/studioline/studioline-api/internal/pkg/validator"
)

// Handler handles booking HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates booking handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /bookings
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

	callerID := middleware.GetUserID(r.Context())
	resp, err := h.service.Create(r.Context(), callerID, &req)
	if err != nil {
		h.writeError(w, r, err, "BOOKING_CREATE_FAILED", "Failed to create booking")
		return
	}
	response.Created(w, resp)
}

// Get handles GET /bookings/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	resp, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err, "BOOKING_GET_FAILED", "Failed to get booking")
		return
	}
	response.OK(w, resp)
}

// Update handles PUT /bookings/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
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

	callerID := middleware.GetUserID(r.Context())
	callerRole := user.Role(middleware.GetRole(r.Context()))
	resp, err := h.service.Update(r.Context(), callerID, callerRole, id, &req)
	if err != nil {
		h.writeError(w, r, err, "BOOKING_UPDATE_FAILED", "Failed to update booking")
		return
	}
	response.OK(w, resp)
}

// Delete handles DELETE /bookings/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	callerID := middleware.GetUserID(r.Context())
	callerRole := user.Role(middleware.GetRole(r.Context()))
	if err := h.service.Delete(r.Context(), callerID, callerRole, id); err != nil {
		h.writeError(w, r, err, "BOOKING_DELETE_FAILED", "Failed to delete booking")
		return
	}
	response.NoContent(w)
}

// List handles GET /bookings
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	callerID := middleware.GetUserID(r.Context())
	callerRole := user.Role(middleware.GetRole(r.Context()))
	if callerRole == "" {
		response.Unauthorized(w, "Authentication required")
		return
	}

	resp, err := h.service.List(r.Context(), callerID, callerRole, q)
	if err != nil {
		h.writeError(w, r, err, "BOOKING_LIST_FAILED", "Failed to list bookings")
		return
	}
	response.OK(w, resp)
}

// AllocateStudioNumber handles POST /bookings/{id}/allocate-studio-number
func (h *Handler) AllocateStudioNumber(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	resp, err := h.service.AllocateStudioNumber(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err, "BOOKING_ALLOCATE_FAILED", "Failed to allocate studio number")
		return
	}
	response.OK(w, resp)
}

// SignConsent handles POST /bookings/{id}/signature
func (h *Handler) SignConsent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	var req SignatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	callerID := middleware.GetUserID(r.Context())
	callerRole := user.Role(middleware.GetRole(r.Context()))
	resp, err := h.service.SignConsent(r.Context(), callerID, callerRole, id, &req)
	if err != nil {
		h.writeError(w, r, err, "BOOKING_SIGNATURE_FAILED", "Failed to store signature")
		return
	}
	response.OK(w, resp)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, code, message string) {
	switch {
	case errors.Is(err, ErrBookingNotFound):
		response.NotFound(w, "Booking not found")
	case errors.Is(err, ErrLocationNotFound):
		response.BadRequest(w, "Location not found")
	case errors.Is(err, ErrNoLocation):
		response.BadRequest(w, "Booking has no location assigned")
	case errors.Is(err, ErrAlreadyAllocated):
		response.BadRequest(w, "Studio number already allocated")
	case errors.Is(err, ErrStudioNumberConflict):
		response.Conflict(w, "Studio number conflict at location")
	case errors.Is(err, ErrInvalidPhone):
		response.BadRequest(w, "Phone number must contain exactly 11 digits")
	case errors.Is(err, ErrMissingSessionSlot):
		response.BadRequest(w, "Either session or special request date and time must be set")
	case errors.Is(err, ErrInvalidSignature):
		response.BadRequest(w, "Signature payload is not a valid base64 image")
	case errors.Is(err, ErrNotOwner):
		response.Forbidden(w, "You can only modify your own bookings")
	default:
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, code, message, err)
	}
}

func parseListQuery(r *http.Request) (ListQuery, error) {
	var q ListQuery
	values := r.URL.Query()

	if v := values.Get("locationId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return q, errors.New("invalid locationId")
		}
		q.LocationID = &id
	}
	if v := values.Get("salesPersonId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return q, errors.New("invalid salesPersonId")
		}
		q.SalesPersonID = &id
	}
	q.Status = values.Get("status")
	q.IncludeAllSalesPersons = values.Get("includeAllSalesPersons") == "true"
	q.HasCollectionDate = values.Get("hasCollectionDate") == "true"

	q.Page = 1
	if v := values.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return q, errors.New("invalid page")
		}
		q.Page = page
	}
	q.Limit = 20
	if v := values.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return q, errors.New("invalid limit")
		}
		q.Limit = limit
	}
	return q, nil
}
