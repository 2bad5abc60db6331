package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/studioline/studioline-api/internal/domain/user"
	"github.com/studioline/studioline-api/internal/middleware"
	"github.com/studioline/studioline-api/internal/pkg/errorhandler"
	"github.com/studioline/studioline-api/internal/pkg/response"
	"github.com/studioline/studioline-api/internal/pkg/validator"
)

// Handler handles authentication HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates auth handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, tokens, err := h.service.Login(r.Context(), req.Name, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Unauthorized(w, "Invalid name or password")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to log in", err)
		return
	}

	response.OK(w, &LoginResponse{
		User:   u.ToResponse(),
		Tokens: *tokens,
	})
}

// Register handles POST /auth/register (requires user.manage)
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, user.ErrNameAlreadyTaken) || errors.Is(err, user.ErrEmailAlreadyTaken) {
			response.Conflict(w, err.Error())
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "REGISTER_FAILED", "Failed to create account", err)
		return
	}

	response.Created(w, u.ToResponse())
}

// Refresh handles POST /auth/refresh
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	tokens, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrInvalidRefreshToken) || errors.Is(err, ErrRefreshTokenRevoked) {
			response.Unauthorized(w, "Invalid refresh token")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "REFRESH_FAILED", "Failed to refresh tokens", err)
		return
	}

	response.OK(w, tokens)
}

// Me handles GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	u, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "ME_FAILED", "Failed to load account", err)
		return
	}
	if u == nil {
		response.NotFound(w, "Account not found")
		return
	}

	response.OK(w, u.ToResponse())
}
