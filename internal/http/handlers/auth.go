package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/placementtrack/api/internal/domain/user"
	"github.com/placementtrack/api/internal/http/middlewares"
	"github.com/placementtrack/api/internal/observability"
	"github.com/placementtrack/api/internal/service"
)

// Keep this small interface so tests can fake the service easily.
type Authenticator interface {
	Register(ctx context.Context, reg user.Registration) (user.User, string, error)
	Login(ctx context.Context, email, password string) (user.User, string, error)
	CurrentUser(ctx context.Context, id string) (user.User, error)
}

type AuthHandler struct {
	svc  Authenticator
	prom *observability.Prom
	log  *slog.Logger
}

func NewAuthHandler(svc Authenticator, prom *observability.Prom, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:  svc,
		prom: prom,
		log:  log,
	}
}

func (h *AuthHandler) countAttempt(op, result string) {
	if h.prom != nil {
		h.prom.AuthAttempts.WithLabelValues(op, result).Inc()
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req user.Registration

	if err := ctx.ShouldBindJSON(&req); err != nil {
		RespondError(ctx, http.StatusBadRequest, "No data provided")
		return
	}

	u, token, err := h.svc.Register(ctx.Request.Context(), req)

	if err != nil {
		var vErr *service.ValidationError

		switch {
		case errors.As(err, &vErr):
			h.countAttempt("register", "rejected")
			RespondValidation(ctx, vErr.Fields)
		case errors.Is(err, user.ErrEmailTaken):
			h.countAttempt("register", "rejected")
			RespondError(ctx, http.StatusConflict, "User with this email already exists")
		default:
			h.countAttempt("register", "error")
			h.log.Error("registration failed", "err", err)
			RespondInternal(ctx)
		}
		return
	}

	h.countAttempt("register", "ok")
	RespondSuccess(ctx, http.StatusCreated, "User registered successfully", u, token)
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		RespondError(ctx, http.StatusBadRequest, "No data provided")
		return
	}

	u, token, err := h.svc.Login(ctx.Request.Context(), req.Email, req.Password)

	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			h.countAttempt("login", "rejected")
			RespondError(ctx, http.StatusBadRequest, "Email and password are required")
		case errors.Is(err, service.ErrAccountDeactivated):
			// distinct message, same unauthorized class
			h.countAttempt("login", "rejected")
			RespondError(ctx, http.StatusUnauthorized, "Account is deactivated")
		case errors.Is(err, service.ErrInvalidCredentials):
			h.countAttempt("login", "rejected")
			RespondError(ctx, http.StatusUnauthorized, "Invalid email or password")
		default:
			h.countAttempt("login", "error")
			h.log.Error("login failed", "err", err)
			RespondInternal(ctx)
		}
		return
	}

	h.countAttempt("login", "ok")
	RespondSuccess(ctx, http.StatusOK, "Login successful", u, token)
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	id, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondError(ctx, http.StatusUnauthorized, "Missing or invalid access token")
		return
	}

	u, err := h.svc.CurrentUser(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondError(ctx, http.StatusNotFound, "User not found")
			return
		}

		h.log.Error("current user lookup failed", "err", err)
		RespondInternal(ctx)
		return
	}

	RespondSuccess(ctx, http.StatusOK, "", u, "")
}

// Logout is gated by the auth middleware but changes no server state.
// Tokens stay valid until they expire; the client just drops its copy.
func (h *AuthHandler) Logout(ctx *gin.Context) {
	RespondSuccess(ctx, http.StatusOK, "Logout successful", nil, "")
}
