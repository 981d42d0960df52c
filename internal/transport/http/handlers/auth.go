package http_handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smarteval/auth-service/internal/application/auth"
	"github.com/smarteval/auth-service/internal/domain"
	"github.com/smarteval/auth-service/internal/logger"
	"github.com/smarteval/auth-service/internal/metrics"
	"github.com/smarteval/auth-service/internal/transport/http/dto"
	"github.com/smarteval/auth-service/internal/transport/http/middleware"
	"github.com/smarteval/auth-service/internal/transport/http/response"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.Register(r.Context(), req.Email, req.Password, req.Role, req.Profile)
	if err != nil {
		switch domain.KindOf(err) {
		case domain.KindConflict:
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
		case domain.KindValidation:
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		}
		response.WriteError(w, r, err)
		return
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	logger.WithCtx(r.Context()).Info().
		Str("user_id", u.ID).
		Str("role", u.Role).
		Msg("user_registered")

	response.Created(w, dto.RegisterData{User: dto.NewUserView(u)})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if domain.Is(err, "invalid_credentials") {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		}
		response.WriteError(w, r, err)
		return
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Msg("user_logged_in")

	response.OK(w, dto.LoginData{
		User:   dto.NewUserView(res.User),
		Tokens: dto.NewTokensView(res.Tokens),
	})
}

// Refresh expects a refresh-class bearer token; the auth middleware has
// already verified it and put the subject in context.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		metrics.TokenRefreshTotal.WithLabelValues("invalid").Inc()
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	toks, err := h.svc.RefreshAccessToken(r.Context(), u.ID)
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("invalid").Inc()
		response.WriteError(w, r, err)
		return
	}

	metrics.TokenRefreshTotal.WithLabelValues("success").Inc()
	response.OK(w, dto.RefreshData{
		AccessToken: toks.AccessToken,
		TokenType:   toks.TokenType,
		ExpiresIn:   toks.ExpiresIn,
	})
}

// Logout is a no-op on the server: tokens are stateless and simply expire.
// The endpoint exists so clients have a uniform call to drop credentials.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	response.NoContent(w)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	response.OK(w, dto.MeData{User: dto.NewUserView(u)})
}

// GetUser returns another account by id. Route-level middleware restricts
// this to staff roles.
func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.WriteError(w, r, domain.ErrMissingField("id"))
		return
	}

	u, err := h.svc.GetUserByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.MeData{User: dto.NewUserView(u)})
}
