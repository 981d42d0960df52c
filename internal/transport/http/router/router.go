package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smarteval/auth-service/internal/metrics"
	"github.com/smarteval/auth-service/internal/transport/http/middleware"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	GetUser(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health HealthHandler
	Auth   AuthHandler

	// AccessMW authenticates an access-class bearer token.
	// RefreshMW authenticates a refresh-class bearer token.
	// StaffMW additionally requires a staff role (teacher or admin).
	AccessMW  func(http.Handler) http.Handler
	RefreshMW func(http.Handler) http.Handler
	StaffMW   func(http.Handler) http.Handler

	// Per-route rate limits; nil disables the limit for that route.
	RegisterLimitMW func(http.Handler) http.Handler
	LoginLimitMW    func(http.Handler) http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.AccessMW == nil {
		return nil, fmt.Errorf("nil access middleware")
	}
	if deps.RefreshMW == nil {
		return nil, fmt.Errorf("nil refresh middleware")
	}
	if deps.StaffMW == nil {
		return nil, fmt.Errorf("nil staff middleware")
	}

	passthrough := func(next http.Handler) http.Handler { return next }
	if deps.RegisterLimitMW == nil {
		deps.RegisterLimitMW = passthrough
	}
	if deps.LoginLimitMW == nil {
		deps.LoginLimitMW = passthrough
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics)

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(deps.RegisterLimitMW).Post("/register", deps.Auth.Register)
			r.With(deps.LoginLimitMW).Post("/login", deps.Auth.Login)
			r.With(deps.RefreshMW).Post("/refresh", deps.Auth.Refresh)
			r.Post("/logout", deps.Auth.Logout)
			r.With(deps.AccessMW).Get("/me", deps.Auth.Me)
		})

		r.With(deps.StaffMW).Get("/users/{id}", deps.Auth.GetUser)
	})

	return r, nil
}
