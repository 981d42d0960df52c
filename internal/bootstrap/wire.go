package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/smarteval/auth-service/internal/application/auth"
	"github.com/smarteval/auth-service/internal/config"
	"github.com/smarteval/auth-service/internal/domain"
	"github.com/smarteval/auth-service/internal/infrastructure/memory"
	rabbitmq_pub "github.com/smarteval/auth-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/smarteval/auth-service/internal/infrastructure/mongodb"
	"github.com/smarteval/auth-service/internal/infrastructure/redis"
	"github.com/smarteval/auth-service/internal/infrastructure/security"
	"github.com/smarteval/auth-service/internal/logger"
	http_handlers "github.com/smarteval/auth-service/internal/transport/http/handlers"
	"github.com/smarteval/auth-service/internal/transport/http/middleware"
	"github.com/smarteval/auth-service/internal/transport/http/response"
	"github.com/smarteval/auth-service/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewStore func(uri, dbName string, opTimeout time.Duration) (Store, error)

	NewRedis func(addr, password string, db int) RedisClient

	NewPublisher func(rabbitURL string) (auth.EventPublisher, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

// Store is the surface the bootstrap needs from the document store.
type Store interface {
	Ping(ctx context.Context) error
	Close() error
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) document store
	store, err := deps.NewStore(cfg.MongoURI, cfg.MongoDB, cfg.StoreTimeout)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = store.Close() },
	}

	// 2) user repo
	var userRepo auth.UserRepo
	if ms, ok := store.(*mongodb.Store); ok {
		userRepo = mongodb.NewUserRepo(ms)
	} else {
		// Injected fake store in tests; fall back to the in-memory repo.
		userRepo = memory.NewUserRepo()
	}

	// 3) redis (best-effort, powers rate limiting)
	var redisCli RedisClient
	if deps.NewRedis != nil && cfg.RedisAddr != "" {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; rate limiting disabled")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	// 4) publisher (best-effort)
	var pub auth.EventPublisher = memory.NewNoopPublisher()
	if deps.NewPublisher != nil && cfg.RabbitURL != "" {
		p, err := deps.NewPublisher(cfg.RabbitURL)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
		} else {
			logger.Logger.Info().Msg("rabbitmq connected")
			pub = p
			if c, ok := p.(interface{ Close() error }); ok {
				cleanupFns = append(cleanupFns, func() { _ = c.Close() })
			}
		}
	}

	// 5) security
	logger.Logger.Info().Str("issuer", cfg.JWTIssuer).Msg("initializing jwt signer")
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	// 6) service + guard
	authSvc := auth.NewService(userRepo, hasher, signer, pub, auth.Config{
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	})
	guard := auth.NewGuard(signer, userRepo)

	// 7) handlers + middleware
	authH := http_handlers.NewAuthHandler(authSvc)
	healthH := http_handlers.NewHealthHandler(store)

	accessMW := middleware.RequireAuth(guard, auth.ClassAccess, response.WriteError)
	refreshMW := middleware.RequireAuth(guard, auth.ClassRefresh, response.WriteError)
	staffMW := middleware.RequireAuth(guard, auth.ClassAccess, response.WriteError,
		string(domain.RoleTeacher), string(domain.RoleAdmin))

	// rate limit (fail-open)
	var fwLimiter *redis.FixedWindowLimiter
	if rc, ok := redisCli.(*redis.Client); ok {
		fwLimiter = redis.NewFixedWindowLimiter(rc)
	}

	rl := func(key string, limit int) func(http.Handler) http.Handler {
		if fwLimiter == nil {
			return nil
		}
		return middleware.RateLimitFixedWindow(
			fwLimiter,
			middleware.FixedWindowConfig{
				RouteKey: key,
				Limit:    limit,
				Window:   cfg.RateLimitWindow,
			},
			response.WriteError,
		)
	}

	// 8) router
	mux, err := deps.NewRouter(router.Deps{
		Health: healthH,
		Auth:   authH,

		AccessMW:  accessMW,
		RefreshMW: refreshMW,
		StaffMW:   staffMW,

		RegisterLimitMW: rl("auth.register", cfg.RegisterLimit),
		LoginLimitMW:    rl("auth.login", cfg.LoginLimit),
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 9) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewStore: func(uri, dbName string, opTimeout time.Duration) (Store, error) {
			return mongodb.NewStore(uri, dbName, opTimeout)
		},
		NewRedis: func(addr, password string, db int) RedisClient {
			return redis.New(addr, password, db)
		},
		NewPublisher: func(url string) (auth.EventPublisher, error) {
			return rabbitmq_pub.NewPublisher(url)
		},
		NewRouter: router.New,
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	// reverse order, like defers
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
