package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	libdb "busreserva/backend/libs/db"
	libredis "busreserva/backend/libs/redis"
	"busreserva/backend/services/web-client/internal/clients"
	"busreserva/backend/services/web-client/internal/config"
	"busreserva/backend/services/web-client/internal/format"
	httpserver "busreserva/backend/services/web-client/internal/http"
	"busreserva/backend/services/web-client/internal/http/handlers"
	"busreserva/backend/services/web-client/internal/http/middleware"
	"busreserva/backend/services/web-client/internal/http/views"
	"busreserva/backend/services/web-client/internal/session"
	"busreserva/backend/services/web-client/internal/viewstate"
	"busreserva/backend/services/web-client/internal/ws"
)

// App wires web client dependencies.
type App struct {
	server *httpserver.Server
	hub    *ws.Hub
	redis  *goredis.Client
	db     *sql.DB
	logger *zap.Logger
}

// New constructs application graph.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{logger: logger}

	store, err := a.sessionStore(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	hub := ws.NewHub(cfg.PingInterval(), logger)
	manager := session.NewManager(store, logger)
	manager.OnLogout(hub.NotifyLogout)
	a.hub = hub

	dates, err := format.NewDateFormatter(cfg.Display.Timezone)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("display timezone: %w", err)
	}
	renderer, err := views.New(dates)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("load templates: %w", err)
	}

	httpClient := clients.NewDefaultHTTPClient(cfg.HTTPTimeout())
	authClient := clients.NewAuthClient(cfg.API.BaseURL, httpClient)
	busesClient := clients.NewBusesClient(cfg.API.BaseURL, httpClient)
	tripsClient := clients.NewTripsClient(cfg.API.BaseURL, httpClient)
	reservationsClient := clients.NewReservationsClient(cfg.API.BaseURL, httpClient)

	runner := viewstate.NewRunner(cfg.HTTPTimeout())

	wsServer := ws.NewServer(hub, func(r *http.Request) (string, bool) {
		sess, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			return "", false
		}
		if _, hasToken := sess.Token(); !hasToken {
			return "", false
		}
		return sess.ID(), true
	}, cfg.WriteTimeout(), logger)

	router := httpserver.NewRouter(httpserver.RouterDeps{
		LoginHandlers:       handlers.NewLoginHandlers(authClient, renderer, logger),
		BusesHandlers:       handlers.NewBusesHandlers(busesClient, runner, renderer, logger),
		TripsHandlers:       handlers.NewTripsHandlers(tripsClient, runner, renderer, cfg.Display.DefaultSeat, logger),
		ReservationHandlers: handlers.NewReservationHandlers(reservationsClient, runner, renderer, logger),
		SessionEvents:       wsServer.HandleWS,
		HealthHandler:       handlers.NewHealthHandler(),
	}, middleware.Sessions(manager, middleware.CookieOptions{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.CookieSecure,
	}, logger))

	a.server = httpserver.NewServer(
		cfg.HTTPAddress(),
		router,
		logger,
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
	)
	return a, nil
}

func (a *App) sessionStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	var store session.Store
	switch cfg.Session.Driver {
	case config.DriverRedis:
		client, err := libredis.NewRedisClient(ctx, libredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.redis = client
		store = session.NewRedisStore(client, cfg.Session.TTL)
	case config.DriverPostgres:
		db, err := libdb.NewPostgresDB(cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.db = db
		pgStore := session.NewPostgresStore(db)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("session schema: %w", err)
		}
		store = pgStore
	default:
		store = session.NewMemoryStore()
	}
	a.logger.Info("session store ready", zap.String("driver", cfg.Session.Driver))

	if cfg.Session.Secret == "" {
		if cfg.Session.Driver != config.DriverMemory {
			a.logger.Warn("session tokens stored unsealed; set SESSION_SECRET")
		}
		return store, nil
	}
	sealer, err := session.NewSealer(cfg.Session.Secret)
	if err != nil {
		return nil, err
	}
	return session.NewSealedStore(store, sealer), nil
}

// Run starts serving HTTP traffic and the session event hub.
func (a *App) Run(ctx context.Context) error {
	go a.hub.Start(ctx)
	return a.server.Run(ctx)
}

// Close releases session storage connections.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close postgres", zap.Error(err))
		}
	}
}
