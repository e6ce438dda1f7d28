// Package bootstrap wires all dependencies and starts the application:
// configuration, logging, the document store, the schema registry, the
// event bus with its subscribers, and the HTTP server.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/adapters/clock"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/adapters/disabled"
	cartxhttp "github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/adapters/http"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/adapters/idgen"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/adapters/memory"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/adapters/metrics"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/adapters/mongo"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/adapters/sqlite"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/app"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/config"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/events"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/openapi"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/registry"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/schema"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/validation"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/ports"
)

// Options controls application initialization.
type Options struct {
	// ConfigPath is the YAML configuration file. A missing file is not an
	// error; the service then runs from environment variables alone.
	ConfigPath string

	// HotReload watches the config file and SIGHUP for live reloads.
	HotReload bool
}

// App represents the running application.
type App struct {
	Logger     zerolog.Logger
	Config     *config.Holder
	Store      ports.DocumentStore
	Registry   *registry.Registry
	Validator  *validation.Validator
	Bus        *events.Bus
	Metrics    *metrics.Collector
	HTTPServer *http.Server

	// Services
	Catalog     *app.CatalogService
	Orders      *app.OrderService
	Diagnostics *app.DiagnosticsService

	closeStore func(context.Context) error
}

// New creates and initializes the application.
func New(opts Options) (*App, error) {
	cfg, err := config.LoadWithFallback(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := NewLogger(cfg.Logging)
	logger.Info().
		Str("driver", cfg.ResolveDriver()).
		Int("port", cfg.Server.Port).
		Msg("initializing cartx")

	a := &App{Logger: logger}

	if err := a.initConfigHolder(cfg, opts); err != nil {
		return nil, err
	}

	if cfg.Metrics.IsEnabled() {
		a.Metrics = metrics.New()
		logger.Info().Msg("prometheus metrics enabled")
	}
	a.watchConfigChanges()

	a.initStore(cfg)
	a.initCore()
	a.initHTTPServer(cfg)

	return a, nil
}

// initConfigHolder sets up config access, with file watching and SIGHUP
// reloads when hot reload is requested and a file is present.
func (a *App) initConfigHolder(cfg *config.Config, opts Options) error {
	if opts.HotReload && opts.ConfigPath != "" {
		if _, err := os.Stat(opts.ConfigPath); err == nil {
			holder, err := config.NewHolder(opts.ConfigPath, a.Logger)
			if err != nil {
				return fmt.Errorf("config holder: %w", err)
			}
			if err := holder.WatchFile(); err != nil {
				a.Logger.Warn().Err(err).Msg("config file watch unavailable")
			}
			holder.WatchSignals()
			a.Config = holder
			return nil
		}
		a.Logger.Warn().
			Str("path", opts.ConfigPath).
			Msg("hot reload requested but config file not found, running from environment")
	}

	a.Config = config.NewStaticHolder(cfg, a.Logger)
	return nil
}

// watchConfigChanges applies the reloadable config subset and keeps the
// reload counters current.
func (a *App) watchConfigChanges() {
	a.Config.OnChange(func(c *config.Config) {
		applyLogLevel(c.Logging.Level)
		if a.Metrics != nil {
			a.Metrics.ConfigReloads.Inc()
			a.Metrics.ConfigLastReload.SetToCurrentTime()
		}
	})
	a.Config.OnReloadError(func(err error) {
		if a.Metrics != nil {
			a.Metrics.ConfigReloadErrors.Inc()
		}
	})
}

// initStore selects and connects the document store. A mongo connection
// failure degrades to the disabled store instead of aborting startup, so
// the service keeps serving and /test reports the real state.
func (a *App) initStore(cfg *config.Config) {
	driver := cfg.ResolveDriver()

	var store ports.DocumentStore
	switch driver {
	case config.DriverMongo:
		database := cfg.Store.Database
		if database == "" {
			database = "cartx"
		}
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Store.ConnectTimeout)
		ms, err := mongo.Connect(ctx, mongo.Config{
			URI:            cfg.Store.URL,
			Database:       database,
			ConnectTimeout: cfg.Store.ConnectTimeout,
		})
		cancel()
		if err != nil {
			a.Logger.Warn().Err(err).Msg("mongo connection failed, store disabled")
			store = disabled.NewDocumentStore()
			break
		}
		a.closeStore = ms.Close
		store = ms
		a.Logger.Info().Str("database", database).Msg("mongo store connected")

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Store.Path)
		if err != nil {
			a.Logger.Warn().Err(err).Msg("sqlite open failed, store disabled")
			store = disabled.NewDocumentStore()
			break
		}
		if err := db.Migrate(); err != nil {
			a.Logger.Warn().Err(err).Msg("sqlite migrate failed, store disabled")
			db.Close()
			store = disabled.NewDocumentStore()
			break
		}
		a.closeStore = func(context.Context) error { return db.Close() }
		store = sqlite.NewDocumentStore(db, idgen.UUID{}, clock.Real{})
		a.Logger.Info().Str("path", cfg.Store.Path).Msg("sqlite store opened")

	case config.DriverMemory:
		store = memory.NewDocumentStore(idgen.UUID{}, clock.Real{})
		a.Logger.Info().Msg("memory store initialized")

	default:
		store = disabled.NewDocumentStore()
		a.Logger.Warn().Msg("no store configured, database endpoints degraded")
	}

	if a.Metrics != nil {
		store = metrics.NewInstrumentedStore(store, a.Metrics)
	}
	a.Store = store
}

// initCore builds the schema registry, validator, and event bus with the
// audit and metrics subscribers.
func (a *App) initCore() {
	reg := registry.New()
	for _, s := range schema.Declarations() {
		reg.MustDeclare(s)
	}
	a.Registry = reg
	a.Validator = validation.New(reg)

	a.Bus = events.NewBus(a.Logger)
	registerAuditSubscriber(a.Bus, a.Logger)
	if a.Metrics != nil {
		registerMetricsSubscribers(a.Bus, a.Metrics)
	}

	a.Catalog = app.NewCatalogService(a.Store, a.Validator, a.Bus, a.Logger)
	a.Orders = app.NewOrderService(a.Store, a.Validator, a.Bus, a.Logger)
	a.Diagnostics = app.NewDiagnosticsService(a.Store, a.Logger)
}

func (a *App) initHTTPServer(cfg *config.Config) {
	h := cartxhttp.NewHandler(a.Catalog, a.Orders, a.Diagnostics, a.Registry, a.Logger)
	health := cartxhttp.NewHealthHandler(a.Store)

	routerCfg := cartxhttp.RouterConfig{
		Metrics:     a.Metrics,
		MetricsPath: cfg.Metrics.Path,
	}
	if cfg.OpenAPI.IsEnabled() {
		routerCfg.OpenAPI = openapi.NewGenerator(a.Registry)
	}

	router := cartxhttp.NewRouter(h, health, a.Logger, routerCfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	a.HTTPServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	a.Logger.Info().Str("addr", addr).Msg("http server configured")
}

// Run starts the HTTP server and blocks until shutdown. When seeding on
// start is configured, the sample catalog is loaded first.
func (a *App) Run() error {
	if a.Config.Get().Seed.OnStart {
		a.seedOnStart()
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().
			Str("addr", a.HTTPServer.Addr).
			Msg("starting http server")
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.Logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	return a.Shutdown()
}

func (a *App) seedOnStart() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := a.Catalog.Seed(ctx)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("startup seed failed")
		return
	}
	a.Logger.Info().
		Str("status", result.Status).
		Int("count", result.Count).
		Msg("startup seed finished")
}

// Shutdown gracefully stops the application.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if a.Config != nil {
		a.Config.Stop()
	}

	if a.HTTPServer != nil {
		if err := a.HTTPServer.Shutdown(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("http server shutdown error")
		}
	}

	if a.closeStore != nil {
		if err := a.closeStore(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("store close error")
		}
	}

	a.Logger.Info().Msg("shutdown complete")
	return nil
}

// NewLogger builds the root logger from logging config.
func NewLogger(cfg config.LoggingConfig) zerolog.Logger {
	applyLogLevel(cfg.Level)

	if cfg.Format == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func applyLogLevel(levelStr string) {
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
