package academy

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/colorbulb/nexteliteweb2/pkg/announce"
	"github.com/colorbulb/nexteliteweb2/pkg/auth"
	"github.com/colorbulb/nexteliteweb2/pkg/content"
	"github.com/colorbulb/nexteliteweb2/pkg/docstore"
	"github.com/colorbulb/nexteliteweb2/pkg/docstore/sqlstore"
	"github.com/colorbulb/nexteliteweb2/pkg/docstore/surrealstore"
	"github.com/colorbulb/nexteliteweb2/pkg/logger"
)

const visitorMaxAge = 365 * 24 * 60 * 60

// App holds the application state shared by every command.
type App struct {
	config  *Config
	log     zerolog.Logger
	backend *docstore.ReadOnly
	client  *docstore.Client
	store   *content.Store

	auth     *auth.Manager
	sessions sessions.Store
	redis    *goredis.Client
	selector announce.Selector

	readOnly atomic.Bool
}

// New opens the configured backend and builds the App on it.
func New(ctx context.Context, config *Config, log zerolog.Logger) (*App, error) {
	backend, err := openBackend(ctx, config, config.Backend, log)
	if err != nil {
		return nil, err
	}
	app, err := NewWithBackend(ctx, config, backend, log)
	if err != nil {
		_ = backend.Close(ctx)
		return nil, err
	}
	return app, nil
}

// NewWithBackend builds the App on an already open backend. The App owns the
// backend from then on.
func NewWithBackend(ctx context.Context, config *Config, backend docstore.Backend, log zerolog.Logger, opts ...content.Option) (*App, error) {
	app := &App{
		config: config,
		log:    logger.Component(log, "academy"),
	}
	app.readOnly.Store(config.ReadOnly)
	app.backend = docstore.NewReadOnly(backend, app.IsReadOnly)
	app.client = docstore.NewClient(app.backend, logger.Component(log, "docstore"))

	provider := auth.NewPasswordProvider()
	if config.AdminEmail != "" && config.AdminPasswordHash != "" {
		if err := provider.AddAccount(config.AdminEmail, config.AdminPasswordHash); err != nil {
			return nil, err
		}
	} else {
		app.log.Warn().Msg("no admin account configured, admin sign-in is disabled")
	}

	secret := []byte(config.JWTSecret)
	if len(secret) == 0 {
		secret = securecookie.GenerateRandomKey(32)
		app.log.Warn().Msg("ACADEMY_JWT_SECRET not set, admin sessions end when the process exits")
	}
	manager, err := auth.NewManager(provider, secret)
	if err != nil {
		return nil, err
	}
	app.auth = manager
	app.auth.OnSessionChange(func(u *auth.User) {
		if u == nil {
			app.log.Info().Msg("admin signed out")
			return
		}
		app.log.Info().Str("email", u.Email).Msg("admin signed in")
	})

	sessionKey := []byte(config.SessionKey)
	if len(sessionKey) == 0 {
		sessionKey = securecookie.GenerateRandomKey(32)
	}
	cookies := sessions.NewCookieStore(sessionKey)
	cookies.Options.MaxAge = visitorMaxAge
	cookies.Options.HttpOnly = true
	app.sessions = cookies

	if config.RedisURL != "" {
		rdb, err := announce.DialRedis(ctx, config.RedisURL)
		if err != nil {
			return nil, err
		}
		app.redis = rdb
		app.log.Info().Msg("visitor storage mirrored to redis")
	}

	// The store starts its write queue, so it is built once nothing else can fail.
	storeOpts := []content.Option{content.WithLogger(logger.Component(log, "content"))}
	if config.FailurePolicy != nil {
		storeOpts = append(storeOpts, content.WithPolicy(config.FailurePolicy))
	}
	app.store = content.New(app.client, append(storeOpts, opts...)...)
	return app, nil
}

func openBackend(ctx context.Context, config *Config, backend Backend, log zerolog.Logger) (docstore.Backend, error) {
	switch backend {
	case BackendSurrealDB:
		store, err := surrealstore.Open(ctx, config.SurrealDB)
		if err != nil {
			return nil, err
		}
		log.Info().Str("url", config.SurrealDB.URL).Msg("connected to SurrealDB")
		return store, nil
	case BackendPostgres, BackendSQLite:
		cfg := sqlstore.Config{Driver: sqlstore.DriverPostgres, DSN: config.PostgresDSN}
		if backend == BackendSQLite {
			cfg = sqlstore.Config{Driver: sqlstore.DriverSQLite, DSN: config.SQLitePath}
		}
		store, err := sqlstore.Open(cfg)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close(ctx)
			return nil, fmt.Errorf("failed to migrate %s: %w", backend, err)
		}
		log.Info().Str("driver", string(cfg.Driver)).Msg("connected to SQL document store")
		return store, nil
	case BackendMemory:
		log.Warn().Msg("using in-memory document store, content is lost on exit")
		return docstore.NewMemory(nil), nil
	}
	return nil, fmt.Errorf("unknown backend %q", backend)
}

// Close waits for queued writes and releases every connection.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if err := a.store.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := a.backend.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Store returns the content store.
func (a *App) Store() *content.Store {
	return a.store
}

// SetReadOnly toggles rejection of document store writes at runtime. Local
// state still changes; the failure policy decides whether callers see the
// rejected write.
func (a *App) SetReadOnly(readOnly bool) {
	a.readOnly.Store(readOnly)
	a.log.Info().Bool("read_only", readOnly).Msg("read-only mode changed")
}

func (a *App) IsReadOnly() bool {
	return a.readOnly.Load()
}
