package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"

	"github.com/ijas-muhmd/todo-app/internal/app/server/api"
	"github.com/ijas-muhmd/todo-app/internal/app/server/config"
	"github.com/ijas-muhmd/todo-app/internal/app/server/crypto"
	"github.com/ijas-muhmd/todo-app/internal/domain/todo"
	"github.com/ijas-muhmd/todo-app/internal/domain/token"
	"github.com/ijas-muhmd/todo-app/internal/domain/user"
	"github.com/ijas-muhmd/todo-app/internal/infrastructure/blob"
	"github.com/ijas-muhmd/todo-app/internal/infrastructure/storage"
	"github.com/ijas-muhmd/todo-app/internal/utils/tracing"
	"github.com/ijas-muhmd/todo-app/internal/utils/workerpool"
)

const serviceName = "todo-app"

// App owns every long-lived dependency of the server process.
type App struct {
	cfg      *config.Config
	log      *slog.Logger
	backend  storage.Backend
	blobs    todo.BlobStore
	users    *user.Service
	todos    *todo.Service
	shutdown tracing.Shutdown
}

// New connects the store and blob backends and builds the services.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	shutdown, err := tracing.InitTracer(ctx, serviceName, cfg.Env, cfg.Tracing.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		_ = shutdown(ctx)
		return nil, fmt.Errorf("open storage: %w", err)
	}

	blobs, err := blob.Open(cfg)
	if err != nil {
		_ = backend.Close(ctx)
		_ = shutdown(ctx)
		return nil, fmt.Errorf("open blob store: %w", err)
	}

	tokens, err := token.NewService(cfg.Auth.Secret, cfg.Auth.Algorithm, cfg.Auth.TokenTTL, log)
	if err != nil {
		_ = backend.Close(ctx)
		_ = shutdown(ctx)
		return nil, fmt.Errorf("token service: %w", err)
	}

	hasher := crypto.NewBcryptHasher(bcrypt.DefaultCost)

	return &App{
		cfg:      cfg,
		log:      log,
		backend:  backend,
		blobs:    blobs,
		users:    user.NewService(backend.Users(), hasher, tokens, passwordValidator(cfg.Auth.PasswordPolicy), log),
		todos:    todo.NewService(backend.Todos(), blobs, workerpool.New(cfg.Upload.Workers), log),
		shutdown: shutdown,
	}, nil
}

func passwordValidator(policy string) user.Validator {
	if policy == config.PasswordStrict {
		return user.NewStrictPasswordValidator()
	}
	return user.NewPasswordValidator()
}

func (a *App) Users() *user.Service { return a.users }

func (a *App) Migrate(ctx context.Context) error {
	return a.backend.Migrate(ctx)
}

// Handler builds the HTTP handler. Blobs are served locally only for the fs driver.
func (a *App) Handler() http.Handler {
	var static api.Static
	if s, ok := a.blobs.(blob.Static); ok {
		static = s
	}
	return api.New(api.Services{Users: a.users, Todos: a.todos}, static, a.log)
}

// Run serves HTTP until ctx is cancelled, then drains connections within SHUTDOWN_TIMEOUT.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.Server.RunAddress,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server started", "addr", srv.Addr, "db_driver", a.cfg.DB.Driver, "blob_driver", a.cfg.Blob.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close releases the store and flushes traces.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if err := a.backend.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("close storage: %w", err))
	}
	if err := a.shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown tracing: %w", err))
	}
	return errors.Join(errs...)
}
