package storage

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"github.com/ijas-muhmd/todo-app/internal/app/server/config"
	"github.com/ijas-muhmd/todo-app/internal/domain/todo"
	"github.com/ijas-muhmd/todo-app/internal/domain/user"
	"github.com/ijas-muhmd/todo-app/internal/infrastructure/storage/memory"
	"github.com/ijas-muhmd/todo-app/internal/infrastructure/storage/mongo"
	"github.com/ijas-muhmd/todo-app/internal/infrastructure/storage/postgres"
	"github.com/ijas-muhmd/todo-app/internal/infrastructure/storage/sqlite"
)

// Backend is a document store holding both users and todos.
type Backend interface {
	Users() user.Repository
	Todos() todo.Repository
	// Migrate brings the schema or indexes up to date.
	Migrate(ctx context.Context) error
	Close(ctx context.Context) error
}

// Open connects to the backend selected by DB_DRIVER.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (Backend, error) {
	switch cfg.DB.Driver {
	case config.DriverMongo:
		return mongo.New(ctx, cfg, log)
	case config.DriverPostgres:
		return postgres.New(ctx, cfg, log)
	case config.DriverSQLite:
		return sqlite.New(ctx, cfg, log)
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.DB.Driver)
	}
}
