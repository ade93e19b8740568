package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"github.com/ijas-muhmd/todo-app/internal/app/server/config"
	"github.com/ijas-muhmd/todo-app/internal/domain/todo"
	"github.com/ijas-muhmd/todo-app/internal/domain/user"
	"github.com/ijas-muhmd/todo-app/internal/infrastructure/migration"
)

type Storage struct {
	pool *pgxpool.Pool
	cfg  *config.Config
	log  *slog.Logger
}

func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Storage, error) {
	pool, err := pgxpool.New(ctx, cfg.DB.DatabaseURI)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Storage{pool: pool, cfg: cfg, log: log.With("component", "postgres")}, nil
}

func (s *Storage) Migrate(context.Context) error {
	if err := migration.NewMigration(s.cfg, migration.DefaultEngine).Up(); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}

func (s *Storage) Users() user.Repository {
	return NewUserRepository(s.pool, s.log)
}

func (s *Storage) Todos() todo.Repository {
	return NewTodoRepository(s.pool, s.log)
}

func (s *Storage) Close(context.Context) error {
	s.pool.Close()
	return nil
}
