package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"github.com/ijas-muhmd/todo-app/internal/app/server/config"
	"github.com/ijas-muhmd/todo-app/internal/domain/todo"
	"github.com/ijas-muhmd/todo-app/internal/domain/user"
	"github.com/ijas-muhmd/todo-app/internal/infrastructure/migration"
)

type Storage struct {
	db  *sql.DB
	cfg *config.Config
	log *slog.Logger
}

func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Storage, error) {
	db, err := sql.Open("sqlite3", dsn(cfg.DB.DatabaseURI))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return &Storage{db: db, cfg: cfg, log: log.With("component", "sqlite")}, nil
}

func dsn(uri string) string {
	sep := "?"
	if strings.Contains(uri, "?") {
		sep = "&"
	}
	return uri + sep + "_foreign_keys=on&_journal_mode=WAL"
}

func (s *Storage) Migrate(context.Context) error {
	if err := migration.NewMigration(s.cfg, migration.DefaultEngine).Up(); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}

func (s *Storage) Users() user.Repository { return &UserRepository{db: s.db} }

func (s *Storage) Todos() todo.Repository { return &TodoRepository{db: s.db} }

func (s *Storage) Close(context.Context) error {
	return s.db.Close()
}

type UserRepository struct {
	db *sql.DB
}

func (r *UserRepository) Create(ctx context.Context, email, passwordHash string) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash) VALUES (?, ?, ?)`, id, email, passwordHash)
	if err != nil {
		var sqErr sqlite3.Error
		if errors.As(err, &sqErr) && sqErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return "", user.ErrAlreadyExists
		}
		return "", fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

const todoColumns = `id, name, description, completed, image_url, owner_id`

type TodoRepository struct {
	db *sql.DB
}

func (r *TodoRepository) List(ctx context.Context, ownerID string) ([]todo.Todo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE owner_id = ? ORDER BY seq`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("select todos: %w", err)
	}
	defer rows.Close()

	out := []todo.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}
	return out, nil
}

func (r *TodoRepository) Get(ctx context.Context, ownerID, id string) (*todo.Todo, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = ? AND owner_id = ?`, id, ownerID)
	return scanTodo(row)
}

func (r *TodoRepository) Create(ctx context.Context, t *todo.Todo) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO todos (id, name, description, completed, image_url, owner_id) VALUES (?, ?, ?, ?, ?, ?)`,
		id, t.Name, t.Description, t.Completed, t.ImageURL, t.OwnerID)
	if err != nil {
		return "", fmt.Errorf("insert todo: %w", err)
	}
	return id, nil
}

func (r *TodoRepository) Update(ctx context.Context, ownerID, id, name, description string) (*todo.Todo, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE todos SET name = ?, description = ? WHERE id = ? AND owner_id = ? RETURNING `+todoColumns,
		name, description, id, ownerID)
	return scanTodo(row)
}

func (r *TodoRepository) SetImage(ctx context.Context, ownerID, id, imageURL string) (*todo.Todo, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE todos SET image_url = ?, completed = 1 WHERE id = ? AND owner_id = ? RETURNING `+todoColumns,
		imageURL, id, ownerID)
	return scanTodo(row)
}

func (r *TodoRepository) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if affected == 0 {
		return todo.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(row scanner) (*todo.Todo, error) {
	var (
		t        todo.Todo
		imageURL sql.NullString
	)
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Completed, &imageURL, &t.OwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, todo.ErrNotFound
		}
		return nil, fmt.Errorf("scan todo: %w", err)
	}
	if imageURL.Valid {
		t.ImageURL = &imageURL.String
	}
	return &t, nil
}
