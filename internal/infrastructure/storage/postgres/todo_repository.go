package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"github.com/ijas-muhmd/todo-app/internal/domain/todo"
)

const todoColumns = `id::text, name, description, completed, image_url, owner_id`

func NewTodoRepository(pool *pgxpool.Pool, log *slog.Logger) *TodoRepository {
	return &TodoRepository{
		pool: pool,
		log:  log,
	}
}

type TodoRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func (r *TodoRepository) List(ctx context.Context, ownerID string) ([]todo.Todo, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE owner_id = $1 ORDER BY seq`, ownerID)
	if err != nil {
		r.log.Error("select todos", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("select todos: %w", err)
	}
	defer rows.Close()

	out := []todo.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			r.log.Error("scan todos", "owner_id", ownerID, "error", err)
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		r.log.Error("iterate todos", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("iterate todos: %w", err)
	}
	return out, nil
}

func (r *TodoRepository) Get(ctx context.Context, ownerID, id string) (*todo.Todo, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, todo.ErrNotFound
	}
	row := r.pool.QueryRow(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = $1 AND owner_id = $2`, id, ownerID)
	return r.scanOne(row)
}

func (r *TodoRepository) Create(ctx context.Context, t *todo.Todo) (string, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO todos (id, name, description, completed, image_url, owner_id)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, t.Name, t.Description, t.Completed, t.ImageURL, t.OwnerID)
	if err != nil {
		r.log.Error("insert todo", "owner_id", t.OwnerID, "error", err)
		return "", fmt.Errorf("insert todo: %w", err)
	}
	return id, nil
}

func (r *TodoRepository) Update(ctx context.Context, ownerID, id, name, description string) (*todo.Todo, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, todo.ErrNotFound
	}
	row := r.pool.QueryRow(ctx,
		`UPDATE todos SET name = $3, description = $4
		 WHERE id = $1 AND owner_id = $2
		 RETURNING `+todoColumns, id, ownerID, name, description)
	return r.scanOne(row)
}

func (r *TodoRepository) SetImage(ctx context.Context, ownerID, id, imageURL string) (*todo.Todo, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, todo.ErrNotFound
	}
	row := r.pool.QueryRow(ctx,
		`UPDATE todos SET image_url = $3, completed = TRUE
		 WHERE id = $1 AND owner_id = $2
		 RETURNING `+todoColumns, id, ownerID, imageURL)
	return r.scanOne(row)
}

func (r *TodoRepository) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return todo.ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		r.log.Error("delete todo", "id", id, "error", err)
		return fmt.Errorf("delete todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return todo.ErrNotFound
	}
	return nil
}

// scanOne maps a missing row to todo.ErrNotFound and logs anything else.
func (r *TodoRepository) scanOne(row pgx.Row) (*todo.Todo, error) {
	t, err := scanTodo(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, todo.ErrNotFound
	}
	if err != nil {
		r.log.Error("read todo", "error", err)
		return nil, err
	}
	return t, nil
}

func scanTodo(row pgx.Row) (*todo.Todo, error) {
	var t todo.Todo
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Completed, &t.ImageURL, &t.OwnerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan todo: %w", err)
	}
	return &t, nil
}
