package postgres

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"github.com/ijas-muhmd/todo-app/internal/domain/todo"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}

// Malformed ids never reach the pool.
func TestTodoRepository_MalformedID(t *testing.T) {
	repo := NewTodoRepository(nil, nil)
	ctx := context.Background()

	_, err := repo.Get(ctx, "alice", "not-a-uuid")
	assert.ErrorIs(t, err, todo.ErrNotFound)

	_, err = repo.Update(ctx, "alice", "123", "n", "d")
	assert.ErrorIs(t, err, todo.ErrNotFound)

	_, err = repo.SetImage(ctx, "alice", "", "http://x")
	assert.ErrorIs(t, err, todo.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "alice", "zzz"), todo.ErrNotFound)
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error {
	return r.err
}

func TestTodoRepository_ScanOne(t *testing.T) {
	var buf bytes.Buffer
	repo := NewTodoRepository(nil, slog.New(slog.NewTextHandler(&buf, nil)))

	_, err := repo.scanOne(errRow{err: pgx.ErrNoRows})
	assert.ErrorIs(t, err, todo.ErrNotFound)
	assert.Empty(t, buf.String())

	_, err = repo.scanOne(errRow{err: errors.New("conn reset")})
	require.Error(t, err)
	assert.NotErrorIs(t, err, todo.ErrNotFound)
	assert.Contains(t, err.Error(), "conn reset")
	assert.Contains(t, buf.String(), "read todo")
	assert.Contains(t, buf.String(), "conn reset")
}
