package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ijas-muhmd/todo-app/internal/domain/todo"
	"github.com/ijas-muhmd/todo-app/internal/domain/user"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	users := New().Users()

	id, err := users.Create(ctx, "alice@example.com", "hash")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	_, err = users.Create(ctx, "alice@example.com", "other")
	assert.ErrorIs(t, err, user.ErrAlreadyExists)

	u, err := users.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.User{ID: id, Email: "alice@example.com", PasswordHash: "hash"}, u)

	_, err = users.FindByEmail(ctx, "ALICE@example.com")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestTodoRepository(t *testing.T) {
	ctx := context.Background()
	todos := New().Todos()

	id, err := todos.Create(ctx, &todo.Todo{Name: "buy milk", Description: "2%", OwnerID: "alice"})
	require.NoError(t, err)
	_, err = todos.Create(ctx, &todo.Todo{Name: "walk dog", OwnerID: "bob"})
	require.NoError(t, err)

	list, err := todos.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)

	_, err = todos.Get(ctx, "bob", id)
	assert.ErrorIs(t, err, todo.ErrNotFound)

	updated, err := todos.Update(ctx, "alice", id, "buy oat milk", "")
	require.NoError(t, err)
	assert.Equal(t, "buy oat milk", updated.Name)
	assert.Equal(t, "", updated.Description)

	linked, err := todos.SetImage(ctx, "alice", id, "http://x/img.png")
	require.NoError(t, err)
	assert.True(t, linked.Completed)
	require.NotNil(t, linked.ImageURL)

	*linked.ImageURL = "mutated"
	got, err := todos.Get(ctx, "alice", id)
	require.NoError(t, err)
	assert.Equal(t, "http://x/img.png", *got.ImageURL)

	_, err = todos.SetImage(ctx, "bob", id, "http://x/evil.png")
	assert.ErrorIs(t, err, todo.ErrNotFound)

	assert.ErrorIs(t, todos.Delete(ctx, "bob", id), todo.ErrNotFound)
	require.NoError(t, todos.Delete(ctx, "alice", id))
	assert.ErrorIs(t, todos.Delete(ctx, "alice", id), todo.ErrNotFound)

	list, err = todos.List(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, list)
}
