// Package memory is a process-local store used for tests and local runs.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ijas-muhmd/todo-app/internal/domain/todo"
	"github.com/ijas-muhmd/todo-app/internal/domain/user"
)

type Storage struct {
	mu    sync.RWMutex
	users map[string]user.User // by email
	todos []todo.Todo          // insertion order
}

func New() *Storage {
	return &Storage{users: make(map[string]user.User)}
}

func (s *Storage) Users() user.Repository { return &UserRepository{s: s} }

func (s *Storage) Todos() todo.Repository { return &TodoRepository{s: s} }

func (s *Storage) Migrate(context.Context) error { return nil }

func (s *Storage) Close(context.Context) error { return nil }

type UserRepository struct {
	s *Storage
}

func (r *UserRepository) Create(_ context.Context, email, passwordHash string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[email]; ok {
		return "", user.ErrAlreadyExists
	}
	u := user.User{ID: uuid.NewString(), Email: email, PasswordHash: passwordHash}
	r.s.users[email] = u

	return u.ID, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

type TodoRepository struct {
	s *Storage
}

func (r *TodoRepository) List(_ context.Context, ownerID string) ([]todo.Todo, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []todo.Todo{}
	for _, t := range r.s.todos {
		if t.OwnerID == ownerID {
			out = append(out, clone(t))
		}
	}
	return out, nil
}

func (r *TodoRepository) Get(_ context.Context, ownerID, id string) (*todo.Todo, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i := r.find(ownerID, id)
	if i < 0 {
		return nil, todo.ErrNotFound
	}
	t := clone(r.s.todos[i])
	return &t, nil
}

func (r *TodoRepository) Create(_ context.Context, t *todo.Todo) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := clone(*t)
	stored.ID = uuid.NewString()
	r.s.todos = append(r.s.todos, stored)

	return stored.ID, nil
}

func (r *TodoRepository) Update(_ context.Context, ownerID, id, name, description string) (*todo.Todo, error) {
	return r.modify(ownerID, id, func(t *todo.Todo) {
		t.Name = name
		t.Description = description
	})
}

func (r *TodoRepository) SetImage(_ context.Context, ownerID, id, imageURL string) (*todo.Todo, error) {
	return r.modify(ownerID, id, func(t *todo.Todo) {
		t.ImageURL = &imageURL
		t.Completed = true
	})
}

func (r *TodoRepository) Delete(_ context.Context, ownerID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.find(ownerID, id)
	if i < 0 {
		return todo.ErrNotFound
	}
	r.s.todos = append(r.s.todos[:i], r.s.todos[i+1:]...)
	return nil
}

func (r *TodoRepository) modify(ownerID, id string, fn func(*todo.Todo)) (*todo.Todo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.find(ownerID, id)
	if i < 0 {
		return nil, todo.ErrNotFound
	}
	fn(&r.s.todos[i])
	t := clone(r.s.todos[i])
	return &t, nil
}

// find must be called with the lock held.
func (r *TodoRepository) find(ownerID, id string) int {
	for i, t := range r.s.todos {
		if t.ID == id && t.OwnerID == ownerID {
			return i
		}
	}
	return -1
}

func clone(t todo.Todo) todo.Todo {
	if t.ImageURL != nil {
		u := *t.ImageURL
		t.ImageURL = &u
	}
	return t
}
