package todo

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	List(ctx context.Context, ownerID string) ([]Todo, error)
	Get(ctx context.Context, ownerID, id string) (*Todo, error)
	Create(ctx context.Context, ownerID, name, description string) (*Todo, error)
	Update(ctx context.Context, ownerID, id, name, description string) (*Todo, error)
	Delete(ctx context.Context, ownerID, id string) error
	AttachImage(ctx context.Context, ownerID, id string, img Image) (*Todo, error)
}

type Service struct {
	repo    Repository
	blobs   BlobStore
	uploads Dispatcher
	log     *slog.Logger
	tracer  trace.Tracer
}

func NewService(repo Repository, blobs BlobStore, uploads Dispatcher, log *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		blobs:   blobs,
		uploads: uploads,
		log:     log.With("component", "todo_service"),
		tracer:  otel.Tracer("github.com/ijas-muhmd/todo-app/internal/domain/todo"),
	}
}

func (s *Service) List(ctx context.Context, ownerID string) ([]Todo, error) {
	todos, err := s.repo.List(ctx, ownerID)
	if err != nil {
		s.log.Error("failed to list todos", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("list todos: %w", err)
	}
	if todos == nil {
		todos = []Todo{}
	}

	return todos, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id string) (*Todo, error) {
	t, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to get todo", "todo_id", id, "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("get todo: %w", err)
	}

	return t, nil
}

func (s *Service) Create(ctx context.Context, ownerID, name, description string) (*Todo, error) {
	t := &Todo{
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
	}

	id, err := s.repo.Create(ctx, t)
	if err != nil {
		s.log.Error("failed to create todo", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("create todo: %w", err)
	}
	t.ID = id

	s.log.Info("todo created", "todo_id", id, "owner_id", ownerID)

	return t, nil
}

// Update replaces both name and description. Passing two empty values is
// rejected so that an empty body never wipes a todo.
func (s *Service) Update(ctx context.Context, ownerID, id, name, description string) (*Todo, error) {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return nil, err
	}

	if name == "" && description == "" {
		return nil, ErrEmptyUpdate
	}

	t, err := s.repo.Update(ctx, ownerID, id, name, description)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to update todo", "todo_id", id, "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("update todo: %w", err)
	}

	return t, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.log.Error("failed to delete todo", "todo_id", id, "owner_id", ownerID, "error", err)
		return fmt.Errorf("delete todo: %w", err)
	}

	s.log.Info("todo deleted", "todo_id", id, "owner_id", ownerID)

	return nil
}
