package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/exp/slog"

	"github.com/ijas-muhmd/todo-app/internal/app/server/config"
	"github.com/ijas-muhmd/todo-app/internal/domain/todo"
	"github.com/ijas-muhmd/todo-app/internal/domain/user"
)

type Storage struct {
	client *mongo.Client
	users  *mongo.Collection
	todos  *mongo.Collection
	log    *slog.Logger
}

func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Storage, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.DB.DatabaseURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(cfg.DB.Name)
	return &Storage{
		client: client,
		users:  db.Collection(cfg.DB.UserCollection),
		todos:  db.Collection(cfg.DB.TodoCollection),
		log:    log.With("component", "mongo"),
	}, nil
}

// Migrate creates the indexes the repositories rely on. It is idempotent.
func (s *Storage) Migrate(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}
	_, err = s.todos.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("owner_id"),
	})
	if err != nil {
		return fmt.Errorf("create todos index: %w", err)
	}
	s.log.Debug("indexes ensured")
	return nil
}

func (s *Storage) Users() user.Repository {
	return &UserRepository{coll: s.users}
}

func (s *Storage) Todos() todo.Repository {
	return &TodoRepository{coll: s.todos}
}

func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
