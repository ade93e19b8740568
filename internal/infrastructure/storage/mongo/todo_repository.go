package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ijas-muhmd/todo-app/internal/domain/todo"
)

var timeNow = time.Now

type todoDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Completed   bool               `bson:"completed"`
	ImageURL    *string            `bson:"image_url"`
	OwnerID     string             `bson:"owner_id"`
}

func (d todoDocument) toDomain() todo.Todo {
	return todo.Todo{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Completed:   d.Completed,
		ImageURL:    d.ImageURL,
		OwnerID:     d.OwnerID,
	}
}

type TodoRepository struct {
	coll *mongo.Collection
}

func (r *TodoRepository) List(ctx context.Context, ownerID string) ([]todo.Todo, error) {
	cur, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find todos: %w", err)
	}
	defer cur.Close(ctx)

	out := []todo.Todo{}
	for cur.Next(ctx) {
		var doc todoDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode todo: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}
	return out, nil
}

func (r *TodoRepository) Get(ctx context.Context, ownerID, id string) (*todo.Todo, error) {
	filter, ok := ownedBy(ownerID, id)
	if !ok {
		return nil, todo.ErrNotFound
	}
	var doc todoDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, notFound(err, "find todo")
	}
	t := doc.toDomain()
	return &t, nil
}

func (r *TodoRepository) Create(ctx context.Context, t *todo.Todo) (string, error) {
	doc := todoDocument{
		ID:          primitive.NewObjectID(),
		Name:        t.Name,
		Description: t.Description,
		Completed:   t.Completed,
		ImageURL:    t.ImageURL,
		OwnerID:     t.OwnerID,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert todo: %w", err)
	}
	return doc.ID.Hex(), nil
}

func (r *TodoRepository) Update(ctx context.Context, ownerID, id, name, description string) (*todo.Todo, error) {
	return r.findAndSet(ctx, ownerID, id, bson.M{"name": name, "description": description})
}

func (r *TodoRepository) SetImage(ctx context.Context, ownerID, id, imageURL string) (*todo.Todo, error) {
	return r.findAndSet(ctx, ownerID, id, bson.M{"image_url": imageURL, "completed": true})
}

func (r *TodoRepository) Delete(ctx context.Context, ownerID, id string) error {
	filter, ok := ownedBy(ownerID, id)
	if !ok {
		return todo.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if res.DeletedCount == 0 {
		return todo.ErrNotFound
	}
	return nil
}

func (r *TodoRepository) findAndSet(ctx context.Context, ownerID, id string, set bson.M) (*todo.Todo, error) {
	filter, ok := ownedBy(ownerID, id)
	if !ok {
		return nil, todo.ErrNotFound
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc todoDocument
	if err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		return nil, notFound(err, "update todo")
	}
	t := doc.toDomain()
	return &t, nil
}

// ownedBy reports false for ids that are not valid ObjectIDs.
func ownedBy(ownerID, id string) (bson.M, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	return bson.M{"_id": oid, "owner_id": ownerID}, true
}

func notFound(err error, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return todo.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
