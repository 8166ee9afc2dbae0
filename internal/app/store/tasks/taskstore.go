// internal/app/store/tasks/taskstore.go
package taskstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/collabhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("tasks")}
}

var ErrNotFound = errors.New("task not found")

// Create inserts t with a new ID.
func (s *Store) Create(ctx context.Context, t models.Task) (models.Task, error) {
	t.ID = primitive.NewObjectID()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// GetByID loads a task. Returns ErrNotFound if missing.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var t models.Task
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Filter narrows List. Nil fields do not constrain.
type Filter struct {
	ActivityID *primitive.ObjectID
	AssignedTo *primitive.ObjectID
}

func (f Filter) query() bson.M {
	q := bson.M{}
	if f.ActivityID != nil {
		q["activity_id"] = *f.ActivityID
	}
	if f.AssignedTo != nil {
		q["assigned_to"] = *f.AssignedTo
	}
	return q
}

// List returns tasks matching f, newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, f.query(), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Task{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AssigneeCounts are per-user task totals for profile stats.
type AssigneeCounts struct {
	Total     int64
	Completed int64
}

// CountByAssignee counts tasks assigned to userID.
func (s *Store) CountByAssignee(ctx context.Context, userID primitive.ObjectID) (AssigneeCounts, error) {
	total, err := s.c.CountDocuments(ctx, bson.M{"assigned_to": userID})
	if err != nil {
		return AssigneeCounts{}, err
	}
	done, err := s.c.CountDocuments(ctx, bson.M{"assigned_to": userID, "status": models.TaskStatusCompleted})
	if err != nil {
		return AssigneeCounts{}, err
	}
	return AssigneeCounts{Total: total, Completed: done}, nil
}

// Save persists the mutable fields of t, as produced by taskpolicy.ApplyUpdate.
// Activity, assignedBy, and createdAt are never rewritten.
func (s *Store) Save(ctx context.Context, t models.Task) (*models.Task, error) {
	set := bson.M{
		"title":       t.Title,
		"description": t.Description,
		"status":      t.Status,
		"priority":    t.Priority,
		"updated_at":  t.UpdatedAt,
	}
	unset := bson.M{}
	opt := func(key string, present bool, v any) {
		if present {
			set[key] = v
		} else {
			unset[key] = ""
		}
	}
	opt("assigned_to", t.AssignedTo != nil, t.AssignedTo)
	opt("due_date", t.DueDate != nil, t.DueDate)
	if t.CompletedDate != nil {
		set["completed_date"] = t.CompletedDate
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var out models.Task
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": t.ID}, update, opts).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// Delete removes a task. Returns ErrNotFound if nothing was deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
