// internal/app/store/memberships/membershipstore.go
package membershipstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/collabhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("memberships")}
}

var (
	ErrNotFound = errors.New("membership not found")
	// ErrDuplicateMembership is returned when (user, activity) already has a
	// membership in any status. The unique index makes this race-safe.
	ErrDuplicateMembership = errors.New("user already requested or joined this activity")
	// ErrNotPending is returned by SetStatus when the membership was resolved
	// between read and write.
	ErrNotPending = errors.New("membership is no longer pending")
)

// Create inserts m. ID and timestamps are assigned when unset.
func (s *Store) Create(ctx context.Context, m models.Membership) (models.Membership, error) {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = m.CreatedAt

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Membership{}, ErrDuplicateMembership
		}
		return models.Membership{}, err
	}
	return m, nil
}

// Find returns the membership for (userID, activityID) in any status, or
// (nil, nil) when none exists.
func (s *Store) Find(ctx context.Context, userID, activityID primitive.ObjectID) (*models.Membership, error) {
	var m models.Membership
	err := s.c.FindOne(ctx, bson.M{"user_id": userID, "activity_id": activityID}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByID loads a membership. Returns ErrNotFound if missing.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Membership, error) {
	var m models.Membership
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListByActivity returns the activity's memberships with the given status,
// oldest first.
func (s *Store) ListByActivity(ctx context.Context, activityID primitive.ObjectID, status string) ([]models.Membership, error) {
	return s.list(ctx, bson.M{"activity_id": activityID, "status": status},
		bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
}

// ListByUser returns the user's memberships with the given status, newest first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID, status string) ([]models.Membership, error) {
	return s.list(ctx, bson.M{"user_id": userID, "status": status},
		bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
}

// CountByUser counts the user's memberships with the given status.
func (s *Store) CountByUser(ctx context.Context, userID primitive.ObjectID, status string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"user_id": userID, "status": status})
}

func (s *Store) list(ctx context.Context, filter bson.M, sort bson.D) ([]models.Membership, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Membership{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetStatus moves a pending membership to status and returns the updated
// document. The pending precondition is part of the filter so two hosts
// resolving at once cannot both succeed.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Membership, error) {
	filter := bson.M{"_id": id, "status": models.MembershipStatusPending}
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var m models.Membership
	err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Distinguish a missing document from a lost race.
		if _, getErr := s.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrNotPending
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
