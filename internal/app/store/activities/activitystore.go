// internal/app/store/activities/activitystore.go
package activitystore

import (
	"context"
	"errors"
	"regexp"
	"strings"
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
	return &Store{c: db.Collection("activities")}
}

var ErrNotFound = errors.New("activity not found")

// newestFirst is the listing order everywhere activities are returned.
var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

// Create inserts a. ID, status default, and timestamps are assigned here;
// Host must already be set.
func (s *Store) Create(ctx context.Context, a models.Activity) (models.Activity, error) {
	a.ID = primitive.NewObjectID()
	if a.Status == "" {
		a.Status = models.ActivityStatusActive
	}
	if a.RequiredSkills == nil {
		a.RequiredSkills = []string{}
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Activity{}, err
	}
	return a, nil
}

// GetByID loads an activity. Returns ErrNotFound if missing.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Activity, error) {
	var a models.Activity
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// GetByIDs loads activities by id in the given order, skipping missing ids.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Activity, error) {
	if len(ids) == 0 {
		return []models.Activity{}, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	byID := make(map[primitive.ObjectID]models.Activity, len(ids))
	for cur.Next(ctx) {
		var a models.Activity
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		byID[a.ID] = a
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	out := make([]models.Activity, 0, len(byID))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

// Update holds the host-editable activity fields. Nil leaves a field
// unchanged. Host and ID are not representable.
type Update struct {
	Title               *string
	Description         *string
	Type                *string
	StartDate           *time.Time
	EndDate             *time.Time
	DesiredOutcome      *string
	InvestmentsRequired *string
	Status              *string
	RequiredSkills      []string
	Location            *string
	TermsAndConditions  *string
}

func (u Update) set() bson.M {
	set := bson.M{}
	str := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	str("title", u.Title)
	str("description", u.Description)
	str("type", u.Type)
	str("desired_outcome", u.DesiredOutcome)
	str("investments_required", u.InvestmentsRequired)
	str("status", u.Status)
	str("location", u.Location)
	str("terms_and_conditions", u.TermsAndConditions)
	if u.StartDate != nil {
		set["start_date"] = u.StartDate.UTC()
	}
	if u.EndDate != nil {
		set["end_date"] = u.EndDate.UTC()
	}
	if u.RequiredSkills != nil {
		set["required_skills"] = u.RequiredSkills
	}
	return set
}

// Update applies upd and returns the updated activity.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Activity, error) {
	set := upd.set()
	set["updated_at"] = time.Now().UTC()

	var a models.Activity
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Filter narrows the public listing. Empty fields do not constrain.
type Filter struct {
	Type     string
	Search   string
	Location string
	Skill    string
}

// BuildFilter returns the Mongo query for f. Only active activities are
// listed. Location and skill are case-insensitive substring matches with
// regex metacharacters escaped. Search is not part of the query; see
// MatchesSearch.
func BuildFilter(f Filter) bson.M {
	q := bson.M{"status": models.ActivityStatusActive}
	if f.Type != "" {
		q["type"] = f.Type
	}
	if f.Location != "" {
		q["location"] = containsFold(f.Location)
	}
	if f.Skill != "" {
		q["required_skills"] = bson.M{"$in": bson.A{containsFold(f.Skill)}}
	}
	return q
}

func containsFold(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// MatchesSearch reports whether search occurs, case-insensitively, in the
// activity's title or description. An empty search matches everything.
func MatchesSearch(a models.Activity, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(a.Title), needle) ||
		strings.Contains(strings.ToLower(a.Description), needle)
}

// List returns active activities matching f, newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Activity, error) {
	rows, err := s.find(ctx, BuildFilter(f))
	if err != nil {
		return nil, err
	}
	if f.Search == "" {
		return rows, nil
	}
	out := rows[:0]
	for _, a := range rows {
		if MatchesSearch(a, f.Search) {
			out = append(out, a)
		}
	}
	return out, nil
}

// ListByHost returns every activity hosted by hostID in any status, newest first.
func (s *Store) ListByHost(ctx context.Context, hostID primitive.ObjectID) ([]models.Activity, error) {
	return s.find(ctx, bson.M{"host_id": hostID})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Activity, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Activity{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
