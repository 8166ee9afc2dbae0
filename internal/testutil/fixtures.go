package testutil

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/collabhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Calling it repeatedly on the same request accumulates parameters.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with the given username. The email is derived
// from the username.
func (f *Fixtures) CreateUser(ctx context.Context, username, name string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		Username:   username,
		UsernameCI: text.Fold(username),
		Email:      strings.ToLower(username) + "@example.com",
		Name:       name,
		Skills:     []string{},
		Badges:     []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateActivity inserts an active activity hosted by hostID.
func (f *Fixtures) CreateActivity(ctx context.Context, title, typ string, hostID primitive.ObjectID) models.Activity {
	f.t.Helper()
	return f.CreateActivityWith(ctx, models.Activity{Title: title, Type: typ, Host: hostID})
}

// CreateActivityWith inserts a, filling ID, dates, status, and timestamps
// when unset.
func (f *Fixtures) CreateActivityWith(ctx context.Context, a models.Activity) models.Activity {
	f.t.Helper()

	now := time.Now().UTC()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if a.Description == "" {
		a.Description = "Test activity description"
	}
	if a.Type == "" {
		a.Type = models.ActivityTypeOther
	}
	if a.Status == "" {
		a.Status = models.ActivityStatusActive
	}
	if a.StartDate.IsZero() {
		a.StartDate = now.Add(24 * time.Hour)
	}
	if a.EndDate.IsZero() {
		a.EndDate = a.StartDate.Add(7 * 24 * time.Hour)
	}
	if a.RequiredSkills == nil {
		a.RequiredSkills = []string{}
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = a.CreatedAt

	if _, err := f.db.Collection("activities").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test activity: %v", err)
	}
	return a
}

// CreateMembership inserts a membership with the given role and status.
func (f *Fixtures) CreateMembership(ctx context.Context, userID, activityID primitive.ObjectID, role, status string) models.Membership {
	f.t.Helper()

	now := time.Now().UTC()
	m := models.Membership{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		ActivityID: activityID,
		Role:       role,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("memberships").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test membership: %v", err)
	}
	return m
}

// CreateTask inserts a pending, medium-priority task. assignee may be nil.
func (f *Fixtures) CreateTask(ctx context.Context, title string, activityID, assignedBy primitive.ObjectID, assignee *primitive.ObjectID) models.Task {
	f.t.Helper()

	now := time.Now().UTC()
	task := models.Task{
		ID:         primitive.NewObjectID(),
		Title:      title,
		ActivityID: activityID,
		AssignedTo: assignee,
		AssignedBy: assignedBy,
		Status:     models.TaskStatusPending,
		Priority:   models.TaskPriorityMedium,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("tasks").InsertOne(ctx, task); err != nil {
		f.t.Fatalf("failed to create test task: %v", err)
	}
	return task
}
