package indexes_test

import (
	"context"
	"testing"

	"github.com/dalemusser/collabhub/internal/app/system/indexes"
	"github.com/dalemusser/collabhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func indexNames(t *testing.T, ctx context.Context, db *mongo.Database, coll string) map[string]bool {
	t.Helper()
	cur, err := db.Collection(coll).Indexes().List(ctx)
	if err != nil {
		t.Fatalf("List indexes failed: %v", err)
	}
	defer cur.Close(ctx)

	names := make(map[string]bool)
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		if name, ok := idx["name"].(string); ok {
			names[name] = true
		}
	}
	return names
}

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 2; i++ {
		if err := indexes.EnsureAll(ctx, db); err != nil {
			t.Fatalf("EnsureAll run %d failed: %v", i+1, err)
		}
	}
}

func TestEnsureAll_CreatesIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	expected := map[string][]string{
		"users":       {"uniq_users_username_ci", "uniq_users_email"},
		"activities":  {"idx_activities_status_created", "idx_activities_status_type_created", "idx_activities_host_created"},
		"memberships": {"uniq_memberships_user_activity", "idx_memberships_activity_status", "idx_memberships_user_status_created"},
		"tasks":       {"idx_tasks_activity_created", "idx_tasks_assignee_created"},
	}

	for coll, want := range expected {
		names := indexNames(t, ctx, db, coll)
		for _, name := range want {
			if !names[name] {
				t.Errorf("expected index %q on %s", name, coll)
			}
		}
	}
}

func TestEnsureAll_RenamesMisnamedIndex(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := db.Collection("tasks").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "activity_id", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("legacy_tasks_activity"),
	})
	if err != nil {
		t.Fatalf("CreateOne failed: %v", err)
	}

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names := indexNames(t, ctx, db, "tasks")
	if names["legacy_tasks_activity"] {
		t.Error("legacy index name should have been replaced")
	}
	if !names["idx_tasks_activity_created"] {
		t.Error("expected desired index name")
	}
}

func TestEnsureAll_MembershipUniqueEnforced(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	user, activity := primitive.NewObjectID(), primitive.NewObjectID()
	doc := bson.M{"user_id": user, "activity_id": activity, "status": "pending"}
	if _, err := db.Collection("memberships").InsertOne(ctx, doc); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if _, err := db.Collection("memberships").InsertOne(ctx, bson.M{"user_id": user, "activity_id": activity, "status": "rejected"}); err == nil {
		t.Error("expected duplicate key error for second (user, activity) membership")
	}
}
