package membershipstore_test

import (
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/collabhub/internal/app/policy/membershippolicy"
	membershipstore "github.com/dalemusser/collabhub/internal/app/store/memberships"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"github.com/dalemusser/collabhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testNow() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }

func TestStore_CreateAndFind(t *testing.T) {
	db := testutil.SetupIndexedDB(t)
	store := membershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user, activity := primitive.NewObjectID(), primitive.NewObjectID()

	none, err := store.Find(ctx, user, activity)
	if err != nil || none != nil {
		t.Fatalf("Find before create: got %v, %v", none, err)
	}

	created, err := store.Create(ctx, membershippolicy.NewRequest(user, activity, "primary", testNow()))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID.IsZero() {
		t.Error("expected ID to be assigned")
	}

	found, err := store.Find(ctx, user, activity)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if found == nil || found.ID != created.ID || found.Status != "pending" || found.Role != "primary" {
		t.Errorf("unexpected membership: %+v", found)
	}
}

func TestStore_Create_Duplicate(t *testing.T) {
	db := testutil.SetupIndexedDB(t)
	store := membershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user, activity := primitive.NewObjectID(), primitive.NewObjectID()
	first := membershippolicy.NewRequest(user, activity, "secondary", testNow())
	first.Status = models.MembershipStatusRejected
	if _, err := store.Create(ctx, first); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err := store.Create(ctx, membershippolicy.NewRequest(user, activity, "secondary", testNow()))
	if !errors.Is(err, membershipstore.ErrDuplicateMembership) {
		t.Errorf("expected ErrDuplicateMembership, got %v", err)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, primitive.NewObjectID()); !errors.Is(err, membershipstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ListByActivityAndUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	activity := primitive.NewObjectID()
	other := primitive.NewObjectID()
	u1, u2, u3 := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

	fixtures.CreateMembership(ctx, u1, activity, "primary", "pending")
	fixtures.CreateMembership(ctx, u2, activity, "secondary", "pending")
	fixtures.CreateMembership(ctx, u3, activity, "secondary", "active")
	fixtures.CreateMembership(ctx, u1, other, "secondary", "active")

	pending, err := store.ListByActivity(ctx, activity, "pending")
	if err != nil {
		t.Fatalf("ListByActivity failed: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("expected 2 pending, got %d", len(pending))
	}

	active, err := store.ListByUser(ctx, u1, "active")
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(active) != 1 || active[0].ActivityID != other {
		t.Errorf("unexpected active memberships: %+v", active)
	}

	n, err := store.CountByUser(ctx, u1, "active")
	if err != nil || n != 1 {
		t.Errorf("CountByUser: got %d, %v", n, err)
	}

	empty, err := store.ListByActivity(ctx, primitive.NewObjectID(), "pending")
	if err != nil {
		t.Fatalf("ListByActivity failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", empty)
	}
}

func TestStore_SetStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m := fixtures.CreateMembership(ctx, primitive.NewObjectID(), primitive.NewObjectID(), "primary", "pending")

	updated, err := store.SetStatus(ctx, m.ID, models.MembershipStatusActive)
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if updated.Status != "active" {
		t.Errorf("status: got %q, want active", updated.Status)
	}

	if _, err := store.SetStatus(ctx, m.ID, models.MembershipStatusRejected); !errors.Is(err, membershipstore.ErrNotPending) {
		t.Errorf("second resolve: expected ErrNotPending, got %v", err)
	}
	if _, err := store.SetStatus(ctx, primitive.NewObjectID(), "active"); !errors.Is(err, membershipstore.ErrNotFound) {
		t.Errorf("missing: expected ErrNotFound, got %v", err)
	}
}
