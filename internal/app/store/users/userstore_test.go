package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/dalemusser/collabhub/internal/app/store/users"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"github.com/dalemusser/collabhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newUser(username, email string) models.User {
	return models.User{
		Username:     username,
		Email:        email,
		Name:         "  Test   User ",
		PasswordHash: "$2a$10$hash",
		Skills:       []string{"Go", " go ", "", "Mongo"},
	}
}

func TestStore_Create(t *testing.T) {
	db := testutil.SetupIndexedDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, newUser("Ada", "ADA@Example.com "))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Email != "ada@example.com" {
		t.Errorf("email not normalized: %q", created.Email)
	}
	if created.UsernameCI != "ada" {
		t.Errorf("username_ci: got %q", created.UsernameCI)
	}
	if len(created.Skills) != 2 {
		t.Errorf("skills not deduped: %v", created.Skills)
	}
	if created.Badges == nil {
		t.Error("badges should default to empty slice")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.PasswordHash != "$2a$10$hash" {
		t.Error("password hash should persist")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupIndexedDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, newUser("ada", "ada@example.com")); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := store.Create(ctx, newUser("grace", "Ada@example.com"))
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_Create_DuplicateUsernameCaseInsensitive(t *testing.T) {
	db := testutil.SetupIndexedDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, newUser("ada", "one@example.com")); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := store.Create(ctx, newUser("ADA", "two@example.com"))
	if !errors.Is(err, userstore.ErrDuplicateUsername) {
		t.Errorf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, primitive.NewObjectID()); !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_GetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, newUser("ada", "ada@example.com"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByEmail(ctx, "  ADA@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != created.ID {
		t.Error("wrong user returned")
	}

	if _, err := store.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_GetSummaries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fixtures.CreateUser(ctx, "ada", "Ada")
	b := fixtures.CreateUser(ctx, "grace", "Grace")
	missing := primitive.NewObjectID()

	got, err := store.GetSummaries(ctx, []primitive.ObjectID{a.ID, b.ID, missing})
	if err != nil {
		t.Fatalf("GetSummaries failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(got))
	}
	if got[a.ID].Username != "ada" || got[b.ID].Name != "Grace" {
		t.Errorf("unexpected summaries: %+v", got)
	}
	if _, ok := got[missing]; ok {
		t.Error("missing id should be absent")
	}

	empty, err := store.GetSummaries(ctx, nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("empty input: got %v, %v", empty, err)
	}
}

func TestStore_UpdateProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "ada", "Ada")
	name := "Ada Lovelace"
	loc := "  London "

	got, err := store.UpdateProfile(ctx, u.ID, userstore.ProfileUpdate{
		Name:     &name,
		Skills:   []string{"math", "Math", "engines"},
		Location: &loc,
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if got.Name != "Ada Lovelace" || got.Location != "London" {
		t.Errorf("unexpected profile: %+v", got)
	}
	if len(got.Skills) != 2 {
		t.Errorf("skills: got %v", got.Skills)
	}
	if got.Username != "ada" || got.Email != u.Email {
		t.Error("fields outside the projection must be untouched")
	}

	if _, err := store.UpdateProfile(ctx, primitive.NewObjectID(), userstore.ProfileUpdate{Name: &name}); !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFetcher_FetchUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "ada", "Ada")
	f := userstore.NewFetcher(db)

	su := f.FetchUser(ctx, u.ID.Hex())
	if su == nil {
		t.Fatal("expected session user")
	}
	if su.ID != u.ID.Hex() || su.Username != "ada" || su.Name != "Ada" {
		t.Errorf("unexpected session user: %+v", su)
	}

	if f.FetchUser(ctx, primitive.NewObjectID().Hex()) != nil {
		t.Error("missing user should return nil")
	}
	if f.FetchUser(ctx, "garbage") != nil {
		t.Error("malformed id should return nil")
	}
}
