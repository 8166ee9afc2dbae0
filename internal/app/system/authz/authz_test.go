package authz_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/collabhub/internal/app/system/apperr"
	"github.com/dalemusser/collabhub/internal/app/system/auth"
	"github.com/dalemusser/collabhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserCtx_ValidUser(t *testing.T) {
	id := primitive.NewObjectID()
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: id.Hex(), Name: "Ada"})

	got, name, ok := authz.UserCtx(req)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if got != id {
		t.Errorf("userID: got %s, want %s", got.Hex(), id.Hex())
	}
	if name != "Ada" {
		t.Errorf("name: got %q, want %q", name, "Ada")
	}
}

func TestUserCtx_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)

	got, _, ok := authz.UserCtx(req)
	if ok {
		t.Error("expected ok=false for anonymous request")
	}
	if got != primitive.NilObjectID {
		t.Errorf("expected NilObjectID, got %s", got.Hex())
	}
}

func TestUserCtx_MalformedID(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "not-an-object-id"})

	if _, _, ok := authz.UserCtx(req); ok {
		t.Error("expected ok=false for malformed user ID")
	}
}

func TestRequireUser_Anonymous(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)

	_, err := authz.RequireUser(req)
	if !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Errorf("expected unauthorized error, got %v", err)
	}
}

func TestCallerID_Anonymous(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	if !authz.CallerID(req).IsZero() {
		t.Error("expected zero caller id")
	}
}

func withURLParam(r *http.Request, key, val string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, val)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestPathObjectID(t *testing.T) {
	valid := primitive.NewObjectID()

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid", valid.Hex(), false},
		{"padded", "  " + valid.Hex() + " ", false},
		{"empty", "", true},
		{"short", "abc", true},
		{"non-hex", "zzzzzzzzzzzzzzzzzzzzzzzz", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withURLParam(httptest.NewRequest("GET", "/x", nil), "id", tt.value)
			got, err := authz.PathObjectID(req, "id")
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !apperr.IsKind(err, apperr.KindValidation) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if got != valid {
				t.Errorf("got %s, want %s", got.Hex(), valid.Hex())
			}
		})
	}
}
