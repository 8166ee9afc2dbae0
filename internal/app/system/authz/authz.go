// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/collabhub/internal/app/system/apperr"
	"github.com/dalemusser/collabhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the caller's Mongo ObjectID, display name, and a found flag.
// If no user is present in context or the user ID is malformed, it returns
// NilObjectID, "", false, so ok=true always means a usable ObjectID.
func UserCtx(r *http.Request) (userID primitive.ObjectID, name string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return primitive.NilObjectID, "", false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Token subject is not an ObjectID; fail closed.
		return primitive.NilObjectID, "", false
	}
	return userID, user.Name, true
}

// CallerID returns the caller's ObjectID or NilObjectID for anonymous requests.
func CallerID(r *http.Request) primitive.ObjectID {
	id, _, _ := UserCtx(r)
	return id
}

// RequireUser is UserCtx for private handlers: anonymous callers get an
// Unauthorized error.
func RequireUser(r *http.Request) (primitive.ObjectID, error) {
	id, _, ok := UserCtx(r)
	if !ok {
		return primitive.NilObjectID, apperr.Unauthorized("Authentication required")
	}
	return id, nil
}

// PathObjectID parses a chi URL parameter as an ObjectID. A malformed value
// is a validation error naming the parameter.
func PathObjectID(r *http.Request, param string) (primitive.ObjectID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, param))
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperr.Field(param, "Invalid "+param)
	}
	return oid, nil
}
