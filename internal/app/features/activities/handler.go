// internal/app/features/activities/handler.go
package activities

import (
	"context"
	"errors"

	apierrors "github.com/dalemusser/collabhub/internal/app/features/errors"
	"github.com/dalemusser/collabhub/internal/app/features/shared/views"
	activitystore "github.com/dalemusser/collabhub/internal/app/store/activities"
	membershipstore "github.com/dalemusser/collabhub/internal/app/store/memberships"
	userstore "github.com/dalemusser/collabhub/internal/app/store/users"
	"github.com/dalemusser/collabhub/internal/app/system/apperr"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Client-facing messages.
const (
	msgActivityNotFound = "Activity not found"
	msgRequestNotFound  = "Request not found"
	msgNotAuthorized    = "Not authorized"
)

type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *apierrors.ErrorLogger

	Activities  *activitystore.Store
	Memberships *membershipstore.Store
	Views       *views.Populator
}

func NewHandler(db *mongo.Database, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	acts := activitystore.New(db)
	return &Handler{
		DB:          db,
		Log:         logger,
		ErrLog:      errLog,
		Activities:  acts,
		Memberships: membershipstore.New(db),
		Views:       views.NewPopulator(userstore.New(db), acts),
	}
}

// loadActivity fetches the activity or returns a NotFound error.
func (h *Handler) loadActivity(ctx context.Context, id primitive.ObjectID) (*models.Activity, error) {
	a, err := h.Activities.GetByID(ctx, id)
	if errors.Is(err, activitystore.ErrNotFound) {
		return nil, apperr.NotFound(msgActivityNotFound)
	}
	return a, err
}
