// internal/app/features/tasks/handler.go
package tasks

import (
	"context"
	"errors"

	apierrors "github.com/dalemusser/collabhub/internal/app/features/errors"
	"github.com/dalemusser/collabhub/internal/app/features/shared/views"
	"github.com/dalemusser/collabhub/internal/app/policy/activitypolicy"
	activitystore "github.com/dalemusser/collabhub/internal/app/store/activities"
	membershipstore "github.com/dalemusser/collabhub/internal/app/store/memberships"
	taskstore "github.com/dalemusser/collabhub/internal/app/store/tasks"
	userstore "github.com/dalemusser/collabhub/internal/app/store/users"
	"github.com/dalemusser/collabhub/internal/app/system/apperr"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	msgTaskNotFound     = "Task not found"
	msgActivityNotFound = "Activity not found"
	msgNotAuthorized    = "Not authorized"
	msgCannotCreate     = "Not authorized to create tasks"
)

type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *apierrors.ErrorLogger

	Tasks       *taskstore.Store
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
		Tasks:       taskstore.New(db),
		Activities:  acts,
		Memberships: membershipstore.New(db),
		Views:       views.NewPopulator(userstore.New(db), acts),
	}
}

func (h *Handler) loadTask(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	t, err := h.Tasks.GetByID(ctx, id)
	if errors.Is(err, taskstore.ErrNotFound) {
		return nil, apperr.NotFound(msgTaskNotFound)
	}
	return t, err
}

// capabilities loads the activity and resolves what callerID may do in it.
func (h *Handler) capabilities(ctx context.Context, callerID, activityID primitive.ObjectID) (*models.Activity, activitypolicy.Capabilities, error) {
	a, err := h.Activities.GetByID(ctx, activityID)
	if errors.Is(err, activitystore.ErrNotFound) {
		return nil, activitypolicy.Capabilities{}, apperr.NotFound(msgActivityNotFound)
	}
	if err != nil {
		return nil, activitypolicy.Capabilities{}, err
	}
	caps, err := activitypolicy.Load(ctx, h.Memberships, callerID, *a)
	if err != nil {
		return nil, activitypolicy.Capabilities{}, err
	}
	return a, caps, nil
}
