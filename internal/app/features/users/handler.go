// internal/app/features/users/handler.go
package users

import (
	apierrors "github.com/dalemusser/collabhub/internal/app/features/errors"
	"github.com/dalemusser/collabhub/internal/app/features/shared/views"
	activitystore "github.com/dalemusser/collabhub/internal/app/store/activities"
	membershipstore "github.com/dalemusser/collabhub/internal/app/store/memberships"
	taskstore "github.com/dalemusser/collabhub/internal/app/store/tasks"
	userstore "github.com/dalemusser/collabhub/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const msgUserNotFound = "User not found"

type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *apierrors.ErrorLogger

	Users       *userstore.Store
	Activities  *activitystore.Store
	Memberships *membershipstore.Store
	Tasks       *taskstore.Store
	Views       *views.Populator
}

func NewHandler(db *mongo.Database, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	users := userstore.New(db)
	acts := activitystore.New(db)
	return &Handler{
		DB:          db,
		Log:         logger,
		ErrLog:      errLog,
		Users:       users,
		Activities:  acts,
		Memberships: membershipstore.New(db),
		Tasks:       taskstore.New(db),
		Views:       views.NewPopulator(users, acts),
	}
}
