// internal/app/features/login/handler.go
package login

import (
	apierrors "github.com/dalemusser/collabhub/internal/app/features/errors"
	userstore "github.com/dalemusser/collabhub/internal/app/store/users"
	"github.com/dalemusser/collabhub/internal/app/system/auth"
	"github.com/dalemusser/collabhub/internal/app/system/ratelimit"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Client-facing messages. Login failures never reveal which of email or
// password was wrong.
const (
	msgInvalidCredentials = "Invalid credentials"
	msgUserNotFound       = "User not found"
)

type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	ErrLog  *apierrors.ErrorLogger
	Tokens  *auth.TokenManager
	Limiter *ratelimit.AuthLimiter

	Users *userstore.Store
}

func NewHandler(db *mongo.Database, tm *auth.TokenManager, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Log:     logger,
		ErrLog:  errLog,
		Tokens:  tm,
		Limiter: ratelimit.NewAuthLimiter(),
		Users:   userstore.New(db),
	}
}

// tokenResponse is returned by register and login.
type tokenResponse struct {
	Token     string      `json:"token"`
	ExpiresAt string      `json:"expiresAt"`
	User      models.User `json:"user"`
}

func sessionUser(u models.User) auth.SessionUser {
	return auth.SessionUser{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
	}
}
