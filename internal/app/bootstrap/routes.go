// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	activitiesfeature "github.com/dalemusser/collabhub/internal/app/features/activities"
	errorsfeature "github.com/dalemusser/collabhub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/collabhub/internal/app/features/health"
	loginfeature "github.com/dalemusser/collabhub/internal/app/features/login"
	tasksfeature "github.com/dalemusser/collabhub/internal/app/features/tasks"
	usersfeature "github.com/dalemusser/collabhub/internal/app/features/users"
	userstore "github.com/dalemusser/collabhub/internal/app/store/users"
	"github.com/dalemusser/collabhub/internal/app/system/auth"
	"github.com/dalemusser/collabhub/internal/app/system/reqlog"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. Every route speaks JSON; private routes
// are guarded inside each feature router with tm.RequireSignedIn.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tm, err := auth.NewTokenManager(appCfg.JWTSecret, appCfg.JWTIssuer, appCfg.JWTTTL, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	// Reload the caller on each request so deleted accounts stop
	// authenticating immediately.
	tm.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()
	r.Use(reqlog.RequestID)
	r.Use(reqlog.AccessLog(logger))
	r.Use(middleware.Recoverer)
	r.Use(tm.LoadSessionUser)

	r.NotFound(errLog.NotFound)
	r.MethodNotAllowed(errLog.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Accounts
	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, tm, errLog, logger)
	r.Mount("/auth", loginfeature.Routes(loginHandler, tm))

	// Activities and their join requests
	activitiesHandler := activitiesfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/activities", activitiesfeature.Routes(activitiesHandler, tm))

	// Task board
	tasksHandler := tasksfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/tasks", tasksfeature.Routes(tasksHandler, tm))

	// Profiles
	usersHandler := usersfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler, tm))

	return r, nil
}
