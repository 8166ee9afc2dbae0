// internal/app/features/activities/routes.go
package activities

import (
	"github.com/dalemusser/collabhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, tm *auth.TokenManager) chi.Router {
	r := chi.NewRouter()

	// Public browsing
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeDetail)

	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireSignedIn)

		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)

		// Collaboration requests
		pr.Post("/{id}/join", h.HandleJoin)
		pr.Get("/{id}/requests", h.ServeRequests)
		pr.Put("/{id}/requests/{requestId}", h.HandleResolveRequest)
	})

	return r
}
