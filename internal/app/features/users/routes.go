// internal/app/features/users/routes.go
package users

import (
	"github.com/dalemusser/collabhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, tm *auth.TokenManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/profile/{id}", h.ServeProfile)

	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireSignedIn)

		pr.Get("/my-activities", h.ServeMyActivities)
		pr.Put("/profile", h.HandleUpdateProfile)
	})

	return r
}
