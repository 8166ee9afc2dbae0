// internal/app/features/login/me.go
package login

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/collabhub/internal/app/store/users"
	"github.com/dalemusser/collabhub/internal/app/system/apperr"
	"github.com/dalemusser/collabhub/internal/app/system/authz"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
)

// ServeMe returns the signed-in user.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	callerID, err := authz.RequireUser(r)
	if err != nil {
		h.ErrLog.Write(w, r, "auth.me", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, callerID)
	if errors.Is(err, userstore.ErrNotFound) {
		h.ErrLog.Write(w, r, "auth.me", apperr.NotFound(msgUserNotFound))
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "auth.me", err)
		return
	}
	_ = httpjson.WriteJSON(w, http.StatusOK, u)
}
