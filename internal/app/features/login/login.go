// internal/app/features/login/login.go
package login

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/collabhub/internal/app/store/users"
	"github.com/dalemusser/collabhub/internal/app/system/apperr"
	"github.com/dalemusser/collabhub/internal/app/system/authutil"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/dalemusser/collabhub/internal/app/system/inputval"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type loginInput struct {
	Email    string `json:"email" validate:"required,email" label:"Email"`
	Password string `json:"password" validate:"required" label:"Password"`
}

// HandleLogin verifies email and password and returns a bearer token.
//
// Unknown emails and wrong passwords produce the same 401 so the endpoint
// cannot be used to probe for accounts.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		h.ErrLog.Write(w, r, "auth.login", err)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		h.ErrLog.Write(w, r, "auth.login", res.Err())
		return
	}
	if ok, reason := h.Limiter.Check(r, in.Email); !ok {
		h.ErrLog.Write(w, r, "auth.login", apperr.RateLimited(reason))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, in.Email)
	if errors.Is(err, userstore.ErrNotFound) {
		h.ErrLog.Write(w, r, "auth.login", apperr.Unauthorized(msgInvalidCredentials))
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "auth.login lookup", err)
		return
	}
	if !authutil.CheckPassword(u.PasswordHash, in.Password) {
		h.Log.Info("login failed: bad password", zap.String("user_id", u.ID.Hex()))
		h.ErrLog.Write(w, r, "auth.login", apperr.Unauthorized(msgInvalidCredentials))
		return
	}

	h.Limiter.ResetEmail(in.Email)
	h.writeToken(w, r, http.StatusOK, *u)
}
