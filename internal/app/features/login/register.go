// internal/app/features/login/register.go
package login

import (
	"context"
	"errors"
	"net/http"
	"time"

	userstore "github.com/dalemusser/collabhub/internal/app/store/users"
	"github.com/dalemusser/collabhub/internal/app/system/apperr"
	"github.com/dalemusser/collabhub/internal/app/system/authutil"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/dalemusser/collabhub/internal/app/system/inputval"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"go.uber.org/zap"
)

type registerInput struct {
	Username string `json:"username" validate:"required,min=3,max=30,alphanum" label:"Username"`
	Email    string `json:"email" validate:"required,email,max=254" label:"Email"`
	Password string `json:"password" validate:"required,min=8,max=72" label:"Password"`
	Name     string `json:"name" validate:"required,notblank,max=100" label:"Name"`
}

// HandleRegister creates a local account and returns a token for it.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		h.ErrLog.Write(w, r, "auth.register", err)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		h.ErrLog.Write(w, r, "auth.register", res.Err())
		return
	}
	if ok, reason := h.Limiter.Check(r, in.Email); !ok {
		h.ErrLog.Write(w, r, "auth.register", apperr.RateLimited(reason))
		return
	}

	hash, err := authutil.HashPassword(in.Password)
	if err != nil {
		h.ErrLog.Write(w, r, "auth.register", apperr.Field("password", err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.Create(ctx, models.User{
		Username:     in.Username,
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		Skills:       []string{},
	})
	switch {
	case errors.Is(err, userstore.ErrDuplicateEmail), errors.Is(err, userstore.ErrDuplicateUsername):
		h.ErrLog.Write(w, r, "auth.register", apperr.Conflict("User already exists"))
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "auth.register", err)
		return
	}

	h.Log.Info("account registered", zap.String("user_id", u.ID.Hex()), zap.String("username", u.Username))
	h.writeToken(w, r, http.StatusCreated, u)
}

func (h *Handler) writeToken(w http.ResponseWriter, r *http.Request, status int, u models.User) {
	token, exp, err := h.Tokens.Issue(sessionUser(u))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "auth.issue token", err)
		return
	}
	_ = httpjson.WriteJSON(w, status, tokenResponse{
		Token:     token,
		ExpiresAt: exp.UTC().Format(time.RFC3339),
		User:      u,
	})
}
