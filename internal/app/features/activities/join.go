// internal/app/features/activities/join.go
package activities

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/collabhub/internal/app/policy/membershippolicy"
	membershipstore "github.com/dalemusser/collabhub/internal/app/store/memberships"
	"github.com/dalemusser/collabhub/internal/app/system/apperr"
	"github.com/dalemusser/collabhub/internal/app/system/authz"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
	"github.com/dalemusser/collabhub/internal/domain/models"
)

type joinInput struct {
	Role string `json:"role"`
}

type joinResponse struct {
	models.Membership
	User     models.UserSummary     `json:"user"`
	Activity models.ActivitySummary `json:"activity"`
}

// HandleJoin records the caller's pending request to join an activity.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	callerID, err := authz.RequireUser(r)
	if err != nil {
		h.ErrLog.Write(w, r, "activities.join", err)
		return
	}
	id, err := authz.PathObjectID(r, "id")
	if err != nil {
		h.ErrLog.Write(w, r, "activities.join", err)
		return
	}

	var in joinInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		h.ErrLog.Write(w, r, "activities.join", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.loadActivity(ctx, id)
	if err != nil {
		h.ErrLog.Write(w, r, "activities.join", err)
		return
	}
	existing, err := h.Memberships.Find(ctx, callerID, a.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "activities.join lookup", err)
		return
	}
	if err := membershippolicy.CheckJoin(callerID, *a, existing); err != nil {
		h.ErrLog.Write(w, r, "activities.join", err)
		return
	}
	role, err := membershippolicy.NormalizeRole(in.Role)
	if err != nil {
		h.ErrLog.Write(w, r, "activities.join", err)
		return
	}

	m, err := h.Memberships.Create(ctx, membershippolicy.NewRequest(callerID, a.ID, role, time.Now().UTC()))
	if errors.Is(err, membershipstore.ErrDuplicateMembership) {
		// Lost a race with a concurrent join; the unique index decided.
		err = apperr.Conflict(membershippolicy.MsgAlreadyJoined)
	}
	if err != nil {
		h.ErrLog.Write(w, r, "activities.join", err)
		return
	}

	member, err := h.Views.Members(ctx, []models.Membership{m})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "activities.join populate", err)
		return
	}
	_ = httpjson.WriteJSON(w, http.StatusCreated, joinResponse{
		Membership: m,
		User:       member[0].User,
		Activity:   a.Summary(),
	})
}
