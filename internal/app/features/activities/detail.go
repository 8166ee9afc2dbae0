// internal/app/features/activities/detail.go
package activities

import (
	"context"
	"net/http"

	"github.com/dalemusser/collabhub/internal/app/features/shared/views"
	"github.com/dalemusser/collabhub/internal/app/system/authz"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
	"github.com/dalemusser/collabhub/internal/domain/models"
)

type detailResponse struct {
	Activity views.Activity `json:"activity"`
	Members  []views.Member `json:"members"`
}

// ServeDetail returns one activity and its active members.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	id, err := authz.PathObjectID(r, "id")
	if err != nil {
		h.ErrLog.Write(w, r, "activities.detail", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	a, err := h.loadActivity(ctx, id)
	if err != nil {
		h.ErrLog.Write(w, r, "activities.detail", err)
		return
	}
	act, err := h.Views.Activity(ctx, *a)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "activities.detail populate", err)
		return
	}

	ms, err := h.Memberships.ListByActivity(ctx, a.ID, models.MembershipStatusActive)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "activities.detail members", err)
		return
	}
	members, err := h.Views.Members(ctx, ms)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "activities.detail populate members", err)
		return
	}

	_ = httpjson.WriteJSON(w, http.StatusOK, detailResponse{Activity: act, Members: members})
}
