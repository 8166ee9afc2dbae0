// internal/app/features/users/profile.go
package users

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/collabhub/internal/app/features/shared/views"
	userstore "github.com/dalemusser/collabhub/internal/app/store/users"
	"github.com/dalemusser/collabhub/internal/app/system/apperr"
	"github.com/dalemusser/collabhub/internal/app/system/authz"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type profileStats struct {
	HostedActivities  int   `json:"hostedActivities"`
	ActiveMemberships int   `json:"activeMemberships"`
	CompletedTasks    int64 `json:"completedTasks"`
	TotalTasks        int64 `json:"totalTasks"`
}

type profileResponse struct {
	User             models.User           `json:"user"`
	Stats            profileStats          `json:"stats"`
	HostedActivities []models.Activity     `json:"hostedActivities"`
	Memberships      []views.Participation `json:"memberships"`
}

// ServeProfile returns a user's public profile with activity and task stats.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	id, err := authz.PathObjectID(r, "id")
	if err != nil {
		h.ErrLog.Write(w, r, "users.profile", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if errors.Is(err, userstore.ErrNotFound) {
		h.ErrLog.Write(w, r, "users.profile", apperr.NotFound(msgUserNotFound))
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "users.profile", err)
		return
	}

	hosted, err := h.Activities.ListByHost(ctx, u.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "users.profile hosted", err)
		return
	}
	ms, err := h.Memberships.ListByUser(ctx, u.ID, models.MembershipStatusActive)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "users.profile memberships", err)
		return
	}
	parts, err := h.Views.Participations(ctx, ms)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "users.profile populate", err)
		return
	}
	counts, err := h.Tasks.CountByAssignee(ctx, u.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "users.profile tasks", err)
		return
	}

	_ = httpjson.WriteJSON(w, http.StatusOK, profileResponse{
		User: *u,
		Stats: profileStats{
			HostedActivities:  len(hosted),
			ActiveMemberships: len(ms),
			CompletedTasks:    counts.Completed,
			TotalTasks:        counts.Total,
		},
		HostedActivities: hosted,
		Memberships:      parts,
	})
}

type myActivitiesResponse struct {
	Hosted        []models.Activity `json:"hosted"`
	Participating []models.Activity `json:"participating"`
}

// ServeMyActivities returns what the caller hosts and what they actively
// participate in.
func (h *Handler) ServeMyActivities(w http.ResponseWriter, r *http.Request) {
	callerID, err := authz.RequireUser(r)
	if err != nil {
		h.ErrLog.Write(w, r, "users.my_activities", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	hosted, err := h.Activities.ListByHost(ctx, callerID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "users.my_activities hosted", err)
		return
	}
	ms, err := h.Memberships.ListByUser(ctx, callerID, models.MembershipStatusActive)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "users.my_activities memberships", err)
		return
	}
	ids := make([]primitive.ObjectID, 0, len(ms))
	for _, m := range ms {
		ids = append(ids, m.ActivityID)
	}
	participating, err := h.Activities.GetByIDs(ctx, ids)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "users.my_activities participating", err)
		return
	}

	_ = httpjson.WriteJSON(w, http.StatusOK, myActivitiesResponse{Hosted: hosted, Participating: participating})
}

// profileInput is the self-editable part of a user. Every other field in the
// body is ignored.
type profileInput struct {
	Name     *string  `json:"name"`
	Skills   []string `json:"skills"`
	Location *string  `json:"location"`
}

// HandleUpdateProfile updates the caller's name, skills and location.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	callerID, err := authz.RequireUser(r)
	if err != nil {
		h.ErrLog.Write(w, r, "users.update_profile", err)
		return
	}

	var in profileInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		h.ErrLog.Write(w, r, "users.update_profile", err)
		return
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		h.ErrLog.Write(w, r, "users.update_profile", apperr.Field("name", "Name is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.UpdateProfile(ctx, callerID, userstore.ProfileUpdate{
		Name:     in.Name,
		Skills:   in.Skills,
		Location: in.Location,
	})
	if errors.Is(err, userstore.ErrNotFound) {
		err = apperr.NotFound(msgUserNotFound)
	}
	if err != nil {
		h.ErrLog.Write(w, r, "users.update_profile", err)
		return
	}
	_ = httpjson.WriteJSON(w, http.StatusOK, u)
}
