// internal/app/features/activities/requests.go
package activities

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/collabhub/internal/app/policy/activitypolicy"
	"github.com/dalemusser/collabhub/internal/app/policy/membershippolicy"
	membershipstore "github.com/dalemusser/collabhub/internal/app/store/memberships"
	"github.com/dalemusser/collabhub/internal/app/system/apperr"
	"github.com/dalemusser/collabhub/internal/app/system/authz"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// hostActivity loads the activity in the id path parameter and checks that
// the caller hosts it.
func (h *Handler) hostActivity(ctx context.Context, r *http.Request, callerID primitive.ObjectID) (*models.Activity, error) {
	id, err := authz.PathObjectID(r, "id")
	if err != nil {
		return nil, err
	}
	a, err := h.loadActivity(ctx, id)
	if err != nil {
		return nil, err
	}
	if !activitypolicy.Resolve(callerID, *a, nil).CanManageActivity() {
		return nil, apperr.Forbidden(msgNotAuthorized)
	}
	return a, nil
}

// ServeRequests lists pending join requests, oldest first, for the host.
func (h *Handler) ServeRequests(w http.ResponseWriter, r *http.Request) {
	callerID, err := authz.RequireUser(r)
	if err != nil {
		h.ErrLog.Write(w, r, "activities.requests", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	a, err := h.hostActivity(ctx, r, callerID)
	if err != nil {
		h.ErrLog.Write(w, r, "activities.requests", err)
		return
	}
	pending, err := h.Memberships.ListByActivity(ctx, a.ID, models.MembershipStatusPending)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "activities.requests", err)
		return
	}
	out, err := h.Views.Members(ctx, pending)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "activities.requests populate", err)
		return
	}
	_ = httpjson.WriteJSON(w, http.StatusOK, out)
}

type resolveInput struct {
	Status string `json:"status"`
}

// HandleResolveRequest accepts or rejects a pending request. The request
// must belong to the activity in the path.
func (h *Handler) HandleResolveRequest(w http.ResponseWriter, r *http.Request) {
	callerID, err := authz.RequireUser(r)
	if err != nil {
		h.ErrLog.Write(w, r, "activities.resolve", err)
		return
	}

	var in resolveInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		h.ErrLog.Write(w, r, "activities.resolve", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.hostActivity(ctx, r, callerID)
	if err != nil {
		h.ErrLog.Write(w, r, "activities.resolve", err)
		return
	}
	reqID, err := authz.PathObjectID(r, "requestId")
	if err != nil {
		h.ErrLog.Write(w, r, "activities.resolve", err)
		return
	}

	m, err := h.Memberships.GetByID(ctx, reqID)
	if errors.Is(err, membershipstore.ErrNotFound) || (err == nil && m.ActivityID != a.ID) {
		h.ErrLog.Write(w, r, "activities.resolve", apperr.NotFound(msgRequestNotFound))
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "activities.resolve lookup", err)
		return
	}

	next, err := membershippolicy.Resolve(*m, in.Status)
	if err != nil {
		h.ErrLog.Write(w, r, "activities.resolve", err)
		return
	}
	updated, err := h.Memberships.SetStatus(ctx, m.ID, next)
	switch {
	case errors.Is(err, membershipstore.ErrNotPending):
		err = apperr.Conflict(membershippolicy.MsgNotPending)
	case errors.Is(err, membershipstore.ErrNotFound):
		err = apperr.NotFound(msgRequestNotFound)
	}
	if err != nil {
		h.ErrLog.Write(w, r, "activities.resolve", err)
		return
	}

	h.Log.Info("membership request resolved",
		zap.String("membership_id", updated.ID.Hex()),
		zap.String("activity_id", a.ID.Hex()),
		zap.String("status", updated.Status))

	out, err := h.Views.Members(ctx, []models.Membership{*updated})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "activities.resolve populate", err)
		return
	}
	_ = httpjson.WriteJSON(w, http.StatusOK, out[0])
}
