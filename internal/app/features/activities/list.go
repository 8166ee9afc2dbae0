// internal/app/features/activities/list.go
package activities

import (
	"context"
	"net/http"

	activitystore "github.com/dalemusser/collabhub/internal/app/store/activities"
	"github.com/dalemusser/collabhub/internal/app/system/apperr"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/dalemusser/collabhub/internal/app/system/normalize"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
	"github.com/dalemusser/collabhub/internal/domain/models"
)

// ServeList returns active activities matching the type, search, location
// and skill query parameters, newest first, with hosts populated.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := activitystore.Filter{
		Type:     normalize.QueryParam(q.Get("type")),
		Search:   normalize.QueryParam(q.Get("search")),
		Location: normalize.QueryParam(q.Get("location")),
		Skill:    normalize.QueryParam(q.Get("skill")),
	}
	if f.Type != "" && !models.IsValidActivityType(f.Type) {
		h.ErrLog.Write(w, r, "activities.list", apperr.Field("type", "Invalid activity type"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := h.Activities.List(ctx, f)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "activities.list", err)
		return
	}
	out, err := h.Views.Activities(ctx, rows)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "activities.list populate", err)
		return
	}
	_ = httpjson.WriteJSON(w, http.StatusOK, out)
}
