// internal/app/features/tasks/list.go
package tasks

import (
	"context"
	"net/http"

	taskstore "github.com/dalemusser/collabhub/internal/app/store/tasks"
	"github.com/dalemusser/collabhub/internal/app/system/apperr"
	"github.com/dalemusser/collabhub/internal/app/system/authz"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/dalemusser/collabhub/internal/app/system/normalize"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// queryID parses an optional ObjectID query parameter.
func queryID(r *http.Request, name string) (*primitive.ObjectID, error) {
	raw := normalize.QueryParam(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, apperr.Field(name, "Invalid "+name)
	}
	return &oid, nil
}

// ServeList returns tasks filtered by the activity and assignedTo query
// parameters, newest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	if _, err := authz.RequireUser(r); err != nil {
		h.ErrLog.Write(w, r, "tasks.list", err)
		return
	}

	var f taskstore.Filter
	var err error
	if f.ActivityID, err = queryID(r, "activity"); err != nil {
		h.ErrLog.Write(w, r, "tasks.list", err)
		return
	}
	if f.AssignedTo, err = queryID(r, "assignedTo"); err != nil {
		h.ErrLog.Write(w, r, "tasks.list", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := h.Tasks.List(ctx, f)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "tasks.list", err)
		return
	}
	out, err := h.Views.Tasks(ctx, rows)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "tasks.list populate", err)
		return
	}
	_ = httpjson.WriteJSON(w, http.StatusOK, out)
}

// ServeTask returns one task.
func (h *Handler) ServeTask(w http.ResponseWriter, r *http.Request) {
	if _, err := authz.RequireUser(r); err != nil {
		h.ErrLog.Write(w, r, "tasks.get", err)
		return
	}
	id, err := authz.PathObjectID(r, "id")
	if err != nil {
		h.ErrLog.Write(w, r, "tasks.get", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	t, err := h.loadTask(ctx, id)
	if err != nil {
		h.ErrLog.Write(w, r, "tasks.get", err)
		return
	}
	out, err := h.Views.Task(ctx, *t)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "tasks.get populate", err)
		return
	}
	_ = httpjson.WriteJSON(w, http.StatusOK, out)
}
