// internal/app/features/tasks/delete.go
package tasks

import (
	"context"
	"errors"
	"net/http"

	taskstore "github.com/dalemusser/collabhub/internal/app/store/tasks"
	"github.com/dalemusser/collabhub/internal/app/system/apperr"
	"github.com/dalemusser/collabhub/internal/app/system/authz"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
)

// HandleDelete removes a task. Only the host and active primary members may delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	callerID, err := authz.RequireUser(r)
	if err != nil {
		h.ErrLog.Write(w, r, "tasks.delete", err)
		return
	}
	id, err := authz.PathObjectID(r, "id")
	if err != nil {
		h.ErrLog.Write(w, r, "tasks.delete", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	t, err := h.loadTask(ctx, id)
	if err != nil {
		h.ErrLog.Write(w, r, "tasks.delete", err)
		return
	}
	_, caps, err := h.capabilities(ctx, callerID, t.ActivityID)
	if err != nil {
		h.ErrLog.Write(w, r, "tasks.delete", err)
		return
	}
	if !caps.CanDeleteTask() {
		h.ErrLog.Write(w, r, "tasks.delete", apperr.Forbidden(msgNotAuthorized))
		return
	}

	err = h.Tasks.Delete(ctx, t.ID)
	if errors.Is(err, taskstore.ErrNotFound) {
		err = apperr.NotFound(msgTaskNotFound)
	}
	if err != nil {
		h.ErrLog.Write(w, r, "tasks.delete", err)
		return
	}
	_ = httpjson.WriteJSON(w, http.StatusOK, map[string]string{"message": "Task deleted"})
}
