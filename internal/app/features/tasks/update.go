// internal/app/features/tasks/update.go
package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/collabhub/internal/app/policy/taskpolicy"
	taskstore "github.com/dalemusser/collabhub/internal/app/store/tasks"
	"github.com/dalemusser/collabhub/internal/app/system/apperr"
	"github.com/dalemusser/collabhub/internal/app/system/authz"
	"github.com/dalemusser/collabhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/dalemusser/collabhub/internal/app/system/inputval"
	"github.com/dalemusser/collabhub/internal/app/system/normalize"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// updateInput lists the fields a caller may change. activity, assignedBy
// and completedDate in the body are ignored.
type updateInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	// AssignedTo distinguishes absent (keep), null or "" (clear), and an id.
	AssignedTo json.RawMessage `json:"assignedTo"`
	Status     *string         `json:"status"`
	Priority   *string         `json:"priority"`
	DueDate    *string         `json:"dueDate"`
}

func (in updateInput) patch() (taskpolicy.Patch, error) {
	p := taskpolicy.Patch{Title: in.Title}
	var fields []apperr.FieldError

	if in.Description != nil {
		d := htmlsanitize.Sanitize(*in.Description)
		p.Description = &d
	}
	if in.Status != nil {
		s := normalize.Status(*in.Status)
		p.Status = &s
	}
	if in.Priority != nil {
		s := normalize.Status(*in.Priority)
		p.Priority = &s
	}
	if in.DueDate != nil {
		due, err := inputval.ParseISO8601(*in.DueDate)
		if err != nil {
			fields = append(fields, apperr.FieldError{Field: "dueDate", Message: "Valid due date is required"})
		} else {
			p.DueDate = &due
		}
	}
	if len(in.AssignedTo) > 0 {
		var raw *string
		if err := json.Unmarshal(in.AssignedTo, &raw); err != nil {
			fields = append(fields, apperr.FieldError{Field: "assignedTo", Message: "Assignee must be a valid id."})
		} else if raw == nil || strings.TrimSpace(*raw) == "" {
			p.ClearAssignee = true
		} else if oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(*raw)); err != nil {
			fields = append(fields, apperr.FieldError{Field: "assignedTo", Message: "Assignee must be a valid id."})
		} else {
			p.AssignedTo = &oid
		}
	}

	if len(fields) > 0 {
		return taskpolicy.Patch{}, apperr.Validation("", fields...)
	}
	return p, nil
}

// HandleUpdate changes a task. The host, active primary members, and the
// assignee may update; completion is stamped once.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	callerID, err := authz.RequireUser(r)
	if err != nil {
		h.ErrLog.Write(w, r, "tasks.update", err)
		return
	}
	id, err := authz.PathObjectID(r, "id")
	if err != nil {
		h.ErrLog.Write(w, r, "tasks.update", err)
		return
	}

	var in updateInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		h.ErrLog.Write(w, r, "tasks.update", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	t, err := h.loadTask(ctx, id)
	if err != nil {
		h.ErrLog.Write(w, r, "tasks.update", err)
		return
	}
	_, caps, err := h.capabilities(ctx, callerID, t.ActivityID)
	if err != nil {
		h.ErrLog.Write(w, r, "tasks.update", err)
		return
	}
	if !caps.CanUpdateTask(*t) {
		h.ErrLog.Write(w, r, "tasks.update", apperr.Forbidden(msgNotAuthorized))
		return
	}

	p, err := in.patch()
	if err != nil {
		h.ErrLog.Write(w, r, "tasks.update", err)
		return
	}
	next, err := taskpolicy.ApplyUpdate(*t, p, time.Now().UTC())
	if err != nil {
		h.ErrLog.Write(w, r, "tasks.update", err)
		return
	}
	saved, err := h.Tasks.Save(ctx, next)
	if errors.Is(err, taskstore.ErrNotFound) {
		err = apperr.NotFound(msgTaskNotFound)
	}
	if err != nil {
		h.ErrLog.Write(w, r, "tasks.update", err)
		return
	}

	out, err := h.Views.Task(ctx, *saved)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "tasks.update populate", err)
		return
	}
	_ = httpjson.WriteJSON(w, http.StatusOK, out)
}
