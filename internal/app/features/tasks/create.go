// internal/app/features/tasks/create.go
package tasks

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/collabhub/internal/app/policy/taskpolicy"
	"github.com/dalemusser/collabhub/internal/app/system/apperr"
	"github.com/dalemusser/collabhub/internal/app/system/authz"
	"github.com/dalemusser/collabhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/dalemusser/collabhub/internal/app/system/inputval"
	"github.com/dalemusser/collabhub/internal/app/system/normalize"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createInput struct {
	Title       string `json:"title" validate:"notblank" msg:"Title is required"`
	Description string `json:"description"`
	Activity    string `json:"activity" validate:"required,objectid" msg:"Activity ID is required"`
	AssignedTo  string `json:"assignedTo" validate:"omitempty,objectid" label:"Assignee"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate" validate:"omitempty,iso8601" label:"Due date"`
}

// HandleCreate adds a task to an activity. Only the host and active primary
// members may create tasks.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	callerID, err := authz.RequireUser(r)
	if err != nil {
		h.ErrLog.Write(w, r, "tasks.create", err)
		return
	}

	var in createInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		h.ErrLog.Write(w, r, "tasks.create", err)
		return
	}
	if err := inputval.Validate(&in).Err(); err != nil {
		h.ErrLog.Write(w, r, "tasks.create", err)
		return
	}
	activityID, _ := primitive.ObjectIDFromHex(in.Activity)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	_, caps, err := h.capabilities(ctx, callerID, activityID)
	if err != nil {
		h.ErrLog.Write(w, r, "tasks.create", err)
		return
	}
	if !caps.CanCreateTask() {
		h.ErrLog.Write(w, r, "tasks.create", apperr.Forbidden(msgCannotCreate))
		return
	}

	t := models.Task{
		Title:       in.Title,
		Description: htmlsanitize.Sanitize(in.Description),
		ActivityID:  activityID,
		Status:      normalize.Status(in.Status),
		Priority:    normalize.Status(in.Priority),
	}
	if in.AssignedTo != "" {
		oid, _ := primitive.ObjectIDFromHex(in.AssignedTo)
		t.AssignedTo = &oid
	}
	if in.DueDate != "" {
		due, _ := inputval.ParseISO8601(in.DueDate)
		t.DueDate = &due
	}

	t, err = taskpolicy.NewTask(t, callerID, time.Now().UTC())
	if err != nil {
		h.ErrLog.Write(w, r, "tasks.create", err)
		return
	}
	created, err := h.Tasks.Create(ctx, t)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "tasks.create", err)
		return
	}
	h.Log.Debug("task created",
		zap.String("task_id", created.ID.Hex()),
		zap.String("activity_id", created.ActivityID.Hex()))

	out, err := h.Views.Task(ctx, created)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "tasks.create populate", err)
		return
	}
	_ = httpjson.WriteJSON(w, http.StatusCreated, out)
}
