// internal/app/policy/taskpolicy/taskpolicy.go
package taskpolicy

import (
	"strings"
	"time"

	"github.com/dalemusser/collabhub/internal/app/system/apperr"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Patch is the allow-listed set of task fields a caller may change.
// Nil means "leave as is".
type Patch struct {
	Title         *string
	Description   *string
	AssignedTo    *primitive.ObjectID
	ClearAssignee bool
	Status        *string
	Priority      *string
	DueDate       *time.Time
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.AssignedTo == nil &&
		!p.ClearAssignee && p.Status == nil && p.Priority == nil && p.DueDate == nil
}

// NewTask builds a task for creation with defaults applied: pending status,
// medium priority, and assignedBy set to the caller.
func NewTask(t models.Task, callerID primitive.ObjectID, now time.Time) (models.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return models.Task{}, apperr.Field("title", "Title is required")
	}
	if t.Status == "" {
		t.Status = models.TaskStatusPending
	}
	if t.Priority == "" {
		t.Priority = models.TaskPriorityMedium
	}
	if err := checkEnums(t.Status, t.Priority); err != nil {
		return models.Task{}, err
	}
	t.ID = primitive.NilObjectID
	t.AssignedBy = callerID
	t.CompletedDate = nil
	stampCompletion(&t, now)
	t.CreatedAt = now
	t.UpdatedAt = now
	return t, nil
}

// ApplyUpdate applies p to t. Any status value may follow any other. When the
// resulting status is completed and completedDate is unset, it is stamped
// with now; completedDate is never cleared.
func ApplyUpdate(t models.Task, p Patch, now time.Time) (models.Task, error) {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return models.Task{}, apperr.Field("title", "Title is required")
		}
		t.Title = title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.ClearAssignee {
		t.AssignedTo = nil
	} else if p.AssignedTo != nil {
		id := *p.AssignedTo
		t.AssignedTo = &id
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		d := p.DueDate.UTC()
		t.DueDate = &d
	}
	if err := checkEnums(t.Status, t.Priority); err != nil {
		return models.Task{}, err
	}
	stampCompletion(&t, now)
	t.UpdatedAt = now
	return t, nil
}

func stampCompletion(t *models.Task, now time.Time) {
	if t.Status == models.TaskStatusCompleted && t.CompletedDate == nil {
		at := now.UTC()
		t.CompletedDate = &at
	}
}

func checkEnums(status, priority string) error {
	var fields []apperr.FieldError
	if !models.IsValidTaskStatus(status) {
		fields = append(fields, apperr.FieldError{Field: "status", Message: "Invalid task status"})
	}
	if !models.IsValidTaskPriority(priority) {
		fields = append(fields, apperr.FieldError{Field: "priority", Message: "Invalid task priority"})
	}
	if len(fields) > 0 {
		return apperr.Validation("", fields...)
	}
	return nil
}
