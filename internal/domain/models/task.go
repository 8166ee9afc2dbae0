// internal/domain/models/task.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task statuses. No transition table restricts ordering.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"
	TaskStatusCancelled  = "cancelled"
)

// IsValidTaskStatus reports whether s is a known task status.
func IsValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

// Task priorities.
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// IsValidTaskPriority reports whether p is a known task priority.
func IsValidTaskPriority(p string) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task is a unit of work scoped to one activity.
//
// CompletedDate is stamped the first time Status becomes completed and is
// never cleared afterwards.
type Task struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Title         string              `bson:"title" json:"title"`
	Description   string              `bson:"description,omitempty" json:"description,omitempty"`
	ActivityID    primitive.ObjectID  `bson:"activity_id" json:"activity"`
	AssignedTo    *primitive.ObjectID `bson:"assigned_to,omitempty" json:"assignedTo,omitempty"`
	AssignedBy    primitive.ObjectID  `bson:"assigned_by" json:"assignedBy"`
	Status        string              `bson:"status" json:"status"`
	Priority      string              `bson:"priority" json:"priority"`
	DueDate       *time.Time          `bson:"due_date,omitempty" json:"dueDate,omitempty"`
	CompletedDate *time.Time          `bson:"completed_date,omitempty" json:"completedDate,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsAssignedTo reports whether the task is assigned to userID.
func (t Task) IsAssignedTo(userID primitive.ObjectID) bool {
	return t.AssignedTo != nil && !userID.IsZero() && *t.AssignedTo == userID
}
