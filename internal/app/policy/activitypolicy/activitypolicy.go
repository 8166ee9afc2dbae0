// internal/app/policy/activitypolicy/activitypolicy.go
package activitypolicy

import (
	"context"

	"github.com/dalemusser/collabhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Capabilities is what a caller may do within one activity.
//
// There are no global roles: every capability derives from the activity's
// host field and the caller's membership document for that activity.
type Capabilities struct {
	CallerID       primitive.ObjectID
	IsHost         bool
	IsActiveMember bool
	IsPrimary      bool
}

// Resolve computes capabilities for callerID on activity. m is the caller's
// membership for the activity, or nil if there is none. A zero caller id
// resolves to no capabilities.
func Resolve(callerID primitive.ObjectID, activity models.Activity, m *models.Membership) Capabilities {
	if callerID.IsZero() {
		return Capabilities{}
	}
	c := Capabilities{
		CallerID: callerID,
		IsHost:   callerID == activity.Host,
	}
	if m != nil && m.UserID == callerID && m.ActivityID == activity.ID && m.IsActive() {
		c.IsActiveMember = true
		c.IsPrimary = m.Role == models.MembershipRolePrimary
	}
	return c
}

// CanManageActivity covers editing the activity and viewing or resolving
// join requests.
func (c Capabilities) CanManageActivity() bool { return c.IsHost }

// CanCreateTask reports whether the caller may add tasks to the activity.
func (c Capabilities) CanCreateTask() bool { return c.IsHost || c.IsPrimary }

// CanUpdateTask reports whether the caller may edit task. Assignees may edit
// tasks assigned to them regardless of membership role.
func (c Capabilities) CanUpdateTask(task models.Task) bool {
	return c.IsHost || c.IsPrimary || task.IsAssignedTo(c.CallerID)
}

// CanDeleteTask reports whether the caller may remove tasks.
func (c Capabilities) CanDeleteTask() bool { return c.IsHost || c.IsPrimary }

// MembershipLookup finds the membership for (userID, activityID). It returns
// (nil, nil) when none exists.
type MembershipLookup interface {
	Find(ctx context.Context, userID, activityID primitive.ObjectID) (*models.Membership, error)
}

// Load looks up the caller's membership and resolves capabilities. A lookup
// error is returned to the caller, never treated as "no membership".
func Load(ctx context.Context, lookup MembershipLookup, callerID primitive.ObjectID, activity models.Activity) (Capabilities, error) {
	if callerID.IsZero() {
		return Capabilities{}, nil
	}
	if callerID == activity.Host {
		// Hosts cannot hold a membership in their own activity.
		return Resolve(callerID, activity, nil), nil
	}
	m, err := lookup.Find(ctx, callerID, activity.ID)
	if err != nil {
		return Capabilities{}, err
	}
	return Resolve(callerID, activity, m), nil
}
