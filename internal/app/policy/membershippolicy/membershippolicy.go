// internal/app/policy/membershippolicy/membershippolicy.go
package membershippolicy

import (
	"strings"
	"time"

	"github.com/dalemusser/collabhub/internal/app/system/apperr"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Messages surfaced to clients.
const (
	MsgOwnActivity   = "Cannot join your own activity"
	MsgAlreadyJoined = "Already requested or joined this activity"
	MsgNotPending    = "Request has already been resolved"
	MsgInvalidRole   = "Invalid role"
	MsgInvalidStatus = "Status must be accepted or rejected"
)

// CheckJoin guards a join request. existing is the caller's current
// membership for the activity in any status, or nil.
//
// A rejected user cannot request again: any existing document blocks.
func CheckJoin(callerID primitive.ObjectID, activity models.Activity, existing *models.Membership) error {
	if callerID == activity.Host {
		return apperr.Conflict(MsgOwnActivity)
	}
	if existing != nil {
		return apperr.Conflict(MsgAlreadyJoined)
	}
	return nil
}

// NormalizeRole defaults an empty role to secondary and rejects unknown roles.
func NormalizeRole(role string) (string, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return models.MembershipRoleSecondary, nil
	}
	if !models.IsValidMembershipRole(role) {
		return "", apperr.Field("role", MsgInvalidRole)
	}
	return role, nil
}

// NewRequest builds the pending membership document for a join.
func NewRequest(userID, activityID primitive.ObjectID, role string, now time.Time) models.Membership {
	return models.Membership{
		UserID:     userID,
		ActivityID: activityID,
		Role:       role,
		Status:     models.MembershipStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Resolve validates a host's decision on m and returns the status to
// persist. "accepted" is stored as active. Only pending requests can be
// resolved.
func Resolve(m models.Membership, requested string) (string, error) {
	requested = strings.ToLower(strings.TrimSpace(requested))

	var next string
	switch requested {
	case models.MembershipStatusAccepted:
		next = models.MembershipStatusActive
	case models.MembershipStatusRejected:
		next = models.MembershipStatusRejected
	default:
		return "", apperr.Field("status", MsgInvalidStatus)
	}

	if m.Status != models.MembershipStatusPending {
		return "", apperr.Conflict(MsgNotPending)
	}
	return next, nil
}
