// internal/domain/models/membership.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership roles.
const (
	MembershipRolePrimary   = "primary"
	MembershipRoleSecondary = "secondary"
	MembershipRoleTemporary = "temporary"
)

// IsValidMembershipRole reports whether r is a known membership role.
func IsValidMembershipRole(r string) bool {
	switch r {
	case MembershipRolePrimary, MembershipRoleSecondary, MembershipRoleTemporary:
		return true
	}
	return false
}

// Membership statuses.
//
// MembershipStatusAccepted is the value a host sends when approving a request;
// it is persisted as MembershipStatusActive. Stored documents never carry
// "accepted" when written by this service.
const (
	MembershipStatusPending  = "pending"
	MembershipStatusAccepted = "accepted"
	MembershipStatusRejected = "rejected"
	MembershipStatusActive   = "active"
)

// IsValidMembershipStatus reports whether s is a known membership status.
func IsValidMembershipStatus(s string) bool {
	switch s {
	case MembershipStatusPending, MembershipStatusAccepted, MembershipStatusRejected, MembershipStatusActive:
		return true
	}
	return false
}

// Membership links a user to an activity. Exactly one document per
// (user_id, activity_id), enforced by a unique index.
type Membership struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID           primitive.ObjectID `bson:"user_id" json:"user"`
	ActivityID       primitive.ObjectID `bson:"activity_id" json:"activity"`
	Role             string             `bson:"role" json:"role"`
	Status           string             `bson:"status" json:"status"`
	ContractAccepted bool               `bson:"contract_accepted" json:"contractAccepted"`
	StartDate        *time.Time         `bson:"start_date,omitempty" json:"startDate,omitempty"`
	EndDate          *time.Time         `bson:"end_date,omitempty" json:"endDate,omitempty"`
	Compensation     string             `bson:"compensation,omitempty" json:"compensation,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsActive reports whether the membership grants member capabilities.
func (m Membership) IsActive() bool {
	return m.Status == MembershipStatusActive
}
