// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account that can host activities and join other hosts' activities.
//
// NOTE:
//   - Memberships are not embedded on User.
//     Use the memberships collection to discover a user's activities.
//   - PasswordHash is never serialized to JSON.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username     string             `bson:"username" json:"username"`
	UsernameCI   string             `bson:"username_ci" json:"-"` // folded for case-insensitive uniqueness
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`
	Name         string             `bson:"name" json:"name"`
	Skills       []string           `bson:"skills" json:"skills"`
	Location     string             `bson:"location,omitempty" json:"location,omitempty"`
	Badges       []string           `bson:"badges" json:"badges"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// UserSummary is the subset of a user embedded when another document
// references that user (activity host, membership user, task assignee).
type UserSummary struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Username string             `bson:"username" json:"username"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email,omitempty" json:"email,omitempty"`
	Skills   []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	Location string             `bson:"location,omitempty" json:"location,omitempty"`
	Badges   []string           `bson:"badges,omitempty" json:"badges,omitempty"`
}

// Summary returns the embeddable projection of u.
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
		Skills:   u.Skills,
		Location: u.Location,
		Badges:   u.Badges,
	}
}
