// internal/domain/models/activity.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Canonical activity type identifiers. Stored verbatim in Activity.Type.
const (
	ActivityTypeAcademic     = "Academic"
	ActivityTypePhysical     = "Physical"
	ActivityTypeReligious    = "Religious"
	ActivityTypeProfessional = "Professional"
	ActivityTypeResearch     = "Research"
	ActivityTypeSports       = "Sports"
	ActivityTypeOther        = "Other"
)

// ActivityTypes is the full set of allowed activity types.
var ActivityTypes = []string{
	ActivityTypeAcademic,
	ActivityTypePhysical,
	ActivityTypeReligious,
	ActivityTypeProfessional,
	ActivityTypeResearch,
	ActivityTypeSports,
	ActivityTypeOther,
}

// IsValidActivityType reports whether t is one of ActivityTypes (case-sensitive).
func IsValidActivityType(t string) bool {
	for _, v := range ActivityTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Activity lifecycle statuses. Activities are never hard-deleted; they move
// to completed or cancelled instead.
const (
	ActivityStatusActive    = "active"
	ActivityStatusCompleted = "completed"
	ActivityStatusCancelled = "cancelled"
)

// IsValidActivityStatus reports whether s is a known activity status.
func IsValidActivityStatus(s string) bool {
	switch s {
	case ActivityStatusActive, ActivityStatusCompleted, ActivityStatusCancelled:
		return true
	}
	return false
}

// Activity is a hostable project or event that other users can request to join.
// Host is set at creation and never changes.
type Activity struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title               string             `bson:"title" json:"title"`
	Description         string             `bson:"description" json:"description"`
	Type                string             `bson:"type" json:"type"`
	Host                primitive.ObjectID `bson:"host_id" json:"host"`
	StartDate           time.Time          `bson:"start_date" json:"startDate"`
	EndDate             time.Time          `bson:"end_date" json:"endDate"`
	DesiredOutcome      string             `bson:"desired_outcome,omitempty" json:"desiredOutcome,omitempty"`
	InvestmentsRequired string             `bson:"investments_required,omitempty" json:"investmentsRequired,omitempty"`
	Status              string             `bson:"status" json:"status"`
	RequiredSkills      []string           `bson:"required_skills" json:"requiredSkills"`
	Location            string             `bson:"location,omitempty" json:"location,omitempty"`
	TermsAndConditions  string             `bson:"terms_and_conditions,omitempty" json:"termsAndConditions,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// ActivitySummary is the subset of an activity embedded in memberships and tasks.
type ActivitySummary struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Type        string             `bson:"type,omitempty" json:"type,omitempty"`
}

// Summary returns the embeddable projection of a.
func (a Activity) Summary() ActivitySummary {
	return ActivitySummary{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Type:        a.Type,
	}
}
