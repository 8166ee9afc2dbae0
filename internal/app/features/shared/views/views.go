// internal/app/features/shared/views/views.go
package views

import (
	"context"

	activitystore "github.com/dalemusser/collabhub/internal/app/store/activities"
	userstore "github.com/dalemusser/collabhub/internal/app/store/users"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity is an activity with its host populated.
type Activity struct {
	models.Activity
	Host models.UserSummary `json:"host"`
}

// Member is a membership with its user populated.
type Member struct {
	models.Membership
	User models.UserSummary `json:"user"`
}

// Participation is a membership with its activity populated.
type Participation struct {
	models.Membership
	Activity models.ActivitySummary `json:"activity"`
}

// Task is a task with its activity and both users populated.
type Task struct {
	models.Task
	Activity   models.ActivitySummary `json:"activity"`
	AssignedTo *models.UserSummary    `json:"assignedTo,omitempty"`
	AssignedBy models.UserSummary     `json:"assignedBy"`
}

// Populator resolves references for embedding. References to documents
// that no longer exist keep only their id.
type Populator struct {
	users      *userstore.Store
	activities *activitystore.Store
}

// NewPopulator builds a Populator over the given stores.
func NewPopulator(users *userstore.Store, activities *activitystore.Store) *Populator {
	return &Populator{users: users, activities: activities}
}

func userRef(m map[primitive.ObjectID]models.UserSummary, id primitive.ObjectID) models.UserSummary {
	if u, ok := m[id]; ok {
		return u
	}
	return models.UserSummary{ID: id}
}

func (p *Populator) activityRefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.ActivitySummary, error) {
	acts, err := p.activities.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[primitive.ObjectID]models.ActivitySummary, len(acts))
	for _, a := range acts {
		out[a.ID] = a.Summary()
	}
	return out, nil
}

func activityRef(m map[primitive.ObjectID]models.ActivitySummary, id primitive.ObjectID) models.ActivitySummary {
	if a, ok := m[id]; ok {
		return a
	}
	return models.ActivitySummary{ID: id}
}

// Activities populates the host of each activity.
func (p *Populator) Activities(ctx context.Context, acts []models.Activity) ([]Activity, error) {
	ids := make([]primitive.ObjectID, 0, len(acts))
	for _, a := range acts {
		ids = append(ids, a.Host)
	}
	hosts, err := p.users.GetSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]Activity, 0, len(acts))
	for _, a := range acts {
		out = append(out, Activity{Activity: a, Host: userRef(hosts, a.Host)})
	}
	return out, nil
}

// Activity populates the host of a single activity.
func (p *Populator) Activity(ctx context.Context, a models.Activity) (Activity, error) {
	out, err := p.Activities(ctx, []models.Activity{a})
	if err != nil {
		return Activity{}, err
	}
	return out[0], nil
}

// Members populates the user of each membership.
func (p *Populator) Members(ctx context.Context, ms []models.Membership) ([]Member, error) {
	ids := make([]primitive.ObjectID, 0, len(ms))
	for _, m := range ms {
		ids = append(ids, m.UserID)
	}
	users, err := p.users.GetSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]Member, 0, len(ms))
	for _, m := range ms {
		out = append(out, Member{Membership: m, User: userRef(users, m.UserID)})
	}
	return out, nil
}

// Participations populates the activity of each membership.
func (p *Populator) Participations(ctx context.Context, ms []models.Membership) ([]Participation, error) {
	ids := make([]primitive.ObjectID, 0, len(ms))
	for _, m := range ms {
		ids = append(ids, m.ActivityID)
	}
	acts, err := p.activityRefs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]Participation, 0, len(ms))
	for _, m := range ms {
		out = append(out, Participation{Membership: m, Activity: activityRef(acts, m.ActivityID)})
	}
	return out, nil
}

// Tasks populates the activity, assignee and assigner of each task.
func (p *Populator) Tasks(ctx context.Context, tasks []models.Task) ([]Task, error) {
	actIDs := make([]primitive.ObjectID, 0, len(tasks))
	userIDs := make([]primitive.ObjectID, 0, len(tasks)*2)
	for _, t := range tasks {
		actIDs = append(actIDs, t.ActivityID)
		userIDs = append(userIDs, t.AssignedBy)
		if t.AssignedTo != nil {
			userIDs = append(userIDs, *t.AssignedTo)
		}
	}
	acts, err := p.activityRefs(ctx, actIDs)
	if err != nil {
		return nil, err
	}
	users, err := p.users.GetSummaries(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		v := Task{
			Task:       t,
			Activity:   activityRef(acts, t.ActivityID),
			AssignedBy: userRef(users, t.AssignedBy),
		}
		if t.AssignedTo != nil {
			u := userRef(users, *t.AssignedTo)
			v.AssignedTo = &u
		}
		out = append(out, v)
	}
	return out, nil
}

// Task populates a single task.
func (p *Populator) Task(ctx context.Context, t models.Task) (Task, error) {
	out, err := p.Tasks(ctx, []models.Task{t})
	if err != nil {
		return Task{}, err
	}
	return out[0], nil
}
