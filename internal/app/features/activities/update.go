// internal/app/features/activities/update.go
package activities

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/collabhub/internal/app/policy/activitypolicy"
	activitystore "github.com/dalemusser/collabhub/internal/app/store/activities"
	"github.com/dalemusser/collabhub/internal/app/system/apperr"
	"github.com/dalemusser/collabhub/internal/app/system/authz"
	"github.com/dalemusser/collabhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/dalemusser/collabhub/internal/app/system/inputval"
	"github.com/dalemusser/collabhub/internal/app/system/normalize"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
	"github.com/dalemusser/collabhub/internal/domain/models"
)

// updateInput lists the fields a host may change. Anything else in the
// body (host, _id, timestamps) is ignored.
type updateInput struct {
	Title               *string  `json:"title"`
	Description         *string  `json:"description"`
	Type                *string  `json:"type"`
	StartDate           *string  `json:"startDate"`
	EndDate             *string  `json:"endDate"`
	DesiredOutcome      *string  `json:"desiredOutcome"`
	InvestmentsRequired *string  `json:"investmentsRequired"`
	Status              *string  `json:"status"`
	RequiredSkills      []string `json:"requiredSkills"`
	Location            *string  `json:"location"`
	TermsAndConditions  *string  `json:"termsAndConditions"`
}

func sanitized(s *string) *string {
	if s == nil {
		return nil
	}
	v := htmlsanitize.Sanitize(*s)
	return &v
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// toUpdate validates in and converts it to a store update.
func (in updateInput) toUpdate() (activitystore.Update, error) {
	var fields []apperr.FieldError
	upd := activitystore.Update{
		Title:               trimmed(in.Title),
		Description:         sanitized(in.Description),
		Type:                in.Type,
		DesiredOutcome:      sanitized(in.DesiredOutcome),
		InvestmentsRequired: sanitized(in.InvestmentsRequired),
		Location:            trimmed(in.Location),
		TermsAndConditions:  sanitized(in.TermsAndConditions),
	}
	if upd.Title != nil && *upd.Title == "" {
		fields = append(fields, apperr.FieldError{Field: "title", Message: "Title is required"})
	}
	if upd.Description != nil && strings.TrimSpace(*upd.Description) == "" {
		fields = append(fields, apperr.FieldError{Field: "description", Message: "Description is required"})
	}
	if in.Type != nil && !models.IsValidActivityType(*in.Type) {
		fields = append(fields, apperr.FieldError{Field: "type", Message: "Invalid activity type"})
	}
	if in.Status != nil {
		st := normalize.Status(*in.Status)
		if !models.IsValidActivityStatus(st) {
			fields = append(fields, apperr.FieldError{Field: "status", Message: "Invalid activity status"})
		}
		upd.Status = &st
	}
	date := func(field, label string, raw *string) *time.Time {
		if raw == nil {
			return nil
		}
		t, err := inputval.ParseISO8601(*raw)
		if err != nil {
			fields = append(fields, apperr.FieldError{Field: field, Message: "Valid " + label + " is required"})
			return nil
		}
		return &t
	}
	upd.StartDate = date("startDate", "start date", in.StartDate)
	upd.EndDate = date("endDate", "end date", in.EndDate)
	if in.RequiredSkills != nil {
		upd.RequiredSkills = normalize.Tags(in.RequiredSkills)
	}

	if len(fields) > 0 {
		return activitystore.Update{}, apperr.Validation("", fields...)
	}
	return upd, nil
}

// HandleUpdate applies the host's changes to an activity.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	callerID, err := authz.RequireUser(r)
	if err != nil {
		h.ErrLog.Write(w, r, "activities.update", err)
		return
	}
	id, err := authz.PathObjectID(r, "id")
	if err != nil {
		h.ErrLog.Write(w, r, "activities.update", err)
		return
	}

	var in updateInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		h.ErrLog.Write(w, r, "activities.update", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.loadActivity(ctx, id)
	if err != nil {
		h.ErrLog.Write(w, r, "activities.update", err)
		return
	}
	if !activitypolicy.Resolve(callerID, *a, nil).CanManageActivity() {
		h.ErrLog.Write(w, r, "activities.update", apperr.Forbidden(msgNotAuthorized))
		return
	}

	upd, err := in.toUpdate()
	if err != nil {
		h.ErrLog.Write(w, r, "activities.update", err)
		return
	}
	updated, err := h.Activities.Update(ctx, a.ID, upd)
	if errors.Is(err, activitystore.ErrNotFound) {
		err = apperr.NotFound(msgActivityNotFound)
	}
	if err != nil {
		h.ErrLog.Write(w, r, "activities.update", err)
		return
	}
	_ = httpjson.WriteJSON(w, http.StatusOK, updated)
}
