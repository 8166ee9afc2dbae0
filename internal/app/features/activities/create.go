// internal/app/features/activities/create.go
package activities

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/collabhub/internal/app/system/authz"
	"github.com/dalemusser/collabhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/dalemusser/collabhub/internal/app/system/inputval"
	"github.com/dalemusser/collabhub/internal/app/system/normalize"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
	"github.com/dalemusser/collabhub/internal/domain/models"
)

type createInput struct {
	Title               string   `json:"title" validate:"notblank" msg:"Title is required"`
	Description         string   `json:"description" validate:"notblank" msg:"Description is required"`
	Type                string   `json:"type" validate:"activitytype"`
	StartDate           string   `json:"startDate" validate:"iso8601" msg:"Valid start date is required"`
	EndDate             string   `json:"endDate" validate:"iso8601" msg:"Valid end date is required"`
	DesiredOutcome      string   `json:"desiredOutcome"`
	InvestmentsRequired string   `json:"investmentsRequired"`
	RequiredSkills      []string `json:"requiredSkills"`
	Location            string   `json:"location"`
	TermsAndConditions  string   `json:"termsAndConditions"`
}

// HandleCreate creates an activity hosted by the caller.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	callerID, err := authz.RequireUser(r)
	if err != nil {
		h.ErrLog.Write(w, r, "activities.create", err)
		return
	}

	var in createInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		h.ErrLog.Write(w, r, "activities.create", err)
		return
	}
	if err := inputval.Validate(&in).Err(); err != nil {
		h.ErrLog.Write(w, r, "activities.create", err)
		return
	}
	// Both already passed the iso8601 rule.
	start, _ := inputval.ParseISO8601(in.StartDate)
	end, _ := inputval.ParseISO8601(in.EndDate)

	a := models.Activity{
		Title:               strings.TrimSpace(in.Title),
		Description:         htmlsanitize.Sanitize(in.Description),
		Type:                in.Type,
		Host:                callerID,
		StartDate:           start,
		EndDate:             end,
		DesiredOutcome:      htmlsanitize.Sanitize(in.DesiredOutcome),
		InvestmentsRequired: htmlsanitize.Sanitize(in.InvestmentsRequired),
		RequiredSkills:      normalize.Tags(in.RequiredSkills),
		Location:            strings.TrimSpace(in.Location),
		TermsAndConditions:  htmlsanitize.Sanitize(in.TermsAndConditions),
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Activities.Create(ctx, a)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "activities.create", err)
		return
	}
	out, err := h.Views.Activity(ctx, created)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "activities.create populate", err)
		return
	}
	_ = httpjson.WriteJSON(w, http.StatusCreated, out)
}
