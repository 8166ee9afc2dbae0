package inputval

import (
	"testing"
	"time"

	"github.com/dalemusser/collabhub/internal/app/system/apperr"
)

func TestIsValidObjectID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"507f1f77bcf86cd799439011", true},
		{"000000000000000000000000", true},
		{"FFFFFFFFFFFFFFFFFFFFFFFF", true},
		{"  507f1f77bcf86cd799439011  ", true},
		{"", false},
		{"507f1f77bcf86cd79943901", false},
		{"507f1f77bcf86cd79943901g", false},
		{"not-a-valid-id", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := IsValidObjectID(tt.id); got != tt.want {
				t.Errorf("IsValidObjectID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestParseISO8601(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"2024-06-01T10:30", time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC), false},
		{"2024-06-01T10:30:15", time.Date(2024, 6, 1, 10, 30, 15, 0, time.UTC), false},
		{"2024-06-01T10:30:15Z", time.Date(2024, 6, 1, 10, 30, 15, 0, time.UTC), false},
		{"2024-06-01T12:30:15+02:00", time.Date(2024, 6, 1, 10, 30, 15, 0, time.UTC), false},
		{"2024-06-01T10:30:15.250Z", time.Date(2024, 6, 1, 10, 30, 15, 250_000_000, time.UTC), false},
		{"", time.Time{}, true},
		{"06/01/2024", time.Time{}, true},
		{"tomorrow", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseISO8601(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseISO8601(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseISO8601(%q) failed: %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseISO8601(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	type input struct {
		Title     string `json:"title" validate:"notblank" msg:"Title is required"`
		Type      string `json:"type" validate:"activitytype"`
		StartDate string `json:"startDate" validate:"iso8601" label:"Start date"`
		Email     string `json:"email" validate:"omitempty,email"`
		Name      string `json:"name" validate:"max=10" label:"Full name"`
	}

	valid := input{Title: "Lab", Type: "Research", StartDate: "2024-01-01"}

	tests := []struct {
		name      string
		mutate    func(*input)
		wantField string
		wantFirst string
	}{
		{"valid", func(*input) {}, "", ""},
		{"blank title", func(in *input) { in.Title = "   " }, "title", "Title is required"},
		{"bad type", func(in *input) { in.Type = "Gaming" }, "type", "Invalid activity type"},
		{"lowercase type rejected", func(in *input) { in.Type = "research" }, "type", "Invalid activity type"},
		{"bad date", func(in *input) { in.StartDate = "soon" }, "startDate", "Valid start date is required."},
		{"bad email", func(in *input) { in.Email = "nope" }, "email", "A valid email address is required."},
		{"too long", func(in *input) { in.Name = "VeryLongNameThatExceeds" }, "name", "Full name must be at most 10 characters."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			res := Validate(in)
			if tt.wantFirst == "" {
				if res.HasErrors() {
					t.Fatalf("unexpected errors: %v", res.Errors)
				}
				if res.Err() != nil {
					t.Error("Err() should be nil without errors")
				}
				return
			}
			if !res.HasErrors() {
				t.Fatal("expected errors")
			}
			if res.Errors[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", res.Errors[0].Field, tt.wantField)
			}
			if res.First() != tt.wantFirst {
				t.Errorf("First() = %q, want %q", res.First(), tt.wantFirst)
			}
			if !apperr.IsKind(res.Err(), apperr.KindValidation) {
				t.Errorf("Err() should be a validation error, got %v", res.Err())
			}
		})
	}
}

func TestValidate_PointerAndMultipleErrors(t *testing.T) {
	type input struct {
		Title string `json:"title" validate:"required" label:"Title"`
		Role  string `json:"role" validate:"omitempty,membershiprole"`
	}

	res := Validate(&input{Role: "owner"})
	if len(res.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(res.Errors), res.Errors)
	}
	want := "Title is required.; Invalid role"
	if res.All() != want {
		t.Errorf("All() = %q, want %q", res.All(), want)
	}
}

func TestResult_Empty(t *testing.T) {
	r := &Result{}
	if r.First() != "" || r.All() != "" {
		t.Error("empty result should have no messages")
	}
}
