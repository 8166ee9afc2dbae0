package httpjson_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/collabhub/internal/app/system/apperr"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
)

func TestWriteJSON_Status200(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := httpjson.WriteJSON(rec, http.StatusOK, map[string]string{"hello": "world"}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	if body["hello"] != "world" {
		t.Errorf("body: got %v", body)
	}
}

func TestWriteJSON_Created(t *testing.T) {
	rec := httptest.NewRecorder()
	_ = httpjson.WriteJSON(rec, http.StatusCreated, struct{}{})
	if rec.Code != http.StatusCreated {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusCreated)
	}
}

func TestWriteError_IncludesFields(t *testing.T) {
	rec := httptest.NewRecorder()
	e := apperr.Validation("", apperr.FieldError{Field: "title", Message: "Title is required"})
	_ = httpjson.WriteError(rec, e)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var body httpjson.ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	if body.Error != "validation_error" {
		t.Errorf("error: got %q", body.Error)
	}
	if len(body.Errors) != 1 || body.Errors[0].Field != "title" {
		t.Errorf("errors: got %+v", body.Errors)
	}
}

func TestDecode(t *testing.T) {
	type payload struct {
		Role string `json:"role"`
	}

	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"valid", `{"role":"primary"}`, "primary", false},
		{"empty body", ``, "", false},
		{"malformed", `{"role":`, "", true},
		{"trailing data", `{"role":"a"} {"role":"b"}`, "", true},
		{"unknown fields ignored", `{"role":"temporary","host":"x"}`, "temporary", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			var p payload
			err := httpjson.Decode(rec, req, &p)
			if tt.wantErr {
				if !apperr.IsKind(err, apperr.KindValidation) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if p.Role != tt.want {
				t.Errorf("Role = %q, want %q", p.Role, tt.want)
			}
		})
	}
}
