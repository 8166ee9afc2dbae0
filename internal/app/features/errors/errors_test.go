package errors_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apierrors "github.com/dalemusser/collabhub/internal/app/features/errors"
	"github.com/dalemusser/collabhub/internal/app/system/apperr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type body struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Errors  []apperr.FieldError `json:"errors"`
}

func TestWrite_ServerErrorHidesCause(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	el := apierrors.NewErrorLogger(zap.New(core))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/activities", nil)
	el.Write(rec, req, "list activities failed", fmt.Errorf("mongo: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Error("cause must not be surfaced to the client")
	}
	var b body
	if err := json.Unmarshal(rec.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b.Message != apperr.GenericMessage {
		t.Errorf("message: got %q", b.Message)
	}

	entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 error log, got %d", len(entries))
	}
	if entries[0].ContextMap()["path"] != "/activities" {
		t.Errorf("log fields: %v", entries[0].ContextMap())
	}
}

func TestWrite_ClientErrorPassesThrough(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	el := apierrors.NewErrorLogger(zap.New(core))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/activities", nil)
	el.Write(rec, req, "create activity", apperr.Validation("", apperr.FieldError{Field: "title", Message: "Title is required"}))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
	var b body
	if err := json.Unmarshal(rec.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b.Error != "validation_error" || len(b.Errors) != 1 || b.Errors[0].Field != "title" {
		t.Errorf("unexpected body: %+v", b)
	}
	if logs.FilterLevelExact(zapcore.ErrorLevel).Len() != 0 {
		t.Error("client errors must not log at error level")
	}
}

func TestFallbackHandlers(t *testing.T) {
	el := apierrors.NewErrorLogger(zap.NewNop())

	rec := httptest.NewRecorder()
	el.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("NotFound status: got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	el.MethodNotAllowed(rec, httptest.NewRequest(http.MethodPatch, "/tasks", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("MethodNotAllowed status: got %d", rec.Code)
	}
}
