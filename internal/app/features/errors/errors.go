// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/collabhub/internal/app/system/apperr"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// ErrorLogger writes API errors as JSON and logs them with request context.
// Server errors are logged at error level with their cause; client errors
// at debug level.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

// Write translates err with apperr.As and writes it. op names the failed
// operation in the log entry.
func (e *ErrorLogger) Write(w http.ResponseWriter, r *http.Request, op string, err error) {
	ae := apperr.As(err)
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Int("status", ae.Status()),
	}
	if ae.Kind == apperr.KindInternal {
		e.Log.Error(op, append(fields, zap.Error(ae.Err))...)
	} else {
		e.Log.Debug(op, append(fields, zap.String("kind", string(ae.Kind)), zap.String("message", ae.Message))...)
	}
	_ = httpjson.WriteError(w, ae)
}

// LogServerError logs err as an infrastructure fault and writes a generic 500.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, op string, err error) {
	e.Write(w, r, op, apperr.Internal(err))
}

// NotFound is the router's fallback for unknown routes.
func (e *ErrorLogger) NotFound(w http.ResponseWriter, r *http.Request) {
	_ = httpjson.WriteError(w, apperr.NotFound("Route not found"))
}

// MethodNotAllowed is the router's fallback for known paths with the wrong method.
func (e *ErrorLogger) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	_ = httpjson.WriteJSON(w, http.StatusMethodNotAllowed, httpjson.ErrorBody{
		Error:   "method_not_allowed",
		Message: "Method not allowed",
	})
}
