// Package inputval validates decoded request payloads with
// go-playground/validator and turns failures into field-level messages.
//
// Struct tags:
//   - validate: validator rules, plus the custom rules registered below
//   - label:    human field name used in messages (defaults to the Go name)
//   - msg:      full message override for any failure on that field
//
// The json tag names the field in FieldError.Field so clients can match
// errors to their form inputs.
package inputval

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/collabhub/internal/app/system/apperr"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FieldError is one failed field.
type FieldError = apperr.FieldError

// Result collects validation failures in struct field order.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any field failed.
func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "".
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Err returns the result as an apperr validation error, or nil.
func (r *Result) Err() error {
	if !r.HasErrors() {
		return nil
	}
	return apperr.Validation("", r.Errors...)
}

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
			return IsValidObjectID(fl.Field().String())
		})
		_ = v.RegisterValidation("iso8601", func(fl validator.FieldLevel) bool {
			_, err := ParseISO8601(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("activitytype", func(fl validator.FieldLevel) bool {
			return models.IsValidActivityType(fl.Field().String())
		})
		_ = v.RegisterValidation("membershiprole", func(fl validator.FieldLevel) bool {
			return models.IsValidMembershipRole(fl.Field().String())
		})
		_ = v.RegisterValidation("taskstatus", func(fl validator.FieldLevel) bool {
			return models.IsValidTaskStatus(fl.Field().String())
		})
		_ = v.RegisterValidation("taskpriority", func(fl validator.FieldLevel) bool {
			return models.IsValidTaskPriority(fl.Field().String())
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return v
}

// Validate runs the validate tags on s (a struct or pointer to struct).
func Validate(s any) *Result {
	res := &Result{}
	err := instance().Struct(s)
	if err == nil {
		return res
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.Errors = append(res.Errors, FieldError{Message: err.Error()})
		return res
	}

	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for _, fe := range errs {
		label, override := fe.StructField(), ""
		if sf, found := t.FieldByName(fe.StructField()); found {
			if l := sf.Tag.Get("label"); l != "" {
				label = l
			}
			override = sf.Tag.Get("msg")
		}
		msg := override
		if msg == "" {
			msg = message(fe, label)
		}
		res.Errors = append(res.Errors, FieldError{Field: fe.Field(), Message: msg})
	}
	return res
}

func message(fe validator.FieldError, label string) string {
	switch fe.Tag() {
	case "required", "notblank":
		return label + " is required."
	case "email":
		return "A valid email address is required."
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
	case "objectid":
		return label + " must be a valid id."
	case "iso8601":
		return "Valid " + strings.ToLower(label) + " is required."
	case "activitytype":
		return "Invalid activity type"
	case "membershiprole":
		return "Invalid role"
	case "taskstatus":
		return "Invalid task status"
	case "taskpriority":
		return "Invalid task priority"
	case "alphanum":
		return label + " may only contain letters and numbers."
	default:
		return label + " is invalid."
	}
}

// IsValidObjectID reports whether s (trimmed) is a 24-char hex ObjectID.
func IsValidObjectID(s string) bool {
	_, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	return err == nil
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseISO8601 parses the ISO-8601 date and date-time forms browsers send.
// Values without a zone are taken as UTC.
func ParseISO8601(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("not an ISO-8601 date: %q", s)
}
