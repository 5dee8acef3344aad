// Package inputval validates client input for the content API using
// waffle/pantry/validate.
//
// Define an input struct with validate tags, populate it from the JSON body or
// multipart form values, and call Validate to get field-level error messages.
// Rules that cannot be expressed as tags (the points array, which may arrive
// as a JSON-encoded string inside a multipart text field) have dedicated
// functions below.
//
// Example:
//
//	type createInput struct {
//	    Title       string `validate:"required,max=200" label:"Title" json:"title"`
//	    Description string `validate:"required" label:"Description" json:"description"`
//	}
//
//	if res := inputval.Validate(in); res.HasErrors() {
//	    jsonutil.ValidationFail(w, res.First(), res.Errors)
//	    return
//	}
package inputval

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/dalemusser/waffle/pantry/validate"
)

// Result holds validation results with user-facing messages.
type Result struct {
	Errors []FieldError
}

// FieldError is a validation error for a single field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// HasErrors reports whether any validation errors were recorded.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// First returns the first error message, or "" if there are none.
func (r *Result) First() string {
	if len(r.Errors) > 0 {
		return r.Errors[0].Message
	}
	return ""
}

// Add appends a field error.
func (r *Result) Add(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

var (
	// Intentionally lenient: local@domain.tld with no embedded whitespace.
	// Full RFC validation is not attempted.
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// Contact phone accepts separators; between 10 and 15 of the allowed
	// characters overall.
	contactPhoneRe = regexp.MustCompile(`^[0-9+\-\s()]{10,15}$`)

	digitsRe = regexp.MustCompile(`[0-9]`)
)

// IsEmail reports whether s looks like local@domain.tld.
func IsEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// IsContactPhone applies the contact-form phone policy: the raw string must
// match the allowed character set and length, and it must contain at least
// ten digits once separators are ignored.
func IsContactPhone(s string) bool {
	s = strings.TrimSpace(s)
	if !contactPhoneRe.MatchString(s) {
		return false
	}
	return len(digitsRe.FindAllString(s, -1)) >= 10
}

// DigitsOnly strips everything except digits from s.
func DigitsOnly(s string) string {
	return strings.Join(digitsRe.FindAllString(s, -1), "")
}

// IsEnrollPhone applies the enrollment-form phone policy: exactly ten digits
// after stripping separators.
//
// Contact and enroll deliberately use different phone policies; do not unify
// them without changing what existing callers accept.
func IsEnrollPhone(s string) bool {
	return len(DigitsOnly(s)) == 10
}

// MinPoints is the minimum number of non-empty points a service or career
// listing must carry, counted after trimming and dropping empties.
const MinPoints = 4

// ErrPointsNotJSON is reported when a string points value fails to parse as a
// JSON array. It is distinct from the field being missing.
var ErrPointsNotJSON = fmt.Errorf("points must be a JSON array of strings")

// ParsePoints normalizes a points value that arrived either as a structured
// array (JSON body) or as a JSON-encoded string (multipart text field).
// Elements are trimmed and empty entries dropped; the minimum count is the
// caller's check, applied to the filtered result.
func ParsePoints(raw any) ([]string, error) {
	var elems []string
	switch v := raw.(type) {
	case nil:
		return nil, fmt.Errorf("points is required")
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, fmt.Errorf("points is required")
		}
		if err := json.Unmarshal([]byte(v), &elems); err != nil {
			return nil, ErrPointsNotJSON
		}
	case []string:
		elems = v
	case []any:
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, ErrPointsNotJSON
			}
			elems = append(elems, s)
		}
	default:
		return nil, fmt.Errorf("points must be an array or a JSON-encoded string")
	}

	out := make([]string, 0, len(elems))
	for _, e := range elems {
		e = strings.TrimSpace(e)
		if e != "" {
			out = append(out, e)
		}
	}
	return out, nil
}

// customValidator is a singleton validator with the content API's rules.
var (
	customValidator *validate.Validator
	validatorOnce   sync.Once
)

func getValidator() *validate.Validator {
	validatorOnce.Do(func() {
		customValidator = validate.New(validate.WithStopOnFirstError())

		// lenientemail: the deliberately loose local@domain.tld check used
		// for lead forms.
		customValidator.RegisterRuleFunc("lenientemail", func(value any) bool {
			if s, ok := value.(string); ok {
				return IsEmail(s)
			}
			return false
		}, "lenientemail")

		// contactphone / enrollphone: the two distinct phone policies.
		customValidator.RegisterRuleFunc("contactphone", func(value any) bool {
			if s, ok := value.(string); ok {
				return IsContactPhone(s)
			}
			return false
		}, "contactphone")
		customValidator.RegisterRuleFunc("enrollphone", func(value any) bool {
			if s, ok := value.(string); ok {
				return IsEnrollPhone(s)
			}
			return false
		}, "enrollphone")
	})
	return customValidator
}

// Validate validates a struct tagged with `validate` rules and optional
// `label` tags, returning field-level messages keyed by the json field name.
//
// Supported rules: required, min=N, max=N, email from pantry/validate, plus
// the registered lenientemail, contactphone, and enrollphone rules.
func Validate(s any) *Result {
	result := &Result{}

	v := getValidator()
	err := v.Struct(s)
	if err == nil {
		return result
	}

	labels := getFieldLabels(s)

	if errs, ok := err.(validate.Errors); ok {
		for _, e := range errs {
			label := labels[e.Field]
			if label == "" {
				label = e.Field
			}
			result.Errors = append(result.Errors, FieldError{
				Field:   e.Field,
				Message: formatMessage(label, e.Rule, e.Param),
			})
		}
	}

	return result
}

// getFieldLabels extracts the "label" tag from struct fields, keyed by the
// json field name when present.
func getFieldLabels(s any) map[string]string {
	labels := make(map[string]string)

	val := reflect.ValueOf(s)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return labels
	}

	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		fieldName := field.Name
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] != "" && parts[0] != "-" {
				fieldName = parts[0]
			}
		}

		if label := field.Tag.Get("label"); label != "" {
			labels[fieldName] = label
		}
	}

	return labels
}

// formatMessage creates a user-facing message for a validation rule.
func formatMessage(label, rule, param string) string {
	switch rule {
	case "required":
		return label + " is required."
	case "min":
		return label + " must be at least " + param + " characters."
	case "max":
		return label + " must be at most " + param + " characters."
	case "email", "lenientemail":
		return "A valid email address is required."
	case "contactphone":
		return label + " must be a valid phone number with at least 10 digits."
	case "enrollphone":
		return label + " must contain exactly 10 digits."
	default:
		return label + " is invalid."
	}
}
