// Package validation wraps go-playground/validator with a shared instance and
// readable error messages. Configuration and form definition documents are
// checked with it before use.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single failed constraint.
type FieldError struct {
	Path    string
	Tag     string
	Param   string
	Message string
}

func (e FieldError) Error() string {
	return e.Message
}

// Error collects every failed constraint of a struct.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		messages = append(messages, field.Message)
	}
	return strings.Join(messages, "; ")
}

// GetValidator returns the shared validator. Field names in errors follow the
// yaml tag, then the json tag, then the Go name, so messages point at the key
// a user actually wrote.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"yaml", "json", "koanf"} {
				name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return "-"
				}
				if name != "" {
					return name
				}
			}
			return field.Name
		})
	})
	return validate
}

// Struct validates s and returns nil or an *Error.
func Struct(s any) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("validation: %w", err)
	}

	out := &Error{Fields: make([]FieldError, 0, len(validationErrs))}
	for _, fe := range validationErrs {
		path := trimRoot(fe.Namespace())
		out.Fields = append(out.Fields, FieldError{
			Path:    path,
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: translate(fe, path),
		})
	}
	return out
}

var messageTemplates = map[string]string{
	"required":    "%s is required",
	"required_if": "%s is required",
	"url":         "%s must be a valid URL",
	"http_url":    "%s must be a valid http(s) URL",
	"email":       "%s must be a valid email address",
}

var messageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
}

func translate(fe validator.FieldError, path string) string {
	if template, ok := messageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(template, path)
	}
	if template, ok := messageWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(template, path, fe.Param())
	}

	isLen := fe.Kind() == reflect.String || fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map
	switch fe.Tag() {
	case "min":
		if isLen {
			return fmt.Sprintf("%s must contain at least %s entries", path, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", path, fe.Param())
	case "max":
		if isLen {
			return fmt.Sprintf("%s must contain at most %s entries", path, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", path, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", path, fe.Tag())
	}
}

// trimRoot drops the top-level struct name from a namespace.
func trimRoot(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}
