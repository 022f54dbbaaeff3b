package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Issue codes reported in ValidationIssue.Code.
const (
	IssueInvalidType      = "invalid_type"
	IssueTooSmall         = "too_small"
	IssueInvalidEnumValue = "invalid_enum_value"
	IssueCustom           = "custom"
)

// MessageRequired is the issue message for a missing field.
const MessageRequired = "Required"

// ValidationIssue describes a single field-level validation failure.
type ValidationIssue struct {
	Code    string   `json:"code"`
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

// ValidationError carries every issue found in one payload.
// It unwraps to ErrValidation.
type ValidationError struct {
	Issues []ValidationIssue
}

// NewValidationError creates a ValidationError from the given issues.
func NewValidationError(issues ...ValidationIssue) *ValidationError {
	return &ValidationError{Issues: issues}
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		path := strings.Join(issue.Path, ".")
		if path == "" {
			path = "(root)"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", path, issue.Message))
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

// Unwrap returns ErrValidation so callers can use errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// CreateTaskInput is the payload accepted when creating a task.
// Fields are pointers so that an absent field can be told apart from an
// empty one.
type CreateTaskInput struct {
	Title       *string `json:"title"       validate:"present,min=1"`
	Description *string `json:"description"`
}

// Validate checks the payload against its declared rules.
func (in CreateTaskInput) Validate() error {
	return validateStruct(in)
}

// UpdateTaskStatusInput is the payload accepted when changing a task's status.
type UpdateTaskStatusInput struct {
	Status *string `json:"status" validate:"present,oneof=pending in-progress completed"`
}

// Validate checks the payload against its declared rules.
func (in UpdateTaskStatusInput) Validate() error {
	return validateStruct(in)
}

// TaskStatus returns the requested status. It must only be called after
// Validate succeeded.
func (in UpdateTaskStatusInput) TaskStatus() TaskStatus {
	if in.Status == nil {
		return ""
	}
	return TaskStatus(*in.Status)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so issue paths match the request body.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// present only rejects a missing value; unlike required it accepts "".
	if err := v.RegisterValidation("present", isPresent, true); err != nil {
		// ALLOW-PANIC: static registration, fails only on programmer error
		panic(fmt.Sprintf("register present validation: %v", err))
	}

	return v
}

func isPresent(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Invalid:
		return false
	case reflect.Ptr, reflect.Interface:
		return !field.IsNil()
	default:
		return true
	}
}

// validateStruct runs the struct validator and converts its output into a
// ValidationError.
func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	issues := make([]ValidationIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, issueFromFieldError(fe))
	}
	return NewValidationError(issues...)
}

func issueFromFieldError(fe validator.FieldError) ValidationIssue {
	path := fieldPath(fe.Namespace())

	switch fe.Tag() {
	case "present", "required":
		return ValidationIssue{Code: IssueInvalidType, Path: path, Message: MessageRequired}
	case "min":
		return ValidationIssue{
			Code:    IssueTooSmall,
			Path:    path,
			Message: fmt.Sprintf("String must contain at least %s character(s)", fe.Param()),
		}
	case "oneof":
		options := strings.Fields(fe.Param())
		for i, opt := range options {
			options[i] = "'" + opt + "'"
		}
		return ValidationIssue{
			Code:    IssueInvalidEnumValue,
			Path:    path,
			Message: fmt.Sprintf("Invalid enum value. Expected %s, received '%v'", strings.Join(options, " | "), fe.Value()),
		}
	default:
		return ValidationIssue{Code: IssueCustom, Path: path, Message: "Invalid value"}
	}
}

// fieldPath drops the top-level struct name from a validator namespace.
func fieldPath(namespace string) []string {
	parts := strings.Split(namespace, ".")
	if len(parts) <= 1 {
		return []string{}
	}
	return parts[1:]
}

// IssueFromDecodeError converts a JSON type mismatch into a ValidationError.
// It returns false for any other decode failure, such as malformed JSON.
func IssueFromDecodeError(err error) (*ValidationError, bool) {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return nil, false
	}

	path := []string{}
	if typeErr.Field != "" {
		path = strings.Split(typeErr.Field, ".")
	}

	expected := "object"
	if typeErr.Field != "" && typeErr.Type != nil {
		expected = jsonTypeName(typeErr.Type)
	}

	return NewValidationError(ValidationIssue{
		Code:    IssueInvalidType,
		Path:    path,
		Message: fmt.Sprintf("Expected %s, received %s", expected, typeErr.Value),
	}), true
}

func jsonTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	default:
		return t.String()
	}
}
