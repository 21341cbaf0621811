package schemagen

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for schema generation failures. All are immediate,
// non-retryable configuration or programmer errors: a document that cannot be
// fully computed is never returned.
const (
	ErrCodeInvalidModel            = "INVALID_MODEL"
	ErrCodeMissingConfig           = "MISSING_CONFIG"
	ErrCodeUnknownAttribute        = "UNKNOWN_ATTRIBUTE"
	ErrCodeUnknownType             = "UNKNOWN_TYPE"
	ErrCodeCyclicInlineAssociation = "CYCLIC_INLINE_ASSOCIATION"
)

// SchemaError represents a structured schema-generation error with context.
type SchemaError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Model   string `json:"model,omitempty"`
	Field   string `json:"field,omitempty"`
	Cause   error  `json:"-"`
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	switch {
	case e.Model != "" && e.Field != "":
		return fmt.Sprintf("[%s] model '%s', field '%s': %s", e.Code, e.Model, e.Field, e.Message)
	case e.Model != "":
		return fmt.Sprintf("[%s] model '%s': %s", e.Code, e.Model, e.Message)
	case e.Field != "":
		return fmt.Sprintf("[%s] field '%s': %s", e.Code, e.Field, e.Message)
	default:
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
}

// Unwrap returns the underlying cause error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// WithModel adds model context to the error.
func (e *SchemaError) WithModel(model string) *SchemaError {
	e.Model = model
	return e
}

// WithField adds field context to the error.
func (e *SchemaError) WithField(field string) *SchemaError {
	e.Field = field
	return e
}

// WithCause adds an underlying cause to the error.
func (e *SchemaError) WithCause(cause error) *SchemaError {
	e.Cause = cause
	return e
}

// NewInvalidModelError reports a value that is not a recognizable model.
func NewInvalidModelError(message string) *SchemaError {
	return &SchemaError{Code: ErrCodeInvalidModel, Message: message}
}

// NewMissingConfigError reports absent or mistyped required configuration.
func NewMissingConfigError(field, message string) *SchemaError {
	return &SchemaError{Code: ErrCodeMissingConfig, Message: message, Field: field}
}

// NewUnknownAttributeError reports a selected attribute the model does not have.
func NewUnknownAttributeError(model, attribute string) *SchemaError {
	return &SchemaError{
		Code:    ErrCodeUnknownAttribute,
		Message: "attribute not present on model",
		Model:   model,
		Field:   attribute,
	}
}

// NewUnknownTypeError reports a native type with no schema-type table entry.
func NewUnknownTypeError(nativeType string) *SchemaError {
	return &SchemaError{
		Code:    ErrCodeUnknownType,
		Message: fmt.Sprintf("no JSON-Schema type mapping for native type %q", nativeType),
	}
}

// NewCyclicInlineAssociationError reports an inline-embedding configuration
// that revisits a model already on the embedding chain.
func NewCyclicInlineAssociationError(path []string) *SchemaError {
	return &SchemaError{
		Code:    ErrCodeCyclicInlineAssociation,
		Message: "inline association cycle: " + strings.Join(path, " -> "),
	}
}

// hasCode checks whether err is a SchemaError carrying the given code.
func hasCode(err error, code string) bool {
	var se *SchemaError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// IsInvalidModelError checks if an error is an invalid-model error.
func IsInvalidModelError(err error) bool { return hasCode(err, ErrCodeInvalidModel) }

// IsMissingConfigError checks if an error is a missing-configuration error.
func IsMissingConfigError(err error) bool { return hasCode(err, ErrCodeMissingConfig) }

// IsUnknownAttributeError checks if an error is an unknown-attribute error.
func IsUnknownAttributeError(err error) bool { return hasCode(err, ErrCodeUnknownAttribute) }

// IsUnknownTypeError checks if an error is an unknown-type error.
func IsUnknownTypeError(err error) bool { return hasCode(err, ErrCodeUnknownType) }

// IsCyclicInlineAssociationError checks if an error is an inline-cycle error.
func IsCyclicInlineAssociationError(err error) bool {
	return hasCode(err, ErrCodeCyclicInlineAssociation)
}

// ============================================================================
// VerificationErrors
// ============================================================================

// VerificationError describes one gap found while verifying a generated
// document against its model.
type VerificationError struct {
	Property string `json:"property"`
	Field    string `json:"field,omitempty"`
	Message  string `json:"message"`
}

// Error implements the error interface.
func (e *VerificationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("property '%s': field '%s' %s", e.Property, e.Field, e.Message)
	}
	return fmt.Sprintf("property '%s': %s", e.Property, e.Message)
}

// VerificationErrors collects every gap found during one verification pass so
// callers get all actionable feedback at once instead of the first failure.
type VerificationErrors struct {
	Errors []*VerificationError `json:"errors"`
}

// Error implements the error interface for VerificationErrors.
func (ve *VerificationErrors) Error() string {
	switch len(ve.Errors) {
	case 0:
		return "no verification errors"
	case 1:
		return ve.Errors[0].Error()
	default:
		parts := make([]string, 0, len(ve.Errors))
		for _, err := range ve.Errors {
			parts = append(parts, err.Error())
		}
		return fmt.Sprintf("%d verification errors: %s", len(ve.Errors), strings.Join(parts, "; "))
	}
}

// Add appends a gap to the collection.
func (ve *VerificationErrors) Add(property, field, message string) {
	ve.Errors = append(ve.Errors, &VerificationError{Property: property, Field: field, Message: message})
}

// HasErrors returns true if any gap was recorded.
func (ve *VerificationErrors) HasErrors() bool {
	return len(ve.Errors) > 0
}

// ToError returns the collection as an error when non-empty, nil otherwise.
func (ve *VerificationErrors) ToError() error {
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// NewVerificationErrors creates an empty VerificationErrors collection.
func NewVerificationErrors() *VerificationErrors {
	return &VerificationErrors{Errors: make([]*VerificationError, 0)}
}
