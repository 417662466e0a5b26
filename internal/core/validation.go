package core

// validation.go checks user input before it reaches a collection.
//
// Validation happens at two levels:
//  1. Header validation: Ensures required columns are present in an import
//  2. Row validation: Checks each cell against its FieldSpec (type, format, enum values)
//
// Form input (AddPerson and friends) uses the same ValidationError type so
// the web layer maps every validation failure the same way.

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/JonMunkholm/dashboard/internal/view"
)

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string // Field/column name
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationErrors collects every problem found in one input.
type ValidationErrors []ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Err returns es as an error, or nil when empty.
func (es ValidationErrors) Err() error {
	if len(es) == 0 {
		return nil
	}
	return es
}

// IsValidationError reports whether err is or wraps a validation failure.
func IsValidationError(err error) bool {
	var one ValidationError
	var many ValidationErrors
	return errors.As(err, &one) || errors.As(err, &many)
}

// ValidationResult contains the result of validating a row.
type ValidationResult struct {
	Valid  bool              // True if all validations passed
	Errors []ValidationError // List of validation errors (empty if Valid)
}

// Reason joins the errors for display next to a failed row.
func (r ValidationResult) Reason() string {
	return ValidationErrors(r.Errors).Error()
}

// RowValidator validates CSV rows against field specifications.
type RowValidator struct {
	specs     []FieldSpec
	headerIdx HeaderIndex
}

// NewRowValidator creates a validator for the given specs and header index.
func NewRowValidator(specs []FieldSpec, headerIdx HeaderIndex) *RowValidator {
	return &RowValidator{
		specs:     specs,
		headerIdx: headerIdx,
	}
}

// Cell returns the cleaned, normalized value of a spec's column in row.
func (v *RowValidator) Cell(row []string, spec FieldSpec) string {
	pos, ok := v.headerIdx[strings.ToLower(spec.Name)]
	if !ok || pos >= len(row) {
		return ""
	}
	raw := CleanCell(row[pos])
	if spec.Normalizer != nil && raw != "" {
		raw = spec.Normalizer(raw)
	}
	return raw
}

// ValidateRow validates a single CSV row and returns all validation errors.
func (v *RowValidator) ValidateRow(row []string) ValidationResult {
	result := ValidationResult{Valid: true}

	for _, spec := range v.specs {
		if _, ok := v.headerIdx[strings.ToLower(spec.Name)]; !ok {
			if spec.Required {
				result.Valid = false
				result.Errors = append(result.Errors, ValidationError{
					Field:   spec.Name,
					Message: "missing required column",
				})
			}
			continue
		}

		raw := v.Cell(row, spec)
		if raw == "" {
			if spec.Required {
				result.Valid = false
				result.Errors = append(result.Errors, ValidationError{
					Field:   spec.Name,
					Message: "required field is empty",
				})
			}
			continue
		}

		if err := ValidateCell(raw, spec); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   spec.Name,
				Value:   raw,
				Message: err.Error(),
			})
		}
	}

	return result
}

// ValidateCell validates a single cell value against a field specification.
// Returns nil if valid, or an error describing the problem.
func ValidateCell(value string, spec FieldSpec) error {
	if value == "" {
		return nil
	}

	switch spec.Type {
	case FieldNumeric:
		if _, ok := ParseNumber(value); !ok {
			return fmt.Errorf("invalid number %q", value)
		}
	case FieldDate:
		if _, ok := view.ParseDate(value); !ok {
			return fmt.Errorf("invalid date %q (use YYYY-MM-DD or similar)", value)
		}
	case FieldEnum:
		if len(spec.EnumValues) > 0 && !containsFold(spec.EnumValues, value) {
			return fmt.Errorf("invalid enum value %q: must be one of %s", value, strings.Join(spec.EnumValues, ", "))
		}
	}
	return nil
}

// ValidateHeaders validates that all required columns exist in the CSV headers.
// Returns a mapping from column name to index, or an error listing missing columns.
func ValidateHeaders(headers []string, specs []FieldSpec) (HeaderIndex, error) {
	idx := MakeHeaderIndex(headers)
	var missing []string

	for _, spec := range specs {
		if spec.Required {
			if _, ok := idx[strings.ToLower(spec.Name)]; !ok {
				missing = append(missing, spec.Name)
			}
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	return idx, nil
}

func containsFold(values []string, v string) bool {
	return slices.ContainsFunc(values, func(s string) bool { return strings.EqualFold(s, v) })
}

// canonical returns the allowed spelling of v, matched case-insensitively.
func canonical(values []string, v string) (string, bool) {
	for _, s := range values {
		if strings.EqualFold(s, v) {
			return s, true
		}
	}
	return "", false
}
