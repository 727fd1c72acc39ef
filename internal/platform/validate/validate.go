// Copyright (c) 2026 Heroes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// Rules never stop the chain: every failing rule is recorded so the client
// receives the complete list of problems in one response.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/taibuivan/heroes/internal/platform/apperr"
)

var (
	// rules backs the format checks that go beyond length and presence.
	rules = validator.New()

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

	// ErrInvalidForm is returned when a form or multipart body cannot be parsed.
	ErrInvalidForm = apperr.ValidationError("Invalid form payload")
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the Unicode character count of the trimmed value exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(strings.TrimSpace(value)) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// MinLen fails if the Unicode character count of the trimmed value is below min.
//
// Blank values are left to [Validator.Required] so a missing field reports
// one message instead of two.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	trimmed := strings.TrimSpace(value)
	if trimmed != "" && utf8.RuneCountInString(trimmed) < min {
		v.add(field, fmt.Sprintf("Minimum %d characters", min))
	}
	return v
}

// URL fails if the value is not a syntactically valid URI.
func (v *Validator) URL(field, value string) *Validator {
	if err := rules.Var(value, "required,uri"); err != nil {
		v.add(field, "Must be a valid URI")
	}
	return v
}

// URLs applies [Validator.URL] to every element, naming failures "field[i]".
func (v *Validator) URLs(field string, values []string) *Validator {
	for i, value := range values {
		v.URL(fmt.Sprintf("%s[%d]", field, i), value)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// Call it once at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// RequiredError is a shortcut to create a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}
