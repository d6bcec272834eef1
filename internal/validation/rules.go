// Package validation provides custom validation rules for the application.
package validation

import (
	"encoding/base64"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/secureshare/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// Reference validates that a string is an object reference this store could
// have issued (a canonical UUID string). This also rules out path traversal
// attempts and the alternate encodings uuid.Parse would otherwise accept.
var Reference = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_reference_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	parsed, err := uuid.Parse(s)
	if err != nil || parsed.String() != s {
		return validation.NewError("validation_reference", "must be a valid object reference")
	}
	return nil
})

// OwnerID validates that an owner identifier is a positive integer.
var OwnerID = validation.By(func(value interface{}) error {
	id, ok := value.(int64)
	if !ok {
		return validation.NewError("validation_owner_id_type", "must be an int64")
	}
	if id <= 0 {
		return validation.NewError("validation_owner_id", "must be positive")
	}
	return nil
})

// Base64 validates that a string is valid base64-encoded data.
var Base64 = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_base64_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	_, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return validation.NewError("validation_base64", "must be valid base64-encoded data")
	}
	return nil
})
