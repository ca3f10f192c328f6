package model

import "errors"

var (
	ErrDeviceNotFound     = errors.New("device not found")
	ErrInvalidDeviceID    = errors.New("invalid device ID")
	ErrInvalidDeviceType  = errors.New("invalid device type")
	ErrInvalidStatus      = errors.New("invalid device status")
	ErrInvalidDate        = errors.New("invalid date")
	ErrSelfPairing        = errors.New("device cannot be paired with itself")
	ErrTooManyPairings    = errors.New("too many paired devices")
	ErrDuplicateDevice    = errors.New("device already exists")
	ErrDatabaseConnection = errors.New("database connection error")
	ErrDatabaseQuery      = errors.New("database query error")
	ErrPhotoNotFound      = errors.New("photo not found")
	ErrInvalidPhoto       = errors.New("invalid photo")
	ErrPhotoTooLarge      = errors.New("photo too large")
	ErrStorageUnavailable = errors.New("photo storage unavailable")
)

const (
	ValidationCodeRequired = "required"
	ValidationCodeInvalid  = "invalid"
	ValidationCodeMin      = "min"
	ValidationCodeMax      = "max"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError
}

func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}

	return v.Errors[0].Message
}

func (v *ValidationErrors) Add(field, message, code string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
		Code:    code,
	})
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// Fields returns the names of the offending fields in the order they were reported.
func (v *ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v.Errors))
	for _, e := range v.Errors {
		fields = append(fields, e.Field)
	}

	return fields
}

// OrNil lets callers return the collector directly as an error.
func (v *ValidationErrors) OrNil() error {
	if !v.HasErrors() {
		return nil
	}

	return v
}

func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Errors: make([]ValidationError, 0),
	}
}
