package core

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var ErrNoFieldsToUpdate = NewValidationError(errors.New("no fields to update"))

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError reports missing or invalid input: required fields, enum values,
// unresolvable references, empty updates.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	msgs := make([]string, 0, len(err.Fields))
	for _, fld := range err.Fields {
		msgs = append(msgs, fld.Field+": "+fld.Error)
	}
	return strings.Join(msgs, "; ")
}

// NotFoundError reports an operation targeting an id with no matching row.
type NotFoundError struct {
	Entity Entity
	ID     int
}

func NewNotFoundError(entity Entity, id int) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func (err NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", err.Entity)
}

// ConstraintError reports a uniqueness or integrity violation.
type ConstraintError struct {
	Msg string
	Err error // engine error, if any
}

func NewConstraintError(msg string, err error) error {
	return &ConstraintError{Msg: msg, Err: err}
}

func (err ConstraintError) Error() string {
	return err.Msg
}

func (err ConstraintError) Unwrap() error {
	return err.Err
}

func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsConstraintError(err error) bool {
	var target *ConstraintError
	return errors.As(err, &target)
}
