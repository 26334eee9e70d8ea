// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

// ErrEmailNotFound is returned when no email record has the requested ID.
type ErrEmailNotFound struct {
	EmailID int64
}

func (e *ErrEmailNotFound) Error() string {
	return fmt.Sprintf("email with ID %d not found", e.EmailID)
}

// Helper constructor
func NewEmailNotFound(id int64) error {
	return &ErrEmailNotFound{EmailID: id}
}

// ErrTemplateNotFound is returned when a named template resource does not exist.
type ErrTemplateNotFound struct {
	Name string
}

func (e *ErrTemplateNotFound) Error() string {
	return fmt.Sprintf("template %q not found", e.Name)
}

func NewTemplateNotFound(name string) error {
	return &ErrTemplateNotFound{Name: name}
}

// ErrValidation reports a malformed inbound payload or query.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidation(field, message string) error {
	return &ErrValidation{Field: field, Message: message}
}

func IsEmailNotFound(err error) bool {
	var target *ErrEmailNotFound
	return errors.As(err, &target)
}

func IsTemplateNotFound(err error) bool {
	var target *ErrTemplateNotFound
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target *ErrValidation
	return errors.As(err, &target)
}
