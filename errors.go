package main

import (
	"errors"
	"fmt"
)

// ValidationError reports an input that is not part of the allowed enumeration
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// DomainError reports an arithmetic input outside the transform's domain
type DomainError struct {
	Value   float64
	Message string
}

func (e DomainError) Error() string {
	return fmt.Sprintf("%s (got %.1f)", e.Message, e.Value)
}

// AsValidationError unwraps err into a ValidationError if it carries one
func AsValidationError(err error) (ValidationError, bool) {
	var ve ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return ValidationError{}, false
}

// ValidationErrors collects several field failures from one profile
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	return fmt.Sprintf("%s (and %d more)", e[0].Error(), len(e)-1)
}

// As lets errors.As find the first ValidationError in the set
func (e ValidationErrors) As(target any) bool {
	if len(e) == 0 {
		return false
	}
	if ve, ok := target.(*ValidationError); ok {
		*ve = e[0]
		return true
	}
	return false
}
