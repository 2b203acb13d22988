package usecase

import (
	"errors"
	"fmt"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msg := "validation failed: "
	for i, v := range e {
		if i > 0 {
			msg += ", "
		}
		msg += v.Field + " (" + v.Message + ")"
	}
	return msg
}

func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}

type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return "lead not found: " + e.ID
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
