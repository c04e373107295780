package failure

import (
	"errors"
	"net/http"
)

// Failure is a user facing, recoverable error carrying the HTTP status it maps to.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var (
	NotLoggedIn        = &Failure{Code: http.StatusUnauthorized, Message: "please login first to book packages"}
	MissingFields      = &Failure{Code: http.StatusBadRequest, Message: "please fill all required fields"}
	InvalidPhone       = &Failure{Code: http.StatusBadRequest, Message: "please enter a valid 10-digit phone number"}
	InvalidCredentials = &Failure{Code: http.StatusBadRequest, Message: "invalid email or password"}
	EmailTaken         = &Failure{Code: http.StatusConflict, Message: "an account with this email already exists, please login"}
	TravelDateInPast   = &Failure{Code: http.StatusBadRequest, Message: "travel date cannot be in the past"}
	NegativePrice      = &Failure{Code: http.StatusBadRequest, Message: "price must be 0 or greater"}
)

// Error returns the failure message.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(msg string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: msg,
	}
}

// GetCode returns the HTTP status of err, 500 for anything that is not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
