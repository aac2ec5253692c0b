package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeInvalidCredentials = "USR001"
	ErrCodeDuplicateEmail     = "USR002"
	ErrCodeInvalidResetToken  = "USR003"
	ErrCodeUserNotFound       = "USR004"
)

// Sentinel errors returned by the repository layer.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserError carries a machine code for the handler's status mapping.
type UserError struct {
	Code    string
	Message string
	Err     error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewInvalidCredentialsError covers every login failure. An unknown
// email and a wrong password produce the same error, so callers cannot
// probe which emails are registered.
func NewInvalidCredentialsError() *UserError {
	return &UserError{
		Code:    ErrCodeInvalidCredentials,
		Message: "Invalid email or password",
	}
}

func NewDuplicateEmailError() *UserError {
	return &UserError{
		Code:    ErrCodeDuplicateEmail,
		Message: "An account with this email already exists",
		Err:     ErrDuplicateEmail,
	}
}

func NewInvalidResetTokenError() *UserError {
	return &UserError{
		Code:    ErrCodeInvalidResetToken,
		Message: "Reset token is invalid or has expired",
	}
}

func NewUserNotFoundError() *UserError {
	return &UserError{
		Code:    ErrCodeUserNotFound,
		Message: "User not found",
		Err:     ErrUserNotFound,
	}
}
