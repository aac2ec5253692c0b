package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeNoteNotFound  = "NOTE001"
	ErrCodeBlendNotFound = "NOTE002"
	ErrCodeEmptyUpdate   = "NOTE003"
	ErrCodeBadSelection  = "NOTE004"
)

// Sentinel errors returned by the repository layer. An ownership
// mismatch and a missing row are both ErrNoteNotFound; callers cannot
// tell them apart.
var (
	ErrNoteNotFound = errors.New("tasting note not found")
)

// NoteError carries a machine code for the handler's status mapping.
type NoteError struct {
	Code    string
	Message string
	Err     error
}

func (e *NoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *NoteError) Unwrap() error {
	return e.Err
}

func NewNoteNotFoundError() *NoteError {
	return &NoteError{
		Code:    ErrCodeNoteNotFound,
		Message: "Tasting note not found",
		Err:     ErrNoteNotFound,
	}
}

func NewBlendNotFoundError() *NoteError {
	return &NoteError{
		Code:    ErrCodeBlendNotFound,
		Message: "Blend not found",
	}
}

func NewEmptyUpdateError() *NoteError {
	return &NoteError{
		Code:    ErrCodeEmptyUpdate,
		Message: "Update request must contain at least one field",
	}
}

func NewBadSelectionError(message string) *NoteError {
	return &NoteError{
		Code:    ErrCodeBadSelection,
		Message: message,
	}
}
