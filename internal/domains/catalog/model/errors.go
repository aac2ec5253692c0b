package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeBrandNotFound  = "CAT001"
	ErrCodeRegionNotFound = "CAT002"
	ErrCodeBlendNotFound  = "CAT003"
	ErrCodeDuplicateBlend = "CAT004"
)

// Sentinel errors returned by the repository layer.
var (
	ErrBrandNotFound  = errors.New("brand not found")
	ErrRegionNotFound = errors.New("region not found")
	ErrBlendNotFound  = errors.New("blend not found")
	ErrDuplicateBlend = errors.New("blend already exists for this brand and region")
)

// CatalogError carries a machine code for the handler's status mapping.
type CatalogError struct {
	Code    string
	Message string
	Err     error
}

func (e *CatalogError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

func NewBrandNotFoundError() *CatalogError {
	return &CatalogError{
		Code:    ErrCodeBrandNotFound,
		Message: "Brand not found",
		Err:     ErrBrandNotFound,
	}
}

func NewRegionNotFoundError() *CatalogError {
	return &CatalogError{
		Code:    ErrCodeRegionNotFound,
		Message: "Region not found",
		Err:     ErrRegionNotFound,
	}
}

func NewBlendNotFoundError() *CatalogError {
	return &CatalogError{
		Code:    ErrCodeBlendNotFound,
		Message: "Blend not found",
		Err:     ErrBlendNotFound,
	}
}

func NewDuplicateBlendError() *CatalogError {
	return &CatalogError{
		Code:    ErrCodeDuplicateBlend,
		Message: "A blend with this name already exists for this brand and region",
		Err:     ErrDuplicateBlend,
	}
}
