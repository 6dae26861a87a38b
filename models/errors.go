package models

import "errors"

// Các loại lỗi nghiệp vụ, controller dùng errors.Is để map sang HTTP status
var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrAccessRestricted = errors.New("access restricted")
	ErrConflict         = errors.New("conflict")
)

// DomainError gắn message hiển thị cho client với loại lỗi
type DomainError struct {
	Kind    error
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Kind
}

func NewValidationError(message string) error {
	return &DomainError{Kind: ErrValidation, Message: message}
}

func NewNotFoundError(message string) error {
	return &DomainError{Kind: ErrNotFound, Message: message}
}

func NewAccessRestrictedError(message string) error {
	return &DomainError{Kind: ErrAccessRestricted, Message: message}
}

func NewConflictError(message string) error {
	return &DomainError{Kind: ErrConflict, Message: message}
}
