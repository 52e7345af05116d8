// Package apperrors defines the business error kinds surfaced by the core
// operations. Persistence failures are not wrapped into these kinds; they are
// propagated as-is after rollback.
package apperrors

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindInvalidOperation
)

type AppError struct {
	Kind    Kind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewNotFound(format string, args ...any) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewInvalidOperation(format string, args ...any) *AppError {
	return &AppError{Kind: KindInvalidOperation, Message: fmt.Sprintf(format, args...)}
}

func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == KindNotFound
}

func IsInvalidOperation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == KindInvalidOperation
}
