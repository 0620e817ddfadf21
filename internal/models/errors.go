package models

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrUnknown ErrorType = iota
	ErrUsage
	ErrNotFound
	ErrCancelled
	ErrSourceSync
	ErrBuild
	ErrInstall
	ErrFileOp
	ErrInvalidConfig
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrUsage:
		return "Usage"
	case ErrNotFound:
		return "NotFound"
	case ErrCancelled:
		return "Cancelled"
	case ErrSourceSync:
		return "SourceSync"
	case ErrBuild:
		return "Build"
	case ErrInstall:
		return "Install"
	case ErrFileOp:
		return "FileOp"
	case ErrInvalidConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// Process exit codes, one per error class.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitUsage      = 2
	ExitNotFound   = 3
	ExitSourceSync = 4
	ExitBuild      = 5
)

// FynError represents an error raised while searching or installing
type FynError struct {
	Type    ErrorType
	Package string
	Err     error
}

// Error implements the error interface
func (e *FynError) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Package, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *FynError) Unwrap() error {
	return e.Err
}

// NewError wraps err in a FynError of the given type.
func NewError(t ErrorType, pkg string, err error) *FynError {
	return &FynError{Type: t, Package: pkg, Err: err}
}

// TypeOf returns the category of the first FynError in err's chain,
// or ErrUnknown.
func TypeOf(err error) ErrorType {
	var fe *FynError
	if errors.As(err, &fe) {
		return fe.Type
	}
	return ErrUnknown
}

// IsCancelled reports whether err is a user cancellation.
func IsCancelled(err error) bool {
	return TypeOf(err) == ErrCancelled
}

// Reported reports whether err has already been explained on the console,
// so logging it again would only repeat the message.
func Reported(err error) bool {
	switch TypeOf(err) {
	case ErrCancelled, ErrNotFound:
		return true
	}
	return false
}

// ExitCode maps an error returned by a command to the process exit code.
// Cancellation is not a failure.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch TypeOf(err) {
	case ErrCancelled:
		return ExitOK
	case ErrUsage:
		return ExitUsage
	case ErrNotFound:
		return ExitNotFound
	case ErrSourceSync:
		return ExitSourceSync
	case ErrBuild, ErrInstall:
		return ExitBuild
	default:
		return ExitFailure
	}
}
