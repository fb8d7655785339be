// Package kerr defines the sentinel error kinds shared across vertex's
// storage layers, in the style of the sentinel-variable error packages
// used throughout the teacher codebase (master/errors.go, gm/errors.go):
// one exported Err* value per condition, wrapped with context at the
// call site via github.com/pkg/errors rather than carried in typed
// error structs.
package kerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel kinds. Compare with errors.Is, or use the Is* helpers below
// which unwrap through github.com/pkg/errors wrapping.
var (
	// ErrNotFound is raised when a required row (node, edge, dictionary
	// entry) is absent. Get* operations raise it for a missing id;
	// delete operations never do (missing-on-delete is tolerated).
	ErrNotFound = errors.New("vertex: not found")

	// ErrCorrupt is raised when a decoded record violates a length or
	// tag invariant.
	ErrCorrupt = errors.New("vertex: corrupt record")

	// ErrDimMismatch is raised when vector bytes disagree with a
	// declared dimension or a vector tag's already-fixed dimension.
	ErrDimMismatch = errors.New("vertex: vector dimension mismatch")

	// ErrInvalidArgument is raised for malformed caller input, e.g. a
	// vector byte slice whose length is not a multiple of 4.
	ErrInvalidArgument = errors.New("vertex: invalid argument")

	// ErrEngineError wraps a failure reported by the underlying
	// key-value engine (full map, I/O errors, closed environment).
	ErrEngineError = errors.New("vertex: storage engine error")
)

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsCorrupt reports whether err is, or wraps, ErrCorrupt.
func IsCorrupt(err error) bool { return errors.Is(err, ErrCorrupt) }

// IsDimMismatch reports whether err is, or wraps, ErrDimMismatch.
func IsDimMismatch(err error) bool { return errors.Is(err, ErrDimMismatch) }

// IsInvalidArgument reports whether err is, or wraps, ErrInvalidArgument.
func IsInvalidArgument(err error) bool { return errors.Is(err, ErrInvalidArgument) }

// IsEngineError reports whether err is, or wraps, ErrEngineError.
func IsEngineError(err error) bool { return errors.Is(err, ErrEngineError) }

// NotFoundf wraps ErrNotFound with a formatted message, the pattern
// used throughout the teacher's storage layer for adding the key or
// id that was missing to an otherwise-sentinel error.
func NotFoundf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrNotFound, format, args...)
}

// Corruptf wraps ErrCorrupt with a formatted message.
func Corruptf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrCorrupt, format, args...)
}

// DimMismatchf wraps ErrDimMismatch with a formatted message.
func DimMismatchf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrDimMismatch, format, args...)
}

// InvalidArgumentf wraps ErrInvalidArgument with a formatted message.
func InvalidArgumentf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

// EngineErrorf wraps an underlying engine failure, tagging it as
// ErrEngineError while preserving cause for errors.Unwrap/errors.Cause.
func EngineErrorf(cause error, format string, args ...interface{}) error {
	return &engineErr{msg: fmt.Sprintf(format, args...), cause: cause}
}

type engineErr struct {
	msg   string
	cause error
}

func (e *engineErr) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *engineErr) Unwrap() error { return e.cause }

// Cause lets github.com/pkg/errors.Cause reach the wrapped cause.
func (e *engineErr) Cause() error { return e.cause }

// Is lets errors.Is(err, ErrEngineError) match any error constructed
// by EngineErrorf, regardless of the wrapped cause.
func (e *engineErr) Is(target error) bool { return target == ErrEngineError }
