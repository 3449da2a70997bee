package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// Kind classifies why a path operation failed.
type Kind int

// Exported constants.
const (
	// KindIO - the host call itself failed (permission, disk, short read)
	KindIO Kind = iota
	// KindInvalidOperation - the operation needs a file but got a directory, or vice versa
	KindInvalidOperation
	// KindNotFound - the target must exist but does not
	KindNotFound
	// KindAlreadyExists - creation was requested on an existing target
	KindAlreadyExists
	// KindNoParent - the path has no ancestor segment
	KindNoParent
)

// Exported variables.
var (
	ErrIO                      = errors.New("i/o failure")
	ErrInvalidOperationForKind = errors.New("invalid operation for kind")
	ErrNotFound                = errors.New("not found")
	ErrAlreadyExists           = errors.New("already exists")
	ErrNoParent                = errors.New("no parent directory")
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindInvalidOperation:
		return "invalid-operation"
	case KindNotFound:
		return "not-found"
	case KindAlreadyExists:
		return "already-exists"
	case KindNoParent:
		return "no-parent"
	default:
		return "unknown"
	}
}

// Sentinel returns the sentinel error matched by errors.Is for this kind.
func (k Kind) Sentinel() error {
	switch k {
	case KindInvalidOperation:
		return ErrInvalidOperationForKind
	case KindNotFound:
		return ErrNotFound
	case KindAlreadyExists:
		return ErrAlreadyExists
	case KindNoParent:
		return ErrNoParent
	case KindIO:
		return ErrIO
	default:
		return ErrIO
	}
}

// PathError records a failed path operation.
//
// errors.Is matches both the sentinel for Kind and anything the wrapped host
// error matches, so callers can test for ErrNotFound as well as fs.ErrPermission.
type PathError struct {
	Op   string
	Path string
	Kind Kind
	// Msg is a human readable reason; when empty the wrapped error is used
	Msg string
	Err error
}

// NewPathError creates a PathError without an underlying host error.
func NewPathError(kind Kind, op, path, msg string) *PathError {
	return &PathError{
		Op:   op,
		Path: path,
		Kind: kind,
		Msg:  msg,
	}
}

// FromHost wraps a host error as a PathError. A missing target becomes
// KindNotFound and an existing one KindAlreadyExists; anything else is KindIO.
// Returns nil if err is nil.
func FromHost(op, path string, err error) error {
	if err == nil {
		return nil
	}

	kind := KindIO

	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = KindNotFound
	case errors.Is(err, fs.ErrExist):
		kind = KindAlreadyExists
	}

	return &PathError{
		Op:   op,
		Path: path,
		Kind: kind,
		Err:  err,
	}
}

// Error implements the error interface.
func (e *PathError) Error() string {
	reason := e.Msg
	if reason == "" && e.Err != nil {
		reason = e.Err.Error()
	}
	if reason == "" {
		reason = e.Kind.Sentinel().Error()
	}

	return fmt.Sprintf("could not %s %q: %s", e.Op, e.Path, reason)
}

// Is reports whether target is the sentinel for this error's kind.
func (e *PathError) Is(target error) bool {
	return target == e.Kind.Sentinel()
}

// Unwrap returns the underlying host error, if any.
func (e *PathError) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first PathError in err's chain.
// Errors that carry no PathError are reported as KindIO.
func KindOf(err error) Kind {
	var pathErr *PathError
	if errors.As(err, &pathErr) {
		return pathErr.Kind
	}

	return KindIO
}
