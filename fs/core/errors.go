package core

import (
	stderrors "errors"
	"io/fs"

	"github.com/jmgilman/vfs/errors"
)

var (
	// ErrNotExist is returned when a file or directory does not exist.
	// Re-exported from io/fs for convenience.
	ErrNotExist = fs.ErrNotExist

	// ErrExist is returned when a file or directory already exists.
	// Re-exported from io/fs for convenience.
	ErrExist = fs.ErrExist

	// ErrPermission is returned when permission is denied.
	// Re-exported from io/fs for convenience.
	ErrPermission = fs.ErrPermission

	// ErrUnsupported is returned when an operation is not supported by the
	// storage. Hosts never return it for Stat or Watch; those report missing
	// support with a nil result instead.
	ErrUnsupported = stderrors.New("operation not supported")

	// ErrSynchronousDelegateExpected is returned when a synchronous adapter
	// is given, or observes, a host that does not complete its operations
	// before returning.
	ErrSynchronousDelegateExpected = errors.New(errors.CodeCapabilityMismatch,
		"expected a synchronous delegate but got an asynchronous one")
)
