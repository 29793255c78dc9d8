// Package errors provides structured error handling for the virtual filesystem.
//
// This package extends Go's standard error handling with error codes, classification
// (retryable vs permanent) and context metadata. It maintains full compatibility with
// the standard library errors package (errors.Is, errors.As, errors.Unwrap).
//
// # Quick Start
//
// Creating errors:
//
//	err := errors.New(errors.CodeInvalidPath, "path has no parent")
//	err := errors.Newf(errors.CodeNotFound, "no such file: %s", p)
//
// Wrapping errors:
//
//	if err := storage.Mkdir(dir); err != nil {
//	    return errors.Wrap(err, errors.CodeIO, "failed to create parent directory")
//	}
//
// Adding context:
//
//	err = errors.WithContext(err, "path", p.String())
//
// # Error Codes
//
//   - Path errors: CodeNotFound, CodeAlreadyExists, CodeInvalidPath, CodeForbidden
//   - Host errors: CodeCapabilityMismatch, CodeInvalidConfig
//   - Infrastructure errors: CodeIO, CodeNetwork, CodeTimeout
//   - System errors: CodeInternal, CodeNotImplemented
//   - Generic: CodeUnknown
//
// Each code has a default classification. Wrapping a PlatformError keeps the
// classification of the wrapped error. Nothing in this module retries; the
// classification exists for callers that do.
package errors
