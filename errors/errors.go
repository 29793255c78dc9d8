package errors

// PlatformError is the structured error returned by hosts, decorators and
// storages when a failure needs more than an fs.PathError can carry.
//
// The code tells a caller what went wrong in VFS terms: CodeInvalidPath when
// a write found no existing ancestor directory, CodeCapabilityMismatch when
// a synchronous adapter was handed an asynchronous host, CodeIO when a watch
// backend could not attach. The classification tells it whether retrying
// can help. Wrapped causes stay reachable through errors.Is and errors.As,
// so fs.ErrNotExist checks keep working across every layer.
type PlatformError interface {
	error

	// Code returns the VFS error code identifying the failure.
	Code() ErrorCode

	// Classification returns whether the failure is retryable or permanent.
	Classification() ErrorClassification

	// Message returns the human-readable error message.
	Message() string

	// Context returns attached metadata such as the offending "path".
	// Returns nil if no context has been attached.
	Context() map[string]interface{}

	// Unwrap returns the wrapped cause, typically a storage *fs.PathError.
	// Returns nil if this error does not wrap another error.
	Unwrap() error
}
