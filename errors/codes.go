package errors

// ErrorCode represents a specific error condition.
// Error codes are string-based for debuggability and natural log output.
type ErrorCode string

const (
	// Path errors.

	// CodeNotFound indicates a requested file or directory does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeAlreadyExists indicates a file or directory already exists.
	CodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// CodeInvalidPath indicates a path is malformed or cannot be resolved,
	// e.g. an ancestor walk that runs off the root.
	CodeInvalidPath ErrorCode = "INVALID_PATH"

	// CodeForbidden indicates the backend denied access to a path.
	CodeForbidden ErrorCode = "FORBIDDEN"

	// Host errors.

	// CodeCapabilityMismatch indicates a host does not have the capabilities
	// a consumer requires (for example an asynchronous delegate handed to a
	// synchronous adapter).
	CodeCapabilityMismatch ErrorCode = "CAPABILITY_MISMATCH"

	// CodeInvalidConfig indicates a configuration error prevents the operation.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// Infrastructure errors.

	// CodeIO indicates an underlying storage operation failed.
	CodeIO ErrorCode = "IO_ERROR"

	// CodeNetwork indicates a network operation against a remote store failed.
	CodeNetwork ErrorCode = "NETWORK_ERROR"

	// CodeTimeout indicates an operation exceeded its time limit.
	CodeTimeout ErrorCode = "TIMEOUT"

	// System errors.

	// CodeInternal indicates an internal error occurred.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeNotImplemented indicates the requested functionality is not supported
	// by the host or storage.
	CodeNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Generic errors.

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)
