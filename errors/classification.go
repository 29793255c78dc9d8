package errors

// ErrorClassification indicates whether an error may succeed if retried.
// This layer never retries; the classification is for callers that do.
type ErrorClassification string

const (
	// ClassificationRetryable indicates temporary failures that may succeed on retry.
	// Examples: I/O hiccups, network timeouts.
	ClassificationRetryable ErrorClassification = "RETRYABLE"

	// ClassificationPermanent indicates failures that will not succeed on retry.
	// Examples: malformed paths, capability mismatches, missing files.
	ClassificationPermanent ErrorClassification = "PERMANENT"
)

// IsRetryable returns true if the classification indicates retry should be attempted.
func (c ErrorClassification) IsRetryable() bool {
	return c == ClassificationRetryable
}

// defaultClassifications maps error codes to their default classification.
var defaultClassifications = map[ErrorCode]ErrorClassification{
	CodeIO:      ClassificationRetryable,
	CodeNetwork: ClassificationRetryable,
	CodeTimeout: ClassificationRetryable,

	CodeNotFound:           ClassificationPermanent,
	CodeAlreadyExists:      ClassificationPermanent,
	CodeInvalidPath:        ClassificationPermanent,
	CodeForbidden:          ClassificationPermanent,
	CodeCapabilityMismatch: ClassificationPermanent,
	CodeInvalidConfig:      ClassificationPermanent,
	CodeNotImplemented:     ClassificationPermanent,
	CodeInternal:           ClassificationPermanent,
	CodeUnknown:            ClassificationPermanent,
}

// getDefaultClassification returns the default classification for an error code.
// Returns ClassificationPermanent if the code is not in the map.
func getDefaultClassification(code ErrorCode) ErrorClassification {
	if class, ok := defaultClassifications[code]; ok {
		return class
	}
	return ClassificationPermanent
}
