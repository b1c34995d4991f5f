// errors.go: structured error types for tagcache operations
//
// This mirrors the teacher library's approach of using go-errors for rich,
// categorized errors with standardized codes, while the boundary operations
// (Set, Get, Delete) themselves keep returning plain bool/nil per the
// engine's contract -- these constructors are for callers that want detail.
//
// SPDX-License-Identifier: MPL-2.0

package tagcache

import (
	goerrors "errors"

	"github.com/agilira/go-errors"
)

// Error codes for tagcache operations.
const (
	// Input rejection errors (1xxx)
	ErrCodeEmptyKey   errors.ErrorCode = "TAGCACHE_EMPTY_KEY"
	ErrCodeInvalidTag errors.ErrorCode = "TAGCACHE_INVALID_TAG"
	ErrCodeInvalidTTL errors.ErrorCode = "TAGCACHE_INVALID_TTL"

	// Operation errors (2xxx)
	ErrCodeKeyNotFound errors.ErrorCode = "TAGCACHE_KEY_NOT_FOUND"
	ErrCodeTagNotFound errors.ErrorCode = "TAGCACHE_TAG_NOT_FOUND"

	// Loader errors (3xxx)
	ErrCodeLoaderFailed   errors.ErrorCode = "TAGCACHE_LOADER_FAILED"
	ErrCodeInvalidLoader  errors.ErrorCode = "TAGCACHE_INVALID_LOADER"
	ErrCodePanicRecovered errors.ErrorCode = "TAGCACHE_PANIC_RECOVERED"

	// Internal errors (5xxx)
	ErrCodeInternalError errors.ErrorCode = "TAGCACHE_INTERNAL_ERROR"
)

const (
	msgEmptyKey       = "key cannot be empty"
	msgInvalidTag     = "tag cannot be empty"
	msgInvalidTTL     = "ttl must be non-negative"
	msgKeyNotFound    = "key not found in cache"
	msgTagNotFound    = "tag has no entries"
	msgLoaderFailed   = "loader function failed"
	msgInvalidLoader  = "loader function cannot be nil"
	msgPanicRecovered = "panic recovered in loader"
	msgInternalError  = "internal cache error"
)

// NewErrEmptyKey creates an error for an empty key passed to operation.
func NewErrEmptyKey(operation string) error {
	return errors.NewWithField(ErrCodeEmptyKey, msgEmptyKey, "operation", operation)
}

// NewErrInvalidTag creates an error for an empty or malformed tag.
func NewErrInvalidTag(operation string) error {
	return errors.NewWithField(ErrCodeInvalidTag, msgInvalidTag, "operation", operation)
}

// NewErrInvalidTTL creates an error for a negative TTL.
func NewErrInvalidTTL(ttl interface{}) error {
	return errors.NewWithContext(ErrCodeInvalidTTL, msgInvalidTTL, map[string]interface{}{
		"provided_ttl": ttl,
	})
}

// NewErrKeyNotFound creates an error for a missing key.
func NewErrKeyNotFound(key string) error {
	return errors.NewWithField(ErrCodeKeyNotFound, msgKeyNotFound, "key", key)
}

// NewErrLoaderFailed wraps a loader's own error with cache context.
func NewErrLoaderFailed(key string, cause error) error {
	return errors.Wrap(cause, ErrCodeLoaderFailed, msgLoaderFailed).
		WithContext("key", key).
		AsRetryable()
}

// NewErrInvalidLoader creates an error for a nil loader function.
func NewErrInvalidLoader(key string) error {
	return errors.NewWithField(ErrCodeInvalidLoader, msgInvalidLoader, "key", key)
}

// NewErrPanicRecovered creates an error when a loader panics.
func NewErrPanicRecovered(key string, panicValue interface{}) error {
	return errors.NewWithContext(ErrCodePanicRecovered, msgPanicRecovered, map[string]interface{}{
		"key":         key,
		"panic_value": panicValue,
	}).WithSeverity("critical")
}

// IsNotFound reports whether err is a key-not-found error.
func IsNotFound(err error) bool {
	return errors.HasCode(err, ErrCodeKeyNotFound)
}

// IsLoaderError reports whether err originated from a GetOrLoad loader.
func IsLoaderError(err error) bool {
	if err == nil {
		return false
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		code := coder.ErrorCode()
		return code == ErrCodeLoaderFailed || code == ErrCodeInvalidLoader || code == ErrCodePanicRecovered
	}
	return false
}

// IsRetryable reports whether err can be retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var retryable errors.Retryable
	if goerrors.As(err, &retryable) {
		return retryable.IsRetryable()
	}
	return false
}

// GetErrorCode extracts the structured error code from err, if any.
func GetErrorCode(err error) errors.ErrorCode {
	if err == nil {
		return ""
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}
