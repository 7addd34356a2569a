package cloud

import (
	"errors"
	"fmt"
)

// Error codes shared between the real SDK-backed clients and the fakes.
// The awsorg platform translates provider error codes onto these; the
// fakes construct them directly.
const (
	CodeAlreadyExists      = "EntityAlreadyExists"
	CodeNotFound           = "NoSuchEntity"
	CodeThrottled          = "Throttling"
	CodeAccessDenied       = "AccessDenied"
	CodeServiceUnavailable = "ServiceUnavailable"
)

// APIError is a provider API error normalized to a code the provisioning
// layer can classify without depending on a specific SDK.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAPIError builds an APIError with a formatted message.
func NewAPIError(code, format string, args ...any) *APIError {
	return &APIError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func isCode(err error, codes ...string) bool {
	if err == nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		for _, code := range codes {
			if apiErr.Code == code {
				return true
			}
		}
	}
	return false
}

// IsAlreadyExists reports whether an error indicates the entity already
// exists. Not retryable; callers decide whether existence means resume.
func IsAlreadyExists(err error) bool {
	return isCode(err, CodeAlreadyExists)
}

// IsNotFound reports whether an error indicates a missing entity.
func IsNotFound(err error) bool {
	return isCode(err, CodeNotFound)
}

// IsRetryable reports whether an error is transient (throttling or a
// temporarily unavailable service) and safe to retry.
func IsRetryable(err error) bool {
	return isCode(err, CodeThrottled, CodeServiceUnavailable)
}

// IsAccessDenied reports whether an error indicates denied access.
// In a freshly created account the organization access role may not be
// assumable yet, so the identity bootstrapper treats this as retryable
// for a bounded period.
func IsAccessDenied(err error) bool {
	return isCode(err, CodeAccessDenied)
}
