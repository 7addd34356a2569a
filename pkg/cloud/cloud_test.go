package cloud

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAccountStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want AccountStatus
	}{
		{"ACTIVE", StatusActive},
		{"active", StatusActive},
		{"SUSPENDED", StatusSuspended},
		{"PENDING_CLOSURE", StatusPendingClosure},
		{"SOMETHING_NEW", StatusOther},
		{"", StatusOther},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAccountStatus(tt.in))
		})
	}
}

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	exists := NewAPIError(CodeAlreadyExists, "user %s exists", "admin")
	assert.True(t, IsAlreadyExists(exists))
	assert.False(t, IsRetryable(exists))

	throttled := NewAPIError(CodeThrottled, "rate exceeded")
	assert.True(t, IsRetryable(throttled))
	assert.False(t, IsAlreadyExists(throttled))

	denied := NewAPIError(CodeAccessDenied, "not assumable")
	assert.True(t, IsAccessDenied(denied))

	// Wrapped errors are still classified.
	wrapped := fmt.Errorf("creating user: %w", exists)
	assert.True(t, IsAlreadyExists(wrapped))

	assert.False(t, IsAlreadyExists(errors.New("plain error")))
	assert.False(t, IsAlreadyExists(nil))
}
