package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	CreateTimeout        time.Duration // Overall bound on account creation polling
	PollInterval         time.Duration // Interval between creation status polls
	PollRetryAttempts    int           // Attempts per individual status poll
	IdentityMaxAttempts  int           // Attempts per identity API call against a fresh account
	IdentityInitialDelay time.Duration // Initial backoff delay for identity calls
	LookupMaxAttempts    int           // Attempts for the read-only account lookup
	LookupInitialDelay   time.Duration // Initial backoff delay for lookups
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - TFBOOTSTRAP_TIMEOUT_CREATE (default: 5m)
//   - TFBOOTSTRAP_POLL_INTERVAL (default: 5s)
//   - TFBOOTSTRAP_POLL_RETRY_ATTEMPTS (default: 3)
//   - TFBOOTSTRAP_IDENTITY_MAX_ATTEMPTS (default: 5)
//   - TFBOOTSTRAP_IDENTITY_INITIAL_DELAY (default: 2s)
//   - TFBOOTSTRAP_LOOKUP_MAX_ATTEMPTS (default: 3)
//   - TFBOOTSTRAP_LOOKUP_INITIAL_DELAY (default: 500ms)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		CreateTimeout:        parseDuration("TFBOOTSTRAP_TIMEOUT_CREATE", 5*time.Minute),
		PollInterval:         parseDuration("TFBOOTSTRAP_POLL_INTERVAL", 5*time.Second),
		PollRetryAttempts:    parseInt("TFBOOTSTRAP_POLL_RETRY_ATTEMPTS", 3),
		IdentityMaxAttempts:  parseInt("TFBOOTSTRAP_IDENTITY_MAX_ATTEMPTS", 5),
		IdentityInitialDelay: parseDuration("TFBOOTSTRAP_IDENTITY_INITIAL_DELAY", 2*time.Second),
		LookupMaxAttempts:    parseInt("TFBOOTSTRAP_LOOKUP_MAX_ATTEMPTS", 3),
		LookupInitialDelay:   parseDuration("TFBOOTSTRAP_LOOKUP_INITIAL_DELAY", 500*time.Millisecond),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
