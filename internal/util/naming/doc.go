// Package naming provides consistent naming functions for account resources.
//
// State resources follow the pattern tf-state-{account}-{id6} and
// tf-locks-{account}; local credential profiles follow tf-user-{account}.
// Deterministic names make re-runs idempotent at the naming level.
package naming
