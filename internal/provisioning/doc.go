// Package provisioning implements the account-provisioning workflow:
// idempotent account resolution, the creation polling state machine,
// and identity bootstrapping.
//
// The workflow is organized as sequential phases (see Phase and
// RunPhases) sharing a Context. Phases are assembled and sequenced by
// internal/orchestration.
package provisioning
