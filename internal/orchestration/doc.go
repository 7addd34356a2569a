// Package orchestration sequences the provisioning workflow: resolve,
// provision, preflight, identity bootstrap, and template rendering.
//
// Failure at any phase halts the sequence; completed phases are not
// undone. Re-running is the supported remediation: the resolve phase
// detects an already-created account and resumes from it.
package orchestration
