// Package config defines the validated provisioning request consumed by
// the orchestrator, the optional tfbootstrap.yaml file format, and the
// environment-tunable timeout set.
package config
