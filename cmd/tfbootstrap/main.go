// Package main is the entry point for the tfbootstrap CLI.
//
// tfbootstrap provisions a new AWS member account through Organizations,
// bootstraps its baseline IAM identities, and renders the Terraform
// state-backend and project skeleton for it.
//
// Commands: provision, reset, version, completion.
//
// For detailed usage information, run:
//
//	tfbootstrap --help
package main

import (
	"fmt"
	"os"

	"github.com/tfbootstrap/tfbootstrap/cmd/tfbootstrap/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
