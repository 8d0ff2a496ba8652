// Package cli defines the Cobra command tree for the cm-cli binary. Each file
// registers one command group with the root command. Commands resolve the
// registry, hand the work to the batch, listing and userdata packages, and
// only handle flags and output formatting themselves.
package cli
