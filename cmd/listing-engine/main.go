// Package main provides the CLI entrypoint for listing-engine.
//
// listing-engine resolves channel product records into marketplace item
// envelopes:
//   - resolve: run a rule document against one record and print the envelope
//   - classify: print the field format table of a schema document
//   - heuristics: list the auto_generate rule types
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
