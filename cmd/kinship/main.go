// SPDX-License-Identifier: MIT

// Command kinship loads a YAML scenario into a session, compiles its declared
// relationships into the relation graph and prints the outcome.
//
// Usage:
//
//	kinship [--config kinship.yaml] [-v] <command>
//
// Commands:
//   - build: apply a scenario and print relations and synthesized parents
//   - lineage: print the ancestors and descendants of one person
//   - config show: print the effective configuration
//   - version: print build information
package main

func main() {
	Execute()
}
