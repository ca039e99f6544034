// SPDX-License-Identifier: MIT
// Package: kinship/builder
//
// errors.go: sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Context is attached with %w at the failure site (unitErrorf).
//   • Structural sentinels abort Build; every other sentinel only ever
//     appears inside Result.Skipped.

package builder

import (
	"errors"
	"fmt"
)

// Structural errors returned by Build.
var (
	// ErrNilDeclarations indicates the builder has no declared state to compile.
	ErrNilDeclarations = errors.New("builder: nil declarations")

	// ErrNilSubstrate indicates the builder has nowhere to apply relations.
	ErrNilSubstrate = errors.New("builder: nil substrate")

	// ErrNilRoster indicates the builder cannot synthesize persons or refill its pool.
	ErrNilRoster = errors.New("builder: nil roster")

	// ErrCorruptDeclarations indicates the declared collections could not be
	// read, or hold nil groups.
	ErrCorruptDeclarations = errors.New("builder: corrupt declarations")
)

// Per-unit errors reported in Result.Skipped.
var (
	// ErrUnresolved indicates an endpoint that maps to no simulation node.
	ErrUnresolved = errors.New("builder: unresolvable endpoint")

	// ErrUnknownKind indicates an edge kind the registry does not know.
	ErrUnknownKind = errors.New("builder: unknown relationship kind")

	// ErrUnitPanic indicates a collaborator panicked while one unit was processed.
	ErrUnitPanic = errors.New("builder: unit panicked")

	// ErrAgesUnsettled indicates parent ages kept changing across passes,
	// which only a Hidden person being their own ancestor can cause.
	ErrAgesUnsettled = errors.New("builder: parent ages did not settle")

	// ErrApplyFailed indicates the substrate rejected a relation change.
	ErrApplyFailed = errors.New("builder: substrate rejected change")
)

// unitErrorf wraps err with the method and unit context:
// "<method>(<unit>): <err>".
func unitErrorf(method, unit string, err error) error {
	return fmt.Errorf("%s(%s): %w", method, unit, err)
}
