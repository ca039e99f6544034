// SPDX-License-Identifier: MIT
// Package: kinship/builder
//
// api.go: collaborator interfaces, Builder, Result and the Build orchestrator.
//
// Design contract:
//   - One public operation: Build. Stages live in plan.go, materialize.go,
//     target.go and apply.go, and run in that order.
//   - Collaborators are injected; nothing is read from global state.
//   - Build never panics. Collaborator panics are recovered per unit.

package builder

import (
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/katalvlaran/kinship/compat"
	"github.com/katalvlaran/kinship/core"
	"github.com/katalvlaran/kinship/person"
	"github.com/katalvlaran/kinship/relations"
	"github.com/katalvlaran/kinship/relkind"
)

// Declarations is the declared state to compile.
type Declarations interface {
	Edges() []relations.Edge
	Groups() []*relations.Group
}

// Roster creates persons and hands out numeric identifiers.
type Roster interface {
	Spawn(kind person.Kind, gender person.Gender, species *person.Species) *person.Person
	NextNumericID() int
}

// Kinds resolves kinds by name. A nil Kinds trusts the declared kinds and
// uses relkind.Parent for parent/child edges.
type Kinds interface {
	Lookup(name string) (relkind.Kind, bool)
	Parent() relkind.Kind
}

// Substrate is the simulation-side relation store.
type Substrate interface {
	Resolve(p *person.Person) (string, bool)
	ProxyNode(p *person.Person) string
	ClearAllRelations(node string)
	DirectRelations(node string) []core.Edge
	HasDirectRelation(node, kind, other string) bool
	AddDirectRelation(node, kind, other string) error
	RemoveDirectRelation(node, kind, other string) error
	CompatibilityOffset(numericID, candidateID int) float64
}

// Result summarizes one Build.
type Result struct {
	// Hidden lists every Hidden person in any group, in group order, once each.
	// Callers register the ones the roster does not hold yet.
	Hidden []*person.Person

	// Synthesized lists the parents created by this Build.
	Synthesized []*person.Person

	// Skipped holds one error per edge, group or relation that was skipped.
	Skipped []error

	Applied       int // relations added
	Removed       int // stale relations removed
	Kept          int // target relations already present
	AgesCorrected int
	Swaps         int
}

// Err combines Skipped into one error, nil when nothing was skipped.
func (r Result) Err() error { return multierr.Combine(r.Skipped...) }

// Builder compiles declarations into a substrate. Not safe for concurrent use.
type Builder struct {
	decl   Declarations
	roster Roster
	kinds  Kinds
	host   Substrate
	cfg    builderConfig
}

// New returns a Builder. Collaborators are checked by Build.
func New(decl Declarations, roster Roster, kinds Kinds, host Substrate, opts ...BuilderOption) *Builder {
	return &Builder{
		decl:   decl,
		roster: roster,
		kinds:  kinds,
		host:   host,
		cfg:    newBuilderConfig(opts...),
	}
}

// Pool returns the builder's spare identifier pool.
func (b *Builder) Pool() *compat.Pool { return b.cfg.pool }

// Build compiles the current declared state.
//
// Steps:
//  1. Validate collaborators; snapshot declarations (structural errors only).
//  2. Grow the compatibility pool to compat.SizeFor(#edges).
//  3. plan → materialize → target → apply → collect.
//  4. Log and record the summary.
//
// Errors:
//   - ErrNilDeclarations, ErrNilSubstrate, ErrNilRoster, ErrCorruptDeclarations.
func (b *Builder) Build() (Result, error) {
	var res Result
	switch {
	case b.decl == nil:
		return res, ErrNilDeclarations
	case b.host == nil:
		return res, ErrNilSubstrate
	case b.roster == nil:
		return res, ErrNilRoster
	}

	start := time.Now()
	edges, groups, err := b.snapshot()
	if err != nil {
		return res, fmt.Errorf("%s: %w", MethodBuild, err)
	}

	if _, err = b.cfg.pool.EnsureSize(compat.SizeFor(len(edges)), b.roster); err != nil {
		return res, fmt.Errorf("%s: %w", MethodBuild, err)
	}

	p := b.plan(&res, edges, groups)
	b.materialize(&res, p)
	t := b.target(&res, p)
	b.apply(&res, p, t)
	res.Hidden = collectHidden(p.groups)

	b.record(res, time.Since(start))

	return res, nil
}

// snapshot reads the declared collections once, converting a panic or a nil
// group into ErrCorruptDeclarations.
func (b *Builder) snapshot() (edges []relations.Edge, groups []*relations.Group, err error) {
	defer func() {
		if r := recover(); r != nil {
			edges, groups = nil, nil
			err = fmt.Errorf("%w: %v", ErrCorruptDeclarations, r)
		}
	}()
	edges = b.decl.Edges()
	groups = b.decl.Groups()
	for i, g := range groups {
		if g == nil {
			return nil, nil, fmt.Errorf("%w: nil group at index %d", ErrCorruptDeclarations, i)
		}
	}

	return edges, groups, nil
}

// record logs the build summary and feeds the metrics collector.
func (b *Builder) record(res Result, d time.Duration) {
	m := b.cfg.metrics
	m.ObserveBuild(d)
	m.RelationsRemovedBy(res.Removed)
	m.ParentsSynthesizedBy(len(res.Synthesized))
	m.AgesCorrectedBy(res.AgesCorrected)
	m.CompatibilitySwapsBy(res.Swaps)

	fields := []zap.Field{
		zap.Int("applied", res.Applied),
		zap.Int("removed", res.Removed),
		zap.Int("kept", res.Kept),
		zap.Int("synthesized", len(res.Synthesized)),
		zap.Int("ages_corrected", res.AgesCorrected),
		zap.Int("swaps", res.Swaps),
		zap.Int("hidden", len(res.Hidden)),
		zap.Duration("duration", d),
	}
	if len(res.Skipped) > 0 {
		b.cfg.log.Warn("Build completed with skipped units",
			append(fields, zap.Int("skipped", len(res.Skipped)), zap.Error(res.Err()))...)
		return
	}
	b.cfg.log.Info("Build completed", fields...)
}

// skip records a per-unit failure.
func (b *Builder) skip(res *Result, reason string, err error) {
	res.Skipped = append(res.Skipped, err)
	b.cfg.metrics.UnitSkipped(reason)
	b.cfg.log.Warn("Skipping unit", zap.String("reason", reason), zap.Error(err))
}

// guard runs fn as one independent unit: an error or a panic skips the unit
// and never escapes.
func (b *Builder) guard(res *Result, method, unit string, fn func() (reason string, err error)) {
	defer func() {
		if r := recover(); r != nil {
			b.skip(res, ReasonPanic, unitErrorf(method, unit, fmt.Errorf("%w: %v", ErrUnitPanic, r)))
		}
	}()
	if reason, err := fn(); err != nil {
		b.skip(res, reason, unitErrorf(method, unit, err))
	}
}

// parentKind returns the kind Child→Parent relations are stored under.
func (b *Builder) parentKind() relkind.Kind {
	if b.kinds == nil {
		return relkind.Parent
	}
	return b.kinds.Parent()
}
