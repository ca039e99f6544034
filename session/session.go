// SPDX-License-Identifier: MIT

// Package session wires a roster, the kind registry, the declared-state
// manager, the relation host and the builder from one config.Config, and runs
// the apply action: build, register new Hidden persons, check ancestry.
package session

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/kinship/builder"
	"github.com/katalvlaran/kinship/config"
	"github.com/katalvlaran/kinship/lineage"
	"github.com/katalvlaran/kinship/metrics"
	"github.com/katalvlaran/kinship/person"
	"github.com/katalvlaran/kinship/relations"
	"github.com/katalvlaran/kinship/relkind"
	"github.com/katalvlaran/kinship/substrate"
)

// Option configures a Session.
type Option func(*options)

type options struct {
	log     *zap.Logger
	host    *substrate.Host
	kinds   *relkind.Registry
	metrics *metrics.Collector
}

// WithLogger sets the logger shared by every component. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("session: WithLogger(nil)")
	}
	return func(o *options) { o.log = l }
}

// WithHost makes the session apply relations to h. Panics on nil.
func WithHost(h *substrate.Host) Option {
	if h == nil {
		panic("session: WithHost(nil)")
	}
	return func(o *options) { o.host = h }
}

// WithKinds replaces the default kind registry. Panics on nil.
func WithKinds(k *relkind.Registry) Option {
	if k == nil {
		panic("session: WithKinds(nil)")
	}
	return func(o *options) { o.kinds = k }
}

// WithMetrics overrides the collector built from config.
func WithMetrics(m *metrics.Collector) Option {
	return func(o *options) { o.metrics = m }
}

// Session is one editing session over a roster.
type Session struct {
	Config  config.Config
	Roster  *person.Roster
	Kinds   *relkind.Registry
	Manager *relations.Manager
	Host    *substrate.Host
	Builder *builder.Builder
	Metrics *metrics.Collector
	Species map[string]*person.Species

	log *zap.Logger
}

// Report is the outcome of Apply.
type Report struct {
	builder.Result

	// Registered lists the Hidden persons added to the roster by this Apply.
	Registered []*person.Person

	// Generations layers the applied family tree, eldest first. Empty when
	// Ancestry is set.
	Generations [][]string

	// Ancestry holds the lineage error, typically lineage.ErrCycleDetected.
	Ancestry error
}

// New validates cfg and wires a fresh session.
func New(cfg config.Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.host == nil {
		o.host = substrate.NewHost()
	}
	if o.kinds == nil {
		o.kinds = relkind.DefaultRegistry()
	}
	if o.metrics == nil && cfg.Metrics.Enabled {
		o.metrics = metrics.NewCollector(cfg.Metrics.Namespace)
	}

	s := &Session{
		Config:  cfg,
		Roster:  person.NewRoster(),
		Kinds:   o.kinds,
		Host:    o.host,
		Metrics: o.metrics,
		Species: cfg.SpeciesTable(),
		log:     o.log,
	}
	s.Manager = relations.NewManager(s.Roster, s.Kinds,
		relations.WithLogger(o.log.Named("relations")),
		relations.WithPlaceholderCount(cfg.PlaceholderCount),
		relations.WithPlaceholderSpecies(s.defaultSpecies()),
	)
	s.Builder = builder.New(s.Manager, s.Roster, s.Kinds, s.Host,
		builder.WithSeed(cfg.Seed),
		builder.WithLogger(o.log.Named("builder")),
		builder.WithMetrics(s.Metrics),
		builder.WithDefaultLifeExpectancy(cfg.DefaultLifeExpectancy),
	)

	return s, nil
}

// defaultSpecies is the first configured species, used for placeholders.
func (s *Session) defaultSpecies() *person.Species {
	if len(s.Config.Species) == 0 {
		return nil
	}
	return s.Species[s.Config.Species[0].Name]
}

// DeletePerson removes p from the roster and the declared state, then drops
// its simulation node. Relatives keep their other relations; the next Apply
// rebuilds what the remaining declarations describe.
func (s *Session) DeletePerson(p *person.Person) error {
	if err := s.Manager.DeletePerson(p); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if err := s.Host.RemovePerson(p); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	return nil
}

// Apply compiles the declared state, registers every Hidden group member the
// roster does not hold yet, and checks the applied family tree for cycles.
// Only structural build errors are returned.
func (s *Session) Apply() (Report, error) {
	res, err := s.Builder.Build()
	if err != nil {
		return Report{}, fmt.Errorf("session: %w", err)
	}
	rep := Report{Result: res}

	for _, p := range res.Hidden {
		if s.Roster.Contains(p) {
			continue
		}
		if err := s.Manager.AddPerson(p); err != nil {
			s.log.Warn("Failed to register hidden person",
				zap.String("person", p.ID.String()), zap.Error(err))
			continue
		}
		rep.Registered = append(rep.Registered, p)
	}

	rep.Generations, rep.Ancestry = lineage.Generations(s.Host.Graph(), s.Kinds.Parent().Name)
	if errors.Is(rep.Ancestry, lineage.ErrCycleDetected) {
		s.log.Warn("Ancestry cycle in applied relations", zap.Error(rep.Ancestry))
	}

	s.log.Info("Apply finished",
		zap.Int("registered", len(rep.Registered)),
		zap.Int("generations", len(rep.Generations)),
		zap.Int("skipped", len(res.Skipped)),
	)

	return rep, nil
}
