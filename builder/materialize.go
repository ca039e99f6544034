// SPDX-License-Identifier: MIT
// Package: kinship/builder
//
// materialize.go (stage 2): parent backfill and age validation.
//
// This is the only stage that creates persons or changes their ages. Both
// steps are per group: a failure in one group never affects another.

package builder

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/katalvlaran/kinship/ages"
	"github.com/katalvlaran/kinship/person"
)

// materialize synthesizes missing parents, then validates every Hidden
// parent of every group with at least one child.
func (b *Builder) materialize(res *Result, p *plan) {
	for i := range p.groups {
		pg := &p.groups[i]
		if len(pg.needs) == 0 {
			continue
		}
		b.guard(res, MethodMaterialize, "backfill group "+pg.group.ID.String(), func() (string, error) {
			return b.backfill(res, p, pg)
		})
	}

	b.settleAges(res, p)
}

// settleAges repeats the age pass until no parent changes. A Hidden person
// can be a child in one group and a parent in another, so raising their age
// may break a group that already passed. Ages only grow, and a chain of n
// groups settles within n+1 passes; anything still moving after that is a
// cyclic Hidden ancestry and is reported once.
func (b *Builder) settleAges(res *Result, p *plan) {
	failed := make(map[int]struct{})
	for pass := 0; pass <= len(p.groups); pass++ {
		changed := 0
		for i := range p.groups {
			pg := &p.groups[i]
			if _, skip := failed[i]; skip || pg.group.Inert() {
				continue
			}
			before := res.AgesCorrected
			b.guard(res, MethodMaterialize, "ages group "+pg.group.ID.String(), func() (string, error) {
				reason, err := b.validateAges(res, pg)
				if err != nil {
					failed[i] = struct{}{}
				}
				return reason, err
			})
			changed += res.AgesCorrected - before
		}
		if changed == 0 {
			return
		}
	}

	b.skip(res, ReasonInvalid, unitErrorf(MethodMaterialize, "ages", ErrAgesUnsettled))
}

// backfill spawns one Hidden parent per needed gender and attaches it to the group.
func (b *Builder) backfill(res *Result, p *plan, pg *plannedGroup) (string, error) {
	species := groupSpecies(pg)
	for _, gender := range pg.needs {
		parent := b.roster.Spawn(person.KindHidden, gender, species)
		if parent == nil {
			return ReasonApply, errors.New("roster spawned nil person")
		}
		if err := pg.group.AppendParent(parent); err != nil {
			return ReasonInvalid, err
		}
		res.Synthesized = append(res.Synthesized, parent)
		p.addScope(parent)
		b.cfg.log.Debug("Parent synthesized",
			zap.String("group", pg.group.ID.String()),
			zap.String("person", parent.ID.String()),
			zap.String("gender", gender.String()),
		)
	}

	return "", nil
}

// validateAges resamples every Hidden parent that is too close in age to the
// oldest child of the group.
func (b *Builder) validateAges(res *Result, pg *plannedGroup) (string, error) {
	children := pg.group.Children()
	oldest := children[0]
	for _, c := range children[1:] {
		if c.BiologicalAge() > oldest.BiologicalAge() {
			oldest = c
		}
	}

	var errs []error
	for _, parent := range pg.group.Parents() {
		if parent.Kind != person.KindHidden {
			continue
		}
		life := parent.LifeExpectancy(oldest.LifeExpectancy(b.cfg.lifeExpect))
		changed, err := ages.Correct(b.cfg.rng, parent, oldest.BiologicalAge(), life)
		if err != nil {
			errs = append(errs, fmt.Errorf("parent %s: %w", parent.Label(), err))
			continue
		}
		if changed {
			res.AgesCorrected++
			b.cfg.log.Debug("Parent age corrected",
				zap.String("person", parent.ID.String()),
				zap.Int("biological_age", parent.BiologicalAge()),
				zap.Int("oldest_child_age", oldest.BiologicalAge()),
			)
		}
	}
	if len(errs) > 0 {
		return ReasonInvalid, multierr.Combine(errs...)
	}

	return "", nil
}

// groupSpecies picks the species for synthesized parents: the declared
// parent's, else the first child's that has one.
func groupSpecies(pg *plannedGroup) *person.Species {
	for _, x := range pg.group.Parents() {
		if x.Species != nil {
			return x.Species
		}
	}
	for _, x := range pg.group.Children() {
		if x.Species != nil {
			return x.Species
		}
	}

	return nil
}
