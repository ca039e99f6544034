// SPDX-License-Identifier: MIT
// Package: kinship/builder
//
// apply.go (stage 4): diff the target against the substrate and apply the
// delta, then collect the Hidden persons the caller must track.
//
// Removal covers every relation touching an in-scope node that the target
// does not contain, which is what clearing those nodes and rebuilding them
// would leave behind. Relations already in place are kept untouched, so a
// repeated Build neither churns the substrate nor re-runs the compatibility
// heuristic.

package builder

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/kinship/compat"
	"github.com/katalvlaran/kinship/person"
)

// apply removes stale relations, severs proxy cross-links and adds missing
// target relations in order.
func (b *Builder) apply(res *Result, p *plan, t *targetSet) {
	nodes, proxies := b.scopeNodes(p)

	removed := make(map[string]struct{})
	for _, node := range nodes {
		for _, e := range b.host.DirectRelations(node) {
			if _, done := removed[e.ID]; done {
				continue
			}
			tr := triple{from: e.From, kind: e.Kind, to: e.To}
			if t.has(tr) {
				continue
			}
			b.guard(res, MethodApply, "remove "+tr.String(), func() (string, error) {
				if err := b.host.RemoveDirectRelation(e.From, e.Kind, e.To); err != nil {
					return ReasonApply, fmt.Errorf("%w: %w", ErrApplyFailed, err)
				}
				removed[e.ID] = struct{}{}
				res.Removed++
				return "", nil
			})
		}
	}

	for _, proxy := range proxies {
		stale := len(b.host.DirectRelations(proxy))
		if stale == 0 {
			continue
		}
		b.guard(res, MethodApply, "sever "+proxy, func() (string, error) {
			b.host.ClearAllRelations(proxy)
			res.Removed += stale
			return "", nil
		})
	}

	for _, r := range t.rels {
		if b.host.HasDirectRelation(r.from, r.kind, r.to) {
			res.Kept++
			continue
		}
		b.guard(res, MethodApply, "add "+r.String(), func() (string, error) {
			if err := b.host.AddDirectRelation(r.from, r.kind, r.to); err != nil {
				return ReasonApply, fmt.Errorf("%w: %w", ErrApplyFailed, err)
			}
			res.Applied++
			b.cfg.metrics.RelationApplied(r.kind)
			if r.optimize {
				b.optimize(res, r)
			}
			return "", nil
		})
	}
}

// scopeNodes returns the resolved node of every in-scope person, and the
// proxy nodes of persons whose relations live elsewhere. Both lists are
// de-duplicated and keep scope order.
func (b *Builder) scopeNodes(p *plan) (nodes, proxies []string) {
	seen := make(map[string]struct{})
	for _, x := range p.scope {
		node, ok := b.host.Resolve(x)
		if !ok {
			continue
		}
		if _, dup := seen[node]; !dup {
			seen[node] = struct{}{}
			nodes = append(nodes, node)
		}
		if proxy := b.host.ProxyNode(x); proxy != "" && proxy != node {
			if _, dup := seen[proxy]; !dup {
				seen[proxy] = struct{}{}
				proxies = append(proxies, proxy)
			}
		}
	}

	return nodes, proxies
}

// optimize runs one greedy pass of the compatibility heuristic for the target
// of r. The relation itself is unaffected; only tgt.NumericID may change, and
// the replaced identifier goes back to the pool.
func (b *Builder) optimize(res *Result, r targetRel) {
	if r.src == nil || r.tgt == nil {
		return
	}
	orig := r.tgt.NumericID
	chosen, swapped := compat.Improve(b.cfg.pool, b.host.CompatibilityOffset, r.src.NumericID, orig)
	if !swapped {
		return
	}
	r.tgt.NumericID = chosen
	res.Swaps++
	b.cfg.log.Debug("Compatibility swap",
		zap.String("relation", r.String()),
		zap.String("person", r.tgt.ID.String()),
		zap.Int("from_id", orig),
		zap.Int("to_id", chosen),
	)
}

// collectHidden lists the Hidden members of every group, parents before
// children, each person once.
func collectHidden(groups []plannedGroup) []*person.Person {
	seen := make(map[*person.Person]struct{})
	var out []*person.Person
	for _, pg := range groups {
		members := append(pg.group.Parents(), pg.group.Children()...)
		for _, x := range members {
			if x == nil || x.Kind != person.KindHidden {
				continue
			}
			if _, dup := seen[x]; dup {
				continue
			}
			seen[x] = struct{}{}
			out = append(out, x)
		}
	}

	return out
}
