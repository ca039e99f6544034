// Package kinship compiles declared relationships between persons into an
// in-memory relation graph, inventing the missing parents of sibling groups
// with species-plausible ages.
//
// 🚀 What is kinship?
//
//	A small, deterministic engine that brings together:
//		• Declared state: persons, typed edges and parent/child groups
//		• Graph compilation: plan, backfill parents, fix ages, diff and apply
//		• Age constraints: parent-child gaps scaled by species life expectancy
//		• Compatibility pool: a greedy identifier swap for romantic edges
//		• Lineage: ancestors, descendants and generation layers
//
// ✨ Why kinship?
//
//   - Idempotent: a second Build over the same declarations changes nothing
//   - Isolated failures: one bad edge or group is skipped and reported
//   - Seeded: WithSeed makes every synthesized parent reproducible
//
// Packages:
//
//	core/      : thread-safe directed multigraph of typed relations
//	person/    : Person, Species and the Roster
//	relkind/   : relationship kinds and their registry
//	relations/ : the declared-state manager (edges, groups, placeholders)
//	ages/      : the parent-child age constraint solver
//	compat/    : the compatibility pool and greedy swap
//	substrate/ : node resolution and relation storage on core.Graph
//	builder/   : the relationship graph builder
//	lineage/   : ancestry walks over applied parent relations
//	config/, logging/, metrics/, session/, scenario/: wiring
//	cmd/kinship: the CLI
//
// Quick ASCII example (two declared siblings, parents synthesized):
//
//	  Mother   Father
//	    ▲  ▲   ▲  ▲
//	    │   ╲ ╱   │
//	    │    ╳    │
//	    │   ╱ ╲   │
//	   Anna     Ben
//
//	go install github.com/katalvlaran/kinship/cmd/kinship@latest
package kinship
