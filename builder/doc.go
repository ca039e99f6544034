// SPDX-License-Identifier: MIT

// Package builder compiles declared relationship state into the applied
// relation graph held by a Substrate.
//
// A Build runs in two phases:
//
//  1. Compute the target. plan snapshots the declared edges and groups and
//     resolves endpoints. materialize backfills missing parents and corrects
//     Hidden parent ages. target derives an immutable, ordered, de-duplicated
//     set of (from, kind, to) triples.
//  2. Apply the delta. Relations touching the in-scope nodes that are not in
//     the target are removed, stale proxy cross-links are severed, and missing
//     triples are added in target order. New relations of a kind that needs
//     compatibility optimization run the identifier swap heuristic on their
//     target person.
//
// Guarantees:
//
//   - Idempotence: a second Build over unchanged declared state adds and
//     removes nothing.
//   - Graceful degradation: an unresolvable endpoint, an unknown kind, a
//     failing collaborator call or a panic skips only the affected edge or
//     group. Skipped units are reported in Result.Skipped.
//   - Build returns an error only for structural problems (nil collaborators,
//     corrupt declared collections).
//
// Options follow the functional-options pattern; option constructors panic on
// meaningless input, Build never panics.
//
// AI-Hints:
//   - Use WithSeed in tests so age resampling is reproducible.
//   - Keep one Builder per session: its compatibility pool persists across builds.
//   - Register Result.Hidden with the roster after each Build (see package session).
package builder
