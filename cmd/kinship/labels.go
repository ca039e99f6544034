// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/katalvlaran/kinship/person"
	"github.com/katalvlaran/kinship/session"
)

// labeler maps graph nodes back to readable names: scenario keys first, then
// person labels. Unknown nodes print as themselves.
type labeler map[string]string

func newLabeler(s *session.Session, people map[string]*person.Person, extra []*person.Person) labeler {
	l := make(labeler, len(people)+len(extra))
	for _, p := range extra {
		if node, ok := s.Host.Resolve(p); ok {
			l[node] = fmt.Sprintf("%s (%s %s, age %d)", p.Label(), p.Kind, p.Gender, p.BiologicalAge())
		}
	}
	for key, p := range people {
		if node, ok := s.Host.Resolve(p); ok {
			l[node] = key
		}
	}

	return l
}

func (l labeler) of(node string) string {
	if name, ok := l[node]; ok {
		return name
	}
	return node
}
