// SPDX-License-Identifier: MIT

package builder_test

import (
	"fmt"

	"github.com/katalvlaran/kinship/builder"
	"github.com/katalvlaran/kinship/person"
	"github.com/katalvlaran/kinship/relations"
	"github.com/katalvlaran/kinship/relkind"
	"github.com/katalvlaran/kinship/substrate"
)

// ExampleBuilder_Build compiles a sibling group without parents: two Hidden
// parents are synthesized and every child is linked to both.
func ExampleBuilder_Build() {
	human := &person.Species{Name: "human", LifeExpectancy: 80}
	roster := person.NewRoster()
	anna, _ := person.New("Anna", person.KindActive, person.GenderFemale, human, 8, 8)
	ben, _ := person.New("Ben", person.KindActive, person.GenderMale, human, 5, 5)
	_ = roster.Add(anna)
	_ = roster.Add(ben)

	kinds := relkind.DefaultRegistry()
	m := relations.NewManager(roster, kinds)
	g := m.NewGroup()
	_ = m.AddChild(g, anna)
	_ = m.AddChild(g, ben)

	host := substrate.NewHost()
	res, err := builder.New(m, roster, kinds, host, builder.WithSeed(42)).Build()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, p := range res.Hidden {
		fmt.Println(p.Kind, p.Gender, p.BiologicalAge()-anna.BiologicalAge() >= 13)
	}
	fmt.Println("relations:", host.Graph().EdgeCount())
	// Output:
	// hidden female true
	// hidden male true
	// relations: 4
}
