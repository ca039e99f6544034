// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var buildScenario string

type relationOut struct {
	From string `yaml:"from"`
	Kind string `yaml:"kind"`
	To   string `yaml:"to"`
}

type personOut struct {
	Name    string `yaml:"name"`
	Gender  string `yaml:"gender"`
	Species string `yaml:"species,omitempty"`
	Age     int    `yaml:"age"`
}

type graphOut struct {
	Vertices int            `yaml:"vertices"`
	Edges    int            `yaml:"edges"`
	Kinds    map[string]int `yaml:"kinds,omitempty"`
}

type buildOut struct {
	Applied       int           `yaml:"applied"`
	Removed       int           `yaml:"removed"`
	Kept          int           `yaml:"kept"`
	AgesCorrected int           `yaml:"ages_corrected"`
	Swaps         int           `yaml:"compatibility_swaps"`
	Synthesized   []personOut   `yaml:"synthesized,omitempty"`
	Skipped       []string      `yaml:"skipped,omitempty"`
	Generations   [][]string    `yaml:"generations,omitempty"`
	Ancestry      string        `yaml:"ancestry_error,omitempty"`
	Graph         graphOut      `yaml:"graph"`
	Relations     []relationOut `yaml:"relations"`
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Apply a scenario and print the resulting relations",
	Example: `  # Apply a scenario
  kinship build -s family.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, people, err := loadSession(buildScenario)
		if err != nil {
			return err
		}
		rep, err := s.Apply()
		if err != nil {
			return err
		}

		names := newLabeler(s, people, rep.Hidden)
		out := buildOut{
			Applied:       rep.Applied,
			Removed:       rep.Removed,
			Kept:          rep.Kept,
			AgesCorrected: rep.AgesCorrected,
			Swaps:         rep.Swaps,
		}
		for _, p := range rep.Synthesized {
			po := personOut{Name: p.Label(), Gender: p.Gender.String(), Age: p.BiologicalAge()}
			if p.Species != nil {
				po.Species = p.Species.Name
			}
			out.Synthesized = append(out.Synthesized, po)
		}
		for _, err := range rep.Skipped {
			out.Skipped = append(out.Skipped, err.Error())
		}
		if rep.Ancestry != nil {
			out.Ancestry = rep.Ancestry.Error()
		}
		for _, layer := range rep.Generations {
			named := make([]string, len(layer))
			for i, node := range layer {
				named[i] = names.of(node)
			}
			out.Generations = append(out.Generations, named)
		}
		stats := s.Host.Graph().Stats()
		out.Graph = graphOut{Vertices: stats.VertexCount, Edges: stats.EdgeCount, Kinds: stats.KindCounts}
		for _, e := range s.Host.Graph().Edges() {
			out.Relations = append(out.Relations, relationOut{From: names.of(e.From), Kind: e.Kind, To: names.of(e.To)})
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildScenario, "scenario", "s", "", "scenario YAML file")
	_ = buildCmd.MarkFlagRequired("scenario")
}
