// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/kinship/lineage"
)

var (
	lineageScenario string
	lineagePerson   string
	lineageDepth    int
)

var lineageCmd = &cobra.Command{
	Use:   "lineage",
	Short: "Print the ancestors and descendants of a person",
	Long: `Apply the scenario, then walk parent relations from the given person.
Synthesized parents are included.`,
	Example: `  # Every generation in both directions
  kinship lineage -s family.yaml -p anna

  # Parents only
  kinship lineage -s family.yaml -p anna --depth 1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if lineageDepth < 0 {
			return fmt.Errorf("--depth must be >= 0, got %d", lineageDepth)
		}
		s, people, err := loadSession(lineageScenario)
		if err != nil {
			return err
		}
		p, ok := people[lineagePerson]
		if !ok {
			return fmt.Errorf("person %q is not in %s", lineagePerson, lineageScenario)
		}
		rep, err := s.Apply()
		if err != nil {
			return err
		}
		node, ok := s.Host.Resolve(p)
		if !ok {
			return fmt.Errorf("person %q has no node in the relation graph", lineagePerson)
		}

		kind := s.Kinds.Parent().Name
		opts := []lineage.Option{lineage.WithContext(cmd.Context()), lineage.WithMaxDepth(lineageDepth)}
		up, err := lineage.Ancestors(s.Host.Graph(), node, kind, opts...)
		if err != nil {
			return err
		}
		down, err := lineage.Descendants(s.Host.Graph(), node, kind, opts...)
		if err != nil {
			return err
		}

		names := newLabeler(s, people, rep.Hidden)
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s\n", lineagePerson)
		fmt.Fprintln(w, "ancestors:")
		for _, r := range up {
			fmt.Fprintf(w, "  %d %s\n", r.Depth, names.of(r.ID))
		}
		fmt.Fprintln(w, "descendants:")
		for _, r := range down {
			fmt.Fprintf(w, "  %d %s\n", r.Depth, names.of(r.ID))
		}
		return nil
	},
}

func init() {
	lineageCmd.Flags().StringVarP(&lineageScenario, "scenario", "s", "", "scenario YAML file")
	lineageCmd.Flags().StringVarP(&lineagePerson, "person", "p", "", "scenario key of the person")
	lineageCmd.Flags().IntVar(&lineageDepth, "depth", 0, "maximum generations to walk (0 = unlimited)")
	_ = lineageCmd.MarkFlagRequired("scenario")
	_ = lineageCmd.MarkFlagRequired("person")
}
