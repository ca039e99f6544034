// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/kinship/config"
	"github.com/katalvlaran/kinship/logging"
	"github.com/katalvlaran/kinship/person"
	"github.com/katalvlaran/kinship/scenario"
	"github.com/katalvlaran/kinship/session"
)

var (
	// Global state set during PersistentPreRunE
	cfg    config.Config
	logger = zap.NewNop()

	// Persistent flags
	cfgFile string
	verbose int
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "kinship",
	Short: "Relationship graph synthesis",
	Long: `kinship - relationship graph synthesis

kinship compiles declared relationships and parent/child groups between
persons into a relation graph, synthesizing missing parents with
species-plausible ages.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for help/completion/version commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		switch {
		case quiet:
			cfg.Log.Level = "error"
		case verbose > 0:
			cfg.Log.Level = "debug"
		}
		logger, err = logging.New(cfg.Log)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}

		return nil
	},
	SilenceUsage:  true, // Don't show usage on errors
	SilenceErrors: true, // We handle errors ourselves
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: built-in defaults)")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase verbosity (can be repeated)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log errors")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(lineageCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadSession wires a session from the effective config and populates it from
// the scenario at path. The returned map holds the scenario persons by key.
func loadSession(path string) (*session.Session, map[string]*person.Person, error) {
	sc, err := scenario.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	s, err := session.New(cfg, session.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	people, err := sc.Populate(s)
	if err != nil {
		return nil, nil, fmt.Errorf("populate %s: %w", path, err)
	}

	return s, people, nil
}
