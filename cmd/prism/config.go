package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"prism/internal/diag"
	"prism/internal/env"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Validate the analysis configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		maxDiags, _ := cmd.Flags().GetInt("max-diagnostics")

		// Parse and registry construction report into separate bags so
		// each phase respects its own cap; they merge for rendering.
		bag := diag.NewBag(maxDiags)
		cfg, ok := env.LoadConfig(path, diag.BagReporter{Bag: bag})
		if ok {
			envBag := diag.NewBag(maxDiags)
			_, ok = env.New(cfg, diag.BagReporter{Bag: envBag})
			bag.Merge(envBag)
		}

		bag.Sort()
		bag.Dedup()
		diag.Render(cmd.OutOrStdout(), bag, useColor(cmd, os.Stdout))

		if !ok {
			return fmt.Errorf("config %s is invalid", path)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "config %s: ok (%d custom hooks)\n", path, len(cfg.Hooks))
		return nil
	},
}
