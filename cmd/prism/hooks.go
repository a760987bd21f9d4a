package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"prism/internal/diag"
	"prism/internal/env"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	hookStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
)

var hooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: "List the effective hook registry",
	Long:  `Lists every hook-like global after merging built-ins with the custom hooks declared in the analysis config`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		maxDiags, _ := cmd.Flags().GetInt("max-diagnostics")

		bag := diag.NewBag(maxDiags)
		rep := diag.BagReporter{Bag: bag}

		cfg := env.DefaultConfig()
		if _, err := os.Stat(path); err == nil {
			var ok bool
			cfg, ok = env.LoadConfig(path, rep)
			if !ok {
				diag.Render(cmd.ErrOrStderr(), bag, useColor(cmd, os.Stderr))
				return fmt.Errorf("config %s is invalid", path)
			}
		}
		environ, ok := env.New(cfg, rep)
		if !ok {
			diag.Render(cmd.ErrOrStderr(), bag, useColor(cmd, os.Stderr))
			return fmt.Errorf("config %s is invalid", path)
		}

		hooks := environ.Hooks()
		sort.Slice(hooks, func(i, j int) bool { return hooks[i].Name < hooks[j].Name })

		colored := useColor(cmd, os.Stdout)
		row := func(cells ...string) string {
			out := ""
			for i, c := range cells {
				w := 24
				if i > 0 {
					w = 12
				}
				out += cellStyle.Width(w).Render(c)
			}
			return out
		}
		style := func(s lipgloss.Style, text string) string {
			if !colored {
				return text
			}
			return s.Render(text)
		}

		fmt.Fprintln(cmd.OutOrStdout(), style(headerStyle, row("NAME", "KIND", "ARG EFFECT", "RESULT", "NO-ALIAS")))
		for _, h := range hooks {
			sig := h.Signature
			fmt.Fprintln(cmd.OutOrStdout(), style(hookStyle, row(
				h.Name,
				sig.Hook.String(),
				sig.ArgEffect.String(),
				sig.ResultKind.String(),
				fmt.Sprintf("%v", sig.NoAlias),
			)))
		}
		return nil
	},
}
