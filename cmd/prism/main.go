package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"prism/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "prism",
	Short: "Reactivity analysis toolchain",
	Long:  `Prism analyzes lowered component functions and classifies which values can change between invocations`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(hooksCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("config", "prism.toml", "path to the analysis config")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether the file is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against the output terminal.
func useColor(cmd *cobra.Command, f *os.File) bool {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}
