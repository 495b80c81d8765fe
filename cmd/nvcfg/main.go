package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"nvcfg/internal/diag"
	"nvcfg/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "nvcfg",
	Short: "Neovim configuration linter and editor",
	Long:  `nvcfg parses, validates and safely edits Lua-based Neovim configurations`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(pluginCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to collect (0 = manifest default)")
	rootCmd.PersistentFlags().Int("jobs", 0, "number of parallel workers (0 = number of CPUs)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the persistent color flag against the terminal.
func useColor(cmd *cobra.Command) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(os.Stdout), nil
	default:
		return false, fmt.Errorf("unsupported color mode %q (must be auto, on or off)", mode)
	}
}

// bagOf rebuilds a bag from already-collected diagnostics so the
// formatting helpers can render them.
func bagOf(items []diag.Diagnostic) *diag.Bag {
	bag := diag.NewBag(0)
	for _, d := range items {
		bag.Add(d)
	}
	return bag
}

// exitDiagnostics makes the command fail with exit code 1 after the
// diagnostics have already been printed.
func exitDiagnostics(cmd *cobra.Command) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return fmt.Errorf("")
}
