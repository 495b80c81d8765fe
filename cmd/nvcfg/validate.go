package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"nvcfg/internal/catalog"
	"nvcfg/internal/diagfmt"
	"nvcfg/internal/driver"
	"nvcfg/internal/ui"
)

func init() {
	validateCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	validateCmd.Flags().Bool("progress", false, "show per-file progress while validating")
	validateCmd.Flags().Bool("no-cache", false, "skip the extraction disk cache")
	validateCmd.Flags().Bool("load-order", false, "print the resolved plugin load order")
}

var validateCmd = &cobra.Command{
	Use:   "validate [config-dir]",
	Short: "Run the full validation pipeline over a config tree",
	Long: `Validate parses every Lua file under the config root and runs the
syntax, semantic, dependency and runtime path stages over the result.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
		showProgress, err := cmd.Flags().GetBool("progress")
		if err != nil {
			return fmt.Errorf("failed to get progress flag: %w", err)
		}
		noCache, err := cmd.Flags().GetBool("no-cache")
		if err != nil {
			return fmt.Errorf("failed to get no-cache flag: %w", err)
		}
		showOrder, err := cmd.Flags().GetBool("load-order")
		if err != nil {
			return fmt.Errorf("failed to get load-order flag: %w", err)
		}
		maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
		if err != nil {
			return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
		if err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
		colored, err := useColor(cmd)
		if err != nil {
			return err
		}

		root, manifest, err := resolveConfigRoot(args)
		if err != nil {
			return err
		}

		opts := driver.Options{
			MaxDiagnostics: maxDiagnostics,
			Jobs:           jobs,
			Manifest:       manifest,
		}
		if !noCache {
			if cache, err := catalog.OpenDiskCache("nvcfg"); err == nil {
				opts.Cache = cache
			}
		}

		var result *driver.ValidateResult
		if showProgress && isTerminal(os.Stdout) {
			result, err = validateWithProgress(cmd, root, opts)
		} else {
			result, err = driver.ValidateDir(cmd.Context(), root, opts)
		}
		if err != nil {
			return fmt.Errorf("failed to validate %s: %w", root, err)
		}

		report := result.Report
		bag := bagOf(report.Diagnostics)

		switch format {
		case "pretty":
			diagfmt.Pretty(cmd.OutOrStdout(), bag, result.FileSet, diagfmt.PrettyOpts{
				Color:     colored,
				ShowNotes: true,
			})
			for _, st := range report.Stages {
				fmt.Fprintf(cmd.OutOrStdout(), "stage %-12s %d error(s), %d warning(s)\n",
					st.Name, st.Errors, st.Warnings)
			}
			if showOrder && len(report.LoadOrder) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "load order:")
				for i, name := range report.LoadOrder {
					fmt.Fprintf(cmd.OutOrStdout(), "  %2d. %s\n", i+1, name)
				}
			}
			if report.Success {
				fmt.Fprintf(cmd.OutOrStdout(), "ok: %d file(s) validated\n", len(result.Files))
			}
		case "json":
			if err := diagfmt.JSON(cmd.OutOrStdout(), bag, result.FileSet, diagfmt.JSONOpts{
				IncludePositions: true,
				IncludeNotes:     true,
			}); err != nil {
				return fmt.Errorf("failed to encode diagnostics: %w", err)
			}
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
		}

		if !report.Success {
			return exitDiagnostics(cmd)
		}
		return nil
	},
}

// validateWithProgress runs the pipeline behind a terminal progress
// view fed by driver events.
func validateWithProgress(cmd *cobra.Command, root string, opts driver.Options) (*driver.ValidateResult, error) {
	files, err := driver.ListLuaFiles(root)
	if err != nil {
		return nil, err
	}

	events := make(chan driver.Event, 64)
	opts.Observer = func(ev driver.Event) {
		events <- ev
	}

	type outcome struct {
		result *driver.ValidateResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := driver.ValidateDir(cmd.Context(), root, opts)
		close(events)
		done <- outcome{result, err}
	}()

	program := tea.NewProgram(ui.NewProgressModel("validating "+root, files, events))
	if _, err := program.Run(); err != nil {
		// drain so the worker can finish even if the view died
		for range events {
		}
	}
	out := <-done
	return out.result, out.err
}

// resolveConfigRoot picks the config root from the argument or the
// manifest, loading the manifest when one is discoverable.
func resolveConfigRoot(args []string) (string, *catalog.Manifest, error) {
	start := "."
	if len(args) == 1 {
		start = args[0]
	}

	manifestPath, found, err := catalog.FindManifest(start)
	if err != nil {
		return "", nil, fmt.Errorf("failed to locate manifest: %w", err)
	}
	if !found {
		return start, nil, nil
	}

	manifest, err := catalog.LoadManifest(manifestPath)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	root := start
	if len(args) == 0 {
		root = filepath.Join(filepath.Dir(manifestPath), manifest.Config.Root)
	}
	return root, &manifest, nil
}
