package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nvcfg/internal/diagfmt"
	"nvcfg/internal/driver"
	"nvcfg/internal/printer"
)

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	parseCmd.Flags().Bool("print", false, "print the reconstructed source instead of diagnostics")
}

var parseCmd = &cobra.Command{
	Use:   "parse <file.lua>",
	Short: "Parse a config file and report syntax diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
		printSource, err := cmd.Flags().GetBool("print")
		if err != nil {
			return fmt.Errorf("failed to get print flag: %w", err)
		}
		maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
		if err != nil {
			return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		colored, err := useColor(cmd)
		if err != nil {
			return err
		}

		fileSet, res, err := driver.ParsePath(args[0], maxDiagnostics)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", args[0], err)
		}

		if printSource {
			fmt.Fprint(cmd.OutOrStdout(), printer.Print(res.Chunk))
			if res.Bag.HasErrors() {
				return exitDiagnostics(cmd)
			}
			return nil
		}

		switch format {
		case "pretty":
			res.Bag.Sort()
			diagfmt.Pretty(cmd.OutOrStdout(), res.Bag, fileSet, diagfmt.PrettyOpts{
				Color:     colored,
				ShowNotes: true,
			})
			if res.Bag.Len() == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: no syntax issues\n", args[0])
			}
		case "json":
			res.Bag.Sort()
			if err := diagfmt.JSON(cmd.OutOrStdout(), res.Bag, fileSet, diagfmt.JSONOpts{
				IncludePositions: true,
				IncludeNotes:     true,
				IncludeFixes:     true,
			}); err != nil {
				return fmt.Errorf("failed to encode diagnostics: %w", err)
			}
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
		}

		if res.Bag.HasErrors() {
			return exitDiagnostics(cmd)
		}
		return nil
	},
}
