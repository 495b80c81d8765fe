package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"nvcfg/internal/diag"
	"nvcfg/internal/driver"
	"nvcfg/internal/model"
	"nvcfg/internal/plugin"
)

type graphPluginJSON struct {
	Name         string   `json:"name"`
	Source       string   `json:"source_file,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
	Dependents   []string `json:"dependents,omitempty"`
}

type graphPayload struct {
	LoadOrder []string          `json:"load_order,omitempty"`
	Cycles    []string          `json:"cycles,omitempty"`
	Plugins   []graphPluginJSON `json:"plugins"`
}

func init() {
	graphCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

var graphCmd = &cobra.Command{
	Use:   "graph [config-dir]",
	Short: "Show the plugin dependency graph and load order",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
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

		root, _, err := resolveConfigRoot(args)
		if err != nil {
			return err
		}

		_, parsed, err := driver.ParseDir(cmd.Context(), root, maxDiagnostics, jobs)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", root, err)
		}

		files := make([]*model.File, 0, len(parsed))
		for i := range parsed {
			if parsed[i].Chunk == nil {
				continue
			}
			files = append(files, model.Extract(parsed[i].Chunk, parsed[i].Path))
		}

		bag := diag.NewBag(maxDiagnostics)
		rep := diag.NewBagReporter(bag)
		registry := plugin.BuildRegistry(files, rep)
		graph := plugin.BuildGraph(registry, rep)
		resolution := plugin.Resolve(graph, rep)

		if format == "json" {
			payload := graphPayload{
				LoadOrder: resolution.Order,
				Cycles:    renderCycles(resolution.Cycles),
				Plugins:   make([]graphPluginJSON, 0, registry.Len()),
			}
			for _, name := range registry.Names() {
				decl, _ := registry.Lookup(name)
				payload.Plugins = append(payload.Plugins, graphPluginJSON{
					Name:         name,
					Source:       decl.SourceFile,
					Dependencies: decl.Dependencies,
					Dependents:   graph.Dependents(name),
				})
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(payload); err != nil {
				return fmt.Errorf("failed to encode graph: %w", err)
			}
		} else if format == "pretty" {
			renderGraphPretty(cmd, registry, graph, resolution, colored)
		} else {
			return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
		}

		if len(resolution.Cycles) > 0 {
			return exitDiagnostics(cmd)
		}
		return nil
	},
}

func renderCycles(cycles [][]string) []string {
	out := make([]string, 0, len(cycles))
	for _, names := range cycles {
		out = append(out, strings.Join(names, " -> ")+" -> "+names[0])
	}
	return out
}

func renderGraphPretty(cmd *cobra.Command, registry *plugin.Registry, graph plugin.Graph, resolution plugin.Resolution, colored bool) {
	out := cmd.OutOrStdout()
	title := color.New(color.Bold)
	bad := color.New(color.FgRed, color.Bold)
	if !colored {
		title.DisableColor()
		bad.DisableColor()
	}

	if len(resolution.Cycles) > 0 {
		for _, cyc := range renderCycles(resolution.Cycles) {
			fmt.Fprintln(out, bad.Sprint("cycle: ")+cyc)
		}
	} else if len(resolution.Order) > 0 {
		fmt.Fprintln(out, title.Sprint("load order:"))
		for i, name := range resolution.Order {
			fmt.Fprintf(out, "  %2d. %s\n", i+1, name)
		}
	}

	if registry.Len() == 0 {
		fmt.Fprintln(out, "no plugins declared")
		return
	}

	fmt.Fprintln(out, title.Sprint("plugins:"))
	for _, name := range registry.Names() {
		decl, _ := registry.Lookup(name)
		fmt.Fprintf(out, "  %s", name)
		if decl.SourceFile != "" {
			fmt.Fprintf(out, "  (%s)", decl.SourceFile)
		}
		fmt.Fprintln(out)
		for _, dep := range decl.Dependencies {
			fmt.Fprintf(out, "    needs %s\n", dep)
		}
		for _, dep := range graph.Dependents(name) {
			fmt.Fprintf(out, "    needed by %s\n", dep)
		}
	}
}
