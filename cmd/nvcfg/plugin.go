package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nvcfg/internal/patch"
)

var pluginCmd = &cobra.Command{
	Use:   "plugin",
	Short: "Add, remove and rewire plugin declarations",
}

func init() {
	pluginCmd.AddCommand(pluginAddCmd)
	pluginCmd.AddCommand(pluginRemoveCmd)
	pluginCmd.AddCommand(pluginAddDepCmd)

	registerPatchFlags(pluginAddCmd)
	pluginAddCmd.Flags().StringSlice("dep", nil, "dependency to declare (repeatable)")
	pluginAddCmd.Flags().StringSlice("event", nil, "lazy-load trigger event (repeatable)")
	pluginAddCmd.Flags().Bool("disabled", false, "declare the plugin with enabled = false")

	registerPatchFlags(pluginRemoveCmd)
	registerPatchFlags(pluginAddDepCmd)
}

var pluginAddCmd = &cobra.Command{
	Use:   "add <file.lua> <owner/repo>",
	Short: "Add a plugin spec to the plugin list",
	Long: `Add inserts a new spec into the plugin manager setup call, creating
the call when the file has none. Adding an already-declared plugin is
a no-op.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := cmd.Flags().GetStringSlice("dep")
		if err != nil {
			return fmt.Errorf("failed to get dep flag: %w", err)
		}
		events, err := cmd.Flags().GetStringSlice("event")
		if err != nil {
			return fmt.Errorf("failed to get event flag: %w", err)
		}
		disabled, err := cmd.Flags().GetBool("disabled")
		if err != nil {
			return fmt.Errorf("failed to get disabled flag: %w", err)
		}

		spec := patch.PluginSpec{
			Name:         args[1],
			Dependencies: deps,
			Events:       events,
		}
		if disabled {
			enabled := false
			spec.Enabled = &enabled
		}
		return runPatch(cmd, args[0], patch.AddPlugin(spec))
	},
}

var pluginRemoveCmd = &cobra.Command{
	Use:   "remove <file.lua> <owner/repo>",
	Short: "Remove a plugin spec from the plugin list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPatch(cmd, args[0], patch.RemovePlugin(args[1]))
	},
}

var pluginAddDepCmd = &cobra.Command{
	Use:   "add-dep <file.lua> <owner/repo> <dep/repo>",
	Short: "Add a dependency to an existing plugin spec",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPatch(cmd, args[0], patch.AddDependency(args[1], args[2]))
	},
}
