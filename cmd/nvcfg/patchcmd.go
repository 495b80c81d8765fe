package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"nvcfg/internal/apply"
	"nvcfg/internal/catalog"
	"nvcfg/internal/patch"
)

// registerPatchFlags installs the flags shared by every editing
// command. Edits are dry runs unless --write is given.
func registerPatchFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("write", false, "write the change to disk (default is a dry run)")
	cmd.Flags().Bool("force", false, "write even when validation of the result fails")
	cmd.Flags().Bool("no-backup", false, "skip the timestamped backup of the previous content")
	cmd.Flags().String("config-root", "", "config root for runtime path validation")
}

// runPatch applies ops to path with the shared flag set and renders
// the outcome.
func runPatch(cmd *cobra.Command, path string, ops ...patch.Op) error {
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to get write flag: %w", err)
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("failed to get force flag: %w", err)
	}
	noBackup, err := cmd.Flags().GetBool("no-backup")
	if err != nil {
		return fmt.Errorf("failed to get no-backup flag: %w", err)
	}
	configRoot, err := cmd.Flags().GetString("config-root")
	if err != nil {
		return fmt.Errorf("failed to get config-root flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	colored, err := useColor(cmd)
	if err != nil {
		return err
	}

	opts := apply.Options{
		Write:          write,
		NoBackup:       noBackup,
		Force:          force,
		MaxDiagnostics: maxDiagnostics,
	}
	if manifest := manifestFor(path); manifest != nil {
		opts.Catalog = catalog.NewOptions(manifest.ExtraOptions())
		opts.Events = catalog.NewEvents(manifest.Validate.ExtraEvents)
		// the flag beats the manifest
		if !cmd.Flags().Changed("no-backup") {
			opts.NoBackup = !manifest.WantBackup()
		}
	}
	if configRoot != "" {
		opts.ConfigRoot = configRoot
		opts.PathExists = func(p string) bool {
			_, err := os.Stat(p)
			return err == nil
		}
	}

	res, err := apply.File(path, patch.Patch{Ops: ops}, opts)
	if err != nil {
		return fmt.Errorf("failed to apply change: %w", err)
	}
	renderApplyResult(cmd, res, !opts.Write, colored)

	if !res.Success && !force {
		return exitDiagnostics(cmd)
	}
	return nil
}

func renderApplyResult(cmd *cobra.Command, res *apply.Result, dryRun, colored bool) {
	out := cmd.OutOrStdout()
	note := color.New(color.FgCyan)
	warn := color.New(color.FgYellow)
	bad := color.New(color.FgRed, color.Bold)
	if !colored {
		note.DisableColor()
		warn.DisableColor()
		bad.DisableColor()
	}

	for _, n := range res.Notes {
		fmt.Fprintln(out, note.Sprint("note: ")+n)
	}
	if res.Diff.Changed() {
		fmt.Fprint(out, res.Diff.String())
	} else {
		fmt.Fprintln(out, "no changes")
	}
	for _, w := range res.Warnings() {
		fmt.Fprintln(out, warn.Sprint("warning: ")+w)
	}
	if !res.Success {
		fmt.Fprintln(out, bad.Sprint("validation failed")+", the change was not written (use --force to override)")
	}

	switch {
	case res.Written:
		if res.BackupPath != "" {
			fmt.Fprintf(out, "written (backup at %s)\n", res.BackupPath)
		} else {
			fmt.Fprintln(out, "written")
		}
	case dryRun && res.Diff.Changed():
		fmt.Fprintln(out, "dry run, nothing written (pass --write to apply)")
	}
}

// manifestFor discovers the manifest next to or above the edited file.
func manifestFor(path string) *catalog.Manifest {
	manifestPath, found, err := catalog.FindManifest(filepath.Dir(path))
	if err != nil || !found {
		return nil
	}
	manifest, err := catalog.LoadManifest(manifestPath)
	if err != nil {
		return nil
	}
	return &manifest
}

// parseLiteral turns a command-line value into a typed Lua literal.
// Booleans and numbers are recognized first, everything else is a
// string.
func parseLiteral(raw string) patch.Literal {
	switch raw {
	case "true":
		return patch.Bool(true)
	case "false":
		return patch.Bool(false)
	case "nil":
		return patch.Nil()
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return patch.Number(n)
	}
	return patch.String(raw)
}
