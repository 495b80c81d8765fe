package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nvcfg/internal/fswrite"
)

func init() {
	restoreCmd.Flags().Bool("list", false, "list available backups instead of restoring")
	restoreCmd.Flags().String("from", "", "backup file to restore (default is the newest)")
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file.lua>",
	Short: "Restore a config file from one of its backups",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := cmd.Flags().GetBool("list")
		if err != nil {
			return fmt.Errorf("failed to get list flag: %w", err)
		}
		from, err := cmd.Flags().GetString("from")
		if err != nil {
			return fmt.Errorf("failed to get from flag: %w", err)
		}

		backups, err := fswrite.ListBackups(args[0])
		if err != nil {
			return fmt.Errorf("failed to list backups: %w", err)
		}

		if list {
			if len(backups) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no backups for %s\n", args[0])
				return nil
			}
			for _, b := range backups {
				fmt.Fprintln(cmd.OutOrStdout(), b)
			}
			return nil
		}

		if from == "" {
			if len(backups) == 0 {
				return fmt.Errorf("no backups for %s", args[0])
			}
			from = backups[0]
		}
		if err := fswrite.Restore(from, args[0]); err != nil {
			return fmt.Errorf("failed to restore: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "restored %s from %s\n", args[0], from)
		return nil
	},
}
