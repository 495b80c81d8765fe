package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nvcfg/internal/model"
	"nvcfg/internal/patch"
)

func init() {
	registerPatchFlags(setCmd)
	setCmd.Flags().String("scope", "opt", "option scope (opt|g|o|bo|wo)")
	setCmd.Flags().String("as", "auto", "value type (auto|string|number|bool)")
}

var setCmd = &cobra.Command{
	Use:   "set <file.lua> <option> <value>",
	Short: "Set an editor option in a config file",
	Long: `Set rewrites the last assignment of the option in place, or appends a
new one. The edit is a dry run by default; pass --write to apply it.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		scope, err := cmd.Flags().GetString("scope")
		if err != nil {
			return fmt.Errorf("failed to get scope flag: %w", err)
		}
		as, err := cmd.Flags().GetString("as")
		if err != nil {
			return fmt.Errorf("failed to get as flag: %w", err)
		}

		value, err := literalAs(args[2], as)
		if err != nil {
			return err
		}

		op := patch.SetScopedOption(scope, args[1], value)
		return runPatch(cmd, args[0], op)
	},
}

func literalAs(raw, as string) (patch.Literal, error) {
	switch as {
	case "auto":
		return parseLiteral(raw), nil
	case "string":
		return patch.String(raw), nil
	case "number":
		l := parseLiteral(raw)
		if l.Kind != model.ValueNumber {
			return patch.Literal{}, fmt.Errorf("%q is not a number", raw)
		}
		return l, nil
	case "bool":
		switch raw {
		case "true":
			return patch.Bool(true), nil
		case "false":
			return patch.Bool(false), nil
		}
		return patch.Literal{}, fmt.Errorf("%q is not a boolean", raw)
	default:
		return patch.Literal{}, fmt.Errorf("unsupported value type %q (must be auto, string, number or bool)", as)
	}
}
