package main

import (
	"fmt"

	"github.com/artpar/reacthub/core/color"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme <primary-hex> [secondary-hex]",
	Short: "Convert brand colors into OKLCH theme tokens",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		names := []string{"primary", "secondary"}
		for i, hex := range args {
			token, err := color.HexToThemeToken(hex)
			if err != nil {
				return fmt.Errorf("%s color %q: %w", names[i], hex, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "--%s: %s;\n", names[i], token)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
