package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Register a single .lua script file",
	Long: `Load uploads one script file to the configured store. The script
is bound to the file's base name with the .lua extension stripped.

Example:
  scriptctl load ./scripts/incr.lua --backend redis`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cache, err := newCache(ctx)
	if err != nil {
		return err
	}

	contentID, err := cache.RegisterFile(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to load script: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), contentID)
	return nil
}
