package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register <dir>",
	Short: "Register every .lua script in a directory",
	Long: `Register uploads every .lua file directly inside <dir> to the
configured store and binds each script to its file's base name. The scan
aborts on the first file that fails; files registered before the failure
stay registered on the store.

Example:
  scriptctl register ./scripts --backend redis --redis-addr localhost:6379`,
	Args: cobra.ExactArgs(1),
	RunE: runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cache, err := newCache(ctx)
	if err != nil {
		return err
	}

	if _, err := cache.RegisterAllScripts(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to register scripts: %w", err)
	}

	scripts := cache.Scripts()
	names := make([]string, 0, len(scripts))
	for name := range scripts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, scripts[name])
	}
	return nil
}
