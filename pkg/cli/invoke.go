package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var invokeKeys []string

var invokeCmd = &cobra.Command{
	Use:   "invoke <name> [arg]...",
	Short: "Invoke a registered script by name",
	Long: `Invoke executes a script on the configured store with positional
arguments. Keys are passed with --key, repeated for each key. The script
must be registered in the same run, via --scripts or the config file's
script_dir.

Example:
  scriptctl invoke incr --key counter 5 --scripts ./scripts`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInvoke,
}

func init() {
	invokeCmd.Flags().StringArrayVar(&invokeKeys, "key", nil, "key to pass to the script (repeatable)")
	rootCmd.AddCommand(invokeCmd)
}

func runInvoke(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cache, err := newCache(ctx)
	if err != nil {
		return err
	}

	name := args[0]
	scriptArgs := make([]interface{}, 0, len(args)-1)
	for _, arg := range args[1:] {
		scriptArgs = append(scriptArgs, arg)
	}

	result, err := cache.Invoke(ctx, name, invokeKeys, scriptArgs...)
	if err != nil {
		return fmt.Errorf("failed to invoke script: %w", err)
	}

	out, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to render result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
