package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered script names and identifiers",
	Long: `List prints the scripts registered in this run via --scripts or
the config file's script_dir, one "name<TAB>content-id" pair per line.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cache, err := newCache(cmd.Context())
	if err != nil {
		return err
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
