package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"netbox-sync/core/schema"

	"github.com/spf13/cobra"
)

// typesCmd lists the registered object types.
var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List object types in dependency order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := schema.Default()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TYPE\tAPI PATH\tPRUNE\tDEPENDS ON")
		for _, t := range reg.Types() {
			sc := reg.MustLookup(t)
			deps := make([]string, 0)
			for _, d := range reg.Dependencies(t) {
				deps = append(deps, string(d))
			}
			fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", t, sc.APIPath, sc.Prune, strings.Join(deps, ","))
		}
		return w.Flush()
	},
}

func init() {
	RootCmd.AddCommand(typesCmd)
}
