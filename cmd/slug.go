package cmd

import (
	"fmt"

	"netbox-sync/core/slug"

	"github.com/spf13/cobra"
)

var slugMax int

// slugCmd prints the slug NetBox would be sent for a name.
var slugCmd = &cobra.Command{
	Use:   "slug [text]",
	Short: "Print the slug generated for a name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := slug.Format(args[0], slugMax)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s)
		return nil
	},
}

func init() {
	slugCmd.Flags().IntVar(&slugMax, "max", slug.DefaultMaxLength, "Maximum slug length")
	RootCmd.AddCommand(slugCmd)
}
