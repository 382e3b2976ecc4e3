package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tourism-reviews/models"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the supported business categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, c := range models.Categories() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", c, c.Label())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
