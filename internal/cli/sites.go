package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List the supported review sites",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := GetApp(cmd)
		if a == nil {
			return fmt.Errorf("application not initialized")
		}
		for _, d := range a.Sites.Supported() {
			fmt.Fprintln(cmd.OutOrStdout(), d)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sitesCmd)
}
