package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Storage backend maintenance",
}

var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the stored parking data, bookings and configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, closeStore, err := openParking(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		if err := svc.Wipe(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "store cleared")
		return nil
	},
}

func init() {
	storeCmd.AddCommand(storeClearCmd)
	rootCmd.AddCommand(storeCmd)
}
