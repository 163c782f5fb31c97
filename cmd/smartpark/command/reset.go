package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Redraw slot occupancy and discard every booking",
	Long: `Reset redraws the occupancy of every slot in every zone, clears all
reservations and discards the whole booking history. There is no undo.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, closeStore, err := openParking(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		if err := svc.ResetAllZones(cmd.Context()); err != nil {
			return err
		}
		for _, s := range svc.Stats(cmd.Context()) {
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s %3d/%3d available\n", s.Title, s.Available, s.Total)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
