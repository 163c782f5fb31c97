package command

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nekogravitycat/smartpark-backend/internal/zone"
)

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Zone capacity management",
}

var slotsAddCmd = &cobra.Command{
	Use:   "add <zone> <count>",
	Short: "Append free slots to a zone",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := zone.ParseKind(args[0])
		if err != nil {
			return err
		}
		count, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("count %q is not a number", args[1])
		}

		svc, closeStore, err := openParking(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		added, err := svc.AddSlots(cmd.Context(), kind, count)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added %s to %s\n", slotRange(added), kind.Title())
		return nil
	},
}

func slotRange(slots []zone.Slot) string {
	switch len(slots) {
	case 0:
		return "no slots"
	case 1:
		return slots[0].ID
	default:
		return slots[0].ID + ".." + slots[len(slots)-1].ID
	}
}

func init() {
	slotsCmd.AddCommand(slotsAddCmd)
	rootCmd.AddCommand(slotsCmd)
}
