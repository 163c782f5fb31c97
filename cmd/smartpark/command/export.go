package command

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nekogravitycat/smartpark-backend/internal/parking"
)

var exportPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the parking data and bookings as a JSON snapshot",
	Long: `Export writes a read-only snapshot of every zone, every booking and
the export time. Without -o the file is named smartpark-data-YYYY-MM-DD.json
in the working directory; "-o -" writes to standard output.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, closeStore, err := openParking(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		blob, err := svc.Export(cmd.Context())
		if err != nil {
			return err
		}

		if exportPath == "-" {
			_, err = cmd.OutOrStdout().Write(append(blob, '\n'))
			return err
		}
		path := exportPath
		if path == "" {
			path = parking.ExportFilename(time.Now())
		}
		if err := os.WriteFile(path, blob, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportPath, "output", "o", "", "output file path")
	rootCmd.AddCommand(exportCmd)
}
