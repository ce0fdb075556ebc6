package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var trackCmd = &cobra.Command{
	Use:   "track <tracking-number>",
	Short: "Track a shipment",
	Long:  `Look up the current tracking information for a shipment.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTrack,
}

func init() {
	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
	trackingNumber := args[0]

	registry, err := newRegistry()
	if err != nil {
		return err
	}

	carrier, ok := registry.Find(trackingNumber)
	if !ok {
		return fmt.Errorf("no carrier recognizes tracking number %q", trackingNumber)
	}

	info, err := carrier.Track(cmd.Context(), trackingNumber)
	if err != nil {
		return err
	}

	f := newFormatter(noColor)
	if jsonOutput {
		return f.printJSON(info)
	}
	f.printTrackingInfo(info)
	return nil
}
