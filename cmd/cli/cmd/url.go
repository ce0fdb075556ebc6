package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var urlCmd = &cobra.Command{
	Use:   "url <tracking-number>",
	Short: "Print the carrier's tracking page URL",
	Long:  `Print the web tracking page URL for a shipment. No network call is made.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runURL,
}

func init() {
	rootCmd.AddCommand(urlCmd)
}

func runURL(cmd *cobra.Command, args []string) error {
	trackingNumber := args[0]

	registry, err := newRegistry()
	if err != nil {
		return err
	}

	carrier, ok := registry.Find(trackingNumber)
	if !ok {
		return fmt.Errorf("no carrier recognizes tracking number %q", trackingNumber)
	}

	fmt.Println(carrier.TrackingURL(trackingNumber))
	return nil
}
