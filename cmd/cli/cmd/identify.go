package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var identifyCmd = &cobra.Command{
	Use:   "identify <tracking-number>",
	Short: "Identify which carrier a tracking number belongs to",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdentify,
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	trackingNumber := args[0]

	registry, err := newRegistry()
	if err != nil {
		return err
	}

	carrier, ok := registry.Find(trackingNumber)
	if !ok {
		return fmt.Errorf("no carrier recognizes tracking number %q", trackingNumber)
	}

	fmt.Printf("%s (%s)\n", carrier.ShortName(), carrier.LongName())
	return nil
}
