package cmd

import (
	"github.com/spf13/cobra"
)

var carriersCmd = &cobra.Command{
	Use:   "carriers",
	Short: "List supported carriers",
	RunE:  runCarriers,
}

func init() {
	rootCmd.AddCommand(carriersCmd)
}

func runCarriers(cmd *cobra.Command, args []string) error {
	registry, err := newRegistry()
	if err != nil {
		return err
	}

	f := newFormatter(noColor)
	if jsonOutput {
		type carrierInfo struct {
			ShortName string `json:"short_name"`
			LongName  string `json:"long_name"`
		}
		var out []carrierInfo
		for _, c := range registry.Carriers() {
			out = append(out, carrierInfo{c.ShortName(), c.LongName()})
		}
		return f.printJSON(out)
	}
	f.printCarriers(registry.Carriers())
	return nil
}
