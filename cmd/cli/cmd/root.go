package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aheadley/packagetrack/internal/carriers"
	"github.com/aheadley/packagetrack/internal/config"
)

var (
	jsonOutput bool
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "packagetrack",
	Short: "Track packages across carriers",
	Long: `packagetrack looks up shipment tracking information from supported
carriers. The carrier is picked automatically from the tracking number's
format.`,
	Version: "1.0.0",
}

// Execute adds all child commands to the root command and runs it. Called by
// main.main().
func Execute() {
	fang.Execute(context.Background(), rootCmd)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of formatted text")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable color output")
}

// newRegistry loads configuration and builds the carrier dispatch table.
func newRegistry() (*carriers.Registry, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	return carriers.DefaultRegistry(carriers.AmazonConfig{
		Timezone:  cfg.Carriers.Amazon.Timezone,
		UserAgent: cfg.Carriers.Amazon.UserAgent,
		Timeout:   cfg.Carriers.Amazon.Timeout,
	}, logger), nil
}
