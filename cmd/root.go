package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/visitplan/visitplan/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "visitplan",
	Short: "Inspection visit planning service",
	Long: `visitplan turns the customer master and the confirmed orders into a
week-by-week visit plan: matched orders are geocoded, clustered by
territory, assigned to inspectors and scheduled around the working
calendar. A renewal contact list is produced alongside the plan.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (defaults to built-in settings)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
