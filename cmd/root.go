package cmd

import (
	"github.com/spf13/cobra"

	"github.com/EngindalgaMaku/dersplan/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "dersplan",
	Short: "School timetable scheduling engine",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// loadConfig reads the configured file or falls back to defaults when no
// --config flag was given.
func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	return config.Load(cfgPath)
}
