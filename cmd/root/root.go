// Package root contains the root command for the application.
package root

import (
	"ventus/travel-enrich/internal/common"
	"ventus/travel-enrich/internal/config"
	"ventus/travel-enrich/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags are the flags shared by multiple commands.
type CommonFlags struct {
	Input   string
	Output  string
	HomeZip string
}

var (
	// Log is the shared logrus instance for commands.
	Log = logrus.New()

	// Cfg is the loaded application configuration, populated before any
	// subcommand runs.
	Cfg = &config.Config{}

	// SharedFlags holds the common flag values.
	SharedFlags = CommonFlags{}

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "travel-enrich",
		Short: "Travel-aware transaction reclassification for the Ventus rewards card.",
		Long: `travel-enrich partitions categorized card transactions into home-zone and
travel-candidate sets, streams the candidates through a reclassification
service, and merges the returned travel annotations back onto the records.
It can also host the reclassification service itself (see "serve").`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to travel-enrich!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			Cfg = cfg
			common.SetCSVDelimiter(cfg.Delimiter())

			level, err := logrus.ParseLevel(cfg.Log.Level)
			if err != nil {
				level = logrus.InfoLevel
			}
			Log.SetLevel(level)
			if cfg.Log.Format == "json" {
				Log.SetFormatter(&logrus.JSONFormatter{})
			} else {
				Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			}
		},
	}
)

// Logger adapts the shared logrus instance to the internal Logger interface.
func Logger() logging.Logger {
	return logging.FromLogrus(Log)
}

// Init registers the persistent flags on the root command.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input transactions file (.csv or .json)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (.csv or .json)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.HomeZip, "home-zip", "z", "", "Home postal code (overrides the home_zip column)")
}
