package cmd

import (
	"os"

	"github.com/mdlayher/wapi"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configPath string

	v      *viper.Viper
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "wapi",
	Short:         "Inspect and configure wireless interfaces",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		v, err = loadConfig(configPath)
		if err != nil {
			return err
		}

		flags := cmd.Root().PersistentFlags()
		for key, name := range map[string]string{
			"scan.interval":    "scan-interval",
			"scan.timeout":     "scan-timeout",
			"scan.buffer-size": "scan-buffer-size",
			"scan.retries":     "scan-retries",
			"logging.level":    "log-level",
			"logging.format":   "log-format",
		} {
			if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
				return err
			}
		}

		logger, err = newLogger(v)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "configuration file")
	pf.Duration("scan-interval", wapi.DefaultScanPollInterval, "delay between scan status polls")
	pf.Duration("scan-timeout", wapi.DefaultScanTimeout, "time to wait for scan results")
	pf.Int("scan-buffer-size", wapi.DefaultScanBufferSize, "initial scan result buffer size")
	pf.Int("scan-retries", 3, "scan attempts repeated after a timeout")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "console", "log format (console, json)")
}

// Execute runs the wapi command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Error("command failed", zap.Error(err))
		} else {
			rootCmd.PrintErrln("Error:", err)
		}

		os.Exit(1)
	}
}

// newClient opens a wapi.Client configured from the command line.
func newClient() (*wapi.Client, error) {
	return wapi.New(clientConfig(v, logger))
}
