package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mdlayher/wapi"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// loadConfig reads configuration from an optional file and WAPI_ environment
// variables. A missing file leaves the defaults in place.
func loadConfig(path string) (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault("scan.interval", wapi.DefaultScanPollInterval)
	v.SetDefault("scan.timeout", wapi.DefaultScanTimeout)
	v.SetDefault("scan.buffer-size", wapi.DefaultScanBufferSize)
	v.SetDefault("scan.retries", 3)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Environment variable support: WAPI_SCAN_TIMEOUT=10s
	v.SetEnvPrefix("WAPI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path == "" {
		return v, nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	return v, nil
}

// newLogger creates a zap logger from "logging.level" and "logging.format".
func newLogger(v *viper.Viper) (*zap.Logger, error) {
	level := v.GetString("logging.level")
	format := v.GetString("logging.format")

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	switch format {
	case "console", "":
		cfg = zap.NewDevelopmentConfig()
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format %q: must be \"json\" or \"console\"", format)
	}

	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	return cfg.Build()
}

// clientConfig builds a wapi.Config from the "scan" keys.
func clientConfig(v *viper.Viper, logger *zap.Logger) *wapi.Config {
	return &wapi.Config{
		Logger:           logger,
		ScanPollInterval: v.GetDuration("scan.interval"),
		ScanTimeout:      v.GetDuration("scan.timeout"),
		ScanBufferSize:   v.GetInt("scan.buffer-size"),
	}
}
