package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowrun/flow/pkg/config"
)

var (
	configPath string
	workerFlag int
	logLevel   string
	globalLog  *slog.Logger
	globalCfg  *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "flowdemo",
		Short: "Runs example dataflow pipelines on the flow engine",
		Long:  `flowdemo exercises the flow engine end to end: timers, workers, ports, and the request/response service helper, one scenario per subcommand.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadGlobals()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (optional)")
	rootCmd.PersistentFlags().IntVar(&workerFlag, "workers", 0, "override the worker count from config (0 = use config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the log level from config (debug, info, warn, error)")

	rootCmd.AddCommand(sumCmd())
	rootCmd.AddCommand(backpressureCmd())
	rootCmd.AddCommand(sampleCmd())
	rootCmd.AddCommand(initFailureCmd())
	rootCmd.AddCommand(timeoutCmd())
	rootCmd.AddCommand(serviceCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadGlobals() error {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg = config.Default()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if workerFlag > 0 {
		cfg.Workers = workerFlag
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	globalCfg = cfg
	globalLog = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	return nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
