package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	xplicit "github.com/SamuelRCrider/xplicit-go"
	"github.com/SamuelRCrider/xplicit-go/config"
	"github.com/SamuelRCrider/xplicit-go/core"
)

var (
	// Global flags
	verbose      bool
	wordListPath string
	schema       string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "xplicit",
	Short: "Flag explicit lyrics in catalog spreadsheets",
	Long: `xplicit scans the lyrics column of catalog workbooks for a list of explicit
words and marks the version label of every matching row as Explicit.

Settings are read from XPLICIT_* environment variables and an optional .env
file; flags override them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if wordListPath != "" {
			cfg.WordListPath = wordListPath
		}
		if schema != "" {
			cfg.Schema = schema
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(level)
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&wordListPath, "words", "", "YAML word list (default: built-in list)")
	rootCmd.PersistentFlags().StringVar(&schema, "schema", "", "Required fields: basic or catalog")

	rootCmd.AddCommand(scanCmd, watchCmd, serveCmd, wordsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRunner builds a Runner from the loaded configuration. The returned
// audit logger must be closed by the caller.
func newRunner() (*xplicit.Runner, *core.WordList, *core.AuditLogger, error) {
	list, err := cfg.LoadWords()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load word list: %w", err)
	}

	audit, err := core.NewAuditLogger(cfg.AuditConfig())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open audit log: %w", err)
	}

	logger.Debug("word list loaded",
		zap.Int("words", len(list.Words)),
		zap.String("hash", list.Hash()))

	runner := xplicit.NewRunner(list.Words,
		xplicit.WithLogger(logger),
		xplicit.WithAudit(audit),
		xplicit.WithWorkers(cfg.Workers),
		xplicit.WithSchema(cfg.TransformSchema()),
	)
	return runner, list, audit, nil
}
