package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	xplicit "github.com/SamuelRCrider/xplicit-go"
	"github.com/SamuelRCrider/xplicit-go/store"
	"github.com/SamuelRCrider/xplicit-go/watch"
)

var watchDir string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Process workbooks as they are dropped into a directory",
	Long: `Watches a directory for new .xlsx files. A file is processed once its size
and modification time stop changing, and is recorded in a SQLite database so
it is never processed twice. Outputs are written to the output directory.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchDir, "dir", "d", "", "Directory to watch (default: XPLICIT_WATCH_DIR)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dir := watchDir
	if dir == "" {
		dir = cfg.WatchDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create watch directory: %w", err)
	}

	runner, _, audit, err := newRunner()
	if err != nil {
		return err
	}
	defer audit.Close()

	fs, err := store.NewSQLiteStore(cfg.DBPath(), logger)
	if err != nil {
		return err
	}
	defer fs.Close()

	w := watch.New(dir, fs, watchProcessor(runner, logger, cfg.OutputDir, cfg.ReportName),
		watch.WithInterval(cfg.StabilityInterval),
		watch.WithLogger(logger),
	)
	return w.Run(ctx)
}

// watchProcessor processes one dropped workbook per run. Each run writes its
// report under a name derived from the workbook, so reports from earlier
// drops stay in place.
func watchProcessor(runner *xplicit.Runner, logger *zap.Logger, outputDir, reportName string) watch.ProcessFunc {
	return func(ctx context.Context, path string) (int, error) {
		result := runner.RunFiles(ctx, []string{path})
		for _, line := range result.Messages() {
			logger.Info(line, zap.String("path", path))
		}
		if failures := result.Failures(); len(failures) > 0 {
			return 0, failures[0].Err
		}
		if _, err := xplicit.WriteOutputs(result, outputDir, xplicit.SourceReportName(path, reportName)); err != nil {
			return 0, err
		}
		return len(result.Report.Rows), nil
	}
}
