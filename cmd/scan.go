package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	xplicit "github.com/SamuelRCrider/xplicit-go"
)

var scanOutputDir string

var scanCmd = &cobra.Command{
	Use:   "scan [file.xlsx...]",
	Short: "Process workbooks and write modified copies and the change report",
	Long: `Processes every workbook given. Each file is handled independently: a file
that cannot be read or lacks a required column is reported and skipped.

A single successful file is written as modified_<name>; several are bundled
into modified_excel_files.zip. The change report is written only when at
least one row was rewritten.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanOutputDir, "output", "o", "", "Output directory (default: XPLICIT_OUTPUT_DIR)")
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner, _, audit, err := newRunner()
	if err != nil {
		return err
	}
	defer audit.Close()

	result := runner.RunFiles(ctx, args)

	out := cmd.OutOrStdout()
	for _, line := range result.Messages() {
		fmt.Fprintln(out, line)
	}

	dir := scanOutputDir
	if dir == "" {
		dir = cfg.OutputDir
	}
	written, err := xplicit.WriteOutputs(result, dir, cfg.ReportName)
	if err != nil {
		return err
	}
	for _, path := range written.Paths() {
		fmt.Fprintf(out, "Wrote %s\n", path)
	}

	if failed := len(result.Failures()); failed == len(result.Outcomes) {
		return fmt.Errorf("all %d files failed", failed)
	}
	return nil
}
