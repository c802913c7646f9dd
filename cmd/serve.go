package main

import (
	"github.com/spf13/cobra"

	"github.com/SamuelRCrider/xplicit-go/mcpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scanning tools to MCP clients over stdio",
	Long: `Starts an MCP server on stdin/stdout exposing scan_lyrics, rewrite_version,
check_row and process_files. Logs go to stderr.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	runner, list, audit, err := newRunner()
	if err != nil {
		return err
	}
	defer audit.Close()

	s := mcpserver.New(list.Words, runner,
		mcpserver.WithOutputDir(cfg.OutputDir),
		mcpserver.WithReportName(cfg.ReportName),
		mcpserver.WithRateLimit(cfg.MCPRequestsPerMinute),
		mcpserver.WithLogger(logger),
	)
	return s.ServeStdio()
}
