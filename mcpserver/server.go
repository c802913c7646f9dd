// Package mcpserver exposes lyric scanning and workbook processing as MCP
// tools for agent clients.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	xplicit "github.com/SamuelRCrider/xplicit-go"
	"github.com/SamuelRCrider/xplicit-go/core"
)

const (
	ServerName    = "xplicit"
	ServerVersion = "1.0.0"

	ToolScanLyrics     = "scan_lyrics"
	ToolRewriteVersion = "rewrite_version"
	ToolCheckRow       = "check_row"
	ToolProcessFiles   = "process_files"
)

// Server serves the xplicit tools
type Server struct {
	words      []string
	runner     *xplicit.Runner
	outputDir  string
	reportName string
	limiter    *RateLimiter
	requestLog *RequestLogger
	logger     *zap.Logger
	mcp        *server.MCPServer
}

// Option configures a Server
type Option func(*Server)

// WithOutputDir sets where process_files writes its outputs
func WithOutputDir(dir string) Option {
	return func(s *Server) {
		s.outputDir = dir
	}
}

// WithReportName sets the report file name written by process_files
func WithReportName(name string) Option {
	return func(s *Server) {
		s.reportName = name
	}
}

// WithRateLimit caps calls per tool per minute; zero disables limiting
func WithRateLimit(perMinute int) Option {
	return func(s *Server) {
		if perMinute > 0 {
			s.limiter = NewRateLimiter(perMinute, time.Minute)
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Server using words as the default search list and runner
// for process_files
func New(words []string, runner *xplicit.Runner, opts ...Option) *Server {
	s := &Server{
		words:     words,
		runner:    runner,
		outputDir: "output",
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.requestLog = NewRequestLogger(s.logger)

	s.mcp = server.NewMCPServer(ServerName, ServerVersion)
	s.mcp.AddTool(mcp.NewTool(ToolScanLyrics,
		mcp.WithDescription("Find which search words occur as whole words in lyrics"),
		mcp.WithString("lyrics", mcp.Required(), mcp.Description("Lyrics text to scan")),
		mcp.WithString("words", mcp.Description("Comma-separated search words; defaults to the configured list")),
	), s.wrap(ToolScanLyrics, s.handleScanLyrics))

	s.mcp.AddTool(mcp.NewTool(ToolRewriteVersion,
		mcp.WithDescription("Rewrite a version label, marking its first token as Explicit"),
		mcp.WithString("version", mcp.Required(), mcp.Description("Comma-separated version label")),
		mcp.WithBoolean("explicit", mcp.Required(), mcp.Description("Whether explicit content was found")),
	), s.wrap(ToolRewriteVersion, s.handleRewriteVersion))

	s.mcp.AddTool(mcp.NewTool(ToolCheckRow,
		mcp.WithDescription("Scan lyrics and return the matched words and the resulting version label"),
		mcp.WithString("lyrics", mcp.Required(), mcp.Description("Lyrics text to scan")),
		mcp.WithString("version", mcp.Required(), mcp.Description("Current version label")),
		mcp.WithString("words", mcp.Description("Comma-separated search words; defaults to the configured list")),
	), s.wrap(ToolCheckRow, s.handleCheckRow))

	s.mcp.AddTool(mcp.NewTool(ToolProcessFiles,
		mcp.WithDescription("Process .xlsx workbooks and write modified copies and the change report"),
		mcp.WithString("paths", mcp.Required(), mcp.Description("Comma-separated workbook paths")),
	), s.wrap(ToolProcessFiles, s.handleProcessFiles))

	return s
}

// MCP returns the underlying MCP server
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// ServeStdio serves the tools over stdin and stdout until the input closes
func (s *Server) ServeStdio() error {
	s.logger.Info("serving MCP tools over stdio", zap.Int("words", len(s.words)))
	if err := server.ServeStdio(s.mcp); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

type toolFunc func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// wrap applies rate limiting and request logging and converts the result to
// a JSON text result or an error result
func (s *Server) wrap(tool string, fn toolFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		requestID := uuid.NewString()
		start := time.Now()
		args := request.Params.Arguments
		s.requestLog.LogRequest(requestID, tool, args)

		var err error
		var out interface{}
		if s.limiter != nil {
			if ok, count, reset := s.limiter.Allow(tool); !ok {
				err = newToolError(ErrorCategoryRateLimit, tool, requestID,
					fmt.Errorf("rate limit exceeded: %d calls, resets at %s", count, reset.Format(time.RFC3339)))
			}
		}
		if err == nil {
			out, err = fn(ctx, args)
		}

		s.requestLog.LogResponse(requestID, tool, time.Since(start), err)
		if err != nil {
			var toolErr *ToolError
			if !errors.As(err, &toolErr) {
				err = newToolError(ErrorCategoryProcessing, tool, requestID, err)
			} else if toolErr.RequestID == "" {
				toolErr.RequestID = requestID
			}
			return mcp.NewToolResultError(err.Error()), nil
		}

		data, err := json.Marshal(out)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s result: %w", tool, err)
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

// ScanResult is returned by scan_lyrics
type ScanResult struct {
	Words    []string `json:"words"`
	Explicit bool     `json:"explicit"`
}

// RewriteResult is returned by rewrite_version
type RewriteResult struct {
	Version string `json:"version"`
	Changed bool   `json:"changed"`
}

// RowResult is returned by check_row
type RowResult struct {
	Words           []string `json:"words"`
	OriginalVersion string   `json:"original_version"`
	NewVersion      string   `json:"new_version"`
	Changed         bool     `json:"changed"`
}

// FileSummary describes one workbook handled by process_files
type FileSummary struct {
	Source  string `json:"source"`
	Changes int    `json:"changes"`
	Error   string `json:"error,omitempty"`
}

// ProcessResult is returned by process_files
type ProcessResult struct {
	RunID      string        `json:"run_id"`
	Files      []FileSummary `json:"files"`
	ReportRows int           `json:"report_rows"`
	Outputs    []string      `json:"outputs"`
	Messages   []string      `json:"messages"`
}

func (s *Server) handleScanLyrics(_ context.Context, args map[string]interface{}) (interface{}, error) {
	lyrics, err := requireString(ToolScanLyrics, args, "lyrics")
	if err != nil {
		return nil, err
	}
	matched := core.ScanLyrics(lyrics, s.wordsFrom(args))
	return ScanResult{Words: matched, Explicit: len(matched) > 0}, nil
}

func (s *Server) handleRewriteVersion(_ context.Context, args map[string]interface{}) (interface{}, error) {
	version, err := requireString(ToolRewriteVersion, args, "version")
	if err != nil {
		return nil, err
	}
	explicit, ok := args["explicit"].(bool)
	if !ok {
		return nil, newToolError(ErrorCategoryValidation, ToolRewriteVersion, "",
			fmt.Errorf("argument explicit must be a boolean, got %T", args["explicit"]))
	}
	rewritten := core.RewriteVersion(version, explicit)
	return RewriteResult{Version: rewritten, Changed: rewritten != version}, nil
}

func (s *Server) handleCheckRow(_ context.Context, args map[string]interface{}) (interface{}, error) {
	lyrics, err := requireString(ToolCheckRow, args, "lyrics")
	if err != nil {
		return nil, err
	}
	version, err := requireString(ToolCheckRow, args, "version")
	if err != nil {
		return nil, err
	}

	matched := core.ScanLyrics(lyrics, s.wordsFrom(args))
	rewritten := core.RewriteVersion(version, len(matched) > 0)
	return RowResult{
		Words:           matched,
		OriginalVersion: version,
		NewVersion:      rewritten,
		Changed:         rewritten != version,
	}, nil
}

func (s *Server) handleProcessFiles(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	raw, err := requireString(ToolProcessFiles, args, "paths")
	if err != nil {
		return nil, err
	}
	paths := splitList(raw)
	if len(paths) == 0 {
		return nil, newToolError(ErrorCategoryValidation, ToolProcessFiles, "", errors.New("no paths given"))
	}

	result := s.runner.RunFiles(ctx, paths)
	written, err := xplicit.WriteOutputs(result, s.outputDir, s.reportName)
	if err != nil {
		return nil, err
	}

	summary := ProcessResult{
		RunID:      result.RunID,
		Files:      make([]FileSummary, 0, len(result.Outcomes)),
		ReportRows: len(result.Report.Rows),
		Outputs:    written.Paths(),
		Messages:   result.Messages(),
	}
	for _, o := range result.Outcomes {
		fs := FileSummary{Source: o.Source}
		if o.Failed() {
			fs.Error = o.Err.Error()
		} else {
			fs.Changes = len(o.Result.Records)
		}
		summary.Files = append(summary.Files, fs)
	}
	return summary, nil
}

// wordsFrom returns the words argument when given, else the default list
func (s *Server) wordsFrom(args map[string]interface{}) []string {
	switch v := args["words"].(type) {
	case string:
		if words := core.NormalizeWords(splitList(v)); len(words) > 0 {
			return words
		}
	case []interface{}:
		list := make([]string, 0, len(v))
		for _, item := range v {
			if w, ok := item.(string); ok {
				list = append(list, w)
			}
		}
		if words := core.NormalizeWords(list); len(words) > 0 {
			return words
		}
	}
	return s.words
}

func requireString(tool string, args map[string]interface{}, name string) (string, error) {
	v, ok := args[name]
	if !ok {
		return "", newToolError(ErrorCategoryValidation, tool, "", fmt.Errorf("missing required argument %s", name))
	}
	str, ok := v.(string)
	if !ok {
		return "", newToolError(ErrorCategoryValidation, tool, "", fmt.Errorf("argument %s must be a string, got %T", name, v))
	}
	return str, nil
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
