package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	xplicit "github.com/SamuelRCrider/xplicit-go"
)

var testWords = []string{"shit", "fuck", "ass"}

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	return New(testWords, xplicit.NewRunner(testWords), opts...)
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]interface{}) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args

	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func TestScanLyricsTool(t *testing.T) {
	s := newTestServer(t)
	handler := s.wrap(ToolScanLyrics, s.handleScanLyrics)

	text, isErr := call(t, handler, map[string]interface{}{"lyrics": "You dumb SHIT! classic rock"})
	require.False(t, isErr)

	var result ScanResult
	require.NoError(t, json.Unmarshal([]byte(text), &result))
	assert.Equal(t, ScanResult{Words: []string{"shit"}, Explicit: true}, result)

	text, isErr = call(t, handler, map[string]interface{}{"lyrics": "heck no", "words": "Heck, darn"})
	require.False(t, isErr)
	require.NoError(t, json.Unmarshal([]byte(text), &result))
	assert.Equal(t, []string{"heck"}, result.Words)

	text, isErr = call(t, handler, map[string]interface{}{})
	assert.True(t, isErr)
	assert.Contains(t, text, "[validation] scan_lyrics: missing required argument lyrics")
}

func TestRewriteVersionTool(t *testing.T) {
	s := newTestServer(t)
	handler := s.wrap(ToolRewriteVersion, s.handleRewriteVersion)

	text, isErr := call(t, handler, map[string]interface{}{"version": "Full Mix, Clean", "explicit": true})
	require.False(t, isErr)
	var result RewriteResult
	require.NoError(t, json.Unmarshal([]byte(text), &result))
	assert.Equal(t, RewriteResult{Version: "Full Mix Explicit, Clean", Changed: true}, result)

	text, isErr = call(t, handler, map[string]interface{}{"version": "Full Mix", "explicit": "yes"})
	assert.True(t, isErr)
	assert.Contains(t, text, "must be a boolean")
}

func TestCheckRowTool(t *testing.T) {
	s := newTestServer(t)
	handler := s.wrap(ToolCheckRow, s.handleCheckRow)

	text, isErr := call(t, handler, map[string]interface{}{"lyrics": "classic rock", "version": "Main"})
	require.False(t, isErr)
	var result RowResult
	require.NoError(t, json.Unmarshal([]byte(text), &result))
	assert.Equal(t, RowResult{Words: []string{}, OriginalVersion: "Main", NewVersion: "Main", Changed: false}, result)
}

func TestRateLimitedTool(t *testing.T) {
	s := newTestServer(t, WithRateLimit(1))
	handler := s.wrap(ToolScanLyrics, s.handleScanLyrics)
	args := map[string]interface{}{"lyrics": "fine"}

	_, isErr := call(t, handler, args)
	assert.False(t, isErr)

	text, isErr := call(t, handler, args)
	assert.True(t, isErr)
	assert.Contains(t, text, "[rate_limit]")
}

func TestProcessFilesTool(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")

	path := filepath.Join(in, "catalog.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]string{"Lyrics", "Version", "Volume", "Library"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]string{"what the fuck", "Full Mix", "V1", "Rock"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	s := newTestServer(t, WithOutputDir(out), WithReportName("report.xlsx"))
	handler := s.wrap(ToolProcessFiles, s.handleProcessFiles)

	text, isErr := call(t, handler, map[string]interface{}{"paths": path + ", " + filepath.Join(in, "missing.xlsx")})
	require.False(t, isErr, text)

	var result ProcessResult
	require.NoError(t, json.Unmarshal([]byte(text), &result))
	assert.NotEmpty(t, result.RunID)
	require.Len(t, result.Files, 2)
	assert.Equal(t, FileSummary{Source: "catalog.xlsx", Changes: 1}, result.Files[0])
	assert.NotEmpty(t, result.Files[1].Error)
	assert.Equal(t, 1, result.ReportRows)
	assert.ElementsMatch(t, []string{
		filepath.Join(out, "modified_catalog.xlsx"),
		filepath.Join(out, "report.xlsx"),
	}, result.Outputs)

	for _, p := range result.Outputs {
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}

	text, isErr = call(t, handler, map[string]interface{}{"paths": " , "})
	assert.True(t, isErr)
	assert.Contains(t, text, "no paths given")
}
