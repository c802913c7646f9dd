package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	xplicit "github.com/SamuelRCrider/xplicit-go"
	"github.com/SamuelRCrider/xplicit-go/core"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	verbose, wordListPath, schema = false, "", ""
	scanOutputDir, watchDir = "", ""
	wordsAdd, wordsRemove, wordsSave = nil, nil, ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XPLICIT_AUDIT_LOG", filepath.Join(dir, "logs", "audit.log"))
	t.Setenv("XPLICIT_LOG_LEVEL", "error")
	return dir
}

func TestWordsCommand(t *testing.T) {
	dir := isolate(t)
	saved := filepath.Join(dir, "words.yaml")

	out, err := execute(t, "words", "--add", "Heck", "--remove", "piss", "--save", saved)
	require.NoError(t, err)
	assert.Contains(t, out, "heck\n")
	assert.NotContains(t, out, "piss\n")
	assert.Contains(t, out, "Saved 19 words")

	out, err = execute(t, "words", "--words", saved)
	require.NoError(t, err)
	assert.Contains(t, out, "19 words, hash ")
}

func TestScanCommand(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "catalog.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]string{"Lyrics", "Version", "Volume", "Library"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]string{"oh shit", "Full Mix", "V1", "Rock"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	out, err := execute(t, "scan", "-o", filepath.Join(dir, "out"), path)
	require.NoError(t, err)
	assert.Contains(t, out, "Processing Report for catalog.xlsx:")
	assert.Contains(t, out, "Row 2: 'Full Mix' became 'Full Mix Explicit' >>> [shit]")

	_, err = os.Stat(filepath.Join(dir, "out", "modified_catalog.xlsx"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "out", "Explicit Report.xlsx"))
	assert.NoError(t, err)
}

func TestScanCommandAllFailed(t *testing.T) {
	dir := isolate(t)

	out, err := execute(t, "scan", "-o", filepath.Join(dir, "out"), filepath.Join(dir, "missing.xlsx"))
	assert.ErrorContains(t, err, "all 1 files failed")
	assert.Contains(t, out, "An error occurred processing")
}

func TestInvalidSchemaFlag(t *testing.T) {
	isolate(t)
	_, err := execute(t, "words", "--schema", "strict")
	assert.ErrorContains(t, err, "Schema failed oneof")
}

func writeCatalog(t *testing.T, path string, lyrics string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]string{"Lyrics", "Version", "Volume", "Library"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]string{lyrics, "Full Mix", "V1", "Rock"}))
	require.NoError(t, f.SaveAs(path))
}

func reportRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Processing Report")
	require.NoError(t, err)
	return rows
}

func TestWatchProcessorKeepsEveryReport(t *testing.T) {
	dir := isolate(t)
	in := filepath.Join(dir, "inbox")
	out := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(in, 0755))

	writeCatalog(t, filepath.Join(in, "a.xlsx"), "oh shit")
	writeCatalog(t, filepath.Join(in, "b.xlsx"), "clean lyrics")
	writeCatalog(t, filepath.Join(in, "c.xlsx"), "fuck that")

	process := watchProcessor(xplicit.NewRunner(core.DefaultWordList().Words), zap.NewNop(), out, "Explicit Report.xlsx")
	for _, tc := range []struct {
		name    string
		changes int
	}{{"a.xlsx", 1}, {"b.xlsx", 0}, {"c.xlsx", 1}} {
		changes, err := process(context.Background(), filepath.Join(in, tc.name))
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.changes, changes, tc.name)
	}

	a := reportRows(t, filepath.Join(out, "a_Explicit Report.xlsx"))
	require.Len(t, a, 2)
	assert.Equal(t, "a.xlsx", a[1][0])

	c := reportRows(t, filepath.Join(out, "c_Explicit Report.xlsx"))
	require.Len(t, c, 2)
	assert.Equal(t, "c.xlsx", c[1][0])

	_, err := os.Stat(filepath.Join(out, "b_Explicit Report.xlsx"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(out, "Explicit Report.xlsx"))
	assert.True(t, os.IsNotExist(err))

	for _, name := range []string{"modified_a.xlsx", "modified_b.xlsx", "modified_c.xlsx"} {
		_, err := os.Stat(filepath.Join(out, name))
		assert.NoError(t, err, name)
	}
}
