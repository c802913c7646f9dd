package xplicit

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SamuelRCrider/xplicit-go/sheet"
)

const (
	// ArchiveName is the bundle written when more than one file succeeded
	ArchiveName = "modified_excel_files.zip"

	// DefaultReportName is used when no report name is configured
	DefaultReportName = "Explicit Report.xlsx"
)

// SourceReportName returns the report name for a run over the single
// workbook source: reportName prefixed with the workbook's base name
func SourceReportName(source, reportName string) string {
	if reportName == "" {
		reportName = DefaultReportName
	}
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_" + reportName
}

// Written lists the paths produced by WriteOutputs
type Written struct {
	// Workbook is set when exactly one file succeeded
	Workbook string

	// Archive is set when several files succeeded
	Archive string

	// Report is set when at least one row was rewritten
	Report string
}

// Paths returns every written path
func (w *Written) Paths() []string {
	var paths []string
	for _, p := range []string{w.Workbook, w.Archive, w.Report} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// WriteOutputs writes the modified workbook of every successful source to
// dir, bundled into ArchiveName when there are several, and the change
// report when any row was rewritten.
func WriteOutputs(result *RunResult, dir, reportName string) (*Written, error) {
	if reportName == "" {
		reportName = DefaultReportName
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var files []sheet.File
	for _, o := range result.Succeeded() {
		var buf bytes.Buffer
		var err error
		if len(o.workbook) > 0 {
			err = sheet.PatchWorkbook(&buf, bytes.NewReader(o.workbook), o.Result.Dataset, o.Result.ChangedRows)
		} else {
			err = sheet.WriteDataset(&buf, o.Result.Dataset, o.Result.ChangedRows)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", o.Source, err)
		}
		files = append(files, sheet.File{Name: o.Source, Data: buf.Bytes()})
	}

	written := &Written{}

	switch {
	case len(files) == 1:
		path := filepath.Join(dir, sheet.OutputName(files[0].Name))
		if err := os.WriteFile(path, files[0].Data, 0644); err != nil {
			return nil, fmt.Errorf("failed to save workbook: %w", err)
		}
		written.Workbook = path
	case len(files) > 1:
		var buf bytes.Buffer
		if err := sheet.WriteArchive(&buf, files); err != nil {
			return nil, err
		}
		path := filepath.Join(dir, ArchiveName)
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			return nil, fmt.Errorf("failed to save archive: %w", err)
		}
		written.Archive = path
	}

	if result.HasChanges() {
		var buf bytes.Buffer
		if err := sheet.WriteReport(&buf, result.Report); err != nil {
			return nil, err
		}
		path := filepath.Join(dir, reportName)
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			return nil, fmt.Errorf("failed to save report: %w", err)
		}
		written.Report = path
	}

	return written, nil
}
