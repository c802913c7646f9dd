package sheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/SamuelRCrider/xplicit-go/core"
)

const (
	// DatasetSheet is the worksheet name of a modified catalog workbook
	DatasetSheet = "Sheet1"

	// ReportSheet is the worksheet name of the consolidated report
	ReportSheet = "Processing Report"

	// HighlightColor fills the version cell of every rewritten row
	HighlightColor = "FFFF00"
)

// WriteDataset writes ds as a workbook to w, highlighting the version cell of
// each row listed in changedRows (physical row numbers)
func WriteDataset(w io.Writer, ds *core.Dataset, changedRows []int) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := setRow(f, DatasetSheet, 1, ds.Headers); err != nil {
		return err
	}
	for i, row := range ds.Rows {
		if err := setRow(f, DatasetSheet, i+core.HeaderOffset, row); err != nil {
			return err
		}
	}

	versionCol := ds.ColumnIndex(core.FieldVersion)
	if versionCol >= 0 && len(changedRows) > 0 {
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{HighlightColor}, Pattern: 1},
		})
		if err != nil {
			return fmt.Errorf("failed to create highlight style: %w", err)
		}

		for _, row := range changedRows {
			cell, err := excelize.CoordinatesToCellName(versionCol+1, row)
			if err != nil {
				return fmt.Errorf("invalid highlight row %d: %w", row, err)
			}
			if err := f.SetCellStyle(DatasetSheet, cell, cell, style); err != nil {
				return fmt.Errorf("failed to highlight %s: %w", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// PatchWorkbook copies the original workbook in r to w, replacing only the
// version cells of changedRows on the first worksheet with the values in ds
// and highlighting them. Every other cell keeps its type and style.
func PatchWorkbook(w io.Writer, r io.Reader, ds *core.Dataset, changedRows []int) error {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return fmt.Errorf("failed to reopen workbook %s: %w", ds.Name, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("workbook %s has no worksheets", ds.Name)
	}
	name := sheets[0]

	versionCol := ds.ColumnIndex(core.FieldVersion)
	if versionCol >= 0 {
		for _, row := range changedRows {
			cell, err := excelize.CoordinatesToCellName(versionCol+1, row)
			if err != nil {
				return fmt.Errorf("invalid highlight row %d: %w", row, err)
			}
			if err := f.SetCellStr(name, cell, ds.Cell(row-core.HeaderOffset, versionCol)); err != nil {
				return fmt.Errorf("failed to set %s: %w", cell, err)
			}
			if err := highlightCell(f, name, cell); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// highlightCell adds the highlight fill to the existing style of cell
func highlightCell(f *excelize.File, sheet, cell string) error {
	id, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return fmt.Errorf("failed to read style of %s: %w", cell, err)
	}
	style, err := f.GetStyle(id)
	if err != nil || style == nil {
		style = &excelize.Style{}
	}
	style.Fill = excelize.Fill{Type: "pattern", Color: []string{HighlightColor}, Pattern: 1}

	highlighted, err := f.NewStyle(style)
	if err != nil {
		return fmt.Errorf("failed to create highlight style: %w", err)
	}
	if err := f.SetCellStyle(sheet, cell, cell, highlighted); err != nil {
		return fmt.Errorf("failed to highlight %s: %w", cell, err)
	}
	return nil
}

// WriteReport writes the consolidated change report as a workbook to w
func WriteReport(w io.Writer, report *core.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ReportSheet); err != nil {
		return fmt.Errorf("failed to name report sheet: %w", err)
	}

	if err := setRow(f, ReportSheet, 1, core.ReportHeader); err != nil {
		return err
	}
	for i, row := range report.Rows {
		if err := setRow(f, ReportSheet, i+2, row.Values()); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(core.ReportHeader))
	if err := f.SetCellStyle(ReportSheet, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("failed to style report header: %w", err)
	}
	if err := f.SetColWidth(ReportSheet, "A", lastCol, 22); err != nil {
		return fmt.Errorf("failed to size report columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("invalid row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
