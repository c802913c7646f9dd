// Package sheet reads catalog workbooks into datasets and writes modified
// workbooks, the consolidated report and zip bundles.
package sheet

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/SamuelRCrider/xplicit-go/core"
)

// ReadFile opens an .xlsx workbook and reads its first worksheet. The raw
// workbook bytes are returned alongside the dataset for PatchWorkbook.
func ReadFile(path string) (*core.Dataset, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	ds, err := ReadDataset(bytes.NewReader(data), filepath.Base(path))
	if err != nil {
		return nil, nil, err
	}
	return ds, data, nil
}

// ReadDataset reads the first worksheet of the workbook in r. The first row
// is the header; every following row is kept, blank rows included, so that
// physical row numbers stay aligned with the file.
func ReadDataset(r io.Reader, name string) (*core.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook %s: %w", name, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no worksheets", name)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %s: %w", name, err)
	}

	ds := &core.Dataset{Name: name, Headers: []string{}, Rows: [][]string{}}
	if len(rows) == 0 {
		return ds, nil
	}

	ds.Headers = rows[0]
	ds.Rows = rows[1:]
	return ds, nil
}
