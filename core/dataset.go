package core

import "strings"

// Field names the transformer looks up in a dataset header
const (
	FieldLyrics  = "lyrics"
	FieldVersion = "version"
	FieldVolume  = "volume"
	FieldLibrary = "library"
)

// HeaderOffset converts a zero-based data row index into the physical
// spreadsheet row: one for the header row and one for 1-based numbering.
const HeaderOffset = 2

// Dataset is one tabular source: a header row followed by data rows
type Dataset struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// ColumnIndex returns the index of the header matching name, ignoring case
// and surrounding whitespace, or -1 if there is none
func (d *Dataset) ColumnIndex(name string) int {
	for i, header := range d.Headers {
		if strings.EqualFold(strings.TrimSpace(header), name) {
			return i
		}
	}
	return -1
}

// Cell returns the value at row, col. Rows shorter than the header read as
// empty cells.
func (d *Dataset) Cell(row, col int) string {
	if row < 0 || row >= len(d.Rows) || col < 0 || col >= len(d.Rows[row]) {
		return ""
	}
	return d.Rows[row][col]
}

// Clone returns a deep copy of the dataset
func (d *Dataset) Clone() *Dataset {
	clone := &Dataset{
		Name:    d.Name,
		Headers: append([]string(nil), d.Headers...),
		Rows:    make([][]string, len(d.Rows)),
	}
	for i, row := range d.Rows {
		clone.Rows[i] = append([]string(nil), row...)
	}
	return clone
}

// setCell writes value at row, col, growing a short row when needed
func (d *Dataset) setCell(row, col int, value string) {
	for len(d.Rows[row]) <= col {
		d.Rows[row] = append(d.Rows[row], "")
	}
	d.Rows[row][col] = value
}
