package core

import (
	"strconv"
	"strings"

	"github.com/SamuelRCrider/xplicit-go/utils"
)

// ErrorPlaceholder replaces a report cell whose source field is malformed
const ErrorPlaceholder = "Error"

// ReportHeader is the fixed column schema of the consolidated report
var ReportHeader = []string{
	"File Name",
	"Row",
	"Volume",
	"Library",
	"Original Version",
	"New Version",
	"Explicit Words Found",
}

// FileChanges groups the change records produced for one source file
type FileChanges struct {
	Source  string
	Records []utils.ChangeRecord
}

// ReportRow is one flattened change event
type ReportRow struct {
	FileName        string `json:"file_name"`
	Row             string `json:"row"`
	Volume          string `json:"volume"`
	Library         string `json:"library"`
	OriginalVersion string `json:"original_version"`
	NewVersion      string `json:"new_version"`
	ExplicitWords   string `json:"explicit_words"`
}

// Values returns the row's cells in ReportHeader order
func (r ReportRow) Values() []string {
	return []string{r.FileName, r.Row, r.Volume, r.Library, r.OriginalVersion, r.NewVersion, r.ExplicitWords}
}

// Report is the flat table of change events across all processed files
type Report struct {
	Rows []ReportRow

	// Malformed lists records that were flattened with placeholders
	Malformed []*RecordMalformedError
}

// Aggregate flattens the change records of every file into one report,
// in file order and then record order. A malformed record yields a row with
// placeholder cells and never stops the aggregation.
func Aggregate(files []FileChanges) *Report {
	report := &Report{Rows: []ReportRow{}}

	for _, file := range files {
		for i, record := range file.Records {
			row, bad := flattenRecord(file.Source, record)
			report.Rows = append(report.Rows, row)
			if len(bad) > 0 {
				report.Malformed = append(report.Malformed, &RecordMalformedError{
					Source: file.Source,
					Index:  i,
					Fields: bad,
				})
			}
		}
	}

	return report
}

// FormatWords renders matched words for the report's last column
func FormatWords(words []string) string {
	return strings.Join(words, ", ")
}

// flattenRecord converts a record into a report row, returning the names of
// the columns that had to be replaced with the placeholder
func flattenRecord(source string, record utils.ChangeRecord) (ReportRow, []string) {
	var bad []string
	field := func(column, value string, ok bool) string {
		if !ok {
			bad = append(bad, column)
			return ErrorPlaceholder
		}
		return value
	}

	fileName := record.Source
	if fileName == "" {
		fileName = source
	}

	row := ReportRow{
		FileName:        field(ReportHeader[0], fileName, fileName != ""),
		Row:             field(ReportHeader[1], strconv.Itoa(record.Row), record.Row >= HeaderOffset),
		Volume:          record.Volume,
		Library:         record.Library,
		OriginalVersion: record.OriginalVersion,
		NewVersion:      field(ReportHeader[5], record.NewVersion, record.NewVersion != "" && record.NewVersion != record.OriginalVersion),
		ExplicitWords:   field(ReportHeader[6], FormatWords(record.Words), len(record.Words) > 0),
	}

	return row, bad
}
