package core

import (
	"strings"

	"github.com/SamuelRCrider/xplicit-go/utils"
)

// Schema selects which fields a dataset must carry
type Schema string

const (
	// SchemaBasic requires only lyrics and version
	SchemaBasic Schema = "basic"

	// SchemaCatalog also requires volume and library for report context
	SchemaCatalog Schema = "catalog"
)

// RequiredFields returns the fields a dataset must have under the schema
func (s Schema) RequiredFields() []string {
	if s == SchemaBasic {
		return []string{FieldLyrics, FieldVersion}
	}
	return []string{FieldLyrics, FieldVersion, FieldVolume, FieldLibrary}
}

// TransformResult is the outcome of transforming one dataset
type TransformResult struct {
	// Dataset is a copy of the input with rewritten version labels
	Dataset *Dataset

	// ChangedRows lists physical row numbers whose version changed
	ChangedRows []int

	// Records holds one change record per changed row, in row order
	Records []utils.ChangeRecord
}

type transformOptions struct {
	schema Schema
}

// TransformOption configures Transform
type TransformOption func(*transformOptions)

// WithSchema sets the required field schema (default SchemaCatalog)
func WithSchema(schema Schema) TransformOption {
	return func(o *transformOptions) {
		o.schema = schema
	}
}

// columns maps the transformer's fields to header positions
type columns struct {
	lyrics, version, volume, library int
}

// Transform scans every row of ds for words and rewrites version labels of
// rows with explicit lyrics. The input dataset is not modified.
func Transform(ds *Dataset, words []string, sourceID string, opts ...TransformOption) (*TransformResult, error) {
	options := transformOptions{schema: SchemaCatalog}
	for _, opt := range opts {
		opt(&options)
	}

	cols, err := resolveColumns(ds, sourceID, options.schema)
	if err != nil {
		return nil, err
	}

	result := &TransformResult{
		Dataset:     ds.Clone(),
		ChangedRows: []int{},
		Records:     []utils.ChangeRecord{},
	}

	for i := range ds.Rows {
		lyrics := ds.Cell(i, cols.lyrics)
		version := ds.Cell(i, cols.version)

		matched := ScanLyrics(lyrics, words)
		newVersion := RewriteVersion(version, len(matched) > 0)
		if newVersion == version {
			continue
		}

		row := i + HeaderOffset
		result.Dataset.setCell(i, cols.version, newVersion)
		result.ChangedRows = append(result.ChangedRows, row)
		result.Records = append(result.Records, utils.ChangeRecord{
			Source:          sourceID,
			Row:             row,
			Volume:          ds.Cell(i, cols.volume),
			Library:         ds.Cell(i, cols.library),
			OriginalVersion: version,
			NewVersion:      newVersion,
			Words:           matched,
		})
	}

	return result, nil
}

func resolveColumns(ds *Dataset, sourceID string, schema Schema) (columns, error) {
	if ds == nil {
		return columns{}, &SchemaError{Source: sourceID, Missing: schema.RequiredFields(), Found: []string{}}
	}

	var missing []string
	for _, field := range schema.RequiredFields() {
		if ds.ColumnIndex(field) == -1 {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		found := make([]string, 0, len(ds.Headers))
		for _, header := range ds.Headers {
			if h := strings.TrimSpace(header); h != "" {
				found = append(found, h)
			}
		}
		return columns{}, &SchemaError{Source: sourceID, Missing: missing, Found: found}
	}

	// Optional fields resolve to -1 under SchemaBasic and read as empty
	return columns{
		lyrics:  ds.ColumnIndex(FieldLyrics),
		version: ds.ColumnIndex(FieldVersion),
		volume:  ds.ColumnIndex(FieldVolume),
		library: ds.ColumnIndex(FieldLibrary),
	}, nil
}
