package sheet

import (
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"
)

// OutputPrefix is prepended to the name of every modified workbook
const OutputPrefix = "modified_"

// File is a named workbook ready to be written or bundled
type File struct {
	Name string
	Data []byte
}

// OutputName returns the file name used for the modified copy of name
func OutputName(name string) string {
	return OutputPrefix + filepath.Base(name)
}

// WriteArchive bundles files into a zip written to w, each entry named with
// OutputName
func WriteArchive(w io.Writer, files []File) error {
	zw := zip.NewWriter(w)

	for _, file := range files {
		entry, err := zw.Create(OutputName(file.Name))
		if err != nil {
			return fmt.Errorf("failed to add %s to archive: %w", file.Name, err)
		}
		if _, err := entry.Write(file.Data); err != nil {
			return fmt.Errorf("failed to write %s to archive: %w", file.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return nil
}
