package xplicit

import (
	"fmt"

	"github.com/SamuelRCrider/xplicit-go/core"
	"github.com/SamuelRCrider/xplicit-go/utils"
)

// NoChangesMessage is reported for a file without any rewritten row
const NoChangesMessage = "No changes were made to the file."

// HeaderMessage opens the processing lines of a file
func HeaderMessage(name string) string {
	return fmt.Sprintf("Processing Report for %s:", name)
}

// ChangeMessage describes one rewritten row
func ChangeMessage(record utils.ChangeRecord) string {
	return fmt.Sprintf("Row %d: '%s' became '%s' >>> [%s]",
		record.Row, record.OriginalVersion, record.NewVersion, core.FormatWords(record.Words))
}

// FailureMessage describes a file that could not be processed
func FailureMessage(name string, err error) string {
	return fmt.Sprintf("An error occurred processing %s: %v", name, err)
}

func changeMessages(name string, records []utils.ChangeRecord) []string {
	lines := []string{HeaderMessage(name)}
	if len(records) == 0 {
		return append(lines, NoChangesMessage)
	}
	for _, record := range records {
		lines = append(lines, ChangeMessage(record))
	}
	return lines
}
