package utils

// ChangeRecord is the evidence of one row whose version label was rewritten
type ChangeRecord struct {
	// Where the row came from
	Source string `json:"source"`
	Row    int    `json:"row"` // physical spreadsheet row, header included

	// Descriptive context carried through from the row
	Volume  string `json:"volume,omitempty"`
	Library string `json:"library,omitempty"`

	// The rewrite itself
	OriginalVersion string   `json:"original_version"`
	NewVersion      string   `json:"new_version"`
	Words           []string `json:"words"` // matched words, in word-list order
}
