package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamuelRCrider/xplicit-go/utils"
)

func catalogDataset() *Dataset {
	return &Dataset{
		Name:    "catalog.xlsx",
		Headers: []string{"Title", "LYRICS", "Version", "Volume", "library"},
		Rows: [][]string{
			{"Track One", "you dumb shit!", "Full Mix", "Vol 1", "Rock"},
			{"Track Two", "classic rock all night", "Full Mix", "Vol 1", "Rock"},
			{"Track Three", "Piss off, fuck off", "Main, 30s", "Vol 2", "Punk"},
			{"Track Four", "shit again", "Full Mix Explicit", "Vol 2", "Punk"},
		},
	}
}

func TestTransformRewritesMatchingRows(t *testing.T) {
	words := []string{"fuck", "shit", "piss", "ass"}
	ds := catalogDataset()

	result, err := Transform(ds, words, "catalog.xlsx")
	require.NoError(t, err)

	assert.Equal(t, []int{2, 4}, result.ChangedRows)
	assert.Equal(t, []utils.ChangeRecord{
		{
			Source:          "catalog.xlsx",
			Row:             2,
			Volume:          "Vol 1",
			Library:         "Rock",
			OriginalVersion: "Full Mix",
			NewVersion:      "Full Mix Explicit",
			Words:           []string{"shit"},
		},
		{
			Source:          "catalog.xlsx",
			Row:             4,
			Volume:          "Vol 2",
			Library:         "Punk",
			OriginalVersion: "Main, 30s",
			NewVersion:      "Main Explicit, 30s",
			Words:           []string{"fuck", "piss"},
		},
	}, result.Records)

	// Every row is returned, changed or not
	require.Len(t, result.Dataset.Rows, 4)
	assert.Equal(t, "Full Mix Explicit", result.Dataset.Rows[0][2])
	assert.Equal(t, "Full Mix", result.Dataset.Rows[1][2])
	assert.Equal(t, "Main Explicit, 30s", result.Dataset.Rows[2][2])
	assert.Equal(t, "Full Mix Explicit", result.Dataset.Rows[3][2])
}

func TestTransformDoesNotMutateInput(t *testing.T) {
	ds := catalogDataset()
	_, err := Transform(ds, []string{"shit"}, "catalog.xlsx")
	require.NoError(t, err)

	assert.Equal(t, "Full Mix", ds.Rows[0][2])
}

func TestTransformSecondPassIsNoOp(t *testing.T) {
	words := []string{"fuck", "shit", "piss"}

	first, err := Transform(catalogDataset(), words, "catalog.xlsx")
	require.NoError(t, err)
	require.NotEmpty(t, first.Records)

	second, err := Transform(first.Dataset, words, "catalog.xlsx")
	require.NoError(t, err)
	assert.Empty(t, second.Records)
	assert.Empty(t, second.ChangedRows)
	assert.Equal(t, first.Dataset.Rows, second.Dataset.Rows)
}

func TestTransformMissingFields(t *testing.T) {
	// Scenario D
	ds := &Dataset{
		Headers: []string{"Title", "Version", "Volume", "Library"},
		Rows:    [][]string{{"a", "Full", "1", "x"}},
	}

	result, err := Transform(ds, []string{"shit"}, "broken.xlsx")
	assert.Nil(t, result)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "broken.xlsx", schemaErr.Source)
	assert.Equal(t, []string{"lyrics"}, schemaErr.Missing)
	assert.Equal(t, []string{"Title", "Version", "Volume", "Library"}, schemaErr.Found)
	assert.Contains(t, err.Error(), "'lyrics'")
	assert.Equal(t, ErrorCategorySchema, CategoryOf(err))
}

func TestTransformBasicSchema(t *testing.T) {
	ds := &Dataset{
		Headers: []string{"Lyrics", "Version"},
		Rows:    [][]string{{"oh shit", "Full"}},
	}

	_, err := Transform(ds, []string{"shit"}, "basic.xlsx")
	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, []string{"volume", "library"}, schemaErr.Missing)

	result, err := Transform(ds, []string{"shit"}, "basic.xlsx", WithSchema(SchemaBasic))
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "", result.Records[0].Volume)
	assert.Equal(t, "Full Explicit", result.Records[0].NewVersion)
}

func TestTransformShortRows(t *testing.T) {
	// Spreadsheet readers drop trailing empty cells
	ds := &Dataset{
		Headers: []string{"Lyrics", "Volume", "Library", "Version"},
		Rows: [][]string{
			{"oh shit"},
			{},
		},
	}

	result, err := Transform(ds, []string{"shit"}, "short.xlsx")
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, " Explicit", result.Records[0].NewVersion)
	assert.Equal(t, []string{"oh shit", "", "", " Explicit"}, result.Dataset.Rows[0])
	assert.Empty(t, result.Dataset.Rows[1])
}

func TestTransformNilDataset(t *testing.T) {
	_, err := Transform(nil, []string{"shit"}, "nil.xlsx")
	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Len(t, schemaErr.Missing, 4)
}
