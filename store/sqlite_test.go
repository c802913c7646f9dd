package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "xplicit.db")

	s, err := NewSQLiteStore(path, zap.NewNop())
	require.NoError(t, err)

	processed, err := s.IsProcessed("/inbox/a.xlsx")
	require.NoError(t, err)
	assert.False(t, processed)

	require.NoError(t, s.MarkProcessed("/inbox/a.xlsx", 3))
	require.NoError(t, s.MarkProcessed("/inbox/a.xlsx", 5))

	processed, err = s.IsProcessed("/inbox/a.xlsx")
	require.NoError(t, err)
	assert.True(t, processed)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}

func TestSQLiteStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xplicit.db")

	s, err := NewSQLiteStore(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.MarkProcessed("b.xlsx", 0))
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStore(path, nil)
	require.NoError(t, err)
	defer reopened.Close()

	processed, err := reopened.IsProcessed("b.xlsx")
	require.NoError(t, err)
	assert.True(t, processed)

	processed, err = reopened.IsProcessed("c.xlsx")
	require.NoError(t, err)
	assert.False(t, processed)
}
