package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stashDB(t *testing.T) {
	t.Helper()
	prev := DB
	DB = nil
	t.Cleanup(func() { DB = prev })
}

func TestOpenSuccess(t *testing.T) {
	stashDB(t)

	require.NoError(t, open("sqlite", filepath.Join(t.TempDir(), "pethive.db")))
	assert.True(t, Available())
}

func TestOpenFailureLeavesUnavailable(t *testing.T) {
	stashDB(t)

	// sqlite will not create intermediate directories, so this fails to open.
	err := open("sqlite", filepath.Join(t.TempDir(), "missing", "nested", "pethive.db"))
	require.Error(t, err)
	assert.False(t, Available())
}

func TestOpenUnknownDriver(t *testing.T) {
	stashDB(t)

	err := open("oracle", "whatever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
	assert.False(t, Available())
}
