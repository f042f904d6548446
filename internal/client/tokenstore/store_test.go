package tokenstore

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gophauth", "token")
	s := NewFileStore(path)

	_, err := s.Load()
	require.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, s.Save("abc.def.ghi"))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", got)

	if runtime.GOOS != "windows" {
		fi, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
	}

	require.NoError(t, s.Clear())
	_, err = s.Load()
	require.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, s.Clear())
}

func TestFileStore_BlankFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte(" \n"), 0o600))

	_, err := NewFileStore(path).Load()
	require.ErrorIs(t, err, ErrNoToken)
}

func TestFileStore_Path(t *testing.T) {
	assert.Equal(t, "/x/token", NewFileStore("/x/token").Path())
}
