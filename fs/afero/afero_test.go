package afero

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmgilman/vfs/fs/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_Type(t *testing.T) {
	assert.Equal(t, core.FSTypeMemory, NewMemMap().Type())
	assert.Equal(t, core.FSTypeLocal, NewOs(t.TempDir()).Type())
	assert.Equal(t, core.FSTypeUnknown, New(NewMemMap().Unwrap()).Type())
}

func TestStorage_Mkdir(t *testing.T) {
	s := NewMemMap()

	require.NoError(t, s.Mkdir("/a"))
	assert.ErrorIs(t, s.Mkdir("/a"), fs.ErrExist)
	assert.ErrorIs(t, s.Mkdir("/missing/child"), fs.ErrNotExist)

	require.NoError(t, s.WriteFile("/a/file", nil))
	assert.Error(t, s.Mkdir("/a/file/child"))
}

func TestStorage_RemoveNonEmpty(t *testing.T) {
	s := NewMemMap()
	require.NoError(t, s.Mkdir("/dir"))
	require.NoError(t, s.WriteFile("/dir/file.txt", []byte("x")))

	err := s.Remove("/dir")
	require.Error(t, err)
	assert.ErrorIs(t, err, errNotEmpty)

	require.NoError(t, s.Remove("/dir/file.txt"))
	require.NoError(t, s.Remove("/dir"))
	assert.ErrorIs(t, s.Remove("/dir"), fs.ErrNotExist)
}

func TestStorage_ReadDir(t *testing.T) {
	s := NewMemMap()
	require.NoError(t, s.Mkdir("/dir"))
	require.NoError(t, s.WriteFile("/dir/b.txt", nil))
	require.NoError(t, s.WriteFile("/dir/a.txt", nil))

	entries, err := s.ReadDir("/dir")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.txt", entries[0].Name())
	assert.Equal(t, "b.txt", entries[1].Name())

	_, err = s.ReadDir("/dir/a.txt")
	assert.ErrorIs(t, err, errNotDir)
}

func TestLocalStorage_Confined(t *testing.T) {
	root := t.TempDir()
	s := NewOs(root)
	assert.Equal(t, root, s.SystemRoot())

	require.NoError(t, s.WriteFile("/hello.txt", []byte("hi")))
	data, err := os.ReadFile(filepath.Join(root, "hello.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))

	got, err := s.ReadFile("/hello.txt")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(got))
}
