package datastore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/pagewatch/internal/common"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*FileBaselineStore, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "pages")
	store, err := NewFileBaselineStore(dir, zerolog.Nop())
	require.NoError(t, err)
	return store, dir
}

func TestNewFileBaselineStore(t *testing.T) {
	_, dir := newTestStore(t)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = NewFileBaselineStore("", zerolog.Nop())
	assert.Error(t, err)
}

func TestFileBaselineStore_Missing(t *testing.T) {
	store, _ := newTestStore(t)

	has, err := store.Has("Example")
	require.NoError(t, err)
	assert.False(t, has)

	data, err := store.Get("Example")
	assert.Nil(t, data)
	assert.ErrorIs(t, err, ErrBaselineNotFound)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestFileBaselineStore_PutGet(t *testing.T) {
	store, dir := newTestStore(t)
	raw := []byte("<html><body>Hello</body></html>")

	require.NoError(t, store.Put("Example", raw))

	has, err := store.Has("Example")
	require.NoError(t, err)
	assert.True(t, has)

	data, err := store.Get("Example")
	require.NoError(t, err)
	assert.Equal(t, raw, data)

	onDisk, err := os.ReadFile(filepath.Join(dir, "Example.html"))
	require.NoError(t, err)
	assert.Equal(t, raw, onDisk, "raw content stored verbatim")
}

func TestFileBaselineStore_Overwrite(t *testing.T) {
	store, dir := newTestStore(t)

	require.NoError(t, store.Put("Example", []byte("first")))
	require.NoError(t, store.Put("Example", []byte("second")))

	data, err := store.Get("Example")
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestFileBaselineStore_PagesAreIndependent(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Put("a/b", []byte("one")))
	require.NoError(t, store.Put("a:b", []byte("two")))

	one, err := store.Get("a/b")
	require.NoError(t, err)
	two, err := store.Get("a:b")
	require.NoError(t, err)

	assert.Equal(t, "one", string(one))
	assert.Equal(t, "two", string(two))
}

func TestFileBaselineStore_EmptyContent(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Put("Empty", nil))

	has, err := store.Has("Empty")
	require.NoError(t, err)
	assert.True(t, has)

	data, err := store.Get("Empty")
	require.NoError(t, err)
	assert.Empty(t, data)
}
