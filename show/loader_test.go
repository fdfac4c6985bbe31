package show

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeShowFile(t *testing.T, entries []Entry) string {
	t.Helper()

	filename := filepath.Join(t.TempDir(), "test.show")
	w, err := NewWriter(filename)
	require.NoError(t, err)
	for _, e := range entries {
		require.NoError(t, w.Append(e))
	}
	require.NoError(t, w.Close())
	return filename
}

func TestLoaderReadsAllEntries(t *testing.T) {
	t.Parallel()

	filename := writeShowFile(t, []Entry{
		{Universe: 1, WaitMS: 0, Frame: []byte{255}},
		{Universe: 1, WaitMS: 50, Frame: []byte{128}},
		{Universe: 2, WaitMS: 70, Frame: []byte{0}},
	})

	loader := NewLoader(filename)
	require.NoError(t, loader.Load())
	defer loader.Close()

	var e Entry
	require.Equal(t, OK, loader.NextEntry(&e))
	assert.Equal(t, uint32(1), e.Universe)
	require.Equal(t, OK, loader.NextEntry(&e))
	assert.Equal(t, uint32(50), e.WaitMS)
	require.Equal(t, OK, loader.NextEntry(&e))
	assert.Equal(t, uint32(2), e.Universe)

	require.Equal(t, EndOfFile, loader.NextEntry(&e))
}

func TestLoaderEndOfFileIsTerminal(t *testing.T) {
	t.Parallel()

	filename := writeShowFile(t, []Entry{{Universe: 1, Frame: []byte{1}}})

	loader := NewLoader(filename)
	require.NoError(t, loader.Load())
	defer loader.Close()

	var e Entry
	require.Equal(t, OK, loader.NextEntry(&e))
	require.Equal(t, EndOfFile, loader.NextEntry(&e))

	// no resurrection once exhausted
	for i := 0; i < 3; i++ {
		assert.Equal(t, EndOfFile, loader.NextEntry(&e))
	}
	assert.NoError(t, loader.Err())
}

func TestLoaderErrorIsTerminal(t *testing.T) {
	t.Parallel()

	filename := writeShowFile(t, []Entry{
		{Universe: 1, Frame: []byte{1}},
		{Universe: 2, WaitMS: 10, Frame: []byte{2, 3, 4}},
	})

	// chop the last entry short
	raw, err := os.ReadFile(filename)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filename, raw[:len(raw)-2], 0644))

	loader := NewLoader(filename)
	require.NoError(t, loader.Load())
	defer loader.Close()

	var e Entry
	require.Equal(t, OK, loader.NextEntry(&e))
	require.Equal(t, Error, loader.NextEntry(&e))

	for i := 0; i < 3; i++ {
		assert.Equal(t, Error, loader.NextEntry(&e))
	}
	require.ErrorIs(t, loader.Err(), ErrCorrupt)
}

func TestLoaderLoadMissingFile(t *testing.T) {
	t.Parallel()

	loader := NewLoader(filepath.Join(t.TempDir(), "missing.show"))
	err := loader.Load()
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, Error, loader.State())
}
