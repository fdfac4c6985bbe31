package playback

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robmorgan/showtape/show"
)

// twoUniverseShow writes the reference show used across these tests:
// universe 1 updates at 0ms and 50ms, universe 2 at 120ms.
func twoUniverseShow(t *testing.T) string {
	t.Helper()
	return writeShow(t, []show.Entry{
		{Universe: 1, WaitMS: 0, Frame: []byte{255, 0}},
		{Universe: 1, WaitMS: 50, Frame: []byte{128, 0}},
		{Universe: 2, WaitMS: 70, Frame: []byte{0, 64}},
	})
}

func writeShow(t *testing.T, entries []show.Entry) string {
	t.Helper()

	filename := filepath.Join(t.TempDir(), "test.show")
	w, err := show.NewWriter(filename)
	require.NoError(t, err)
	for _, e := range entries {
		require.NoError(t, w.Append(e))
	}
	require.NoError(t, w.Close())
	return filename
}

func TestVerifyWholeShow(t *testing.T) {
	t.Parallel()

	verifier := NewVerifier(twoUniverseShow(t))
	summary, err := verifier.Verify(context.Background(), Window{})
	require.NoError(t, err)

	assert.Equal(t, uint64(2), summary.Counts.Frames(1))
	assert.Equal(t, uint64(1), summary.Counts.Frames(2))
	assert.Equal(t, uint64(3), summary.Counts.Total())
	assert.Equal(t, uint64(120), summary.PlaybackTimeMS)
	assert.Equal(t, []uint32{1, 2}, summary.Counts.Universes())
}

func TestVerifyStartClampsSeedFrames(t *testing.T) {
	t.Parallel()

	// both universe 1 entries sit at or before 60ms, so they collapse into
	// a single seed frame; the 120ms entry plays normally
	verifier := NewVerifier(twoUniverseShow(t))
	summary, err := verifier.Verify(context.Background(), Window{StartMS: 60})
	require.NoError(t, err)

	assert.Equal(t, uint64(1), summary.Counts.Frames(1))
	assert.Equal(t, uint64(1), summary.Counts.Frames(2))
	assert.Equal(t, uint64(2), summary.Counts.Total())
	assert.Equal(t, uint64(60), summary.PlaybackTimeMS)
}

func TestVerifyStopOvershootIsClamped(t *testing.T) {
	t.Parallel()

	// the second entry would land at 50ms, past the 40ms stop: the pass
	// ends without it and the reported time is the boundary, not 50
	verifier := NewVerifier(twoUniverseShow(t))
	summary, err := verifier.Verify(context.Background(), Window{StopMS: 40})
	require.NoError(t, err)

	assert.Equal(t, uint64(1), summary.Counts.Frames(1))
	assert.Equal(t, uint64(1), summary.Counts.Total())
	assert.Equal(t, uint64(40), summary.PlaybackTimeMS)
}

func TestVerifySeedClampManyEntries(t *testing.T) {
	t.Parallel()

	// any number of pre-start entries per universe clamps to at most one
	filename := writeShow(t, []show.Entry{
		{Universe: 7, WaitMS: 0, Frame: []byte{1}},
		{Universe: 7, WaitMS: 10, Frame: []byte{2}},
		{Universe: 7, WaitMS: 10, Frame: []byte{3}},
		{Universe: 9, WaitMS: 10, Frame: []byte{4}},
		{Universe: 7, WaitMS: 10, Frame: []byte{5}},
		{Universe: 7, WaitMS: 200, Frame: []byte{6}},
	})

	verifier := NewVerifier(filename)
	summary, err := verifier.Verify(context.Background(), Window{StartMS: 100})
	require.NoError(t, err)

	// universes 7 and 9 each keep one seed, then universe 7 plays one more
	assert.Equal(t, uint64(2), summary.Counts.Frames(7))
	assert.Equal(t, uint64(1), summary.Counts.Frames(9))
	assert.Equal(t, uint64(140), summary.PlaybackTimeMS)
}

func TestVerifyFileEndsBeforeStart(t *testing.T) {
	t.Parallel()

	verifier := NewVerifier(twoUniverseShow(t))
	summary, err := verifier.Verify(context.Background(), Window{StartMS: 500})
	require.NoError(t, err)

	// advisory only: the scan still succeeds, with zero playback time
	assert.Equal(t, uint64(0), summary.PlaybackTimeMS)
	assert.Equal(t, uint64(3), summary.Counts.Total())
}

func TestVerifyCorruptFile(t *testing.T) {
	t.Parallel()

	filename := twoUniverseShow(t)
	raw, err := os.ReadFile(filename)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filename, raw[:len(raw)-1], 0644))

	verifier := NewVerifier(filename)
	summary, err := verifier.Verify(context.Background(), Window{})
	require.ErrorIs(t, err, show.ErrCorrupt)

	// the summary still covers the readable prefix
	assert.Equal(t, uint64(2), summary.Counts.Frames(1))
	assert.Equal(t, uint64(50), summary.PlaybackTimeMS)
}

func TestVerifyMissingFile(t *testing.T) {
	t.Parallel()

	verifier := NewVerifier(filepath.Join(t.TempDir(), "missing.show"))
	_, err := verifier.Verify(context.Background(), Window{})
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestCountsFirstSeenOrder(t *testing.T) {
	t.Parallel()

	counts := NewCounts()
	counts.Add(5)
	counts.Add(2)
	counts.Add(5)
	counts.Add(9)

	assert.Equal(t, []uint32{5, 2, 9}, counts.Universes())
	assert.Equal(t, uint64(2), counts.Frames(5))
	assert.Equal(t, uint64(4), counts.Total())
}
