package playback

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/robmorgan/showtape/logger"
	"github.com/robmorgan/showtape/show"
)

// Summary reports what a run saw: per-universe frame tallies and the
// playback time covered by the window.
type Summary struct {
	Counts         *Counts
	PlaybackTimeMS uint64
}

// nullEmitter discards everything. Verification is playback with the
// hardware and the clock removed.
type nullEmitter struct{}

func (nullEmitter) FastForward(uint32, []byte) {}

func (nullEmitter) Engage(context.Context) error { return nil }

func (nullEmitter) Emit(context.Context, uint32, []byte, time.Duration) error { return nil }

// Verifier scans a show file with the playback windowing rules applied but
// never transmits a frame or waits for wall-clock time, so a file can be
// audited without hardware.
type Verifier struct {
	filename string
}

// NewVerifier returns a Verifier for the named show file.
func NewVerifier(filename string) *Verifier {
	return &Verifier{filename: filename}
}

// Verify runs a single pass over the file for the given window. It always
// returns the summary accumulated up to the point the scan stopped; the
// error is non-nil when the file is corrupt, and the summary then covers
// the readable prefix.
func (v *Verifier) Verify(ctx context.Context, w Window) (Summary, error) {
	log := logger.GetProjectLogger()

	loader := show.NewLoader(v.filename)
	if err := loader.Load(); err != nil {
		return Summary{Counts: NewCounts()}, err
	}
	defer loader.Close()

	counts := NewCounts()
	res, err := runPass(ctx, loader, w, counts, nullEmitter{})
	summary := Summary{
		Counts:         counts,
		PlaybackTimeMS: playbackTime(res.posMS, w.StartMS),
	}
	if err != nil {
		return summary, err
	}

	warnShortFile(log, w, res.posMS)

	if res.state == show.Error {
		return summary, fmt.Errorf("loading show: %w", loader.Err())
	}
	return summary, nil
}

// warnShortFile logs when the file's natural end falls before a requested
// boundary. This is advisory only and does not fail the run.
func warnShortFile(log *logrus.Entry, w Window, posMS uint64) {
	if w.StartMS > posMS {
		log.WithFields(logrus.Fields{"length_ms": posMS, "start_ms": w.StartMS}).
			Warn("Show file ends before the start time")
	}
	if w.StopMS > posMS {
		log.WithFields(logrus.Fields{"length_ms": posMS, "stop_ms": w.StopMS}).
			Warn("Show file ends before the stop time")
	}
}
