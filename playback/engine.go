package playback

import (
	"context"
	"time"

	"github.com/robmorgan/showtape/show"
)

// emitter receives the frames a pass decides to play. The player transmits
// and sleeps; the verifier does neither. Keeping both behind one interface
// means the windowing logic below exists exactly once, so live playback and
// dry-run verification cannot drift apart.
type emitter interface {
	// FastForward sees each entry skipped before the start boundary.
	FastForward(universe uint32, frame []byte)

	// Engage fires once per pass when the start boundary is crossed, before
	// the crossing entry is emitted.
	Engage(ctx context.Context) error

	// Emit plays one entry: wait is the entry's delta on the show clock.
	Emit(ctx context.Context, universe uint32, frame []byte, wait time.Duration) error
}

// passResult summarizes one traversal of a show file.
type passResult struct {
	// posMS is the final playback position on the show clock, clamped to
	// the stop boundary when one was hit.
	posMS uint64
	// state is the loader's state when the pass ended. A pass stopped by
	// the stop boundary or by cancellation ends with the loader still OK.
	state show.State
}

// runPass traverses one pass of the show through loader, applying the
// window and tallying every surviving entry into counts.
//
// For each entry the order is: advance the position by the entry's wait
// delta; end the pass if the stop boundary is reached (the crossing entry is
// neither counted nor emitted, and the position is clamped to the boundary
// rather than the overshoot); on first exceeding the start boundary, clamp
// the fast-forward tallies to one seed frame per universe; then count and
// emit the entry.
func runPass(ctx context.Context, loader *show.Loader, w Window, counts *Counts, e emitter) (passResult, error) {
	var (
		entry   show.Entry
		posMS   uint64
		playing bool
	)
	for {
		select {
		case <-ctx.Done():
			return passResult{posMS: posMS, state: loader.State()}, ctx.Err()
		default:
		}

		if loader.NextEntry(&entry) != show.OK {
			break
		}
		posMS += uint64(entry.WaitMS)

		if w.StopMS > 0 && posMS >= w.StopMS {
			// Compensate for overshooting the stop time.
			posMS = w.StopMS
			return passResult{posMS: posMS, state: loader.State()}, nil
		}

		if !playing && posMS > w.StartMS {
			counts.clampSeeds()
			if err := e.Engage(ctx); err != nil {
				return passResult{posMS: posMS, state: loader.State()}, err
			}
			playing = true
		}

		counts.Add(entry.Universe)

		if !playing {
			e.FastForward(entry.Universe, entry.Frame)
			continue
		}
		if err := e.Emit(ctx, entry.Universe, entry.Frame, time.Duration(entry.WaitMS)*time.Millisecond); err != nil {
			return passResult{posMS: posMS, state: loader.State()}, err
		}
	}
	return passResult{posMS: posMS, state: loader.State()}, nil
}

// playbackTime converts a final pass position into the reported playback
// time: the span between the start boundary and where the pass ended, or
// zero when the file ran out before the start.
func playbackTime(posMS, startMS uint64) uint64 {
	if posMS >= startMS {
		return posMS - startMS
	}
	return 0
}
