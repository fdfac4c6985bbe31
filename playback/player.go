package playback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"

	"github.com/robmorgan/showtape/logger"
	"github.com/robmorgan/showtape/show"
)

// Transport accepts frames for transmission to a universe. Sends are
// fire-and-forget: the player does not wait for an acknowledgement before
// pacing out the next entry.
type Transport interface {
	SendFrame(universe uint32, frame []byte) error
}

// Player replays a show file against a Transport, pacing entries by their
// recorded wait deltas on real time.
type Player struct {
	filename  string
	transport Transport
	clock     clock.Clock
}

// NewPlayer returns a Player that replays filename through transport,
// sleeping on cl between entries.
func NewPlayer(filename string, transport Transport, cl clock.Clock) *Player {
	return &Player{filename: filename, transport: transport, clock: cl}
}

// Playback runs the show for the given window. It blocks until the
// configured iterations complete, the duration cap expires, or ctx is
// cancelled; cancellation is a clean stop and the returned summary covers
// everything played so far. The error is non-nil for input or data
// failures.
func (p *Player) Playback(ctx context.Context, w Window) (Summary, error) {
	log := logger.GetProjectLogger()

	if w.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.Duration)
		defer cancel()
	}

	em := &playEmitter{transport: p.transport, clock: p.clock}
	total := NewCounts()
	var (
		lastPosMS uint64
		pass      uint
	)

	for {
		pass++
		loader := show.NewLoader(p.filename)
		if err := loader.Load(); err != nil {
			return Summary{Counts: total}, err
		}

		counts := NewCounts()
		em.reset()
		res, err := runPass(ctx, loader, w, counts, em)
		loader.Close()

		total.merge(counts)
		lastPosMS = res.posMS
		summary := Summary{Counts: total, PlaybackTimeMS: playbackTime(lastPosMS, w.StartMS)}

		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				log.WithFields(logrus.Fields{"passes": pass, "frames": total.Total()}).
					Info("Playback stopped")
				return summary, nil
			}
			return summary, err
		}
		if res.state == show.Error {
			return summary, fmt.Errorf("loading show: %w", loader.Err())
		}
		if pass == 1 {
			warnShortFile(log, w, res.posMS)
		}

		if w.Iterations > 0 && pass >= w.Iterations {
			break
		}
		if ctx.Err() != nil {
			break
		}
		if w.Delay > 0 {
			if err := sleepOn(ctx, p.clock, w.Delay); err != nil {
				break
			}
		}
	}

	summary := Summary{Counts: total, PlaybackTimeMS: playbackTime(lastPosMS, w.StartMS)}
	log.WithFields(logrus.Fields{"passes": pass, "frames": total.Total()}).
		Info("Playback finished")
	return summary, nil
}

// playEmitter is the live side of the windowing engine: it caches seed
// frames while fast-forwarding, primes the transport with them when the
// start boundary is crossed, and transmits and paces every entry after
// that.
type playEmitter struct {
	transport Transport
	clock     clock.Clock
	seedOrder []uint32
	seeds     map[uint32][]byte
}

func (e *playEmitter) reset() {
	e.seedOrder = e.seedOrder[:0]
	e.seeds = make(map[uint32][]byte)
}

func (e *playEmitter) FastForward(universe uint32, frame []byte) {
	if _, ok := e.seeds[universe]; !ok {
		e.seedOrder = append(e.seedOrder, universe)
	}
	e.seeds[universe] = append(e.seeds[universe][:0], frame...)
}

func (e *playEmitter) Engage(_ context.Context) error {
	// Prime each universe with its last known value so devices are in the
	// right state before mid-file playback begins.
	for _, universe := range e.seedOrder {
		if err := e.transport.SendFrame(universe, e.seeds[universe]); err != nil {
			return err
		}
	}
	return nil
}

func (e *playEmitter) Emit(ctx context.Context, universe uint32, frame []byte, wait time.Duration) error {
	if err := e.transport.SendFrame(universe, frame); err != nil {
		return err
	}
	return sleepOn(ctx, e.clock, wait)
}

// sleepOn waits for d on cl, returning early with ctx's error if the
// context ends first.
func sleepOn(ctx context.Context, cl clock.Clock, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := cl.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C():
		return nil
	}
}
