package ola

import (
	"sync"
	"time"

	"k8s.io/utils/clock"

	"github.com/robmorgan/showtape/dmx"
	"github.com/robmorgan/showtape/logger"
	"github.com/robmorgan/showtape/recorder"
)

// FetchFunc reads the current frame for a universe from the OLA daemon.
type FetchFunc func(universe int) ([]byte, error)

// DefaultPollInterval is how often the source compares each universe
// against its last known state.
const DefaultPollInterval = 25 * time.Millisecond

// Source is a change-detecting poller over olad: every tick it fetches each
// subscribed universe and delivers an update when the channel values differ
// from the last known state. It is the frame-update source a Recorder
// captures from.
type Source struct {
	fetch FetchFunc
	clock clock.Clock
	tick  time.Duration

	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// NewSource returns a Source polling with fetch every tick. A tick of 0
// uses DefaultPollInterval.
func NewSource(fetch FetchFunc, cl clock.Clock, tick time.Duration) *Source {
	if tick <= 0 {
		tick = DefaultPollInterval
	}
	return &Source{
		fetch: fetch,
		clock: cl,
		tick:  tick,
		done:  make(chan struct{}),
	}
}

// Subscribe starts the poll loop for the given universes, delivering frame
// changes on updates until Close is called.
func (s *Source) Subscribe(universes []uint32, updates chan<- recorder.Update) error {
	s.wg.Add(1)
	go s.poll(universes, updates)
	return nil
}

func (s *Source) poll(universes []uint32, updates chan<- recorder.Update) {
	defer s.wg.Done()
	log := logger.GetProjectLogger()

	state := make(map[uint32]*dmx.Universe, len(universes))
	for _, universe := range universes {
		state[universe] = dmx.NewUniverse()
	}

	t := s.clock.NewTimer(s.tick)
	defer t.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-t.C():
			for _, universe := range universes {
				frame, err := s.fetch(int(universe))
				if err != nil {
					log.Warnf("fetching universe %d: %v", universe, err)
					continue
				}
				changed, err := state[universe].Update(frame)
				if err != nil {
					log.Warnf("universe %d: %v", universe, err)
					continue
				}
				if !changed {
					continue
				}
				select {
				case updates <- recorder.Update{Universe: universe, Frame: state[universe].Bytes()}:
				case <-s.done:
					return
				}
			}
			t.Reset(s.tick)
		}
	}
}

// Close stops the poll loop. No update is delivered after it returns.
func (s *Source) Close() error {
	s.once.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
	return nil
}
