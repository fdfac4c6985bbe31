package recorder

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"

	"github.com/robmorgan/showtape/logger"
	"github.com/robmorgan/showtape/show"
)

// Update is one frame change delivered by a Source.
type Update struct {
	Universe uint32
	Frame    []byte
}

// Source feeds a Recorder with frame changes for a set of universes. It
// must stop sending on updates once Close returns.
type Source interface {
	Subscribe(universes []uint32, updates chan<- Update) error
	Close() error
}

// updateBacklog bounds how far the source can run ahead of the write loop.
const updateBacklog = 64

// Recorder captures frame changes for a set of universes and appends them
// to a show file with the elapsed time between events. Record blocks until
// Stop is called; Stop is safe from any goroutine, including before Record
// starts or when no frame ever arrives.
type Recorder struct {
	filename  string
	universes []uint32
	source    Source
	clock     clock.PassiveClock

	writer  *show.Writer
	updates chan Update

	stop     chan struct{}
	stopOnce sync.Once

	frames   atomic.Uint64
	last     time.Time
	haveLast bool
}

// New returns a Recorder that writes frame changes on the given universes
// to filename, timestamping them with cl.
func New(filename string, universes []uint32, source Source, cl clock.PassiveClock) *Recorder {
	return &Recorder{
		filename:  filename,
		universes: universes,
		source:    source,
		clock:     cl,
		stop:      make(chan struct{}),
	}
}

// Init opens the destination file and subscribes to the configured
// universes. A failure here is fatal to the session: no capture begins.
func (r *Recorder) Init() error {
	w, err := show.NewWriter(r.filename)
	if err != nil {
		return fmt.Errorf("opening %s for writing: %w", r.filename, err)
	}
	r.writer = w
	r.updates = make(chan Update, updateBacklog)
	if err := r.source.Subscribe(r.universes, r.updates); err != nil {
		w.Close()
		return fmt.Errorf("subscribing to universes %v: %w", r.universes, err)
	}
	return nil
}

// Record runs the capture loop until Stop is called, appending one entry
// per frame change. The first entry carries a wait delta of zero; every
// later entry carries the time elapsed since the previous one, regardless
// of universe, so the file holds a single global timeline.
func (r *Recorder) Record() error {
	log := logger.GetProjectLogger()
	for {
		select {
		case <-r.stop:
			if err := r.source.Close(); err != nil {
				log.Warnf("closing frame source: %v", err)
			}
			return r.writer.Close()
		case u := <-r.updates:
			if err := r.append(u); err != nil {
				r.writer.Close()
				r.source.Close()
				return err
			}
			log.WithFields(logrus.Fields{"universe": u.Universe, "frames": r.frames.Load()}).
				Debug("Recorded frame")
		}
	}
}

func (r *Recorder) append(u Update) error {
	now := r.clock.Now()
	var wait time.Duration
	if r.haveLast {
		wait = now.Sub(r.last)
	}
	r.last = now
	r.haveLast = true

	entry := show.Entry{
		Universe: u.Universe,
		WaitMS:   uint32(wait.Milliseconds()),
		Frame:    u.Frame,
	}
	if err := r.writer.Append(entry); err != nil {
		return fmt.Errorf("appending to %s: %w", r.filename, err)
	}
	r.frames.Add(1)
	return nil
}

// Stop ends a blocked Record call promptly, even if no further frame ever
// arrives. It is idempotent and safe to call concurrently with Record.
func (r *Recorder) Stop() {
	r.stopOnce.Do(func() {
		close(r.stop)
	})
}

// FrameCount reports the number of entries written so far.
func (r *Recorder) FrameCount() uint64 {
	return r.frames.Load()
}
