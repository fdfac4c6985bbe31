package show

import (
	"bufio"
	"errors"
	"io"
	"os"
)

// State reports the outcome of a Loader read.
type State int

const (
	// OK means an entry was produced.
	OK State = iota
	// EndOfFile means the file was exhausted cleanly.
	EndOfFile
	// Error means a malformed record or I/O failure was hit.
	Error
)

func (s State) String() string {
	switch s {
	case OK:
		return "OK"
	case EndOfFile:
		return "END_OF_FILE"
	case Error:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Loader is a forward-only cursor over a show file. Once it reports
// EndOfFile or Error every later NextEntry call reports the same state;
// rewinding means opening a new Loader.
type Loader struct {
	filename string
	f        *os.File
	r        *bufio.Reader
	state    State
	err      error
}

// NewLoader returns a Loader for filename. Load must be called before the
// first NextEntry.
func NewLoader(filename string) *Loader {
	return &Loader{filename: filename, state: OK}
}

// Load opens the show file, failing if it is missing or unreadable.
func (l *Loader) Load() error {
	f, err := os.Open(l.filename)
	if err != nil {
		l.state = Error
		l.err = err
		return err
	}
	l.f = f
	l.r = bufio.NewReader(f)
	return nil
}

// NextEntry decodes the next record into e and returns the resulting state.
// e is only valid when the state is OK.
func (l *Loader) NextEntry(e *Entry) State {
	if l.state != OK {
		return l.state
	}
	err := ReadEntry(l.r, e)
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		l.state = EndOfFile
	default:
		l.state = Error
		l.err = err
	}
	return l.state
}

// State returns the loader's current state without advancing it.
func (l *Loader) State() State {
	return l.state
}

// Err returns the error behind an Error state, or nil.
func (l *Loader) Err() error {
	return l.err
}

// Close releases the underlying file. The terminal state is preserved.
func (l *Loader) Close() error {
	if l.f == nil {
		return nil
	}
	f := l.f
	l.f = nil
	return f.Close()
}
