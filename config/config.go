package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robmorgan/showtape/playback"
)

// UsageError is an invalid invocation: a missing or malformed argument.
// Nothing is attempted once one is raised.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// NewUsageError builds a UsageError from a format string.
func NewUsageError(format string, args ...interface{}) *UsageError {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// RecordConfig holds the options for one recording session.
type RecordConfig struct {
	// ShowFile is the destination path.
	ShowFile string

	// Universes are the universe ids to capture.
	Universes []uint32
}

// Validate checks the recording options.
func (c *RecordConfig) Validate() error {
	if c.ShowFile == "" {
		return NewUsageError("no show file specified")
	}
	if len(c.Universes) == 0 {
		return NewUsageError("no universes specified, use -u")
	}
	return nil
}

// PlaybackConfig holds the options for one playback run.
type PlaybackConfig struct {
	ShowFile string

	// Iterations is the number of times to repeat the show, 0 means
	// unlimited.
	Iterations uint

	// DurationS caps the total run time, in seconds. 0 is unlimited.
	DurationS uint

	// DelayMS is the pause between successive iterations, in milliseconds.
	DelayMS uint

	// StartMS and StopMS trim the show to a window, in milliseconds into
	// the file. 0 is unbounded.
	StartMS uint64
	StopMS  uint64
}

// Validate checks the playback options.
func (c *PlaybackConfig) Validate() error {
	if c.ShowFile == "" {
		return NewUsageError("no show file specified")
	}
	if c.StopMS > 0 && c.StopMS < c.StartMS {
		return NewUsageError("stop time must be later than start time")
	}
	return nil
}

// Window converts the options into the playback window they describe.
func (c *PlaybackConfig) Window() playback.Window {
	return playback.Window{
		StartMS:    c.StartMS,
		StopMS:     c.StopMS,
		Iterations: c.Iterations,
		Delay:      time.Duration(c.DelayMS) * time.Millisecond,
		Duration:   time.Duration(c.DurationS) * time.Second,
	}
}

// VerifyConfig holds the options for one verification scan.
type VerifyConfig struct {
	ShowFile string
	StartMS  uint64
	StopMS   uint64
}

// Validate checks the verification options.
func (c *VerifyConfig) Validate() error {
	if c.ShowFile == "" {
		return NewUsageError("no show file specified")
	}
	if c.StopMS > 0 && c.StopMS < c.StartMS {
		return NewUsageError("stop time must be later than start time")
	}
	return nil
}

// Window converts the options into a single-pass playback window.
func (c *VerifyConfig) Window() playback.Window {
	return playback.Window{
		StartMS:    c.StartMS,
		StopMS:     c.StopMS,
		Iterations: 1,
	}
}

// ParseUniverses parses a comma separated list of universe ids.
func ParseUniverses(list string) ([]uint32, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	var universes []uint32
	for _, field := range strings.Split(list, ",") {
		universe, err := strconv.ParseUint(strings.TrimSpace(field), 10, 32)
		if err != nil {
			return nil, NewUsageError("%q isn't a valid universe number", strings.TrimSpace(field))
		}
		universes = append(universes, uint32(universe))
	}
	return universes, nil
}
