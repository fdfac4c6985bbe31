package playback

import "time"

// Window bounds one playback or verify run.
type Window struct {
	// StartMS is the offset into the show, in milliseconds, at which frames
	// begin to play. History before it collapses into one seed frame per
	// universe.
	StartMS uint64

	// StopMS ends a pass once the playback position reaches it. 0 plays to
	// the end of the file.
	StopMS uint64

	// Iterations is the number of passes over the file. 0 repeats forever.
	Iterations uint

	// Delay is the pause between successive iterations.
	Delay time.Duration

	// Duration caps the cumulative wall-clock run time across all passes.
	// 0 is unlimited.
	Duration time.Duration
}

// Counts tracks frames per universe, preserving the order in which
// universes were first seen.
type Counts struct {
	order  []uint32
	frames map[uint32]uint64
}

// NewCounts returns an empty per-universe frame tally.
func NewCounts() *Counts {
	return &Counts{frames: make(map[uint32]uint64)}
}

// Add records one frame for the given universe.
func (c *Counts) Add(universe uint32) {
	if _, seen := c.frames[universe]; !seen {
		c.order = append(c.order, universe)
	}
	c.frames[universe]++
}

// clampSeeds caps every tally at 1. It runs once per pass, at the start
// transition: frames skipped while fast-forwarding collapse into a single
// cached seed frame per universe, since a device only needs the most recent
// value to be primed correctly.
func (c *Counts) clampSeeds() {
	for universe, n := range c.frames {
		if n > 1 {
			c.frames[universe] = 1
		}
	}
}

// Universes returns the universe ids in first-seen order.
func (c *Counts) Universes() []uint32 {
	out := make([]uint32, len(c.order))
	copy(out, c.order)
	return out
}

// Frames returns the tally for one universe.
func (c *Counts) Frames(universe uint32) uint64 {
	return c.frames[universe]
}

// Total returns the tally across all universes.
func (c *Counts) Total() uint64 {
	var total uint64
	for _, n := range c.frames {
		total += n
	}
	return total
}

// merge adds other's tallies into c, preserving first-seen ordering.
func (c *Counts) merge(other *Counts) {
	for _, universe := range other.order {
		if _, seen := c.frames[universe]; !seen {
			c.order = append(c.order, universe)
		}
		c.frames[universe] += other.frames[universe]
	}
}
