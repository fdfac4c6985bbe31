package dmx

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

type Address int
type Channel uint8

// UniverseChannels is the number of channels on a single DMX512 line.
const UniverseChannels Address = 512

// Universe holds the last known channel values for one DMX universe.
type Universe struct {
	channels []byte
}

// NewUniverse creates a new DMX universe with no known state.
func NewUniverse() *Universe {
	return &Universe{}
}

// Update replaces the stored channel values with frame and reports whether
// anything changed. The first call always reports a change so callers see
// the initial state of a universe.
func (u *Universe) Update(frame []byte) (bool, error) {
	if len(frame) > int(UniverseChannels) {
		return false, fmt.Errorf("frame has %d channels, the maximum is %d", len(frame), UniverseChannels)
	}
	if u.channels != nil && bytes.Equal(u.channels, frame) {
		return false, nil
	}
	u.channels = append(u.channels[:0], frame...)
	return true, nil
}

// Bytes returns a copy of the current channel values.
func (u *Universe) Bytes() []byte {
	buf := make([]byte, len(u.channels))
	copy(buf, u.channels)
	return buf
}

func (u *Universe) String() string {
	return hex.Dump(u.channels)
}

// Get returns the value of a single channel. Addresses start at 1.
func (u *Universe) Get(address Address) Channel {
	if address <= 0 || address > UniverseChannels {
		panic("Invalid DMX address")
	} else if int(address) > len(u.channels) {
		return 0
	}
	return Channel(u.channels[address-1])
}
