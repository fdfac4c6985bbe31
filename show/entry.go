package show

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/robmorgan/showtape/dmx"
)

// Entry is one recorded frame change: the universe it targets, the
// milliseconds since the previous entry in the file (a single global clock
// across all universes), and the raw channel values.
type Entry struct {
	Universe uint32
	WaitMS   uint32
	Frame    []byte
}

// ErrCorrupt marks a record that could not be decoded. It is distinct from
// io.EOF so readers can tell a truncated file from a finished one.
var ErrCorrupt = errors.New("show: corrupt entry")

// Each record is a fixed header followed by the frame bytes.
const (
	headerLen   = 10 // universe (4) + wait (4) + frame length (2)
	maxFrameLen = int(dmx.UniverseChannels)
)

// WriteEntry appends the encoded entry to w.
func WriteEntry(w io.Writer, e Entry) error {
	if len(e.Frame) > maxFrameLen {
		return fmt.Errorf("show: frame for universe %d has %d channels, the maximum is %d",
			e.Universe, len(e.Frame), maxFrameLen)
	}
	var header [headerLen]byte
	binary.BigEndian.PutUint32(header[0:4], e.Universe)
	binary.BigEndian.PutUint32(header[4:8], e.WaitMS)
	binary.BigEndian.PutUint16(header[8:10], uint16(len(e.Frame)))
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	_, err := w.Write(e.Frame)
	return err
}

// ReadEntry decodes the next entry from r into e, reusing e's frame buffer
// where possible. It returns io.EOF on a clean end of stream and ErrCorrupt
// (wrapped) when the stream ends mid-record or the header is malformed.
func ReadEntry(r io.Reader, e *Entry) error {
	var header [headerLen]byte
	if _, err := io.ReadFull(r, header[:1]); err != nil {
		if err == io.EOF {
			return io.EOF
		}
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if _, err := io.ReadFull(r, header[1:]); err != nil {
		return fmt.Errorf("%w: truncated header: %v", ErrCorrupt, err)
	}
	e.Universe = binary.BigEndian.Uint32(header[0:4])
	e.WaitMS = binary.BigEndian.Uint32(header[4:8])
	frameLen := int(binary.BigEndian.Uint16(header[8:10]))
	if frameLen > maxFrameLen {
		return fmt.Errorf("%w: frame length %d exceeds %d channels", ErrCorrupt, frameLen, maxFrameLen)
	}
	if cap(e.Frame) < frameLen {
		e.Frame = make([]byte, frameLen)
	}
	e.Frame = e.Frame[:frameLen]
	if _, err := io.ReadFull(r, e.Frame); err != nil {
		return fmt.Errorf("%w: truncated frame: %v", ErrCorrupt, err)
	}
	return nil
}
