package ola

import "fmt"

// Client is the subset of the OLA daemon API the player talks to.
type Client interface {
	SendDmx(universe int, values []byte) (status bool, err error)
	Close()
}

// Transport adapts an OLA client to the player's frame sink.
type Transport struct {
	client Client
}

// NewTransport wraps client for use as a playback transport.
func NewTransport(client Client) *Transport {
	return &Transport{client: client}
}

// SendFrame transmits one frame to a universe via olad.
func (t *Transport) SendFrame(universe uint32, frame []byte) error {
	if _, err := t.client.SendDmx(int(universe), frame); err != nil {
		return fmt.Errorf("sending frame to universe %d: %w", universe, err)
	}
	return nil
}
