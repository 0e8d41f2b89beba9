package server

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zeusync/volley/internal/core/observability/log"
)

func TestHubHistoryIsBounded(t *testing.T) {
	h := newHub(2, log.NewNop())
	for _, side := range []string{"a", "b", "c"} {
		h.remember(Frame{Type: FrameEvent, Event: &EventFrame{Side: side}})
	}

	assert.Len(t, h.history, 2)
	assert.Equal(t, "b", h.history[0].Event.Side)
	assert.Equal(t, "c", h.history[1].Event.Side)
}

func TestHubWithoutHistory(t *testing.T) {
	h := newHub(0, log.NewNop())
	h.remember(Frame{Type: FrameEvent})
	assert.Empty(t, h.history)
	assert.Zero(t, h.count())
}

func TestCodecByName(t *testing.T) {
	c, err := CodecByName("")
	assert.NoError(t, err)
	assert.Equal(t, "json", c.Name())

	c, err = CodecByName("msgpack")
	assert.NoError(t, err)
	assert.Equal(t, "msgpack", c.Name())

	_, err = CodecByName("xml")
	assert.ErrorIs(t, err, ErrUnknownCodec)
}

type brokenCodec struct{ jsonCodec }

func (brokenCodec) Name() string { return "broken" }
func (brokenCodec) Marshal(any) ([]byte, error) {
	return nil, errors.New("cannot encode")
}

func TestBroadcastSkipsOnlyTheFailingCodec(t *testing.T) {
	h := newHub(0, log.NewNop())
	first := newClient(nil, brokenCodec{}, 4)
	second := newClient(nil, brokenCodec{}, 4)
	healthy := newClient(nil, JSON, 4)
	for _, c := range []*client{first, second, healthy} {
		h.add(c)
	}

	h.broadcast(Frame{Type: FrameError, Error: "x"})

	assert.Len(t, healthy.send, 1)
	assert.Empty(t, first.send)
	assert.Empty(t, second.send)
	assert.Equal(t, 3, h.count())
}
