package server

import (
	"encoding/json"
	"sync"
)

// ChannelsManager multiplexes named, bidirectional message channels over
// a single session connection — the transport forms, refs, and plugins
// use to emit client-originated events and receive server-sent ones
// without each needing its own frame type. Grounded on the
// PendingAPI/channel-future idiom used for CallAPI, generalized from a
// single reply to an ongoing stream of named messages.
type ChannelsManager struct {
	mu        sync.Mutex
	nextID    uint64
	listeners map[string]map[uint64]func(data json.RawMessage)
}

func newChannelsManager() *ChannelsManager {
	return &ChannelsManager{listeners: make(map[string]map[uint64]func(data json.RawMessage))}
}

type channelMessage struct {
	Channel string          `json:"channel"`
	Data    json.RawMessage `json:"data"`
}

// Subscribe registers fn to run whenever a client message arrives on
// channel. Returns an unsubscribe function, called from the owning
// component/ref's cleanup.
func (c *ChannelsManager) Subscribe(channel string, fn func(data json.RawMessage)) func() {
	c.mu.Lock()
	if c.listeners[channel] == nil {
		c.listeners[channel] = make(map[uint64]func(data json.RawMessage))
	}
	c.nextID++
	id := c.nextID
	c.listeners[channel][id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners[channel], id)
	}
}

// handleIncoming dispatches a decoded "channel" custom event to every
// listener subscribed to its named channel.
func (c *ChannelsManager) handleIncoming(raw []byte) {
	var msg channelMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return
	}

	c.mu.Lock()
	fns := make([]func(data json.RawMessage), 0, len(c.listeners[msg.Channel]))
	for _, fn := range c.listeners[msg.Channel] {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(msg.Data)
	}
}

// closeAll drops every registered listener, called from the owning
// session's finalizeClose.
func (c *ChannelsManager) closeAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = make(map[string]map[uint64]func(data json.RawMessage))
}

// Emit sends a message to the client on channel, wire-encoded through
// the session's FrameCustom transport (best-effort, not buffered across
// disconnects).
func (s *Session) EmitChannel(channel string, data any) error {
	encodedData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(channelMessage{Channel: channel, Data: encodedData})
	if err != nil {
		return err
	}
	s.sendCustom("channel", payload)
	return nil
}
