package server

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pulseframework/pulse/pkg/protocol"
)

// APIResult is the outcome of a server-initiated api_call awaiting a
// client-side reply (e.g. a browser API the server can't invoke itself:
// geolocation, clipboard, local storage). Resolves the channel a
// CallAPI caller is blocked on; Err is set when the client reports a
// failure instead of a value.
type APIResult struct {
	Value json.RawMessage
	Err   string
}

type apiCallPayload struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Args json.RawMessage `json:"args,omitempty"`
}

type apiResultPayload struct {
	ID    string          `json:"id"`
	Value json.RawMessage `json:"value,omitempty"`
	Err   string          `json:"err,omitempty"`
}

// CallAPI sends an api_call message naming a client-side capability and
// blocks until the matching api_result arrives or ctx's deadline
// expires. Grounded on the PendingAPI/channel-future pattern used
// elsewhere in this package for awaiting client round-trips.
func (s *Session) CallAPI(name string, args any) (json.RawMessage, error) {
	id := generateCallID()
	ch := make(chan APIResult, 1)

	s.apiMu.Lock()
	s.pendingAPI[id] = ch
	s.apiMu.Unlock()

	var argsJSON json.RawMessage
	if args != nil {
		encoded, err := json.Marshal(args)
		if err != nil {
			s.apiMu.Lock()
			delete(s.pendingAPI, id)
			s.apiMu.Unlock()
			return nil, err
		}
		argsJSON = encoded
	}

	payload, err := json.Marshal(apiCallPayload{ID: id, Name: name, Args: argsJSON})
	if err != nil {
		s.apiMu.Lock()
		delete(s.pendingAPI, id)
		s.apiMu.Unlock()
		return nil, err
	}

	s.sendCustom("api_call", payload)

	result, ok := <-ch
	if !ok {
		return nil, ErrSessionClosed
	}
	if result.Err != "" {
		return nil, &apiError{msg: result.Err}
	}
	return result.Value, nil
}

// handleAPIResult resolves the pending CallAPI future named by data's id,
// decoded from the client's api_result custom event.
func (s *Session) handleAPIResult(data []byte) {
	var payload apiResultPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		s.logger.Warn("invalid api_result payload", "error", err)
		return
	}

	s.apiMu.Lock()
	ch, ok := s.pendingAPI[payload.ID]
	if ok {
		delete(s.pendingAPI, payload.ID)
	}
	s.apiMu.Unlock()
	if !ok {
		return
	}

	ch <- APIResult{Value: payload.Value, Err: payload.Err}
	close(ch)
}

// sendCustom wire-encodes a FrameCustom frame, best-effort (no buffering
// on disconnect: api_call/reload/channel messages are only meaningful to
// a live client, unlike vdom_update which must survive a resume).
func (s *Session) sendCustom(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() || s.conn == nil {
		return
	}

	payload := protocol.EncodeServerCustom(&protocol.ServerCustomData{Name: name, Data: data})
	frame := protocol.NewFrame(protocol.FrameCustom, payload)

	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	s.conn.WriteMessage(websocket.BinaryMessage, frame.Encode())
}

func generateCallID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

type apiError struct{ msg string }

func (e *apiError) Error() string { return e.msg }
