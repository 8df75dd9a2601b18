package protocol

// ServerCustomData is the server-to-client counterpart of CustomEventData:
// a named payload carried in a FrameCustom frame. Used for api_call (server
// requests a value only the client can produce), reload (hot-reload asset
// invalidation), and channel (form/ref/plugin multiplexed messages).
type ServerCustomData struct {
	Name string
	Data []byte
}

// EncodeServerCustom encodes a ServerCustomData payload for a FrameCustom frame.
func EncodeServerCustom(d *ServerCustomData) []byte {
	enc := NewEncoder()
	if d == nil {
		enc.WriteString("")
		enc.WriteLenBytes(nil)
		return enc.Bytes()
	}
	enc.WriteString(d.Name)
	enc.WriteLenBytes(d.Data)
	return enc.Bytes()
}

// DecodeServerCustom decodes a FrameCustom frame's payload.
func DecodeServerCustom(data []byte) (*ServerCustomData, error) {
	dec := NewDecoder(data)
	name, err := dec.ReadString()
	if err != nil {
		return nil, err
	}
	payload, err := dec.ReadLenBytes()
	if err != nil {
		return nil, err
	}
	return &ServerCustomData{Name: name, Data: payload}, nil
}
