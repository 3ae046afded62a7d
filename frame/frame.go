package frame

// Frame is a decoded or to-be-encoded WebSocket frame (RFC 6455 Section
// 5.2).
//
//	 0                   1                   2                   3
//	 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
//	+-+-+-+-+-------+-+-------------+-------------------------------+
//	|F|R|R|R| opcode|M| Payload len |    Extended payload length    |
//	|I|S|S|S|  (4)  |A|     (7)     |             (16/64)           |
//	|N|V|V|V|       |S|             |   (if payload len==126/127)   |
//	| |1|2|3|       |K|             |                               |
//	+-+-+-+-+-------+-+-------------+ - - - - - - - - - - - - - - - +
//	|     Extended payload length continued, if payload len == 127  |
//	+ - - - - - - - - - - - - - - - +-------------------------------+
//	|                               |Masking-key, if MASK set to 1  |
//	+-------------------------------+-------------------------------+
//	| Masking-key (continued)       |          Payload Data         |
//	+-------------------------------- - - - - - - - - - - - - - - - +
//	:                     Payload Data continued ...                :
//	+ - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - +
//	|                     Payload Data continued ...                |
//	+---------------------------------------------------------------+
//
// Payload is a slice borrowing directly from the Parser's internal
// buffer (or, for Factory output, the caller's own slice echoed back).
// A Frame decoded by Parser.Update is only valid until the parser's
// next Update call; copy Payload before that if it must outlive the
// call.
type Frame struct {
	// Fin is the FIN bit: true marks the final fragment of a message.
	Fin bool

	// Opcode identifies the frame's type.
	Opcode Opcode

	// Mask reports whether MaskingKey is populated. RFC 6455 Section
	// 5.3 requires client-to-server frames to always set this true;
	// server-to-client frames are conventionally unmasked, but the
	// parser tolerates either direction.
	Mask bool

	// MaskingKey is the 4-byte XOR key, valid iff Mask is true.
	MaskingKey [4]byte

	// Payload is the frame's application data. For control frames
	// (Close, Ping, Pong) it is at most 125 bytes on any frame this
	// package's Factory produced; the parser does not enforce that
	// limit on frames it merely decodes (see package doc).
	Payload []byte
}

// CloseCode is the RFC 6455 Section 7.4 status code carried in a Close
// frame's payload, if any.
type CloseCode uint16

const (
	// CloseNormalClosure indicates normal closure (1000).
	CloseNormalClosure CloseCode = 1000
	// CloseGoingAway indicates the endpoint is going away (1001).
	CloseGoingAway CloseCode = 1001
	// CloseProtocolError indicates a protocol error (1002).
	CloseProtocolError CloseCode = 1002
	// CloseUnsupportedData indicates the endpoint received a data type
	// it cannot accept (1003).
	CloseUnsupportedData CloseCode = 1003
	// CloseNoStatusReceived is used internally when a Close frame
	// carries no status code (1005); it must never be sent on the wire.
	CloseNoStatusReceived CloseCode = 1005
	// CloseAbnormalClosure is used internally when the connection drops
	// without a Close frame (1006); it must never be sent on the wire.
	CloseAbnormalClosure CloseCode = 1006
	// ClosePolicyViolation indicates a generic policy violation (1008).
	ClosePolicyViolation CloseCode = 1008
	// CloseMessageTooBig indicates the message was too large to
	// process (1009).
	CloseMessageTooBig CloseCode = 1009
	// CloseInternalServerErr indicates the peer hit an unexpected
	// condition (1011).
	CloseInternalServerErr CloseCode = 1011
)

// CloseCode returns the status code carried by a Close frame's payload
// (RFC 6455 Section 5.5.1: the first two bytes, big-endian), or
// CloseNoStatusReceived if the frame is not a Close frame or carries
// fewer than two payload bytes.
func (f Frame) CloseCode() CloseCode {
	if f.Opcode != Close || len(f.Payload) < 2 {
		return CloseNoStatusReceived
	}
	return CloseCode(uint16(f.Payload[0])<<8 | uint16(f.Payload[1]))
}

// CloseReason returns the UTF-8 reason text following the status code in
// a Close frame's payload, or "" if the frame is not a Close frame or
// carries no reason text.
func (f Frame) CloseReason() string {
	if f.Opcode != Close || len(f.Payload) <= 2 {
		return ""
	}
	return string(f.Payload[2:])
}
