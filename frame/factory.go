package frame

import "fmt"

// ErrControlTooLarge is returned by the control-frame convenience
// constructors (Ping, Pong, CloseFrame) when payload exceeds the RFC
// 6455 Section 5.5 125-byte control-frame ceiling.
type ErrControlTooLarge struct {
	Opcode Opcode
	Len    int
}

func (e *ErrControlTooLarge) Error() string {
	return fmt.Sprintf("frame: %s control frame payload too large: %d bytes (max %d)", e.Opcode, e.Len, maxControlPayload)
}

// Factory encodes frames into a reusable scratch buffer and supplies
// masking keys from a cached PRNG pool (see maskKeyPool).
//
// The byte slice Construct returns is a view into the factory's own
// scratch buffer and is only valid until the next Construct call on the
// same Factory — callers must hand it to a transport's send before
// encoding another frame.
type Factory struct {
	buf  *Buffer
	keys *maskKeyPool
}

// NewFactory returns a ready-to-use Factory with a 4096-byte scratch
// buffer and a freshly seeded masking-key pool.
func NewFactory() *Factory {
	return &Factory{buf: NewBuffer(4096), keys: newMaskKeyPool()}
}

// RefillKeys forces the masking-key pool to draw a fresh batch from the
// PRNG immediately, rather than waiting for lazy exhaustion. Exposed for
// callers that want to bound worst-case key staleness explicitly.
func (f *Factory) RefillKeys() { f.keys.refill() }

// Construct encodes a frame with the given fin bit, opcode, mask flag,
// and payload into the factory's scratch buffer and returns a view of
// the encoded bytes.
//
// Layout (RFC 6455 Section 5.2, spec §4.3):
//
//  1. byte 0 = (fin<<7) | (opcode & 0x0F); RSV bits are always zero.
//  2. byte 1 = (mask<<7) | length-encoding:
//     len<126: low 7 bits are the length.
//     126<=len<=0xFFFF: low 7 bits are 126, followed by a big-endian u16.
//     len>0xFFFF: low 7 bits are 127, followed by a big-endian u64.
//  3. if masked: a 4-byte key drawn from the cache, then payload XORed
//     with key[i%4]; otherwise the raw payload.
func (f *Factory) Construct(fin bool, opcode Opcode, mask bool, payload []byte) []byte {
	f.buf.Reset()
	f.buf.EnsureExtraSpace(len(payload) + 14)

	first := byte(0)
	if fin {
		first = 0x80
	}
	first |= byte(opcode) & 0x0F
	f.buf.PushByte(first)

	maskBit := byte(0)
	if mask {
		maskBit = 0x80
	}

	n := uint64(len(payload))
	switch {
	case n < 126:
		f.buf.PushByte(maskBit | byte(n))
	case n <= 0xFFFF:
		f.buf.PushByte(maskBit | 126)
		ext := f.buf.GetSpace(2)
		ext[0] = byte(n >> 8)
		ext[1] = byte(n)
	default:
		f.buf.PushByte(maskBit | 127)
		ext := f.buf.GetSpace(8)
		for i := 0; i < 8; i++ {
			ext[i] = byte(n >> (8 * (7 - i)))
		}
	}

	if mask {
		key := f.keys.next()
		dst := f.buf.GetSpace(4)
		copy(dst, key[:])
		out := f.buf.GetSpace(len(payload))
		for i, b := range payload {
			out[i] = b ^ key[i%4]
		}
	} else if len(payload) > 0 {
		copy(f.buf.GetSpace(len(payload)), payload)
	}

	return f.buf.Bytes()
}

// Text encodes a final (fin=true) Text frame.
func (f *Factory) Text(mask bool, payload []byte) []byte {
	return f.Construct(true, Text, mask, payload)
}

// Binary encodes a final (fin=true) Binary frame.
func (f *Factory) Binary(mask bool, payload []byte) []byte {
	return f.Construct(true, Binary, mask, payload)
}

// Ping encodes a Ping control frame. Returns ErrControlTooLarge if
// payload exceeds 125 bytes.
func (f *Factory) Ping(mask bool, payload []byte) ([]byte, error) {
	return f.control(Ping, mask, payload)
}

// Pong encodes a Pong control frame. Returns ErrControlTooLarge if
// payload exceeds 125 bytes.
func (f *Factory) Pong(mask bool, payload []byte) ([]byte, error) {
	return f.control(Pong, mask, payload)
}

// CloseFrame encodes a Close control frame. Returns ErrControlTooLarge
// if payload exceeds 125 bytes.
func (f *Factory) CloseFrame(mask bool, payload []byte) ([]byte, error) {
	return f.control(Close, mask, payload)
}

func (f *Factory) control(opcode Opcode, mask bool, payload []byte) ([]byte, error) {
	if len(payload) > maxControlPayload {
		return nil, &ErrControlTooLarge{Opcode: opcode, Len: len(payload)}
	}
	return f.Construct(true, opcode, mask, payload), nil
}
