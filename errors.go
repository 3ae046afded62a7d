package wsclient

import "errors"

// Sentinel errors, in the same doc-per-error style the frame subpackage
// and its teacher use throughout.

var (
	// ErrHandshakeFailed indicates the server did not respond with a 101
	// Switching Protocols status during the opening handshake (RFC 6455
	// Section 4.1).
	ErrHandshakeFailed = errors.New("wsclient: handshake failed")

	// ErrHandshakeTimeout indicates no complete HTTP response was
	// received from the server within the configured handshake timeout.
	ErrHandshakeTimeout = errors.New("wsclient: handshake timed out")

	// ErrAcceptMismatch indicates the server's Sec-WebSocket-Accept
	// header did not match the value computed from the request's
	// Sec-WebSocket-Key (RFC 6455 Section 4.2.2, item 4). Only checked
	// when Strict handshake validation is enabled.
	ErrAcceptMismatch = errors.New("wsclient: Sec-WebSocket-Accept mismatch")

	// ErrNotOpen indicates SendText or SendBinary was attempted on a
	// client whose connection is not open (Poll reports this through
	// its returned status instead).
	ErrNotOpen = errors.New("wsclient: connection not open")

	// ErrPingTimeout indicates no Pong was received within the
	// configured ping timeout, matching ConnectionStatus PingTimedOut.
	// Returned by SendText/SendBinary when the connection died this way;
	// control-frame-too-large is surfaced separately, by
	// frame.ErrControlTooLarge, from the factory that built the frame.
	ErrPingTimeout = errors.New("wsclient: ping timed out")
)
