// Package transport implements the non-blocking byte-stream abstraction
// the WebSocket client polls: a small interface plus TCP and TLS
// implementations built on net.Conn.
//
// Grounded on fastws::SocketWrapper / fastws::SSLSocketWrapper
// (original_source/single_header/fastws.hpp), which wrap a raw POSIX
// socket placed in O_NONBLOCK mode. Go's net.Conn has no non-blocking
// mode switch; the idiomatic equivalent used here is a SetReadDeadline
// one millisecond ahead before every read, which turns a would-block
// read into an os.ErrDeadlineExceeded the caller treats as "no data
// yet" — the same semantics the original gets from EAGAIN/EWOULDBLOCK,
// at the cost of waiting at most that millisecond.
package transport

import "io"

// ByteTransport is the non-blocking byte-stream the WSClient poll loop
// drives. It has exactly two operations, matching spec §4.1: sending a
// fully-formed frame, and pulling whatever bytes are currently available
// into the parser's accumulation buffer without blocking.
type ByteTransport interface {
	// Send writes p to the peer in its entirety, blocking until the
	// write completes or fails. It never buffers a remainder internally
	// for a later call (a suspect but preserved behavior of the original
	// source); any write failure is returned wrapped in ErrWouldBlock.
	Send(p []byte) error

	// ReadInto writes any currently-available bytes directly into dst
	// (typically the parser's Buffer.Tail()) and returns how many bytes
	// were written. It does not wait for data beyond a read deadline of
	// about a millisecond: if no data is available by then, it returns
	// (0, nil). A return of (0, io.EOF) means the peer closed the
	// connection.
	ReadInto(dst []byte) (int, error)

	// Close releases the underlying connection. Safe to call more than
	// once.
	Close() error
}

var _ ByteTransport = (*TCPTransport)(nil)
var _ ByteTransport = (*TLSTransport)(nil)

// isRetryable reports whether err from a ReadInto call represents "no
// data available right now" rather than a real I/O failure — the
// deadline-exceeded signal SetReadDeadline(time.Now()) produces when the
// socket has nothing buffered.
func isRetryable(err error) bool {
	type timeout interface{ Timeout() bool }
	if te, ok := err.(timeout); ok {
		return te.Timeout()
	}
	return false
}

// isEOF reports whether err signals the peer closed the connection.
func isEOF(err error) bool {
	return err == io.EOF
}
