package transport

import (
	"context"
	"fmt"
	"net"
	"time"
)

// TCPTransport is a plain (non-TLS) ByteTransport over a net.TCPConn,
// grounded on fastws::SocketWrapper::connect (getaddrinfo + TCP_NODELAY +
// O_NONBLOCK).
type TCPTransport struct {
	conn net.Conn
}

// DialTCP resolves and connects to addr ("host:port"), enabling
// TCP_NODELAY exactly as the original socket wrapper does before marking
// the socket non-blocking — Nagle's algorithm adds latency this library
// exists to avoid.
func DialTCP(ctx context.Context, addr string) (*TCPTransport, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConnect, addr, err)
	}
	if tc, ok := conn.(*net.TCPConn); ok {
		_ = tc.SetNoDelay(true)
	}
	return &TCPTransport{conn: conn}, nil
}

// Send writes p in full. A zero write deadline means this call can
// block; the original socket wrapper's send() loops to completion on a
// genuinely non-blocking socket rather than buffering, and a blocking
// net.Conn write achieves the same "send completes or errors" contract
// without the library growing an internal retry buffer.
func (t *TCPTransport) Send(p []byte) error {
	_, err := t.conn.Write(p)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWouldBlock, err)
	}
	return nil
}

// ReadInto pulls whatever bytes are immediately available into dst. It
// sets a read deadline one millisecond ahead first so a peer with nothing
// to send yields (0, nil) after at most that long instead of blocking —
// the Go analogue of the original's O_NONBLOCK recv into
// frame_buffer.tail(). A deadline already in the past would make Read
// fail before it looks at the socket at all.
func (t *TCPTransport) ReadInto(dst []byte) (int, error) {
	if err := t.conn.SetReadDeadline(time.Now().Add(time.Millisecond)); err != nil {
		return 0, err
	}
	n, err := t.conn.Read(dst)
	if err != nil {
		if isRetryable(err) {
			return n, nil
		}
		if isEOF(err) {
			return n, err
		}
		return n, fmt.Errorf("transport: read: %w", err)
	}
	return n, nil
}

// Close closes the underlying connection.
func (t *TCPTransport) Close() error {
	return t.conn.Close()
}
