package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"
)

// TLSTransport is a ByteTransport over a crypto/tls.Conn, grounded on
// fastws::SSLSocketWrapper::connect (TCP connect, TCP_NODELAY, then an
// OpenSSL handshake over the non-blocking socket).
type TLSTransport struct {
	conn *tls.Conn
}

// DialTLS connects to addr over TCP, enables TCP_NODELAY, then performs a
// TLS handshake with SNI set from the host portion of addr.
func DialTLS(ctx context.Context, addr string, cfg *tls.Config) (*TLSTransport, error) {
	var d net.Dialer
	raw, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConnect, addr, err)
	}
	if tc, ok := raw.(*net.TCPConn); ok {
		_ = tc.SetNoDelay(true)
	}

	if cfg == nil {
		host, _, splitErr := net.SplitHostPort(addr)
		if splitErr != nil {
			host = addr
		}
		cfg = &tls.Config{ServerName: host}
	}

	tlsConn := tls.Client(raw, cfg)
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("%w: %v", ErrTLSHandshake, err)
	}
	return &TLSTransport{conn: tlsConn}, nil
}

// Send writes p in full over the TLS connection.
func (t *TLSTransport) Send(p []byte) error {
	_, err := t.conn.Write(p)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWouldBlock, err)
	}
	return nil
}

// ReadInto mirrors TCPTransport.ReadInto: a read deadline one millisecond
// ahead turns "nothing buffered yet" into a clean (0, nil) rather than a
// block, matching the original's WANT_READ/WANT_WRITE-as-EAGAIN treatment
// on the TLS socket wrapper.
func (t *TLSTransport) ReadInto(dst []byte) (int, error) {
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

// Close closes the underlying TLS connection.
func (t *TLSTransport) Close() error {
	return t.conn.Close()
}
