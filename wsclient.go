// Package wsclient implements a minimalist, low-latency RFC 6455
// WebSocket client (client role only, version 13). A single outbound
// connection is established over TCP or TLS, the HTTP Upgrade handshake
// is performed, and application frames are exchanged through a
// single-threaded cooperative Poll loop the caller drives directly — the
// library owns no event loop and spawns no goroutines of its own.
//
// Ported from the original_source fastws single-header C++ library: see
// frame.Parser and frame.Factory for the wire-format half, and this
// package for the connection orchestration (handshake, keepalive, close
// handshake) that drives them.
package wsclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/lithammer/shortuuid/v4"

	"github.com/coregx/wsclient/frame"
	"github.com/coregx/wsclient/transport"
)

// FrameHandler is the callback surface a caller supplies to receive
// connection lifecycle and message events. Handlers may call SendText,
// SendBinary, or Close re-entrantly from within a callback: the
// single-threaded cooperative model (no internal locking) permits it, as
// long as the WSClient itself is never shared across goroutines.
type FrameHandler interface {
	OnOpen(c *WSClient)
	OnText(c *WSClient, payload []byte)
	OnBinary(c *WSClient, payload []byte)
	OnContinuation(c *WSClient, f frame.Frame)
	OnClose(c *WSClient, success bool)
}

// Config configures a WSClient's handshake and keepalive behavior. Zero
// values are replaced with the defaults named in each field's comment.
type Config struct {
	// Host is the target hostname, used for both the TCP dial and the
	// handshake's Host header / TLS SNI.
	Host string
	// Port is the target port. Defaults to 443 for TLS, 80 otherwise.
	Port int
	// Path is the HTTP request-line path. Defaults to "/".
	Path string
	// TLS selects a TLS transport over plain TCP.
	TLS bool
	// TLSConfig overrides the default TLS configuration (ServerName set
	// to Host) when TLS is true.
	TLSConfig *tls.Config
	// ExtraHeaders are appended to the Upgrade request verbatim, after
	// the four mandatory headers.
	ExtraHeaders http.Header
	// Strict enables verifying the server's Sec-WebSocket-Accept header
	// against the value computed from the sent Sec-WebSocket-Key. The
	// literal source behavior this library is ported from skips this
	// check entirely (spec §9's first open question); Strict defaults
	// to false to preserve that behavior, and can be enabled by callers
	// that want the fuller RFC 6455 guarantee.
	Strict bool
	// ConnectTimeout bounds the opening handshake. Defaults to 10s.
	ConnectTimeout time.Duration
	// PingEvery is the keepalive interval. Defaults to 60s.
	PingEvery time.Duration
	// PingTimeout bounds how long to wait for a Pong before declaring
	// the connection dead. Defaults to 10s.
	PingTimeout time.Duration
	// MaxReads bounds how many complete frames a single Poll call will
	// drain. Defaults to 4.
	MaxReads int
	// NoMask disables masking of outbound frames. RFC 6455 Section 5.1
	// requires client frames to be masked; this should only be set
	// against test servers that tolerate unmasked frames.
	NoMask bool
	// Logger receives internal diagnostics. Defaults to a no-op logger.
	Logger *Logger
}

func (c *Config) applyDefaults() {
	if c.Path == "" {
		c.Path = "/"
	}
	if c.Port == 0 {
		if c.TLS {
			c.Port = 443
		} else {
			c.Port = 80
		}
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 10 * time.Second
	}
	if c.PingEvery == 0 {
		c.PingEvery = 60 * time.Second
	}
	if c.PingTimeout == 0 {
		c.PingTimeout = 10 * time.Second
	}
	if c.MaxReads == 0 {
		c.MaxReads = 4
	}
	if c.Logger == nil {
		nop := NewNopLogger()
		c.Logger = &nop
	}
}

// handshakeReadHint and pollReadHint mirror the original source's read_into chunk size hint
// (4096 during the handshake poll, 1024 in the steady-state poll loop).
const (
	handshakeReadHint = 4096
	pollReadHint      = 1024
)

// WSClient is a single outbound WebSocket connection. It is not safe for
// concurrent use; all methods are meant to be called from the one
// goroutine that also calls Poll, including re-entrantly from within a
// FrameHandler callback.
type WSClient struct {
	cfg     Config
	handler FrameHandler

	transport transport.ByteTransport
	parser    *frame.Parser
	factory   *frame.Factory

	connID string
	status ConnectionStatus
	open   bool
	closed bool

	kp    *keepalive
	stats Stats
}

// Dial opens a transport to cfg.Host:cfg.Port, performs the HTTP Upgrade
// handshake, and returns a ready WSClient on success. On failure it
// returns a nil WSClient and a non-nil error; if the handshake itself
// failed, the underlying transport is closed.
func Dial(ctx context.Context, cfg Config, handler FrameHandler) (*WSClient, error) {
	cfg.applyDefaults()

	c := &WSClient{
		cfg:     cfg,
		handler: handler,
		parser:  frame.NewParser(),
		factory: frame.NewFactory(),
		connID:  shortuuid.New(),
		kp:      newKeepalive(cfg.PingEvery, cfg.PingTimeout),
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	dialCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	var t transport.ByteTransport
	var err error
	if cfg.TLS {
		t, err = transport.DialTLS(dialCtx, addr, cfg.TLSConfig)
	} else {
		t, err = transport.DialTCP(dialCtx, addr)
	}
	if err != nil {
		c.status = StatusFailed
		return nil, err
	}
	c.transport = t

	if err := c.handshake(); err != nil {
		c.status = StatusFailed
		_ = c.transport.Close()
		return nil, err
	}

	c.status = StatusHealthy
	c.open = true
	c.cfg.Logger.debugf(c.connID, "websocket connection open")
	if c.handler != nil {
		c.handler.OnOpen(c)
	}

	// The original constructor immediately arms the ping timer and
	// sends the first ping rather than waiting a full PingEvery
	// interval for the initial keepalive probe.
	c.kp.armInitial()
	c.stats.PingsSent++
	if pingFrame, perr := c.factory.Ping(!c.cfg.NoMask, nil); perr == nil {
		_ = c.transport.Send(pingFrame)
	}

	return c, nil
}

// handshake implements spec §4.4.1: build and send the Upgrade request,
// then poll-read with 100ms cadence, up to ConnectTimeout*10 attempts,
// until "\r\n\r\n" terminates the response or the timeout is reached.
func (c *WSClient) handshake() error {
	key, err := generateSecWebSocketKey()
	if err != nil {
		return err
	}

	req := buildUpgradeRequest(c.cfg.Host, c.cfg.Port, c.cfg.Path, key, c.cfg.ExtraHeaders)
	if err := c.transport.Send(req); err != nil {
		return fmt.Errorf("wsclient: send handshake request: %w", err)
	}

	var resp bytes.Buffer
	buf := make([]byte, handshakeReadHint)
	maxAttempts := int(c.cfg.ConnectTimeout/time.Second) * 10
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for i := 0; i < maxAttempts; i++ {
		n, rerr := c.transport.ReadInto(buf)
		if rerr != nil {
			return fmt.Errorf("wsclient: read handshake response: %w", rerr)
		}
		if n > 0 {
			resp.Write(buf[:n])
			if bytes.Contains(resp.Bytes(), []byte("\r\n\r\n")) {
				break
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	if !bytes.Contains(resp.Bytes(), []byte("\r\n\r\n")) {
		return ErrHandshakeTimeout
	}
	if !isSwitchingProtocols(resp.Bytes()) {
		return ErrHandshakeFailed
	}

	if c.cfg.Strict {
		parsed := parseHandshakeResponse(resp.Bytes())
		if parsed.accept != expectedAcceptKey(key) {
			return ErrAcceptMismatch
		}
	}

	// Frames the server sent right behind its header block may have
	// arrived in the same read; hand them to the parser for Poll.
	_, rest, _ := bytes.Cut(resp.Bytes(), []byte("\r\n\r\n"))
	c.parser.Buffer().PushBack(rest)

	return nil
}

// Status returns the client's current ConnectionStatus.
func (c *WSClient) Status() ConnectionStatus { return c.status }

// Stats returns a snapshot of keepalive/RTT bookkeeping.
func (c *WSClient) Stats() Stats { return c.stats }

// LastRTT returns the time from the last Ping sent to the most recent
// Pong received.
func (c *WSClient) LastRTT() time.Duration { return c.stats.LastRTT }

// ConnID returns this client's locally-generated connection identifier,
// used to correlate log lines across a ClientPool.
func (c *WSClient) ConnID() string { return c.connID }

// notOpenErr reports why the connection isn't open for sending:
// ErrPingTimeout if the keepalive probe went unanswered, ErrNotOpen for
// every other closed/failed/not-yet-open state.
func (c *WSClient) notOpenErr() error {
	if c.status == StatusPingTimedOut {
		return ErrPingTimeout
	}
	return ErrNotOpen
}

// SendText sends a final Text frame.
func (c *WSClient) SendText(payload []byte) error {
	if !c.open {
		return c.notOpenErr()
	}
	return c.transport.Send(c.factory.Text(!c.cfg.NoMask, payload))
}

// SendBinary sends a final Binary frame.
func (c *WSClient) SendBinary(payload []byte) error {
	if !c.open {
		return c.notOpenErr()
	}
	return c.transport.Send(c.factory.Binary(!c.cfg.NoMask, payload))
}

func (c *WSClient) sendPong(payload []byte) error {
	f, err := c.factory.Pong(!c.cfg.NoMask, payload)
	if err != nil {
		return err
	}
	return c.transport.Send(f)
}

func (c *WSClient) sendPing(payload []byte) error {
	f, err := c.factory.Ping(!c.cfg.NoMask, payload)
	if err != nil {
		return err
	}
	return c.transport.Send(f)
}

func (c *WSClient) sendCloseFrame(payload []byte) error {
	f, err := c.factory.CloseFrame(!c.cfg.NoMask, payload)
	if err != nil {
		return err
	}
	return c.transport.Send(f)
}

// Poll runs one non-blocking iteration: read whatever bytes are
// available into the parser, drain up to cfg.MaxReads complete frames
// dispatching each to the FrameHandler, run the keepalive check, and
// return the resulting status. Matches spec §4.4.2 exactly, including
// the ordering guarantee that callbacks fire in wire order and that a
// CLOSE frame short-circuits the remaining drain budget.
func (c *WSClient) Poll() ConnectionStatus {
	if !c.open {
		return c.status
	}

	n, err := c.transport.ReadInto(c.parser.Buffer().GetSpace(pollReadHint))
	if err != nil {
		c.cfg.Logger.errorf(c.connID, err, "transport read error")
		c.status = StatusFailed
		c.open = false
		if c.handler != nil {
			c.handler.OnClose(c, false)
		}
		return c.status
	}
	// GetSpace already extended the buffer's write cursor by
	// pollReadHint; ClaimSpace(n) un-claims the part that went unused.
	c.parser.Buffer().ClaimSpace(n - pollReadHint)

	newData := n > 0
	for reads := 0; reads < c.cfg.MaxReads; reads++ {
		fr, ok := c.parser.UpdateReady(newData)
		newData = false
		if !ok {
			break
		}

		switch fr.Opcode {
		case frame.Text:
			if c.handler != nil {
				c.handler.OnText(c, fr.Payload)
			}
		case frame.Binary:
			if c.handler != nil {
				c.handler.OnBinary(c, fr.Payload)
			}
		case frame.Ping:
			if err := c.sendPong(fr.Payload); err != nil {
				c.cfg.Logger.warnf(c.connID, "failed to send pong in reply to ping")
			}
		case frame.Pong:
			rtt := c.kp.onPong()
			c.stats.recordRTT(rtt)
		case frame.Close:
			c.open = false
			c.status = StatusClosedByServer
			c.cfg.Logger.debugf(c.connID, fmt.Sprintf("peer closed: code=%d reason=%q", fr.CloseCode(), fr.CloseReason()))
			_ = c.sendCloseFrame(nil)
			if c.handler != nil {
				c.handler.OnClose(c, true)
			}
			return c.status
		default:
			if c.handler != nil {
				c.handler.OnContinuation(c, fr)
			}
		}
	}

	c.updatePing()
	return c.status
}

// updatePing implements spec §4.4.3: send a new ping if idle past
// PingEvery, or declare the connection dead if a pong has not arrived
// within PingTimeout of the last ping sent.
func (c *WSClient) updatePing() {
	switch c.kp.update() {
	case pingActionSend:
		c.kp.onPingSent()
		c.stats.PingsSent++
		if err := c.sendPing(nil); err != nil {
			c.cfg.Logger.warnf(c.connID, "failed to send keepalive ping")
		}
	case pingActionTimedOut:
		c.open = false
		c.status = StatusPingTimedOut
		c.cfg.Logger.warnf(c.connID, "ping timed out")
	}
}

// Close performs the closing handshake (spec §4.4.4): idempotent, drains
// any pending frames with one last Poll, clears the parser, sends a
// CLOSE frame, and then waits (100ms cadence, bounded by timeout) for
// the peer's own CLOSE frame in reply.
func (c *WSClient) Close(timeout time.Duration) bool {
	if c.closed {
		return true
	}
	c.closed = true

	if timeout == 0 {
		timeout = 10 * time.Second
	}

	if c.open {
		c.Poll()
	}
	c.parser.Clear()

	_ = c.sendCloseFrame(nil)
	c.status = StatusClosedByClient
	c.open = false

	success := false
	maxAttempts := int(timeout/time.Second) * 10
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	buf := make([]byte, pollReadHint)
	for i := 0; i < maxAttempts; i++ {
		n, err := c.transport.ReadInto(buf)
		if err == nil && n > 0 {
			if fr, ok := c.parser.Update(buf[:n]); ok && fr.Opcode == frame.Close {
				success = true
				break
			}
			for {
				fr, ok := c.parser.Update(nil)
				if !ok {
					break
				}
				if fr.Opcode == frame.Close {
					success = true
				}
			}
			if success {
				break
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	_ = c.transport.Close()
	if c.handler != nil {
		c.handler.OnClose(c, success)
	}
	return success
}
