package wsclient

import "time"

// ConnectionStatus reports a WSClient's current lifecycle state,
// mirroring fastws::ConnectionStatus from the original source.
type ConnectionStatus int

const (
	// StatusUnknown is the zero value; a freshly constructed client
	// never observes it, since the constructor always dials and
	// handshakes before returning.
	StatusUnknown ConnectionStatus = iota
	// StatusHealthy means the connection is open and exchanging frames
	// normally.
	StatusHealthy
	// StatusClosedByServer means the peer initiated the closing
	// handshake.
	StatusClosedByServer
	// StatusClosedByClient means Close was called locally.
	StatusClosedByClient
	// StatusPingTimedOut means no Pong arrived within the configured
	// ping timeout; the connection is considered dead.
	StatusPingTimedOut
	// StatusFailed means the opening handshake did not complete
	// successfully, or a transport read failed during Poll.
	StatusFailed
)

// String names a ConnectionStatus value.
func (s ConnectionStatus) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusClosedByServer:
		return "closed_by_server"
	case StatusClosedByClient:
		return "closed_by_client"
	case StatusPingTimedOut:
		return "ping_timed_out"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Stats tracks keepalive and round-trip bookkeeping for a WSClient. This
// is a supplemented feature: the original source's latency benchmark
// (benchmark/latency/fastws_latency.cpp) computes these same figures
// externally from on_pong callback timestamps; Stats folds that
// bookkeeping into the client itself so callers don't have to reimplement
// it per application.
type Stats struct {
	// PingsSent counts outbound Ping frames, both the connect-time
	// initial ping and every keepalive ping since.
	PingsSent uint64
	// PongsReceived counts every inbound Pong frame; each one is taken
	// as the answer to the last ping sent, whether or not one is pending.
	PongsReceived uint64
	// LastRTT is the time from the last ping sent to the most recent
	// Pong received.
	LastRTT time.Duration
	// MinRTT is the smallest RTT observed so far; zero until the first
	// Pong arrives.
	MinRTT time.Duration
	// MaxRTT is the largest RTT observed so far.
	MaxRTT time.Duration
}

func (s *Stats) recordRTT(d time.Duration) {
	s.PongsReceived++
	s.LastRTT = d
	if s.MinRTT == 0 || d < s.MinRTT {
		s.MinRTT = d
	}
	if d > s.MaxRTT {
		s.MaxRTT = d
	}
}
