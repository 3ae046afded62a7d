package wsclient

import (
	"io"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger for the client's internal diagnostics:
// handshake progress, keepalive state transitions, and close handshake
// outcomes. It is entirely optional — a zero-value WSClient logs
// nothing, matching the original source carrying no logging of its own.
type Logger struct {
	l zerolog.Logger
}

// NewLogger wraps an existing zerolog.Logger.
func NewLogger(l zerolog.Logger) Logger {
	return Logger{l: l}
}

// NewNopLogger returns a Logger that discards everything, the default
// for a WSClient constructed without an explicit Logger.
func NewNopLogger() Logger {
	return Logger{l: zerolog.New(io.Discard)}
}

func (lg Logger) debugf(connID, msg string) {
	lg.l.Debug().Str("conn_id", connID).Msg(msg)
}

func (lg Logger) warnf(connID, msg string) {
	lg.l.Warn().Str("conn_id", connID).Msg(msg)
}

func (lg Logger) errorf(connID string, err error, msg string) {
	lg.l.Error().Str("conn_id", connID).Err(err).Msg(msg)
}
