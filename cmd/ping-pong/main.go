// Command ping-pong dials a WebSocket server and logs every open,
// message, and close event until interrupted or the connection dies,
// demonstrating the keepalive state machine end to end.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/coregx/wsclient"
	"github.com/coregx/wsclient/frame"
)

type handler struct {
	log zerolog.Logger
}

func (h *handler) OnOpen(c *wsclient.WSClient) {
	h.log.Info().Str("conn_id", c.ConnID()).Msg("connection open")
}

func (h *handler) OnText(c *wsclient.WSClient, payload []byte) {
	h.log.Info().Str("conn_id", c.ConnID()).Str("payload", string(payload)).Msg("text frame")
}

func (h *handler) OnBinary(c *wsclient.WSClient, payload []byte) {
	h.log.Info().Str("conn_id", c.ConnID()).Int("len", len(payload)).Msg("binary frame")
}

func (h *handler) OnContinuation(c *wsclient.WSClient, f frame.Frame) {
	h.log.Debug().Str("conn_id", c.ConnID()).Str("opcode", f.Opcode.String()).Msg("continuation/unknown frame")
}

func (h *handler) OnClose(c *wsclient.WSClient, success bool) {
	h.log.Info().Str("conn_id", c.ConnID()).Bool("success", success).Msg("connection closed")
}

func main() {
	cmd := &cli.Command{
		Name:  "ping-pong",
		Usage: "dial a WebSocket server and log keepalive activity",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Required: true, Usage: "server hostname"},
			&cli.IntFlag{Name: "port", Value: 80, Usage: "server port"},
			&cli.StringFlag{Name: "path", Value: "/", Usage: "request path"},
			&cli.BoolFlag{Name: "tls", Usage: "use TLS"},
			&cli.DurationFlag{Name: "ping-every", Value: 5 * time.Second},
			&cli.DurationFlag{Name: "ping-timeout", Value: 10 * time.Second},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "ping-pong: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	logger := wsclient.NewLogger(log)

	client, err := wsclient.Dial(ctx, wsclient.Config{
		Host:        cmd.String("host"),
		Port:        int(cmd.Int("port")),
		Path:        cmd.String("path"),
		TLS:         cmd.Bool("tls"),
		PingEvery:   cmd.Duration("ping-every"),
		PingTimeout: cmd.Duration("ping-timeout"),
		Logger:      &logger,
	}, &handler{log: log})
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer client.Close(10 * time.Second)

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-sigCtx.Done():
			return nil
		case <-ticker.C:
			switch client.Poll() {
			case wsclient.StatusClosedByServer, wsclient.StatusPingTimedOut, wsclient.StatusFailed:
				log.Warn().Str("status", client.Status().String()).Msg("connection no longer healthy, exiting")
				return nil
			}
		}
	}
}
