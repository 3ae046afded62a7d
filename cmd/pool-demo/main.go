// Command pool-demo dials several WebSocket endpoints at once and drives
// them all from a single ClientPool, demonstrating the fan-out poll loop
// over multiple independent connections.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/coregx/wsclient"
	"github.com/coregx/wsclient/frame"
)

type poolHandler struct {
	log zerolog.Logger
}

func (h *poolHandler) OnOpen(c *wsclient.WSClient) {
	h.log.Info().Str("conn_id", c.ConnID()).Msg("open")
}
func (h *poolHandler) OnText(c *wsclient.WSClient, payload []byte) {
	h.log.Info().Str("conn_id", c.ConnID()).Str("payload", string(payload)).Msg("text")
}
func (h *poolHandler) OnBinary(c *wsclient.WSClient, payload []byte) {
	h.log.Info().Str("conn_id", c.ConnID()).Int("len", len(payload)).Msg("binary")
}
func (h *poolHandler) OnContinuation(c *wsclient.WSClient, f frame.Frame) {}
func (h *poolHandler) OnClose(c *wsclient.WSClient, success bool) {
	h.log.Info().Str("conn_id", c.ConnID()).Bool("success", success).Msg("closed")
}

func main() {
	cmd := &cli.Command{
		Name:  "pool-demo",
		Usage: "dial several WebSocket endpoints and poll them from one pool",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "addr", Required: true, Usage: "host:port pair; repeatable"},
			&cli.StringFlag{Name: "path", Value: "/"},
			&cli.BoolFlag{Name: "tls"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "pool-demo: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	logger := wsclient.NewLogger(log)
	handler := &poolHandler{log: log}

	pool := wsclient.NewClientPool(10 * time.Millisecond)
	go pool.Run()
	defer pool.Close()

	var clients []*wsclient.WSClient
	for _, addr := range cmd.StringSlice("addr") {
		host, portStr, ok := strings.Cut(addr, ":")
		if !ok {
			return fmt.Errorf("invalid --addr %q, want host:port", addr)
		}
		port := 0
		fmt.Sscanf(portStr, "%d", &port)

		client, err := wsclient.Dial(ctx, wsclient.Config{
			Host:   host,
			Port:   port,
			Path:   cmd.String("path"),
			TLS:    cmd.Bool("tls"),
			Logger: &logger,
		}, handler)
		if err != nil {
			log.Error().Err(err).Str("addr", addr).Msg("dial failed")
			continue
		}
		clients = append(clients, client)
		pool.Register(client)
	}

	if len(clients) == 0 {
		return fmt.Errorf("no endpoints connected")
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	for _, c := range clients {
		pool.Unregister(c)
		c.Close(5 * time.Second)
	}
	return nil
}
