// Command echo-bench sends a fixed number of Text frames to an echo
// server and reports round-trip latency statistics, the end-to-end
// scenario spec §8 names as a reference workload for this library.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/coregx/wsclient"
	"github.com/coregx/wsclient/frame"
)

type benchHandler struct {
	mu      sync.Mutex
	sentAt  map[string]time.Time
	samples []time.Duration
	done    chan struct{}
	want    int
}

func (h *benchHandler) OnOpen(c *wsclient.WSClient) {}

func (h *benchHandler) OnText(c *wsclient.WSClient, payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := string(payload)
	sent, ok := h.sentAt[key]
	if !ok {
		return
	}
	delete(h.sentAt, key)
	h.samples = append(h.samples, time.Since(sent))
	if len(h.samples) >= h.want {
		close(h.done)
	}
}

func (h *benchHandler) OnBinary(c *wsclient.WSClient, payload []byte)     {}
func (h *benchHandler) OnContinuation(c *wsclient.WSClient, f frame.Frame) {}
func (h *benchHandler) OnClose(c *wsclient.WSClient, success bool)         {}

func main() {
	cmd := &cli.Command{
		Name:  "echo-bench",
		Usage: "measure round-trip latency against a WebSocket echo server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Required: true},
			&cli.IntFlag{Name: "port", Value: 80},
			&cli.StringFlag{Name: "path", Value: "/"},
			&cli.BoolFlag{Name: "tls"},
			&cli.IntFlag{Name: "count", Value: 1000, Usage: "number of round trips to measure"},
			&cli.DurationFlag{Name: "interval", Value: time.Millisecond, Usage: "delay between sends"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "echo-bench: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	logger := wsclient.NewLogger(log)

	count := int(cmd.Int("count"))
	h := &benchHandler{
		sentAt: make(map[string]time.Time),
		done:   make(chan struct{}),
		want:   count,
	}

	client, err := wsclient.Dial(ctx, wsclient.Config{
		Host:   cmd.String("host"),
		Port:   int(cmd.Int("port")),
		Path:   cmd.String("path"),
		TLS:    cmd.Bool("tls"),
		Logger: &logger,
	}, h)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer client.Close(10 * time.Second)

	// WSClient is not safe for concurrent use: the sender goroutine and
	// the poll loop below take turns on it under clientMu.
	var clientMu sync.Mutex

	go func() {
		ticker := time.NewTicker(cmd.Duration("interval"))
		defer ticker.Stop()
		for i := 0; i < count; i++ {
			<-ticker.C
			key := "echo-" + strconv.Itoa(i)
			h.mu.Lock()
			h.sentAt[key] = time.Now()
			h.mu.Unlock()
			clientMu.Lock()
			err := client.SendText([]byte(key))
			clientMu.Unlock()
			if err != nil {
				log.Warn().Err(err).Msg("send failed")
				return
			}
		}
	}()

	pollTicker := time.NewTicker(time.Millisecond)
	defer pollTicker.Stop()

loop:
	for {
		select {
		case <-h.done:
			break loop
		case <-pollTicker.C:
			clientMu.Lock()
			client.Poll()
			clientMu.Unlock()
		case <-ctx.Done():
			break loop
		}
	}

	report(log, h)
	return nil
}

func report(log zerolog.Logger, h *benchHandler) {
	h.mu.Lock()
	samples := append([]time.Duration(nil), h.samples...)
	h.mu.Unlock()

	if len(samples) == 0 {
		log.Warn().Msg("no round trips completed")
		return
	}

	var total time.Duration
	min, max := samples[0], samples[0]
	for _, s := range samples {
		total += s
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	avg := total / time.Duration(len(samples))

	log.Info().
		Int("samples", len(samples)).
		Dur("min", min).
		Dur("avg", avg).
		Dur("max", max).
		Msg("round-trip latency")
}
