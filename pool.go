package wsclient

import (
	"sync"
	"time"
)

// ClientPool fans a single poll loop across many outbound WSClients, so
// one goroutine can keep several connections alive without each needing
// its own loop. This is a feature the original source never needed (it
// drives exactly one WSClient per process) but its benchmark and example
// programs open several at once; ClientPool generalizes that pattern,
// adapting the register/unregister/run-loop shape the teacher's
// broadcast Hub uses for server-side connections to this client-only,
// poll-driven model instead of channel-based broadcast.
//
// A ClientPool's Run loop is the only goroutine that ever calls Poll on
// a registered client, preserving each WSClient's single-threaded
// cooperative contract even though many clients run concurrently with
// respect to each other.
type ClientPool struct {
	pollInterval time.Duration

	register   chan *WSClient
	unregister chan *WSClient
	done       chan struct{}

	mu      sync.RWMutex
	clients map[*WSClient]bool

	wg sync.WaitGroup
}

// NewClientPool returns a ClientPool that polls each registered client
// roughly every pollInterval. A zero pollInterval defaults to 10ms, tight
// enough for latency-sensitive feeds without busy-looping.
func NewClientPool(pollInterval time.Duration) *ClientPool {
	if pollInterval <= 0 {
		pollInterval = 10 * time.Millisecond
	}
	return &ClientPool{
		pollInterval: pollInterval,
		register:     make(chan *WSClient),
		unregister:   make(chan *WSClient),
		done:         make(chan struct{}),
		clients:      make(map[*WSClient]bool),
	}
}

// Register adds c to the set of clients the pool polls. Safe to call
// concurrently with Run.
func (p *ClientPool) Register(c *WSClient) {
	select {
	case p.register <- c:
	case <-p.done:
	}
}

// Unregister removes c from the pool. It does not close c; callers
// remain responsible for calling Close on clients they registered.
func (p *ClientPool) Unregister(c *WSClient) {
	select {
	case p.unregister <- c:
	case <-p.done:
	}
}

// Run starts the pool's poll loop and blocks until Close is called. Run
// should be invoked in its own goroutine.
func (p *ClientPool) Run() {
	p.wg.Add(1)
	defer p.wg.Done()

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case c := <-p.register:
			p.mu.Lock()
			p.clients[c] = true
			p.mu.Unlock()

		case c := <-p.unregister:
			p.mu.Lock()
			delete(p.clients, c)
			p.mu.Unlock()

		case <-ticker.C:
			p.pollAll()

		case <-p.done:
			return
		}
	}
}

// pollAll drives every registered client one iteration. Dead clients
// (closed, timed out, or failed) are left registered; a close by the
// server or a failed read has already reached their FrameHandler via
// OnClose, a ping timeout only through the client's Status, and it is
// the caller's decision whether to Unregister and redial.
func (p *ClientPool) pollAll() {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for c := range p.clients {
		c.Poll()
	}
}

// Close stops Run and releases the pool. It does not close any
// registered client.
func (p *ClientPool) Close() {
	close(p.done)
	p.wg.Wait()
}

// Len reports how many clients are currently registered.
func (p *ClientPool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.clients)
}
