package wsclient

import "time"

// keepalive implements the ping/pong timer state machine from the
// original fastws::WSClient: a single outstanding ping at a time, sent
// every pingEvery while idle, and declared dead if no pong answers it
// within pingTimeout. Go's time.Time already carries a monotonic reading
// (time.Since subtracts it automatically), so this needs no equivalent of
// the original's cross-platform nanotimer helper.
type keepalive struct {
	pingEvery   time.Duration
	pingTimeout time.Duration

	waiting   bool
	sentAt    time.Time
	lastStart time.Time
}

func newKeepalive(pingEvery, pingTimeout time.Duration) *keepalive {
	return &keepalive{pingEvery: pingEvery, pingTimeout: pingTimeout, lastStart: time.Now()}
}

// armInitial marks a ping as just sent, matching the constructor-time
// behavior of the original source: it connects, then immediately sets
// waiting_for_ping and fires the first ping rather than waiting a full
// pingEvery interval.
func (k *keepalive) armInitial() {
	k.waiting = true
	k.sentAt = time.Now()
	k.lastStart = k.sentAt
}

// pingAction is what update recommends the caller do this poll.
type pingAction int

const (
	pingActionNone pingAction = iota
	pingActionSend
	pingActionTimedOut
)

// update is the keepalive half of fastws::WSClient::update_ping: if a
// ping is outstanding and pingTimeout has elapsed, report a timeout;
// otherwise, if pingEvery has elapsed since the timer last restarted (a
// ping going out or a pong arriving), report that a new ping should go
// out.
func (k *keepalive) update() pingAction {
	now := time.Now()
	if k.waiting {
		if now.Sub(k.sentAt) > k.pingTimeout {
			return pingActionTimedOut
		}
		return pingActionNone
	}
	if now.Sub(k.lastStart) > k.pingEvery {
		return pingActionSend
	}
	return pingActionNone
}

// onPingSent records that a ping just went out, starting the timeout
// clock for its matching pong.
func (k *keepalive) onPingSent() {
	k.waiting = true
	k.sentAt = time.Now()
	k.lastStart = k.sentAt
}

// onPong clears the outstanding ping and returns the observed RTT,
// matching fastws::WSClient::handle_pong.
func (k *keepalive) onPong() time.Duration {
	rtt := time.Since(k.sentAt)
	k.waiting = false
	k.lastStart = time.Now()
	return rtt
}
