package wsclient

import (
	"testing"
	"time"
)

func TestStatsRecordRTTTracksMinMax(t *testing.T) {
	var s Stats
	s.recordRTT(50 * time.Millisecond)
	s.recordRTT(10 * time.Millisecond)
	s.recordRTT(90 * time.Millisecond)

	if s.PongsReceived != 3 {
		t.Errorf("PongsReceived = %d, want 3", s.PongsReceived)
	}
	if s.LastRTT != 90*time.Millisecond {
		t.Errorf("LastRTT = %v, want 90ms", s.LastRTT)
	}
	if s.MinRTT != 10*time.Millisecond {
		t.Errorf("MinRTT = %v, want 10ms", s.MinRTT)
	}
	if s.MaxRTT != 90*time.Millisecond {
		t.Errorf("MaxRTT = %v, want 90ms", s.MaxRTT)
	}
}

func TestConnectionStatusString(t *testing.T) {
	cases := map[ConnectionStatus]string{
		StatusHealthy:         "healthy",
		StatusClosedByServer:  "closed_by_server",
		StatusClosedByClient:  "closed_by_client",
		StatusPingTimedOut:    "ping_timed_out",
		StatusFailed:          "failed",
		StatusUnknown:         "unknown",
	}
	for status, want := range cases {
		if got := status.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", status, got, want)
		}
	}
}
