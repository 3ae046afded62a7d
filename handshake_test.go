package wsclient

import (
	"net/http"
	"strings"
	"testing"
)

func TestBuildUpgradeRequestDefaultPort(t *testing.T) {
	req := string(buildUpgradeRequest("example.com", 443, "/feed", "dGhlIHNhbXBsZSBub25jZQ==", nil))

	wantLines := []string{
		"GET /feed HTTP/1.1\r\n",
		"Host: example.com\r\n",
		"Upgrade: websocket\r\n",
		"Connection: Upgrade\r\n",
		"Sec-WebSocket-Key: dGhlIHNhbXBsZSBub25jZQ==\r\n",
		"Sec-WebSocket-Version: 13\r\n",
	}
	for _, want := range wantLines {
		if !strings.Contains(req, want) {
			t.Errorf("request missing %q:\n%s", want, req)
		}
	}
	if !strings.HasSuffix(req, "\r\n\r\n") {
		t.Errorf("request does not end with a blank line:\n%s", req)
	}
}

func TestBuildUpgradeRequestNonDefaultPortAppendsSuffix(t *testing.T) {
	req := string(buildUpgradeRequest("example.com", 8080, "/", "key", nil))
	if !strings.Contains(req, "Host: example.com:8080\r\n") {
		t.Errorf("request missing port suffix in Host header:\n%s", req)
	}
}

func TestBuildUpgradeRequestIncludesExtraHeaders(t *testing.T) {
	extra := http.Header{"X-Custom": []string{"value"}}
	req := string(buildUpgradeRequest("example.com", 443, "/", "key", extra))
	if !strings.Contains(req, "X-Custom: value\r\n") {
		t.Errorf("request missing extra header:\n%s", req)
	}
}

// TestExpectedAcceptKey is RFC 6455 Section 1.3's own worked example.
func TestExpectedAcceptKey(t *testing.T) {
	got := expectedAcceptKey("dGhlIHNhbXBsZSBub25jZQ==")
	want := "s3pPLMBiTxaQ9kYGzzhZRbK+xOo="
	if got != want {
		t.Errorf("expectedAcceptKey = %q, want %q", got, want)
	}
}

func TestGenerateSecWebSocketKeyIsUnique(t *testing.T) {
	a, err := generateSecWebSocketKey()
	if err != nil {
		t.Fatalf("generateSecWebSocketKey: %v", err)
	}
	b, err := generateSecWebSocketKey()
	if err != nil {
		t.Fatalf("generateSecWebSocketKey: %v", err)
	}
	if a == b {
		t.Errorf("two successive keys were identical: %q", a)
	}
}

func TestIsSwitchingProtocols(t *testing.T) {
	if !isSwitchingProtocols([]byte("HTTP/1.1 101 Switching Protocols\r\n\r\n")) {
		t.Errorf("want true for a 101 response")
	}
	if isSwitchingProtocols([]byte("HTTP/1.1 400 Bad Request\r\n\r\n")) {
		t.Errorf("want false for a 400 response")
	}
}

func TestParseHandshakeResponseExtractsAccept(t *testing.T) {
	raw := []byte("HTTP/1.1 101 Switching Protocols\r\n" +
		"Upgrade: websocket\r\n" +
		"Sec-WebSocket-Accept: s3pPLMBiTxaQ9kYGzzhZRbK+xOo=\r\n\r\n")

	resp := parseHandshakeResponse(raw)
	if resp.accept != "s3pPLMBiTxaQ9kYGzzhZRbK+xOo=" {
		t.Errorf("accept = %q, want the Sec-WebSocket-Accept value", resp.accept)
	}
	if !strings.HasPrefix(resp.statusLine, "HTTP/1.1 101") {
		t.Errorf("statusLine = %q", resp.statusLine)
	}
}
