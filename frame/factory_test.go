package frame

import "testing"

// TestConstructLengthEncoding covers spec §8's length-boundary table:
// payload lengths 0, 125, 126, 127, 128, 65535, 65536 must each produce
// the documented low-7-bits value in the encoded second byte.
func TestConstructLengthEncoding(t *testing.T) {
	cases := []struct {
		payloadLen int
		wantLow7   byte
	}{
		{0, 0},
		{125, 125},
		{126, 126},
		{127, 126},
		{128, 126},
		{65535, 126},
		{65536, 127},
	}

	f := NewFactory()
	for _, tc := range cases {
		payload := make([]byte, tc.payloadLen)
		encoded := f.Construct(true, Binary, false, payload)

		if got := encoded[1] & 0x7F; got != tc.wantLow7 {
			t.Errorf("payload len %d: byte[1]&0x7F = %d, want %d", tc.payloadLen, got, tc.wantLow7)
		}
	}
}

func TestConstructHeaderBits(t *testing.T) {
	f := NewFactory()
	encoded := f.Construct(true, Text, false, []byte("hi"))

	if encoded[0] != 0x80|byte(Text) {
		t.Errorf("byte[0] = 0x%X, want FIN set + opcode Text", encoded[0])
	}
	if encoded[1]&0x80 != 0 {
		t.Errorf("byte[1] mask bit set, want clear (mask=false)")
	}
}

func TestConstructMaskedSetsMaskBitAndKey(t *testing.T) {
	f := NewFactory()
	encoded := f.Construct(true, Text, true, []byte("hi"))

	if encoded[1]&0x80 == 0 {
		t.Fatalf("mask bit not set")
	}
	// header(2) + mask(4) + payload(2)
	if len(encoded) != 8 {
		t.Fatalf("len(encoded) = %d, want 8", len(encoded))
	}
}

func TestControlFrameTooLarge(t *testing.T) {
	f := NewFactory()
	big := make([]byte, 126)

	if _, err := f.Ping(true, big); err == nil {
		t.Fatal("Ping with 126-byte payload: want error, got nil")
	}
	if _, err := f.Pong(true, big); err == nil {
		t.Fatal("Pong with 126-byte payload: want error, got nil")
	}
	if _, err := f.CloseFrame(true, big); err == nil {
		t.Fatal("CloseFrame with 126-byte payload: want error, got nil")
	}
}

func TestControlFrameAtLimitOK(t *testing.T) {
	f := NewFactory()
	exact := make([]byte, 125)

	if _, err := f.Ping(true, exact); err != nil {
		t.Fatalf("Ping with 125-byte payload: unexpected error %v", err)
	}
}

func TestConstructReusesScratchBuffer(t *testing.T) {
	f := NewFactory()
	first := f.Construct(true, Text, false, []byte("one"))
	second := f.Construct(true, Text, false, []byte("two"))

	// Construct's documented contract is that the returned view aliases
	// the factory's scratch buffer: a later call overwrites it in place.
	if string(first) != string(second) {
		t.Fatalf("first view = %q after second Construct, want it to alias and read as %q", first, second)
	}
}
