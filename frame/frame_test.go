package frame

import "testing"

func TestFrameCloseCodeAndReason(t *testing.T) {
	tests := []struct {
		name       string
		frame      Frame
		wantCode   CloseCode
		wantReason string
	}{
		{
			name:       "not a close frame",
			frame:      Frame{Opcode: Text, Payload: []byte{0x03, 0xE8}},
			wantCode:   CloseNoStatusReceived,
			wantReason: "",
		},
		{
			name:       "no payload",
			frame:      Frame{Opcode: Close},
			wantCode:   CloseNoStatusReceived,
			wantReason: "",
		},
		{
			name:       "code only",
			frame:      Frame{Opcode: Close, Payload: []byte{0x03, 0xE8}},
			wantCode:   CloseNormalClosure,
			wantReason: "",
		},
		{
			name:       "code and reason",
			frame:      Frame{Opcode: Close, Payload: append([]byte{0x03, 0xE9}, "bye"...)},
			wantCode:   CloseGoingAway,
			wantReason: "bye",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.frame.CloseCode(); got != tt.wantCode {
				t.Errorf("CloseCode() = %d, want %d", got, tt.wantCode)
			}
			if got := tt.frame.CloseReason(); got != tt.wantReason {
				t.Errorf("CloseReason() = %q, want %q", got, tt.wantReason)
			}
		})
	}
}
