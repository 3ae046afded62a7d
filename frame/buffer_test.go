package frame

import "testing"

func TestBufferPushBackGrows(t *testing.T) {
	b := NewBuffer(4)
	b.PushBack([]byte("hello world"))

	if got, want := b.Size(), 11; got != want {
		t.Fatalf("Size() = %d, want %d", got, want)
	}
	if got, want := string(b.Bytes()), "hello world"; got != want {
		t.Fatalf("Bytes() = %q, want %q", got, want)
	}
}

func TestBufferResetKeepsStorage(t *testing.T) {
	b := NewBuffer(16)
	b.PushBack([]byte("abc"))
	capBefore := b.Capacity()

	b.Reset()

	if b.Size() != 0 {
		t.Fatalf("Size() after Reset = %d, want 0", b.Size())
	}
	if b.Capacity() != capBefore {
		t.Fatalf("Capacity() after Reset = %d, want unchanged %d", b.Capacity(), capBefore)
	}
}

func TestBufferTailClaimSpace(t *testing.T) {
	b := NewBuffer(8)
	b.EnsureExtraSpace(4)
	copy(b.Tail(), []byte("data"))
	b.ClaimSpace(4)

	if got, want := string(b.Bytes()), "data"; got != want {
		t.Fatalf("Bytes() = %q, want %q", got, want)
	}
}

func TestBufferGetSpace(t *testing.T) {
	b := NewBuffer(4)
	space := b.GetSpace(3)
	space[0], space[1], space[2] = 'x', 'y', 'z'

	if got, want := string(b.Bytes()), "xyz"; got != want {
		t.Fatalf("Bytes() = %q, want %q", got, want)
	}
}
