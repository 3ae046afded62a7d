package frame

import (
	"crypto/rand"
	"encoding/binary"
)

// xorshift128Plus is the masking-key PRNG, translated directly from
// wsframe::XorShift128Plus in the original C++ source (the "xorshift128+
// seeded from a platform random source" scheme spec §4.3/§9 name). It
// exists to avoid a crypto/rand syscall per outbound frame on the hot
// send path; see deviceRandom below for how its two 64-bit seeds are
// obtained.
type xorshift128Plus struct {
	s0, s1 uint64
}

// newXorshift128Plus seeds the generator from two 64-bit values. If both
// are zero (extremely unlikely from a real random source, but the
// algorithm is degenerate there) s1 is forced to 1, matching the
// original implementation's guard.
func newXorshift128Plus(seed0, seed1 uint64) *xorshift128Plus {
	if seed0 == 0 && seed1 == 0 {
		seed1 = 1
	}
	return &xorshift128Plus{s0: seed0, s1: seed1}
}

// next64 returns the next 64-bit output.
func (x *xorshift128Plus) next64() uint64 {
	s1 := x.s0
	s0 := x.s1
	x.s0 = s0
	s1 ^= s1 << 23
	x.s1 = s1 ^ s0 ^ (s1 >> 17) ^ (s0 >> 26)
	return x.s1 + s0
}

// fillBytes fills buf with successive 64-bit outputs, matching the
// byte-order the original C++ memcpy produced (little-endian, the host
// order it was written under).
func (x *xorshift128Plus) fillBytes(buf []byte) {
	for len(buf) >= 8 {
		binary.LittleEndian.PutUint64(buf, x.next64())
		buf = buf[8:]
	}
	if len(buf) > 0 {
		var tmp [8]byte
		binary.LittleEndian.PutUint64(tmp[:], x.next64())
		copy(buf, tmp[:len(buf)])
	}
}

// deviceRandom draws a single 64-bit seed from a non-deterministic
// platform random source. The original C++ implementation seeds a
// std::mt19937 from std::random_device for this; crypto/rand.Reader is
// this module's platform random source, used only here (and nowhere on
// the per-frame hot path) exactly as the design note in spec §9
// prescribes.
func deviceRandom() uint64 {
	var b [8]byte
	// crypto/rand.Read on the global Reader does not fail in practice on
	// supported platforms; a zero-valued fallback seed is still usable
	// (newXorshift128Plus guards the all-zero case).
	_, _ = rand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

// maskKeyPool is a small pre-generated pool of 4-byte masking keys,
// refilled lazily on exhaustion. Pooling keys (rather than drawing one
// per frame straight from the PRNG call site) mirrors the original
// RandomCache<8> template: it keeps the steady-state masking cost to a
// slice copy, with the PRNG's own arithmetic amortized across 8 keys at
// a time.
type maskKeyPool struct {
	rng    *xorshift128Plus
	cache  [8 * 4]byte
	cursor int
}

func newMaskKeyPool() *maskKeyPool {
	p := &maskKeyPool{rng: newXorshift128Plus(deviceRandom(), deviceRandom())}
	p.refill()
	return p
}

func (p *maskKeyPool) refill() {
	p.rng.fillBytes(p.cache[:])
	p.cursor = 0
}

// next returns the next cached 4-byte masking key, refilling the pool
// first if it has been exhausted.
func (p *maskKeyPool) next() [4]byte {
	if p.cursor >= len(p.cache) {
		p.refill()
	}
	var key [4]byte
	copy(key[:], p.cache[p.cursor:p.cursor+4])
	p.cursor += 4
	return key
}
