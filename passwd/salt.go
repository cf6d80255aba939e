package passwd

import (
	"crypto/rand"
	"sync"
)

// SaltSource supplies the raw randomness behind salt generation.  Passing
// the source explicitly (rather than reading ambient global state, as the
// original implementation did) lets tests inject a deterministic seed and
// lets production code use a cryptographically strong source without
// touching call sites.
type SaltSource interface {
	// Fill overwrites p with bytes drawn from the source.
	Fill(p []byte)
}

// saltBand is the width of the band salt bytes are mapped into: the 96
// consecutive ASCII values from ' ' (0x20) upward.
const saltBand = 96

// NewSalt returns n salt bytes drawn from src, each mapped into the fixed
// 96-character printable ASCII band starting at ' '.  n must be
// non-negative.  NewSalt always succeeds; the quality of the result is
// entirely that of src.
func NewSalt(src SaltSource, n int) []byte {
	b := make([]byte, n)
	src.Fill(b)
	for i := range b {
		b[i] = ' ' + b[i]%saltBand
	}
	return b
}

// ──────────────────────────────────────────────────────────────────────────────
// CryptoSource
// ──────────────────────────────────────────────────────────────────────────────

// CryptoSource draws from crypto/rand.  It is the production choice and is
// safe for concurrent use.
type CryptoSource struct{}

// NewCryptoSource returns a CryptoSource.
func NewCryptoSource() *CryptoSource { return &CryptoSource{} }

// Fill overwrites p with cryptographically random bytes.
func (*CryptoSource) Fill(p []byte) {
	// crypto/rand.Read never returns an error; it crashes the program on
	// an unrecoverable kernel entropy failure.
	rand.Read(p)
}

// ──────────────────────────────────────────────────────────────────────────────
// LCGSource
// ──────────────────────────────────────────────────────────────────────────────

// LCGSource is the seeded linear congruential generator the original
// implementation used (the classic rand(3) recurrence,
// state = state*1103515245 + 12345, yielding 15 output bits per step).
//
// Its output is fully determined by the seed, so salts are predictable
// whenever the seed is guessable — a documented weakness of the legacy
// scheme, preserved here for deterministic tests and bit-compatible
// fixtures, not fixed.  Use [CryptoSource] everywhere else.
//
// An internal mutex serialises Fill, so a single LCGSource may be shared
// across goroutines; the output interleaving is of course unspecified.
type LCGSource struct {
	mu    sync.Mutex
	state uint32
}

// NewLCGSource returns an LCGSource seeded with seed.  The original seeded
// once from wall-clock time at process start; tests should pass a fixed
// value instead.
func NewLCGSource(seed uint32) *LCGSource {
	return &LCGSource{state: seed}
}

// Seed resets the generator state.
func (s *LCGSource) Seed(seed uint32) {
	s.mu.Lock()
	s.state = seed
	s.mu.Unlock()
}

// Fill overwrites p with one generator step per byte (the low 8 of each
// 15-bit output).
func (s *LCGSource) Fill(p []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range p {
		s.state = s.state*1103515245 + 12345
		p[i] = byte(s.state >> 16 & 0x7fff)
	}
}

// wipe best-effort zeroes a byte slice.  Go gives no guarantee that other
// copies do not exist, but this narrows the window in which plaintext or
// digest material stays resident.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
