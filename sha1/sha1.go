// Package sha1 implements the SHA-1 hash algorithm (RFC 3174) as a
// streaming, allocation-free state machine.
//
// SHA-1 is cryptographically broken and must not be used where collision
// resistance matters.  This package exists to remain bit-compatible with a
// legacy credential store whose records were produced with salted SHA-1;
// see the passwd package for the record and encoded-string formats built
// on top of it.
//
// # Architecture
//
// [Digest] implements [hash.Hash], so it can be fed incrementally through
// any number of Write calls in any chunk sizes; the result is identical to
// hashing the concatenated input in one call.  Beyond the standard
// interface, [Digest.Finish] finalizes, returns the 20-byte digest, and
// zeroizes the state so no digest material is left resident — the form the
// passwd package uses for password hashing.
//
// # Interop ceiling
//
// The implementation that produced the legacy records kept its running
// length in a 32-bit bit counter, so records are only interoperable for
// inputs shorter than 4 GiB.  This package uses a 64-bit counter and hashes
// longer inputs correctly, but outputs for such inputs have no legacy
// counterpart.  The ceiling is a documented property of the record format,
// not a silent truncation.
package sha1

import (
	"encoding/binary"
	"hash"
	"math/bits"
)

// Size is the length of a SHA-1 digest in bytes.
const Size = 20

// BlockSize is the SHA-1 block size in bytes.
const BlockSize = 64

// Initialization constants for the five accumulator words.
const (
	init0 = 0x67452301
	init1 = 0xEFCDAB89
	init2 = 0x98BADCFE
	init3 = 0x10325476
	init4 = 0xC3D2E1F0
)

// Per-quartile additive round constants.
const (
	k0 = 0x5A827999 // rounds 0–19
	k1 = 0x6ED9EBA1 // rounds 20–39
	k2 = 0x8F1BBCDC // rounds 40–59
	k3 = 0xCA62C1D6 // rounds 60–79
)

// Digest is the running state of an incremental SHA-1 computation: the five
// 32-bit accumulators, a one-block staging buffer, the total byte count, and
// the number of bytes currently staged.
//
// The zero value is not usable; obtain one from [New], or call
// [Digest.Reset] before first use.  A Digest is not safe for concurrent
// mutation — give each goroutine its own (it is small and stack-sized) or
// serialize access externally.
type Digest struct {
	h   [5]uint32
	buf [BlockSize]byte
	n   uint64 // total bytes consumed
	nb  int    // bytes staged in buf, 0–63
}

var _ hash.Hash = (*Digest)(nil)

// New returns a Digest initialized and ready for Write.
func New() *Digest {
	d := new(Digest)
	d.Reset()
	return d
}

// Reset restores the accumulators to the SHA-1 initialization constants and
// clears the counters.  It does not wipe the staging buffer; use
// [Digest.Zero] when the previous input was sensitive.
func (d *Digest) Reset() {
	d.h[0] = init0
	d.h[1] = init1
	d.h[2] = init2
	d.h[3] = init3
	d.h[4] = init4
	d.n = 0
	d.nb = 0
}

// Zero wipes the staging buffer and accumulators, then re-initializes the
// Digest for reuse.  Call it when the hashed input (or the digest state
// derived from it) must not remain resident in memory.
func (d *Digest) Zero() {
	for i := range d.buf {
		d.buf[i] = 0
	}
	d.Reset()
}

// Size returns [Size].
func (d *Digest) Size() int { return Size }

// BlockSize returns [BlockSize].
func (d *Digest) BlockSize() int { return BlockSize }

// Write absorbs p into the running hash.  It accepts any number of bytes in
// any number of calls; a nil or empty slice is a no-op.  The returned error
// is always nil (the signature satisfies [io.Writer]).
func (d *Digest) Write(p []byte) (int, error) {
	n := len(p)
	d.n += uint64(n)
	if d.nb > 0 {
		c := copy(d.buf[d.nb:], p)
		d.nb += c
		p = p[c:]
		if d.nb == BlockSize {
			compress(&d.h, d.buf[:])
			d.nb = 0
		}
	}
	for len(p) >= BlockSize {
		compress(&d.h, p[:BlockSize])
		p = p[BlockSize:]
	}
	if len(p) > 0 {
		d.nb = copy(d.buf[:], p)
	}
	return n, nil
}

// Sum appends the digest of the data written so far to in and returns the
// result.  The receiver is left untouched, so the caller may keep writing;
// this is the [hash.Hash] contract.  For the finalize-and-wipe form used on
// password material, use [Digest.Finish].
func (d *Digest) Sum(in []byte) []byte {
	c := *d
	out := c.finish()
	c.Zero()
	return append(in, out[:]...)
}

// Finish finalizes the hash and returns the 20-byte digest: a 0x80 byte,
// zero fill until the length is 56 mod 64, then the 64-bit big-endian bit
// count, forcing one or two final compression rounds.  The accumulators are
// emitted big-endian in order.
//
// Finish always zeroizes and re-initializes the receiver: state never
// survives finalization, and the Digest is immediately reusable.
func (d *Digest) Finish() [Size]byte {
	out := d.finish()
	d.Zero()
	return out
}

func (d *Digest) finish() [Size]byte {
	var pad [BlockSize + 8]byte
	pad[0] = 0x80
	fill := 56 - d.n%64
	if d.n%64 >= 56 {
		fill += 64
	}
	binary.BigEndian.PutUint64(pad[fill:], d.n<<3)
	d.Write(pad[:fill+8])

	var out [Size]byte
	for i, w := range d.h {
		binary.BigEndian.PutUint32(out[i*4:], w)
	}
	return out
}

// Sum returns the SHA-1 digest of data in one shot.  All transient state is
// wiped before returning.
func Sum(data []byte) [Size]byte {
	var d Digest
	d.Reset()
	d.Write(data)
	return d.Finish()
}

// compress folds one 64-byte block into the accumulators: 80 rounds, the
// first 16 fed by the block's big-endian words, the rest by the
// XOR-and-rotate message schedule.  The schedule and working registers are
// wiped before return so no round material outlives the call.
func compress(h *[5]uint32, block []byte) {
	var w [80]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4:])
	}
	for i := 16; i < 80; i++ {
		w[i] = bits.RotateLeft32(w[i-3]^w[i-8]^w[i-14]^w[i-16], 1)
	}

	a, b, c, d, e := h[0], h[1], h[2], h[3], h[4]
	for i := 0; i < 80; i++ {
		var f, k uint32
		switch {
		case i < 20:
			f = (b & c) | (^b & d)
			k = k0
		case i < 40:
			f = b ^ c ^ d
			k = k1
		case i < 60:
			f = (b & c) | (b & d) | (c & d)
			k = k2
		default:
			f = b ^ c ^ d
			k = k3
		}
		t := bits.RotateLeft32(a, 5) + f + e + w[i] + k
		a, b, c, d, e = t, a, bits.RotateLeft32(b, 30), c, d
	}

	h[0] += a
	h[1] += b
	h[2] += c
	h[3] += d
	h[4] += e

	for i := range w {
		w[i] = 0
	}
	a, b, c, d, e = 0, 0, 0, 0, 0
}
