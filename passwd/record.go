package passwd

import (
	"crypto/subtle"

	"github.com/OrangeTide/boris-sub001/sha1"
)

const (
	// SaltSize is the fixed salt length of the raw record form.
	SaltSize = 8

	// DigestSize is the SHA-1 digest length.
	DigestSize = sha1.Size

	// RecordSize is the fixed binary size of a [Record]: salt then digest,
	// no padding, no length prefix.
	RecordSize = SaltSize + DigestSize
)

// Record is the raw password record: an 8-byte salt paired with the 20-byte
// digest of salt-then-plaintext.  Records are created once, at account
// creation or password change, and treated as immutable afterwards.
//
// Two records are comparable only when they carry the same salt; comparing
// records built from different salts has no defined meaning and is not
// flagged.
type Record struct {
	Salt   [SaltSize]byte
	Digest [DigestSize]byte
}

// HashRecord builds a Record from salt and plaintext.  The digest is the
// SHA-1 of the salt bytes followed by the plaintext bytes, so the same salt
// and plaintext always yield the same record.  The engine state used for
// the computation is wiped before returning.
func HashRecord(salt [SaltSize]byte, plaintext []byte) Record {
	var d sha1.Digest
	d.Reset()
	d.Write(salt[:])
	d.Write(plaintext)
	return Record{Salt: salt, Digest: d.Finish()}
}

// Verify reports whether r and other carry the same digest.  Only the
// digest fields are compared; it is the caller's responsibility that both
// records were built from the same salt.  The comparison runs in constant
// time, so a mismatch leaks nothing about the position of the first
// differing byte.
func (r Record) Verify(other Record) bool {
	return subtle.ConstantTimeCompare(r.Digest[:], other.Digest[:]) == 1
}

// VerifyPassword reports whether plaintext, hashed with r's own salt,
// reproduces r's digest.  This is the login-time flow: reconstruct a record
// from the stored salt and the candidate plaintext, then compare.
func (r Record) VerifyPassword(plaintext []byte) bool {
	c := HashRecord(r.Salt, plaintext)
	ok := r.Verify(c)
	wipe(c.Digest[:])
	return ok
}

// MarshalBinary returns the fixed 28-byte wire form: exactly [SaltSize]
// bytes of salt followed by exactly [DigestSize] bytes of digest, defined
// by position.  No error can result.
func (r Record) MarshalBinary() ([]byte, error) {
	out := make([]byte, RecordSize)
	copy(out[:SaltSize], r.Salt[:])
	copy(out[SaltSize:], r.Digest[:])
	return out, nil
}

// UnmarshalBinary extracts a Record from its 28-byte wire form.  The
// receiver is unchanged on error.
func (r *Record) UnmarshalBinary(b []byte) error {
	if len(b) != RecordSize {
		return ErrShortRecord
	}
	copy(r.Salt[:], b[:SaltSize])
	copy(r.Digest[:], b[SaltSize:])
	return nil
}
