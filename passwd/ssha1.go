package passwd

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/OrangeTide/boris-sub001/sha1"
)

const (
	// Magic is the literal prefix identifying the salted-SHA1 text form.
	Magic = "{SSHA}"

	// MinSaltLen and MaxSaltLen bound the encoded form's salt length.
	MinSaltLen = 1
	MaxSaltLen = 16

	// DefaultSaltLen is the salt length [SSHA1Hasher] uses unless configured
	// otherwise.
	DefaultSaltLen = 6

	// EncodedMax is the maximum total length of an encoded password,
	// including room for a NUL terminator when the string is handed to a
	// C-style credential store: the magic prefix plus the base64 expansion
	// of digest and maximum salt, rounded up to a 4-byte boundary.
	EncodedMax = len(Magic) + (DigestSize+MaxSaltLen+3)/3*4
)

// SSHA1Options configures an [SSHA1Hasher].
type SSHA1Options struct {
	// SaltLen is the salt length in bytes for newly made hashes.
	// Valid range: [MinSaltLen, MaxSaltLen].  Default: [DefaultSaltLen].
	// Out-of-range values are rejected, not clamped.
	SaltLen int

	// Source supplies salt randomness.  Nil selects [CryptoSource].
	Source SaltSource
}

// DefaultSSHA1Options returns SSHA1Options with [DefaultSaltLen] and a
// [CryptoSource].
func DefaultSSHA1Options() SSHA1Options {
	return SSHA1Options{SaltLen: DefaultSaltLen, Source: NewCryptoSource()}
}

// SSHA1Hasher produces and checks the legacy {SSHA} encoded-password form:
//
//	{SSHA}base64(sha1(password ++ salt) ++ salt)
//
// The base64 encoding is the standard alphabet with '=' padding.  The bytes
// fed to the hash are the password followed by the salt — the LDAP {SSHA}
// convention.  (The raw [Record] protocol feeds salt first; the two layers
// are each internally consistent but deliberately independent.)
//
// # Thread safety
//
// SSHA1Hasher is immutable after construction.  It is safe for concurrent
// use when its [SaltSource] is.
type SSHA1Hasher struct {
	saltLen int
	src     SaltSource
}

// NewSSHA1Hasher constructs an SSHA1Hasher with the given options.
// Returns [ErrInvalidOption] when SaltLen is outside
// [MinSaltLen, MaxSaltLen].
func NewSSHA1Hasher(opts SSHA1Options) (*SSHA1Hasher, error) {
	if opts.SaltLen < MinSaltLen || opts.SaltLen > MaxSaltLen {
		return nil, fmt.Errorf("%w: salt length %d must be in [%d, %d]",
			ErrInvalidOption, opts.SaltLen, MinSaltLen, MaxSaltLen)
	}
	src := opts.Source
	if src == nil {
		src = NewCryptoSource()
	}
	return &SSHA1Hasher{saltLen: opts.SaltLen, src: src}, nil
}

// Driver returns [DriverSSHA1].
func (h *SSHA1Hasher) Driver() DriverName { return DriverSSHA1 }

// SaltLen returns the configured salt length for new hashes.
func (h *SSHA1Hasher) SaltLen() int { return h.saltLen }

// Make hashes password with a fresh salt and returns the {SSHA} string.
// The result never exceeds [EncodedMax]-1 characters; on any failure
// nothing is produced.  Plaintext and digest intermediates are wiped before
// returning.
func (h *SSHA1Hasher) Make(password string) (string, error) {
	salt := NewSalt(h.src, h.saltLen)
	defer wipe(salt)

	digest := sumPasswordSalt(password, salt)
	defer wipe(digest[:])

	out, err := AppendEncoded(make([]byte, 0, EncodedMax), digest[:], salt)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Check verifies password against an {SSHA} encoded string.  The magic
// prefix is matched case-sensitively before any base64 work; the remainder
// is decoded, split into digest and trailing salt, and the digest is
// recomputed from the candidate password and compared in constant time.
//
// Every structural failure — wrong prefix, invalid base64, a payload
// shorter than the digest or with an out-of-range salt — is reported as a
// plain (false, nil).  Check never distinguishes failure causes and never
// returns a non-nil error.
func (h *SSHA1Hasher) Check(password, hash string) (bool, error) {
	rest, ok := strings.CutPrefix(hash, Magic)
	if !ok {
		return false, nil
	}
	raw, err := base64.StdEncoding.DecodeString(rest)
	if err != nil {
		return false, nil
	}
	defer wipe(raw)
	saltLen := len(raw) - DigestSize
	if saltLen < MinSaltLen || saltLen > MaxSaltLen {
		return false, nil
	}

	digest := sumPasswordSalt(password, raw[DigestSize:])
	defer wipe(digest[:])
	return subtle.ConstantTimeCompare(digest[:], raw[:DigestSize]) == 1, nil
}

// NeedsRehash reports whether the hash's salt length differs from the
// configured one — the only tunable parameter of this format.  Returns
// [ErrAlgorithmMismatch] for non-{SSHA} hashes and [ErrInvalidHash] when
// the payload does not parse.
//
// Note that a "false" here only means the hash matches this driver's
// configuration; whether salted SHA-1 is still an acceptable format is a
// cross-driver decision for [Manager.NeedsRehash].
func (h *SSHA1Hasher) NeedsRehash(hash string) (bool, error) {
	rest, ok := strings.CutPrefix(hash, Magic)
	if !ok {
		return false, fmt.Errorf("%w: hash does not carry the %s prefix", ErrAlgorithmMismatch, Magic)
	}
	raw, err := base64.StdEncoding.DecodeString(rest)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	saltLen := len(raw) - DigestSize
	if saltLen < MinSaltLen || saltLen > MaxSaltLen {
		return false, fmt.Errorf("%w: payload carries no valid salt", ErrInvalidHash)
	}
	return saltLen != h.saltLen, nil
}

// AppendEncoded appends the {SSHA} text form of an already-computed digest
// and salt to dst and returns the extended slice.  Lengths are validated
// explicitly: digest must be exactly [DigestSize] bytes and salt within
// [MinSaltLen, MaxSaltLen]; the total encoded length is checked against
// [EncodedMax] before anything is written, so dst is returned unchanged on
// error.
func AppendEncoded(dst, digest, salt []byte) ([]byte, error) {
	if len(digest) != DigestSize {
		return dst, fmt.Errorf("%w: digest must be %d bytes, got %d",
			ErrInvalidOption, DigestSize, len(digest))
	}
	if len(salt) < MinSaltLen || len(salt) > MaxSaltLen {
		return dst, fmt.Errorf("%w: salt length %d must be in [%d, %d]",
			ErrInvalidOption, len(salt), MinSaltLen, MaxSaltLen)
	}
	total := len(Magic) + base64.StdEncoding.EncodedLen(DigestSize+len(salt))
	if total+1 > EncodedMax {
		return dst, fmt.Errorf("%w: %d+1 > %d", ErrEncodedTooLong, total, EncodedMax)
	}

	payload := make([]byte, 0, DigestSize+MaxSaltLen)
	payload = append(payload, digest...)
	payload = append(payload, salt...)
	defer wipe(payload)

	dst = append(dst, Magic...)
	return base64.StdEncoding.AppendEncode(dst, payload), nil
}

// sumPasswordSalt computes sha1(password ++ salt), the codec's feed order.
func sumPasswordSalt(password string, salt []byte) [DigestSize]byte {
	var d sha1.Digest
	d.Reset()
	pw := []byte(password)
	d.Write(pw)
	wipe(pw)
	d.Write(salt)
	return d.Finish()
}
