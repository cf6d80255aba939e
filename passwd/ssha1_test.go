package passwd_test

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/OrangeTide/boris-sub001/passwd"
	"github.com/OrangeTide/boris-sub001/sha1"
)

func newTestSSHA1Hasher(t *testing.T, saltLen int) *passwd.SSHA1Hasher {
	t.Helper()
	h, err := passwd.NewSSHA1Hasher(passwd.SSHA1Options{SaltLen: saltLen})
	if err != nil {
		t.Fatalf("NewSSHA1Hasher(saltLen=%d): %v", saltLen, err)
	}
	return h
}

// ──────────────────────────────────────────────────────────────────────────────
// Constructor
// ──────────────────────────────────────────────────────────────────────────────

func TestNewSSHA1Hasher_ValidSaltLengths(t *testing.T) {
	for n := passwd.MinSaltLen; n <= passwd.MaxSaltLen; n++ {
		h := newTestSSHA1Hasher(t, n)
		if h.SaltLen() != n {
			t.Errorf("saltLen %d: got %d", n, h.SaltLen())
		}
	}
}

func TestNewSSHA1Hasher_RejectsOutOfRange(t *testing.T) {
	for _, n := range []int{-1, 0, passwd.MaxSaltLen + 1, 99} {
		_, err := passwd.NewSSHA1Hasher(passwd.SSHA1Options{SaltLen: n})
		if !errors.Is(err, passwd.ErrInvalidOption) {
			t.Errorf("saltLen %d: expected ErrInvalidOption, got %v", n, err)
		}
	}
}

func TestDefaultSSHA1Options(t *testing.T) {
	opts := passwd.DefaultSSHA1Options()
	if opts.SaltLen != passwd.DefaultSaltLen {
		t.Errorf("SaltLen = %d, want %d", opts.SaltLen, passwd.DefaultSaltLen)
	}
	if opts.Source == nil {
		t.Error("default Source is nil")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Make
// ──────────────────────────────────────────────────────────────────────────────

func TestSSHA1Hasher_Make_Format(t *testing.T) {
	h := newTestSSHA1Hasher(t, passwd.DefaultSaltLen)
	enc, err := h.Make("hunter2")
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	if !strings.HasPrefix(enc, passwd.Magic) {
		t.Fatalf("missing magic prefix: %q", enc)
	}
	raw, err := base64.StdEncoding.DecodeString(enc[len(passwd.Magic):])
	if err != nil {
		t.Fatalf("payload is not standard base64: %v", err)
	}
	if len(raw) != passwd.DigestSize+passwd.DefaultSaltLen {
		t.Errorf("payload is %d bytes, want digest+salt = %d",
			len(raw), passwd.DigestSize+passwd.DefaultSaltLen)
	}
	if len(enc)+1 > passwd.EncodedMax {
		t.Errorf("encoded length %d exceeds EncodedMax %d", len(enc)+1, passwd.EncodedMax)
	}
}

func TestSSHA1Hasher_Make_UniqueSalts(t *testing.T) {
	h := newTestSSHA1Hasher(t, passwd.DefaultSaltLen)
	a, _ := h.Make("same-password")
	b, _ := h.Make("same-password")
	if a == b {
		t.Error("two Make calls with the same password must differ (fresh salts)")
	}
}

func TestSSHA1Hasher_Make_DeterministicWithSeededSource(t *testing.T) {
	mk := func() string {
		h, err := passwd.NewSSHA1Hasher(passwd.SSHA1Options{
			SaltLen: 8,
			Source:  passwd.NewLCGSource(424242),
		})
		if err != nil {
			t.Fatalf("NewSSHA1Hasher: %v", err)
		}
		enc, err := h.Make("hunter2")
		if err != nil {
			t.Fatalf("Make: %v", err)
		}
		return enc
	}
	if mk() != mk() {
		t.Error("seeded source must reproduce the identical encoded string")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Check
// ──────────────────────────────────────────────────────────────────────────────

func TestSSHA1Hasher_RoundTrip_AllSaltLengths(t *testing.T) {
	for n := passwd.MinSaltLen; n <= passwd.MaxSaltLen; n++ {
		h := newTestSSHA1Hasher(t, n)
		enc, err := h.Make("correct horse battery staple")
		if err != nil {
			t.Fatalf("saltLen %d: Make: %v", n, err)
		}
		ok, err := h.Check("correct horse battery staple", enc)
		if err != nil || !ok {
			t.Errorf("saltLen %d: Check = (%v, %v), want (true, nil)", n, ok, err)
		}
		ok, err = h.Check("correct horse battery stapler", enc)
		if err != nil || ok {
			t.Errorf("saltLen %d: wrong password Check = (%v, %v), want (false, nil)", n, ok, err)
		}
	}
}

// TestSSHA1Hasher_Check_HandBuiltHash verifies the layout independently of
// Make: prefix, then base64 of sha1(password ++ salt) followed by the salt.
func TestSSHA1Hasher_Check_HandBuiltHash(t *testing.T) {
	salt := []byte("NaCl")
	d := sha1.New()
	d.Write([]byte("hunter2"))
	d.Write(salt)
	digest := d.Finish()

	payload := append(digest[:], salt...)
	enc := passwd.Magic + base64.StdEncoding.EncodeToString(payload)

	h := newTestSSHA1Hasher(t, passwd.DefaultSaltLen)
	ok, err := h.Check("hunter2", enc)
	if err != nil || !ok {
		t.Errorf("hand-built hash: Check = (%v, %v), want (true, nil)", ok, err)
	}
}

func TestSSHA1Hasher_Check_FormatViolations(t *testing.T) {
	h := newTestSSHA1Hasher(t, passwd.DefaultSaltLen)

	shortPayload := passwd.Magic + base64.StdEncoding.EncodeToString(make([]byte, 10))
	noSalt := passwd.Magic + base64.StdEncoding.EncodeToString(make([]byte, passwd.DigestSize))
	hugeSalt := passwd.Magic + base64.StdEncoding.EncodeToString(
		make([]byte, passwd.DigestSize+passwd.MaxSaltLen+1))

	cases := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"no prefix", "aGVsbG8="},
		{"lowercase prefix", "{ssha}aGVsbG8="},
		{"wrong scheme", "{SMD5}aGVsbG8="},
		{"bcrypt hash", "$2b$12$C6UzMDM.H6dfI/f/IKcEeO"},
		{"invalid base64", passwd.Magic + "!!!not-base64!!!"},
		{"payload shorter than digest", shortPayload},
		{"payload with no salt", noSalt},
		{"payload with oversized salt", hugeSalt},
	}
	for _, tc := range cases {
		ok, err := h.Check("hunter2", tc.hash)
		if ok || err != nil {
			t.Errorf("%s: Check = (%v, %v), want the bare (false, nil)", tc.name, ok, err)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// NeedsRehash
// ──────────────────────────────────────────────────────────────────────────────

func TestSSHA1Hasher_NeedsRehash(t *testing.T) {
	six := newTestSSHA1Hasher(t, 6)
	eight := newTestSSHA1Hasher(t, 8)

	enc, _ := six.Make("pw")
	if needs, err := six.NeedsRehash(enc); err != nil || needs {
		t.Errorf("same salt length: NeedsRehash = (%v, %v), want (false, nil)", needs, err)
	}
	if needs, err := eight.NeedsRehash(enc); err != nil || !needs {
		t.Errorf("different salt length: NeedsRehash = (%v, %v), want (true, nil)", needs, err)
	}
}

func TestSSHA1Hasher_NeedsRehash_Errors(t *testing.T) {
	h := newTestSSHA1Hasher(t, passwd.DefaultSaltLen)
	if _, err := h.NeedsRehash("$2b$12$C6UzMDM.H6dfI/f/IKcEeO"); !errors.Is(err, passwd.ErrAlgorithmMismatch) {
		t.Errorf("bcrypt hash: expected ErrAlgorithmMismatch, got %v", err)
	}
	if _, err := h.NeedsRehash(passwd.Magic + "***"); !errors.Is(err, passwd.ErrInvalidHash) {
		t.Errorf("bad base64: expected ErrInvalidHash, got %v", err)
	}
	if _, err := h.NeedsRehash(passwd.Magic); !errors.Is(err, passwd.ErrInvalidHash) {
		t.Errorf("empty payload: expected ErrInvalidHash, got %v", err)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// AppendEncoded
// ──────────────────────────────────────────────────────────────────────────────

func TestAppendEncoded_BoundsLeaveDstUntouched(t *testing.T) {
	dst := []byte("prefix")
	digest := make([]byte, passwd.DigestSize)

	cases := []struct {
		name   string
		digest []byte
		salt   []byte
	}{
		{"short digest", make([]byte, passwd.DigestSize-1), []byte("salt")},
		{"long digest", make([]byte, passwd.DigestSize+1), []byte("salt")},
		{"empty salt", digest, nil},
		{"oversized salt", digest, make([]byte, passwd.MaxSaltLen+1)},
	}
	for _, tc := range cases {
		out, err := passwd.AppendEncoded(dst, tc.digest, tc.salt)
		if !errors.Is(err, passwd.ErrInvalidOption) {
			t.Errorf("%s: expected ErrInvalidOption, got %v", tc.name, err)
		}
		if string(out) != "prefix" {
			t.Errorf("%s: dst modified on error: %q", tc.name, out)
		}
	}
}

func TestAppendEncoded_MaxSaltFitsBudget(t *testing.T) {
	digest := make([]byte, passwd.DigestSize)
	salt := make([]byte, passwd.MaxSaltLen)
	out, err := passwd.AppendEncoded(nil, digest, salt)
	if err != nil {
		t.Fatalf("AppendEncoded: %v", err)
	}
	if len(out)+1 > passwd.EncodedMax {
		t.Errorf("max-salt encoding is %d+1 bytes, budget is %d", len(out), passwd.EncodedMax)
	}
}
