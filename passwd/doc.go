// Package passwd implements salted-SHA1 password hashing and verification
// for a legacy text-based credential store, plus a migration path to bcrypt.
//
// # Architecture
//
// Two layers share the same SHA-1 engine (the sibling sha1 package):
//
//   - The raw protocol: [Record] pairs an 8-byte salt with a 20-byte digest
//     in a fixed 28-byte binary layout.  [HashRecord] builds one from a salt
//     and a plaintext; [Record.Verify] compares digests.
//   - The encoded-string codec: [SSHA1Hasher] produces and checks the
//     "{SSHA}" text form — the magic prefix followed by the standard base64
//     encoding of digest plus salt — suitable for line-oriented credential
//     files.
//
// The [Hasher] interface abstracts over encoded-string producers.  Two
// drivers ship with this package: [SSHA1Hasher] for the legacy format and
// [BcryptHasher] for new hashes.  The [Manager] is a driver registry that
// dispatches verification by hash prefix, which is how deployments migrate:
// keep checking old {SSHA} entries, re-hash with bcrypt on the next
// successful login.
//
// # Quick start
//
//	m, err := passwd.NewDefaultManager()
//	if err != nil { log.Fatal(err) }
//
//	ok, _ := m.CheckWithDetect(password, storedHash)
//	if ok {
//	    if needs, _ := m.NeedsRehash(storedHash); needs {
//	        newHash, _ := m.Make(password) // persist this
//	    }
//	}
//
// # Security posture
//
// Salted SHA-1 is a legacy format: it is fast to brute-force and SHA-1
// itself is broken.  This package keeps it readable and writable for
// compatibility, performs all digest comparisons in constant time, and
// wipes plaintext and digest intermediates on every exit path — but new
// systems should store bcrypt hashes and treat {SSHA} as read-only history.
//
// Salt generation is pluggable through [SaltSource].  [CryptoSource] is the
// production choice; [LCGSource] reproduces the original implementation's
// seeded linear congruential generator, whose predictability is a
// documented weakness kept only for bit-compatible fixtures and tests.
package passwd
