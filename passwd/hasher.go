package passwd

import "strings"

// DriverName identifies an encoded-password driver.
type DriverName string

const (
	// DriverSSHA1 selects the legacy salted-SHA1 {SSHA} driver.
	DriverSSHA1 DriverName = "ssha1"
	// DriverBcrypt selects the bcrypt driver (recommended for new hashes).
	DriverBcrypt DriverName = "bcrypt"
)

// Hasher is the interface satisfied by encoded-password drivers.
//
// All implementations must be safe for concurrent use once constructed,
// with the documented exception that a driver built on a shared [LCGSource]
// inherits that source's serialization (the source itself locks).
type Hasher interface {
	// Make hashes a plaintext password and returns the encoded hash string.
	// A fresh salt is generated for every call, so two calls with the same
	// password produce different outputs.
	Make(password string) (string, error)

	// Check verifies password against a previously encoded hash.  A
	// mismatch — including any structural problem with the hash — is
	// (false, nil); drivers only return an error for internal failures,
	// never to explain why verification failed.
	Check(password, hash string) (bool, error)

	// NeedsRehash reports whether the hash was produced with parameters
	// different from the driver's current configuration.  It returns
	// [ErrAlgorithmMismatch] when the hash belongs to another driver;
	// use [Manager.NeedsRehash] for cross-driver migration decisions.
	NeedsRehash(hash string) (bool, error)

	// Driver returns the DriverName implemented by this hasher.
	Driver() DriverName
}

// DetectDriver inspects a hash string and returns the [DriverName] that
// produced it, judged by prefix alone.  The second return value is false
// when the format is not recognised.
func DetectDriver(hash string) (DriverName, bool) {
	switch {
	case strings.HasPrefix(hash, Magic):
		return DriverSSHA1, true
	// bcrypt hashes start with $2a$, $2b$, or $2y$.
	case strings.HasPrefix(hash, "$2a$"),
		strings.HasPrefix(hash, "$2b$"),
		strings.HasPrefix(hash, "$2y$"):
		return DriverBcrypt, true
	default:
		return "", false
	}
}
