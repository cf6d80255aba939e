package passwd

import "errors"

// Sentinel errors returned by passwd operations.
//
// Use [errors.Is] for comparisons:
//
//	_, err := passwd.NewSSHA1Hasher(opts)
//	if errors.Is(err, passwd.ErrInvalidOption) {
//	    // an option value is out of range
//	}
//
// Note that [SSHA1Hasher.Check] never returns an error for malformed input:
// every parse failure is reported as a plain "not verified" false so the
// result never leaks why a credential check failed.
var (
	// ErrInvalidOption is returned by a constructor when an option value
	// falls outside its allowed range (e.g., a salt length above
	// [MaxSaltLen] or a bcrypt cost outside the supported interval).
	ErrInvalidOption = errors.New("passwd: invalid option value")

	// ErrInvalidHash is returned when a hash string cannot be attributed to
	// any registered driver.
	ErrInvalidHash = errors.New("passwd: invalid or unrecognised hash string")

	// ErrEncodedTooLong is returned when an encoded password would exceed
	// [EncodedMax].  Nothing is written when this error is returned.
	ErrEncodedTooLong = errors.New("passwd: encoded password exceeds maximum length")

	// ErrShortRecord is returned by [Record.UnmarshalBinary] when the input
	// is not exactly [RecordSize] bytes.
	ErrShortRecord = errors.New("passwd: password record must be exactly 28 bytes")

	// ErrAlgorithmMismatch is returned by a driver's NeedsRehash method when
	// the hash was produced by a different algorithm than the one the driver
	// implements.
	ErrAlgorithmMismatch = errors.New("passwd: hash was produced by a different algorithm")

	// ErrDriverNotFound is returned by [Manager] operations when the
	// requested or detected driver has not been registered.
	ErrDriverNotFound = errors.New("passwd: driver not found")

	// ErrEmptyDriverName is returned by [Manager.RegisterDriver] when the
	// supplied driver name is empty.
	ErrEmptyDriverName = errors.New("passwd: driver name must not be empty")

	// ErrNilHasher is returned by [Manager.RegisterDriver] when a nil
	// [Hasher] is supplied.
	ErrNilHasher = errors.New("passwd: hasher must not be nil")
)
