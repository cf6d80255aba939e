package passwd

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the bcrypt work factor used for newly made hashes.
// Cost 12 keeps hashing in the low hundreds of milliseconds on current
// server hardware; raise it as hardware improves.
const DefaultBcryptCost = 12

// BcryptOptions configures a [BcryptHasher].
type BcryptOptions struct {
	// Cost is the logarithmic bcrypt work factor.
	// Valid range: [bcrypt.MinCost (4), bcrypt.MaxCost (31)].
	Cost int
}

// DefaultBcryptOptions returns BcryptOptions with [DefaultBcryptCost].
func DefaultBcryptOptions() BcryptOptions {
	return BcryptOptions{Cost: DefaultBcryptCost}
}

// BcryptHasher is the modern driver legacy {SSHA} records migrate to.
// Bcrypt generates and embeds its own 16-byte salt, so unlike
// [SSHA1Hasher] it needs no [SaltSource].
//
// BcryptHasher is immutable after construction and safe for concurrent use.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher constructs a BcryptHasher.  Returns [ErrInvalidOption]
// when Cost is outside [bcrypt.MinCost, bcrypt.MaxCost].
func NewBcryptHasher(opts BcryptOptions) (*BcryptHasher, error) {
	if opts.Cost < bcrypt.MinCost || opts.Cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: bcrypt cost %d must be in [%d, %d]",
			ErrInvalidOption, opts.Cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &BcryptHasher{cost: opts.Cost}, nil
}

// Driver returns [DriverBcrypt].
func (h *BcryptHasher) Driver() DriverName { return DriverBcrypt }

// Cost returns the configured work factor.
func (h *BcryptHasher) Cost() int { return h.cost }

// Make hashes password with bcrypt and returns the modular-crypt string
// ("$2b$12$…").  Passwords longer than 72 bytes are truncated by the
// algorithm itself.
func (h *BcryptHasher) Make(password string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("passwd: bcrypt: %w", err)
	}
	return string(out), nil
}

// Check verifies password against a bcrypt hash.  A mismatch or a hash
// this driver cannot parse is (false, nil), consistent with the package's
// rule that verification failures carry no cause.
func (h *BcryptHasher) Check(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	// Structurally invalid input behaves like any other failed check.
	return false, nil
}

// NeedsRehash reports whether the cost stored in hash differs from the
// configured one.  Returns [ErrAlgorithmMismatch] for non-bcrypt hashes.
func (h *BcryptHasher) NeedsRehash(hash string) (bool, error) {
	if d, ok := DetectDriver(hash); !ok || d != DriverBcrypt {
		return false, fmt.Errorf("%w: hash does not appear to be bcrypt", ErrAlgorithmMismatch)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	return cost != h.cost, nil
}
