package passwd

import (
	"fmt"
	"sync"
)

// Manager is a registry of named [Hasher] drivers with a designated
// default.  It exists for one job: credential stores where {SSHA} and
// bcrypt entries coexist.  [Manager.CheckWithDetect] verifies whatever
// format a stored hash is in, and [Manager.NeedsRehash] says when to
// re-hash with the default driver on the next successful login.
//
// All Manager methods are safe for concurrent use; a [sync.RWMutex]
// serialises registration against lookups.
type Manager struct {
	mu      sync.RWMutex
	drivers map[DriverName]Hasher
	def     DriverName
}

// NewManager creates an empty Manager whose default driver is defaultDriver.
// Register drivers with [Manager.RegisterDriver] before use, or start from
// [NewDefaultManager].
func NewManager(defaultDriver DriverName) *Manager {
	return &Manager{
		drivers: make(map[DriverName]Hasher),
		def:     defaultDriver,
	}
}

// NewDefaultManager creates a Manager with the {SSHA} and bcrypt drivers
// registered under their recommended defaults.  The default driver is
// [DriverSSHA1], the store's native format; deployments migrating away from
// it should call [Manager.SetDefaultDriver] with [DriverBcrypt] so that
// NeedsRehash flags every legacy entry.
func NewDefaultManager() (*Manager, error) {
	ssha, err := NewSSHA1Hasher(DefaultSSHA1Options())
	if err != nil {
		return nil, fmt.Errorf("passwd: default ssha1 hasher: %w", err)
	}
	bc, err := NewBcryptHasher(DefaultBcryptOptions())
	if err != nil {
		return nil, fmt.Errorf("passwd: default bcrypt hasher: %w", err)
	}

	m := NewManager(DriverSSHA1)
	_ = m.RegisterDriver(DriverSSHA1, ssha)
	_ = m.RegisterDriver(DriverBcrypt, bc)
	return m, nil
}

// RegisterDriver adds or replaces a named hasher.
func (m *Manager) RegisterDriver(name DriverName, h Hasher) error {
	if name == "" {
		return ErrEmptyDriverName
	}
	if h == nil {
		return ErrNilHasher
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[name] = h
	return nil
}

// Driver returns the [Hasher] registered under name, or [ErrDriverNotFound].
func (m *Manager) Driver(name DriverName) (Hasher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.drivers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDriverNotFound, name)
	}
	return h, nil
}

// SetDefaultDriver changes the driver used by [Manager.Make],
// [Manager.Check] and [Manager.NeedsRehash].  The driver must already be
// registered.
func (m *Manager) SetDefaultDriver(name DriverName) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drivers[name]; !ok {
		return fmt.Errorf("%w: %q is not registered", ErrDriverNotFound, name)
	}
	m.def = name
	return nil
}

// DefaultDriver returns the current default driver name.
func (m *Manager) DefaultDriver() DriverName {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.def
}

// HasDriver reports whether name is registered.
func (m *Manager) HasDriver(name DriverName) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.drivers[name]
	return ok
}

// Make hashes password with the default driver.
func (m *Manager) Make(password string) (string, error) {
	h, err := m.resolveDefault()
	if err != nil {
		return "", err
	}
	return h.Make(password)
}

// Check verifies password against hash with the default driver.
func (m *Manager) Check(password, hash string) (bool, error) {
	h, err := m.resolveDefault()
	if err != nil {
		return false, err
	}
	return h.Check(password, hash)
}

// CheckWithDetect verifies password against hash with whichever registered
// driver produced the hash, judged by prefix.  Returns [ErrInvalidHash]
// when no driver recognises the format and [ErrDriverNotFound] when the
// detected driver is not registered.
func (m *Manager) CheckWithDetect(password, hash string) (bool, error) {
	name, ok := DetectDriver(hash)
	if !ok {
		return false, ErrInvalidHash
	}
	h, err := m.Driver(name)
	if err != nil {
		return false, err
	}
	return h.Check(password, hash)
}

// NeedsRehash reports whether hash should be re-made with the default
// driver: true when it was produced by a different driver (the migration
// case), or by the default driver with different parameters.
func (m *Manager) NeedsRehash(hash string) (bool, error) {
	detected, ok := DetectDriver(hash)
	if !ok {
		return false, ErrInvalidHash
	}

	m.mu.RLock()
	def := m.def
	m.mu.RUnlock()

	if detected != def {
		return true, nil
	}
	h, err := m.Driver(detected)
	if err != nil {
		return false, err
	}
	return h.NeedsRehash(hash)
}

func (m *Manager) resolveDefault() (Hasher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.drivers[m.def]
	if !ok {
		return nil, fmt.Errorf("%w: default driver %q has not been registered",
			ErrDriverNotFound, m.def)
	}
	return h, nil
}
