package hashing

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Manager is a registry of named [Hasher]s with a default for new hashes.
// Verification dispatches on the stored hash's prefix, so hashes from every
// registered driver remain checkable after the default changes.
//
// All methods are safe for concurrent use.
type Manager struct {
	mu      sync.RWMutex
	drivers map[DriverName]Hasher
	def     DriverName
	logger  *slog.Logger
}

// NewManager returns an empty Manager. Drivers must be registered before use.
// A nil logger discards output.
func NewManager(defaultDriver DriverName, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{
		drivers: make(map[DriverName]Hasher),
		def:     defaultDriver,
		logger:  logger.With("component", "hashing"),
	}
}

// NewDefaultManager registers bcrypt, argon2i and argon2id with their default
// options and makes bcrypt the default.
func NewDefaultManager(logger *slog.Logger) (*Manager, error) {
	return NewManagerFromConfig(DefaultConfig(), logger)
}

// RegisterDriver adds or replaces the hasher stored under name.
func (m *Manager) RegisterDriver(name DriverName, h Hasher) error {
	if name == "" {
		return ErrEmptyDriverName
	}
	if h == nil {
		return ErrNilHasher
	}
	m.mu.Lock()
	m.drivers[name] = h
	m.mu.Unlock()
	return nil
}

// Driver returns the hasher registered under name.
func (m *Manager) Driver(name DriverName) (Hasher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if h, ok := m.drivers[name]; ok {
		return h, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrDriverNotFound, name)
}

// SetDefaultDriver changes the driver used by [Manager.Make]. The driver must
// already be registered.
func (m *Manager) SetDefaultDriver(name DriverName) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drivers[name]; !ok {
		return fmt.Errorf("%w: %q is not registered", ErrDriverNotFound, name)
	}
	m.def = name
	return nil
}

func (m *Manager) DefaultDriver() DriverName {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.def
}

func (m *Manager) HasDriver(name DriverName) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.drivers[name]
	return ok
}

// Make hashes password with the default driver.
func (m *Manager) Make(password string) (string, error) {
	def := m.DefaultDriver()
	h, err := m.Driver(def)
	if err != nil {
		return "", fmt.Errorf("default driver: %w", err)
	}
	return h.Make(password)
}

// Check verifies password against hash using whichever registered driver
// produced it. Malformed hashes are logged at Warn, since they usually mean
// corrupted storage rather than a bad password.
func (m *Manager) Check(password, hash string) (bool, error) {
	h, err := m.byHash(hash)
	if err != nil {
		m.logger.Warn("unrecognised stored hash", "error", err)
		return false, err
	}
	ok, err := h.Check(password, hash)
	if errors.Is(err, ErrInvalidHash) {
		m.logger.Warn("malformed stored hash", "driver", h.Driver(), "error", err)
	}
	return ok, err
}

// NeedsRehash reports whether hash should be replaced by [Manager.Make]:
// either it came from a driver other than the default, or the default driver
// says its parameters are stale.
func (m *Manager) NeedsRehash(hash string) (bool, error) {
	detected, ok := DetectDriver(hash)
	if !ok {
		return false, ErrInvalidHash
	}
	def := m.DefaultDriver()
	if detected != def {
		m.logger.Debug("rehash needed", "from", detected, "to", def)
		return true, nil
	}
	h, err := m.Driver(def)
	if err != nil {
		return false, err
	}
	stale, err := h.NeedsRehash(hash)
	if stale {
		m.logger.Debug("rehash needed", "driver", def, "reason", "parameters changed")
	}
	return stale, err
}

// Info parses hash with the driver that produced it.
func (m *Manager) Info(hash string) (HashInfo, error) {
	h, err := m.byHash(hash)
	if err != nil {
		return HashInfo{}, err
	}
	return h.Info(hash)
}

func (m *Manager) byHash(hash string) (Hasher, error) {
	name, ok := DetectDriver(hash)
	if !ok {
		return nil, ErrInvalidHash
	}
	return m.Driver(name)
}
