package hashing

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/hasbyte1/go-bcrypt/bcrypt"
)

// Config selects the default driver and the parameters of every built-in
// driver.
type Config struct {
	// Driver is the default for new hashes. HASH_DRIVER.
	Driver DriverName

	// Bcrypt reads BCRYPT_ROUNDS and BCRYPT_VERSION.
	Bcrypt BcryptOptions

	// Argon reads ARGON_MEMORY, ARGON_TIME and ARGON_THREADS. It applies to
	// both Argon2 variants.
	Argon Argon2Options
}

// DefaultConfig returns bcrypt as the default driver with package defaults.
func DefaultConfig() Config {
	return Config{
		Driver: DriverBcrypt,
		Bcrypt: DefaultBcryptOptions(),
		Argon:  DefaultArgon2Options(),
	}
}

// LoadConfig starts from [DefaultConfig] and overrides it from the process
// environment, then from files in .env format. A variable set in the process
// environment wins over the same variable in a file. Unparseable values
// return [ErrInvalidOption]; range checks happen in [NewManagerFromConfig].
func LoadConfig(files ...string) (Config, error) {
	fileEnv := map[string]string{}
	if len(files) > 0 {
		var err error
		if fileEnv, err = godotenv.Read(files...); err != nil {
			return Config{}, fmt.Errorf("hashing: reading env files: %w", err)
		}
	}
	lookup := func(k string) (string, bool) {
		if v, ok := os.LookupEnv(k); ok && v != "" {
			return v, true
		}
		v, ok := fileEnv[k]
		return v, ok && v != ""
	}

	cfg := DefaultConfig()
	if v, ok := lookup("HASH_DRIVER"); ok {
		cfg.Driver = DriverName(v)
	}
	if v, ok := lookup("BCRYPT_VERSION"); ok {
		cfg.Bcrypt.Version = bcrypt.Version(v)
	}

	var err error
	uintVar := func(key string, bits int, set func(uint64)) {
		v, ok := lookup(key)
		if !ok || err != nil {
			return
		}
		n, perr := strconv.ParseUint(v, 10, bits)
		if perr != nil {
			err = fmt.Errorf("%w: %s=%q", ErrInvalidOption, key, v)
			return
		}
		set(n)
	}
	uintVar("BCRYPT_ROUNDS", 8, func(n uint64) { cfg.Bcrypt.Cost = int(n) })
	uintVar("ARGON_MEMORY", 32, func(n uint64) { cfg.Argon.Memory = uint32(n) })
	uintVar("ARGON_TIME", 32, func(n uint64) { cfg.Argon.Time = uint32(n) })
	uintVar("ARGON_THREADS", 8, func(n uint64) { cfg.Argon.Threads = uint8(n) })
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewManagerFromConfig builds a Manager with all three built-in drivers
// configured from cfg and cfg.Driver as the default.
func NewManagerFromConfig(cfg Config, logger *slog.Logger) (*Manager, error) {
	bc, err := NewBcryptHasher(cfg.Bcrypt)
	if err != nil {
		return nil, err
	}
	a2i, err := NewArgon2Hasher(DriverArgon2i, cfg.Argon)
	if err != nil {
		return nil, err
	}
	a2id, err := NewArgon2Hasher(DriverArgon2id, cfg.Argon)
	if err != nil {
		return nil, err
	}

	m := NewManager(cfg.Driver, logger)
	for _, h := range []Hasher{bc, a2i, a2id} {
		if err := m.RegisterDriver(h.Driver(), h); err != nil {
			return nil, err
		}
	}
	if !m.HasDriver(cfg.Driver) {
		return nil, fmt.Errorf("%w: HASH_DRIVER %q", ErrDriverNotFound, cfg.Driver)
	}
	m.logger.Info("hashing configured",
		"driver", cfg.Driver,
		"bcrypt_cost", bc.Cost(),
		"bcrypt_version", string(bc.Version()))
	return m, nil
}
