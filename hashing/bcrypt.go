package hashing

import (
	"errors"
	"fmt"
	"io"

	"github.com/hasbyte1/go-bcrypt/bcrypt"
)

// DefaultBcryptCost is the work factor used by [DefaultBcryptOptions].
// It is two steps above bcrypt.DefaultCost, about 250 ms on current servers.
const DefaultBcryptCost = 12

// BcryptOptions configures a [BcryptHasher].
type BcryptOptions struct {
	// Cost is the work factor, in [bcrypt.MinCost, bcrypt.MaxCost].
	Cost int

	// Version is the tag written into new hashes. $2b$ and $2y$ are
	// equivalent; $2y$ is what PHP's password_hash emits. $2a$ and $2x$ are
	// accepted for verification only. Empty means $2b$.
	Version bcrypt.Version

	// Rand supplies salt bytes. Nil means crypto/rand.
	Rand io.Reader
}

// DefaultBcryptOptions returns options with [DefaultBcryptCost] and $2b$.
func DefaultBcryptOptions() BcryptOptions {
	return BcryptOptions{Cost: DefaultBcryptCost, Version: bcrypt.Version2b}
}

// BcryptHasher is the bcrypt [Hasher]. Passwords past 72 bytes are truncated
// by the algorithm; use an [Argon2Hasher] if that matters.
type BcryptHasher struct {
	b       *bcrypt.Bcrypt
	version bcrypt.Version
}

// NewBcryptHasher validates opts and returns a hasher.
func NewBcryptHasher(opts BcryptOptions) (*BcryptHasher, error) {
	v := opts.Version
	if v == "" {
		v = bcrypt.Version2b
	}
	if v != bcrypt.Version2b && v != bcrypt.Version2y {
		return nil, fmt.Errorf("%w: bcrypt version %q cannot be used for new hashes", ErrInvalidOption, v)
	}
	b, err := bcrypt.New(bcrypt.Options{Cost: opts.Cost, Rand: opts.Rand})
	if err != nil {
		return nil, fmt.Errorf("%w: bcrypt cost %d must be in [%d, %d]",
			ErrInvalidOption, opts.Cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &BcryptHasher{b: b, version: v}, nil
}

func (h *BcryptHasher) Driver() DriverName { return DriverBcrypt }

// Cost returns the configured work factor.
func (h *BcryptHasher) Cost() int { return h.b.Cost() }

// Version returns the tag written into new hashes.
func (h *BcryptHasher) Version() bcrypt.Version { return h.version }

// Make hashes password with a fresh salt at the configured cost and version.
func (h *BcryptHasher) Make(password string) (string, error) {
	s, err := h.b.GenerateSalt(h.b.Cost())
	if err != nil {
		return "", fmt.Errorf("hashing: bcrypt: %w", err)
	}
	if h.version != bcrypt.Version2b {
		d, err := bcrypt.DecodeSalt(s)
		if err != nil {
			return "", fmt.Errorf("hashing: bcrypt: %w", err)
		}
		d.Version = h.version
		s = d.Salt.String()
	}
	hash, err := h.b.Hash(password, s)
	if err != nil {
		return "", fmt.Errorf("hashing: bcrypt: %w", err)
	}
	return hash, nil
}

// Check verifies password against hash in constant time. The hash's own
// version and cost are used, so $2a$ and $2x$ hashes verify as written.
func (h *BcryptHasher) Check(password, hash string) (bool, error) {
	if err := h.claim(hash); err != nil {
		return false, err
	}
	err := h.b.Verify(password, hash)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
}

// NeedsRehash reports true when the stored cost or version tag differs from
// the hasher's. $2x$ hashes always need a rehash.
func (h *BcryptHasher) NeedsRehash(hash string) (bool, error) {
	d, err := h.decode(hash)
	if err != nil {
		return false, err
	}
	return d.Cost != h.b.Cost() || d.Version != h.version, nil
}

// Info returns "version" and "cost".
func (h *BcryptHasher) Info(hash string) (HashInfo, error) {
	d, err := h.decode(hash)
	if err != nil {
		return HashInfo{}, err
	}
	return HashInfo{
		Driver: DriverBcrypt,
		Params: map[string]any{"version": string(d.Version), "cost": d.Cost},
	}, nil
}

func (h *BcryptHasher) decode(hash string) (*bcrypt.Decoded, error) {
	if err := h.claim(hash); err != nil {
		return nil, err
	}
	d, err := bcrypt.DecodeHash(hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	return d, nil
}

func (h *BcryptHasher) claim(hash string) error {
	if d, ok := DetectDriver(hash); !ok || d != DriverBcrypt {
		return fmt.Errorf("%w: hash does not appear to be bcrypt", ErrAlgorithmMismatch)
	}
	return nil
}
