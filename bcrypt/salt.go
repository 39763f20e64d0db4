package bcrypt

import (
	"fmt"
	"strconv"
)

const (
	// MinCost is the smallest cost accepted by the key schedule.
	MinCost = 4
	// MaxCost is the largest cost accepted by the key schedule.
	MaxCost = 31
	// DefaultCost is the cost used by [GenerateSalt] and [New] when none is given.
	DefaultCost = 10

	// SaltSize is the length of a raw salt in bytes.
	SaltSize = 16
	// EncodedSaltSize is the length of a radix-64 encoded salt.
	EncodedSaltSize = 22
	// DigestSize is the number of ciphertext bytes kept in a hash.
	DigestSize = 23
	// EncodedDigestSize is the length of a radix-64 encoded digest.
	EncodedDigestSize = 31
	// MaxPasswordLen is the number of password bytes the key schedule consumes.
	MaxPasswordLen = 72

	headerLen = len("$2b$10$")

	// SaltLen is the length of an encoded salt string ("$2b$10$" + 22 chars).
	SaltLen = headerLen + EncodedSaltSize
	// HashLen is the length of an encoded hash string.
	HashLen = SaltLen + EncodedDigestSize
)

// Version is the minor revision tag of a bcrypt string, e.g. "2b".
type Version string

const (
	// Version2a is the original OpenBSD tag. Hashes verify with the
	// crypt_blowfish countermeasure for the 8-bit sign-extension bug.
	Version2a Version = "2a"
	// Version2b is the current tag and the one every generated salt carries.
	Version2b Version = "2b"
	// Version2x marks hashes produced by the buggy crypt_blowfish key
	// expansion; the bug is reproduced so such hashes still verify.
	Version2x Version = "2x"
	// Version2y is crypt_blowfish's name for correct behaviour; identical to 2b.
	Version2y Version = "2y"
)

// Valid reports whether v is one of the four known tags.
func (v Version) Valid() bool {
	switch v {
	case Version2a, Version2b, Version2x, Version2y:
		return true
	}
	return false
}

// Salt is a decoded bcrypt setting: version, cost and 16 raw salt bytes.
type Salt struct {
	Version Version
	Cost    int
	Bytes   [SaltSize]byte
}

// String encodes s as "$<version>$<cost>$<22 chars>".
func (s Salt) String() string {
	buf := make([]byte, 0, HashLen)
	buf = append(buf, '$')
	buf = append(buf, s.Version...)
	buf = append(buf, '$')
	if s.Cost < 10 {
		buf = append(buf, '0')
	}
	buf = strconv.AppendInt(buf, int64(s.Cost), 10)
	buf = append(buf, '$')
	buf = append(buf, encodeRadix64(s.Bytes[:])...)
	return string(buf)
}

// EncodeSalt formats raw salt bytes as a bcrypt salt string.
//
// Returns [ErrInvalidSalt] for an unknown version or a salt that is not
// [SaltSize] bytes, and [ErrInvalidCost] for a cost outside [MinCost, MaxCost].
func EncodeSalt(v Version, cost int, salt []byte) (string, error) {
	if !v.Valid() {
		return "", fmt.Errorf("%w: unknown version %q", ErrInvalidSalt, v)
	}
	if err := checkCost(cost); err != nil {
		return "", err
	}
	if len(salt) != SaltSize {
		return "", fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSalt, len(salt), SaltSize)
	}
	s := Salt{Version: v, Cost: cost}
	copy(s.Bytes[:], salt)
	return s.String(), nil
}

// GenerateSaltFromSeed builds a $2b$ salt from caller-supplied random bytes.
// The cost is clamped into [MinCost, MaxCost]; a negative cost is rejected.
// The seed must be exactly [SaltSize] bytes.
func GenerateSaltFromSeed(cost int, seed []byte) (string, error) {
	cost, err := clampCost(cost)
	if err != nil {
		return "", err
	}
	if len(seed) != SaltSize {
		return "", fmt.Errorf("%w: got %d bytes", ErrInvalidSeed, len(seed))
	}
	return EncodeSalt(Version2b, cost, seed)
}

func checkCost(cost int) error {
	if cost < MinCost || cost > MaxCost {
		return fmt.Errorf("%w: %d is outside [%d, %d]", ErrInvalidCost, cost, MinCost, MaxCost)
	}
	return nil
}

// clampCost maps any non-negative cost into [MinCost, MaxCost].
func clampCost(cost int) (int, error) {
	switch {
	case cost < 0:
		return 0, fmt.Errorf("%w: %d must not be negative", ErrInvalidCost, cost)
	case cost < MinCost:
		return MinCost, nil
	case cost > MaxCost:
		return MaxCost, nil
	}
	return cost, nil
}
