package hashing

import "strings"

// DriverName identifies a hashing driver registered with a [Manager].
type DriverName string

const (
	// DriverBcrypt selects [BcryptHasher].
	DriverBcrypt DriverName = "bcrypt"
	// DriverArgon2i selects an [Argon2Hasher] running Argon2i.
	DriverArgon2i DriverName = "argon2i"
	// DriverArgon2id selects an [Argon2Hasher] running Argon2id.
	DriverArgon2id DriverName = "argon2id"
)

// Hasher is implemented by every password-hashing driver. Implementations
// must be safe for concurrent use.
type Hasher interface {
	// Make hashes password with a fresh salt.
	Make(password string) (string, error)

	// Check reports whether password matches hash. A mismatch is (false, nil);
	// an unparseable hash is (false, err) with err wrapping [ErrInvalidHash].
	Check(password, hash string) (bool, error)

	// NeedsRehash reports whether hash was produced with parameters other
	// than the hasher's current ones.
	NeedsRehash(hash string) (bool, error)

	// Info parses hash without verifying it.
	Info(hash string) (HashInfo, error)

	// Driver returns the name this hasher implements.
	Driver() DriverName
}

// HashInfo is the metadata carried in an encoded hash.
//
// Params keys for bcrypt: "version" (string), "cost" (int).
// For Argon2: "version" (int), "memory" (uint32 KiB), "time" (uint32),
// "threads" (uint8), "key_len" (uint32).
type HashInfo struct {
	Driver DriverName
	Params map[string]any
}

// DetectDriver guesses the driver that produced hash from its prefix. It does
// not validate the rest of the string.
func DetectDriver(hash string) (DriverName, bool) {
	if strings.HasPrefix(hash, "$argon2id$") {
		return DriverArgon2id, true
	}
	if strings.HasPrefix(hash, "$argon2i$") {
		return DriverArgon2i, true
	}
	if len(hash) >= 4 && hash[0] == '$' && hash[1] == '2' && hash[3] == '$' {
		switch hash[2] {
		case 'a', 'b', 'x', 'y':
			return DriverBcrypt, true
		}
	}
	return "", false
}
