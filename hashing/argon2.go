package hashing

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2 defaults. 64 MiB, 3 passes and 2 lanes sit above the OWASP minimum
// of 19 MiB, 2 passes and 1 lane.
const (
	DefaultArgon2Memory  uint32 = 64 * 1024
	DefaultArgon2Time    uint32 = 3
	DefaultArgon2Threads uint8  = 2
	DefaultArgon2KeyLen  uint32 = 32
	DefaultArgon2SaltLen uint32 = 16
)

// Argon2Options configures an [Argon2Hasher]. Every parameter except SaltLen
// is recorded in the PHC string, so old hashes stay verifiable after a change.
type Argon2Options struct {
	Memory  uint32 // KiB, at least 8 per thread
	Time    uint32 // passes, at least 1
	Threads uint8  // lanes, at least 1
	KeyLen  uint32 // bytes, at least 4
	SaltLen uint32 // bytes, at least 8

	// Rand supplies salt bytes. Nil means crypto/rand.
	Rand io.Reader
}

// DefaultArgon2Options returns the package defaults.
func DefaultArgon2Options() Argon2Options {
	return Argon2Options{
		Memory:  DefaultArgon2Memory,
		Time:    DefaultArgon2Time,
		Threads: DefaultArgon2Threads,
		KeyLen:  DefaultArgon2KeyLen,
		SaltLen: DefaultArgon2SaltLen,
	}
}

func (o Argon2Options) validate() error {
	switch {
	case o.Time < 1:
		return fmt.Errorf("%w: argon2 time must be ≥ 1, got %d", ErrInvalidOption, o.Time)
	case o.Threads < 1:
		return fmt.Errorf("%w: argon2 threads must be ≥ 1, got %d", ErrInvalidOption, o.Threads)
	case o.Memory < 8*uint32(o.Threads):
		return fmt.Errorf("%w: argon2 memory %d KiB is below 8×threads", ErrInvalidOption, o.Memory)
	case o.KeyLen < 4:
		return fmt.Errorf("%w: argon2 key_len must be ≥ 4, got %d", ErrInvalidOption, o.KeyLen)
	case o.SaltLen < 8:
		return fmt.Errorf("%w: argon2 salt_len must be ≥ 8, got %d", ErrInvalidOption, o.SaltLen)
	}
	return nil
}

// Argon2Hasher writes PHC strings such as
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt>$<key>
//
// with unpadded standard base64. One type serves both variants; the variant
// is fixed at construction.
type Argon2Hasher struct {
	variant DriverName
	opts    Argon2Options
}

// NewArgon2Hasher returns a hasher for variant, which must be
// [DriverArgon2i] or [DriverArgon2id].
func NewArgon2Hasher(variant DriverName, opts Argon2Options) (*Argon2Hasher, error) {
	if variant != DriverArgon2i && variant != DriverArgon2id {
		return nil, fmt.Errorf("%w: %q is not an argon2 variant", ErrInvalidOption, variant)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Rand == nil {
		opts.Rand = rand.Reader
	}
	return &Argon2Hasher{variant: variant, opts: opts}, nil
}

func (h *Argon2Hasher) Driver() DriverName { return h.variant }

// Options returns the configured parameters.
func (h *Argon2Hasher) Options() Argon2Options { return h.opts }

func (h *Argon2Hasher) Make(password string) (string, error) {
	salt := make([]byte, h.opts.SaltLen)
	if _, err := io.ReadFull(h.opts.Rand, salt); err != nil {
		return "", fmt.Errorf("hashing: argon2: reading salt: %w", err)
	}
	p := phc{
		variant: h.variant,
		version: argon2.Version,
		memory:  h.opts.Memory,
		time:    h.opts.Time,
		threads: h.opts.Threads,
		salt:    salt,
	}
	p.key = p.derive([]byte(password), h.opts.KeyLen)
	return p.String(), nil
}

// Check recomputes the key with the parameters stored in hash.
func (h *Argon2Hasher) Check(password, hash string) (bool, error) {
	p, err := h.parse(hash)
	if err != nil {
		return false, err
	}
	got := p.derive([]byte(password), uint32(len(p.key)))
	return subtle.ConstantTimeCompare(got, p.key) == 1, nil
}

func (h *Argon2Hasher) NeedsRehash(hash string) (bool, error) {
	p, err := h.parse(hash)
	if err != nil {
		return false, err
	}
	return p.version != argon2.Version ||
		p.memory != h.opts.Memory ||
		p.time != h.opts.Time ||
		p.threads != h.opts.Threads ||
		uint32(len(p.key)) != h.opts.KeyLen, nil
}

func (h *Argon2Hasher) Info(hash string) (HashInfo, error) {
	p, err := h.parse(hash)
	if err != nil {
		return HashInfo{}, err
	}
	return HashInfo{
		Driver: p.variant,
		Params: map[string]any{
			"version": p.version,
			"memory":  p.memory,
			"time":    p.time,
			"threads": p.threads,
			"key_len": uint32(len(p.key)),
		},
	}, nil
}

func (h *Argon2Hasher) parse(hash string) (*phc, error) {
	if d, ok := DetectDriver(hash); !ok || d != h.variant {
		return nil, fmt.Errorf("%w: hash is not %s", ErrAlgorithmMismatch, h.variant)
	}
	return parsePHC(hash)
}

// ──────────────────────────────────────────────────────────────────────────────
// PHC string
// ──────────────────────────────────────────────────────────────────────────────

type phc struct {
	variant DriverName
	version int
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

func (p *phc) derive(password []byte, keyLen uint32) []byte {
	if p.variant == DriverArgon2i {
		return argon2.Key(password, p.salt, p.time, p.memory, p.threads, keyLen)
	}
	return argon2.IDKey(password, p.salt, p.time, p.memory, p.threads, keyLen)
}

func (p *phc) String() string {
	b64 := base64.RawStdEncoding
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		p.variant, p.version, p.memory, p.time, p.threads,
		b64.EncodeToString(p.salt), b64.EncodeToString(p.key))
}

func parsePHC(s string) (*phc, error) {
	f := strings.Split(s, "$")
	if len(f) != 6 || f[0] != "" {
		return nil, fmt.Errorf("%w: want 5 PHC fields", ErrInvalidHash)
	}
	p := &phc{variant: DriverName(f[1])}
	if p.variant != DriverArgon2i && p.variant != DriverArgon2id {
		return nil, fmt.Errorf("%w: unknown argon2 variant %q", ErrInvalidHash, f[1])
	}

	v, ok := strings.CutPrefix(f[2], "v=")
	if !ok {
		return nil, fmt.Errorf("%w: missing version field", ErrInvalidHash)
	}
	version, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%w: version: %v", ErrInvalidHash, err)
	}
	p.version = version

	var seen int
	for _, kv := range strings.Split(f[3], ",") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("%w: malformed parameter %q", ErrInvalidHash, kv)
		}
		var bits int
		switch k {
		case "m", "t":
			bits = 32
		case "p":
			bits = 8
		default:
			return nil, fmt.Errorf("%w: unknown parameter %q", ErrInvalidHash, k)
		}
		n, err := strconv.ParseUint(v, 10, bits)
		if err != nil {
			return nil, fmt.Errorf("%w: parameter %s: %v", ErrInvalidHash, k, err)
		}
		switch k {
		case "m":
			p.memory = uint32(n)
			seen |= 1
		case "t":
			p.time = uint32(n)
			seen |= 2
		case "p":
			p.threads = uint8(n)
			seen |= 4
		}
	}
	if seen != 7 {
		return nil, fmt.Errorf("%w: m, t and p are all required", ErrInvalidHash)
	}
	if p.time < 1 || p.threads < 1 {
		return nil, fmt.Errorf("%w: t and p must be positive", ErrInvalidHash)
	}

	if p.salt, err = base64.RawStdEncoding.DecodeString(f[4]); err != nil {
		return nil, fmt.Errorf("%w: salt: %v", ErrInvalidHash, err)
	}
	if p.key, err = base64.RawStdEncoding.DecodeString(f[5]); err != nil {
		return nil, fmt.Errorf("%w: key: %v", ErrInvalidHash, err)
	}
	if len(p.key) < 4 {
		return nil, fmt.Errorf("%w: key too short", ErrInvalidHash)
	}
	return p, nil
}
