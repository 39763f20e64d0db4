package bcrypt

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
)

// Options configures a [Bcrypt].
type Options struct {
	// Cost is the work factor used by [Bcrypt.Generate] and for the dummy
	// computation performed when [Bcrypt.Compare] meets a malformed hash.
	// Valid range: [MinCost, MaxCost]. Default: [DefaultCost].
	Cost int

	// Rand supplies salt bytes. It must be cryptographically secure.
	// Default: crypto/rand.Reader.
	Rand io.Reader
}

// DefaultOptions returns Options with [DefaultCost] and crypto/rand.
func DefaultOptions() Options {
	return Options{Cost: DefaultCost, Rand: rand.Reader}
}

// Bcrypt exposes salt generation, hashing and verification with an explicit
// random source. It holds no mutable state and is safe for concurrent use;
// every call derives its own key schedule.
type Bcrypt struct {
	cost int
	rand io.Reader
}

// New returns a Bcrypt configured by opts. A nil Rand selects crypto/rand.
// Returns [ErrInvalidCost] if Cost is outside [MinCost, MaxCost].
func New(opts Options) (*Bcrypt, error) {
	if err := checkCost(opts.Cost); err != nil {
		return nil, err
	}
	r := opts.Rand
	if r == nil {
		r = rand.Reader
	}
	return &Bcrypt{cost: opts.Cost, rand: r}, nil
}

var std = &Bcrypt{cost: DefaultCost, rand: rand.Reader}

// Cost returns the configured work factor.
func (b *Bcrypt) Cost() int { return b.cost }

// GenerateSalt reads SaltSize fresh bytes from the random source and returns
// a $2b$ salt string. The cost is clamped into [MinCost, MaxCost]; negative
// values return [ErrInvalidCost].
func (b *Bcrypt) GenerateSalt(cost int) (string, error) {
	cost, err := clampCost(cost)
	if err != nil {
		return "", err
	}
	seed := make([]byte, SaltSize)
	if _, err := io.ReadFull(b.rand, seed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRandomSource, err)
	}
	return GenerateSaltFromSeed(cost, seed)
}

// Hash computes the bcrypt hash of password using the version, cost and salt
// embedded in salt (a bare salt or a complete hash).
func (b *Bcrypt) Hash(password, salt string) (string, error) {
	return HashBytes([]byte(password), salt)
}

// HashWithCost generates a fresh salt at cost (clamped like
// [Bcrypt.GenerateSalt]) and hashes password with it.
func (b *Bcrypt) HashWithCost(password string, cost int) (string, error) {
	salt, err := b.GenerateSalt(cost)
	if err != nil {
		return "", err
	}
	return b.Hash(password, salt)
}

// Generate hashes password with a fresh salt at the configured cost.
func (b *Bcrypt) Generate(password string) (string, error) {
	return b.HashWithCost(password, b.cost)
}

// GetRounds returns the cost encoded in hash. See [GetRounds].
func (b *Bcrypt) GetRounds(hash string) (int, error) {
	return GetRounds(hash)
}

// Compare reports whether password matches hash. Malformed hashes, including
// the empty string, report false rather than an error.
func (b *Bcrypt) Compare(password, hash string) bool {
	return verify([]byte(password), hash, b.cost) == nil
}

// Verify is Compare with the failure reason: nil on match,
// [ErrMismatchedHashAndPassword] on a wrong password, or [ErrInvalidHash]
// when hash is malformed. Both failures take comparable time.
func (b *Bcrypt) Verify(password, hash string) error {
	return verify([]byte(password), hash, b.cost)
}

// HashContext runs [Bcrypt.Hash] on another goroutine and returns ctx.Err()
// as soon as ctx is done. The key schedule cannot be interrupted, so an
// abandoned computation runs to completion and its result is dropped.
func (b *Bcrypt) HashContext(ctx context.Context, password, salt string) (string, error) {
	type result struct {
		hash string
		err  error
	}
	r, err := runContext(ctx, func() result {
		h, err := b.Hash(password, salt)
		return result{h, err}
	})
	if err != nil {
		return "", err
	}
	return r.hash, r.err
}

// CompareContext runs [Bcrypt.Compare] with the cancellation semantics of
// [Bcrypt.HashContext].
func (b *Bcrypt) CompareContext(ctx context.Context, password, hash string) (bool, error) {
	return runContext(ctx, func() bool {
		return b.Compare(password, hash)
	})
}

func runContext[T any](ctx context.Context, fn func() T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	done := make(chan T, 1)
	go func() { done <- fn() }()
	select {
	case v := <-done:
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// GenerateSalt returns a $2b$ salt at cost using crypto/rand.
func GenerateSalt(cost int) (string, error) { return std.GenerateSalt(cost) }

// Hash computes the bcrypt hash of password with the given salt or hash string.
func Hash(password, salt string) (string, error) { return std.Hash(password, salt) }

// HashWithCost hashes password with a fresh crypto/rand salt at cost.
func HashWithCost(password string, cost int) (string, error) {
	return std.HashWithCost(password, cost)
}

// Compare reports whether password matches hash, in constant time.
func Compare(password, hash string) bool { return std.Compare(password, hash) }

// Verify reports why password does not match hash, or nil if it does.
func Verify(password, hash string) error { return std.Verify(password, hash) }
