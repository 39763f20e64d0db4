package hashing

import "errors"

// Sentinel errors. Compare with [errors.Is]; most are wrapped with detail.
var (
	// ErrInvalidHash means a stored hash could not be parsed.
	ErrInvalidHash = errors.New("hashing: invalid or unrecognised hash string")

	// ErrInvalidOption means a constructor or [LoadConfig] met an
	// out-of-range parameter.
	ErrInvalidOption = errors.New("hashing: invalid option value")

	// ErrDriverNotFound means no hasher is registered under the name.
	ErrDriverNotFound = errors.New("hashing: driver not found")

	// ErrEmptyDriverName is returned by [Manager.RegisterDriver].
	ErrEmptyDriverName = errors.New("hashing: driver name must not be empty")

	// ErrNilHasher is returned by [Manager.RegisterDriver].
	ErrNilHasher = errors.New("hashing: hasher must not be nil")

	// ErrAlgorithmMismatch means a driver was handed another driver's hash.
	ErrAlgorithmMismatch = errors.New("hashing: hash was produced by a different algorithm")
)
