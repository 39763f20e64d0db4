package bcrypt

import "errors"

// Sentinel errors returned by bcrypt operations.
//
// Use [errors.Is] for comparisons:
//
//	_, err := bcrypt.GetRounds(stored)
//	if errors.Is(err, bcrypt.ErrInvalidHash) {
//	    // stored value is not a bcrypt hash
//	}
var (
	// ErrInvalidCost is returned when a cost factor falls outside
	// [MinCost, MaxCost], or is negative where clamping applies.
	ErrInvalidCost = errors.New("bcrypt: invalid cost")

	// ErrMalformedSalt is returned by [DecodeSalt] and the hashing functions
	// when a salt string does not have the $Vers$log2(NumRounds)$saltvalue form.
	ErrMalformedSalt = errors.New("bcrypt: salt must be of the form: $Vers$log2(NumRounds)$saltvalue")

	// ErrInvalidHash is returned by [DecodeHash], [GetRounds] and [Verify] when
	// a string is not a complete 60-character bcrypt hash.
	ErrInvalidHash = errors.New("bcrypt: invalid hash provided")

	// ErrInvalidSalt is returned by [EncodeSalt] when the raw salt is not
	// exactly SaltSize bytes or the version tag is unknown.
	ErrInvalidSalt = errors.New("bcrypt: invalid salt")

	// ErrInvalidSeed is returned by [GenerateSaltFromSeed] when the seed is not
	// exactly SaltSize bytes.
	ErrInvalidSeed = errors.New("bcrypt: seed must be a 16 byte buffer")

	// ErrMismatchedHashAndPassword is returned by [Verify] when the password
	// does not match a well-formed hash.
	ErrMismatchedHashAndPassword = errors.New("bcrypt: hashed password is not the hash of the given password")

	// ErrRandomSource is returned when the configured random reader fails to
	// supply SaltSize bytes.
	ErrRandomSource = errors.New("bcrypt: random source failed")
)
