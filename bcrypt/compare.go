package bcrypt

import "crypto/subtle"

// dummySalt keys the throwaway computation performed when a stored hash
// cannot be decoded.
var dummySalt = Salt{
	Version: Version2b,
	Bytes:   [SaltSize]byte{0x3f, 0xfb, 0x2a, 0xfb, 0x03, 0x50, 0x91, 0xe9, 0xa2, 0xcf, 0x86, 0xce, 0x4d, 0xba, 0x8e, 0xd2},
}

// verify recomputes the hash of password with the parameters embedded in
// stored and compares the digests in constant time. The salt text itself is
// not compared, so a stored salt whose last character carries stray low bits
// still verifies.
//
// A stored value that does not decode still costs one key schedule at
// dummyCost before ErrInvalidHash is returned.
func verify(password []byte, stored string, dummyCost int) error {
	d, err := DecodeHash(stored)
	if err != nil {
		burn(password, dummyCost)
		return err
	}
	computed, err := hashSalt(password, d.Salt)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(computed[SaltLen:]), []byte(d.Digest)) != 1 {
		return ErrMismatchedHashAndPassword
	}
	return nil
}

func burn(password []byte, cost int) {
	s := dummySalt
	s.Cost = cost
	_, _ = digest(password, s)
}

// GetRounds returns the cost encoded in a complete bcrypt hash.
// Bare salts and anything else that is not a 60-character hash yield
// [ErrInvalidHash].
func GetRounds(hash string) (int, error) {
	d, err := DecodeHash(hash)
	if err != nil {
		return 0, err
	}
	return d.Cost, nil
}
