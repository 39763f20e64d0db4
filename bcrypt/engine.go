package bcrypt

import "golang.org/x/crypto/blowfish"

// magicCipherData is the 192-bit plaintext encrypted by every bcrypt hash.
var magicCipherData = []byte("OrpheanBeholderScryDoubt")

// encryptRounds is fixed by the algorithm and independent of the cost.
const encryptRounds = 64

// digest derives the key schedule for (password, s) and returns the
// radix-64 encoding of the first 23 bytes of the encrypted magic text.
func digest(password []byte, s Salt) ([]byte, error) {
	c, err := expensiveBlowfishSetup(password, s.Version, s.Cost, s.Bytes[:])
	if err != nil {
		return nil, err
	}

	cipherData := make([]byte, len(magicCipherData))
	copy(cipherData, magicCipherData)
	for i := 0; i < len(cipherData); i += blowfish.BlockSize {
		block := cipherData[i : i+blowfish.BlockSize]
		for j := 0; j < encryptRounds; j++ {
			c.Encrypt(block, block)
		}
	}
	return encodeRadix64(cipherData[:DigestSize]), nil
}

func hashSalt(password []byte, s Salt) (string, error) {
	d, err := digest(password, s)
	if err != nil {
		return "", err
	}
	return s.String() + string(d), nil
}

// HashBytes computes the bcrypt hash of password with the salt and cost
// embedded in salt, which may be a bare salt or a complete hash. The output
// is deterministic and keeps the version tag of salt.
//
// Returns [ErrMalformedSalt] when salt cannot be decoded.
func HashBytes(password []byte, salt string) (string, error) {
	d, err := DecodeSalt(salt)
	if err != nil {
		return "", err
	}
	return hashSalt(password, d.Salt)
}
