package bcrypt

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blowfish"
)

// keyWords is the number of 32-bit P-array entries the password is folded into.
const keyWords = 18

// keyMaterial folds password into the 18 words XORed into the P-array and
// returns them serialized as two 72-byte keys: the one used by the initial
// salted expansion and the one repeated inside the cost loop. Both are
// exactly MaxPasswordLen bytes so blowfish.ExpandKey consumes each word once.
//
// The password is read cyclically together with its terminating NUL, which
// limits the usable secret to its first 72 bytes.
func keyMaterial(password []byte, v Version) (initial, expanded []byte) {
	var correct, buggy [keyWords]uint32
	var sign, diff uint32

	pos := 0
	for i := range correct {
		var w, b uint32
		for j := 0; j < 4; j++ {
			var c byte
			if pos < len(password) {
				c = password[pos]
			}
			w = w<<8 | uint32(c)
			// crypt_blowfish before 1.1 sign-extended each byte.
			b = b<<8 | uint32(int32(int8(c)))
			if j > 0 {
				sign |= b & 0x80
			}
			if pos == len(password) {
				pos = 0
			} else {
				pos++
			}
		}
		diff |= w ^ b
		correct[i] = w
		buggy[i] = b
	}

	switch v {
	case Version2x:
		k := serializeWords(buggy)
		return k, k
	case Version2a:
		// Flip bit 16 of P[0] when the bug would have been triggered but
		// produced identical words, so such $2a$ hashes never collide with
		// the buggy ones.
		diff |= diff >> 16
		diff &= 0xffff
		diff += 0xffff
		sign <<= 9
		sign &^= diff
		sign &= 0x10000
		first := correct
		first[0] ^= sign
		return serializeWords(first), serializeWords(correct)
	default:
		k := serializeWords(correct)
		return k, k
	}
}

func serializeWords(words [keyWords]uint32) []byte {
	out := make([]byte, 4*keyWords)
	for i, w := range words {
		binary.BigEndian.PutUint32(out[4*i:], w)
	}
	return out
}

// expensiveBlowfishSetup runs the EksBlowfish key schedule: a salted key
// expansion followed by 2^cost alternating expansions with the password and
// the salt. The returned cipher belongs to the caller alone.
func expensiveBlowfishSetup(password []byte, v Version, cost int, salt []byte) (*blowfish.Cipher, error) {
	if err := checkCost(cost); err != nil {
		return nil, err
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSalt, len(salt), SaltSize)
	}

	initial, expanded := keyMaterial(password, v)
	c, err := blowfish.NewSaltedCipher(initial, salt)
	if err != nil {
		return nil, fmt.Errorf("bcrypt: key setup: %w", err)
	}

	rounds := uint64(1) << uint(cost)
	for i := uint64(0); i < rounds; i++ {
		blowfish.ExpandKey(expanded, c)
		blowfish.ExpandKey(salt, c)
	}
	return c, nil
}
