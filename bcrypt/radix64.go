package bcrypt

import "encoding/base64"

// alphabet is bcrypt's radix-64 alphabet. The bit packing is the same as
// RFC 4648 base64; only the symbol order differs.
const alphabet = "./ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

var radix64 = base64.NewEncoding(alphabet).WithPadding(base64.NoPadding)

// decodeTable maps a byte to its 6-bit value, or 0xFF when the byte is not
// part of the alphabet.
var decodeTable = func() (t [256]byte) {
	for i := range t {
		t[i] = 0xFF
	}
	for i := 0; i < len(alphabet); i++ {
		t[alphabet[i]] = byte(i)
	}
	return t
}()

// encodeRadix64 encodes src without padding. 16 bytes yield 22 characters and
// 23 bytes yield 31; the final character carries only the leftover bits.
func encodeRadix64(src []byte) []byte {
	dst := make([]byte, radix64.EncodedLen(len(src)))
	radix64.Encode(dst, src)
	return dst
}

// decodeRadix64 is the inverse of encodeRadix64. Spare low bits in the final
// character are ignored, so non-canonical encodings decode to the same bytes.
func decodeRadix64(src []byte) ([]byte, error) {
	if !validRadix64(src) {
		return nil, ErrMalformedSalt
	}
	dst := make([]byte, radix64.DecodedLen(len(src)))
	n, err := radix64.Decode(dst, src)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

// validRadix64 reports whether every byte of s belongs to the alphabet.
// encoding/base64 silently skips CR and LF, which bcrypt must reject.
func validRadix64(s []byte) bool {
	for _, c := range s {
		if decodeTable[c] == 0xFF {
			return false
		}
	}
	return true
}
