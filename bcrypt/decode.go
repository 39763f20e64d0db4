package bcrypt

import "fmt"

// Decoded is a parsed salt or hash string.
type Decoded struct {
	Salt

	// Digest holds the 31 encoded digest characters, or "" for a bare salt.
	Digest string
}

// IsHash reports whether d was decoded from a complete hash.
func (d *Decoded) IsHash() bool { return d.Digest != "" }

// DecodeSalt parses either a 29-character salt or a 60-character hash:
//
//	$2b$10$N9qo8uLOickgx2ZMRZoMye
//	$2b$10$N9qo8uLOickgx2ZMRZoMye8fOsiTWZqYtkxvXkKm8BMzjT7t/vIdq
//
// The version must be 2a, 2b, 2x or 2y, the cost exactly two digits in
// [MinCost, MaxCost], and the remaining characters from the bcrypt alphabet.
// Any violation returns [ErrMalformedSalt].
func DecodeSalt(s string) (*Decoded, error) {
	return decode(s, false, ErrMalformedSalt)
}

// DecodeHash is like [DecodeSalt] but only accepts complete hashes and
// reports failures as [ErrInvalidHash].
func DecodeHash(s string) (*Decoded, error) {
	return decode(s, true, ErrInvalidHash)
}

func decode(s string, hashOnly bool, sentinel error) (*Decoded, error) {
	if len(s) < headerLen {
		return nil, fmt.Errorf("%w: too short", sentinel)
	}
	if s[0] != '$' || s[3] != '$' || s[6] != '$' {
		return nil, fmt.Errorf("%w: missing separators", sentinel)
	}

	d := &Decoded{}
	d.Version = Version(s[1:3])
	if !d.Version.Valid() {
		return nil, fmt.Errorf("%w: unknown version %q", sentinel, s[1:3])
	}

	hi, lo := s[4], s[5]
	if hi < '0' || hi > '9' || lo < '0' || lo > '9' {
		return nil, fmt.Errorf("%w: cost %q is not two digits", sentinel, s[4:6])
	}
	d.Cost = int(hi-'0')*10 + int(lo-'0')
	if d.Cost < MinCost || d.Cost > MaxCost {
		return nil, fmt.Errorf("%w: cost %d is outside [%d, %d]", sentinel, d.Cost, MinCost, MaxCost)
	}

	body := s[headerLen:]
	switch {
	case len(body) == EncodedSaltSize+EncodedDigestSize:
	case len(body) == EncodedSaltSize && !hashOnly:
	default:
		return nil, fmt.Errorf("%w: unexpected length %d", sentinel, len(s))
	}
	if !validRadix64([]byte(body)) {
		return nil, fmt.Errorf("%w: invalid character", sentinel)
	}

	raw, err := decodeRadix64([]byte(body[:EncodedSaltSize]))
	if err != nil || len(raw) != SaltSize {
		return nil, fmt.Errorf("%w: undecodable salt", sentinel)
	}
	copy(d.Bytes[:], raw)
	d.Digest = body[EncodedSaltSize:]
	return d, nil
}
