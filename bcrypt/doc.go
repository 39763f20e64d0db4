// Package bcrypt implements the bcrypt adaptive password hash.
//
// # Format
//
// A hash is 60 ASCII characters:
//
//	$2b$10$N9qo8uLOickgx2ZMRZoMye8fOsiTWZqYtkxvXkKm8BMzjT7t/vIdq
//	\__/\_/\____________________/\_____________________________/
//	 |   |          salt                      digest
//	 |   cost (two digits, 04–31)
//	 version
//
// Salt and digest use bcrypt's radix-64 alphabet ./A-Za-z0-9. The first 29
// characters form a salt string, accepted by [Hash] in place of a full hash.
//
// # Quick start
//
//	hash, err := bcrypt.HashWithCost("my-secret-password", bcrypt.DefaultCost)
//	if err != nil { log.Fatal(err) }
//
//	ok := bcrypt.Compare("my-secret-password", hash) // true
//
// Use [New] with [Options].Rand to inject a random source, for example a
// deterministic reader in tests.
//
// # Versions
//
// Generated salts are always $2b$. Decoding also accepts $2a$, $2x$ and $2y$,
// and hashing keeps the tag it was given:
//
//   - 2b, 2y: standard behaviour.
//   - 2a: standard behaviour plus the crypt_blowfish countermeasure for
//     passwords whose bytes ≥ 0x80 would have hit the sign-extension bug.
//   - 2x: reproduces that bug, for verifying hashes written by affected systems.
//
// # Limits
//
// Only the first 72 bytes of a password are used. Cost c performs 2^c
// iterations of the key schedule, so each increment doubles the work.
package bcrypt
