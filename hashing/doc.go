// Package hashing puts the bcrypt primitive behind a driver interface so
// applications can store, verify and migrate password hashes without caring
// which algorithm produced them.
//
// # Drivers
//
//   - [BcryptHasher] wraps package bcrypt and writes $2b$ (or $2y$) hashes.
//   - [Argon2Hasher] writes PHC-format Argon2i or Argon2id hashes, as a
//     migration target for deployments moving off bcrypt.
//
// # Manager
//
// A [Manager] holds named drivers and a default. [Manager.Check] picks the
// driver from the hash prefix, so hashes from several drivers can live in the
// same column:
//
//	m, err := hashing.NewManagerFromConfig(cfg, logger)
//	if err != nil { return err }
//
//	ok, err := m.Check(password, stored)
//	if ok {
//	    if stale, _ := m.NeedsRehash(stored); stale {
//	        fresh, _ := m.Make(password)
//	        save(fresh)
//	    }
//	}
//
// # Configuration
//
// [LoadConfig] reads HASH_DRIVER, BCRYPT_ROUNDS, BCRYPT_VERSION, ARGON_MEMORY,
// ARGON_TIME and ARGON_THREADS from the environment and optional .env files.
package hashing
