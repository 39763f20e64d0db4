package hashing_test

import (
	"bytes"
	"fmt"
	"log"

	"github.com/hasbyte1/go-bcrypt/bcrypt"
	"github.com/hasbyte1/go-bcrypt/hashing"
)

func Example_defaultManager() {
	m, err := hashing.NewDefaultManager(nil)
	if err != nil {
		log.Fatal(err)
	}
	// Keep the example fast.
	h, _ := hashing.NewBcryptHasher(hashing.BcryptOptions{Cost: bcrypt.MinCost})
	_ = m.RegisterDriver(hashing.DriverBcrypt, h)

	hash, err := m.Make("my-secret-password")
	if err != nil {
		log.Fatal(err)
	}
	ok, err := m.Check("my-secret-password", hash)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(ok)
	// Output: true
}

// Example_php shows $2y$ output as written by PHP's password_hash.
func Example_php() {
	h, err := hashing.NewBcryptHasher(hashing.BcryptOptions{
		Cost:    bcrypt.MinCost,
		Version: bcrypt.Version2y,
		Rand:    bytes.NewReader(make([]byte, bcrypt.SaltSize)),
	})
	if err != nil {
		log.Fatal(err)
	}
	hash, _ := h.Make("hunter2")
	fmt.Println(hash)
	// Output: $2y$04$......................kqsx/caaQ2ooGaGUPBIUMKYjFvRA7Wi
}

func Example_rehashOnLogin() {
	m, err := hashing.NewManagerFromConfig(hashing.Config{
		Driver: hashing.DriverBcrypt,
		Bcrypt: hashing.BcryptOptions{Cost: 5},
		Argon:  hashing.DefaultArgon2Options(),
	}, nil)
	if err != nil {
		log.Fatal(err)
	}

	stored := "$2b$04$......................kqsx/caaQ2ooGaGUPBIUMKYjFvRA7Wi"
	ok, _ := m.Check("hunter2", stored)
	stale, _ := m.NeedsRehash(stored)
	fmt.Println(ok, stale)

	if ok && stale {
		stored, _ = m.Make("hunter2")
	}
	stale, _ = m.NeedsRehash(stored)
	fmt.Println(stored[:7], stale)
	// Output:
	// true true
	// $2b$05$ false
}

func Example_hashInfo() {
	m, err := hashing.NewDefaultManager(nil)
	if err != nil {
		log.Fatal(err)
	}
	i, _ := m.Info("$2b$10$N9qo8uLOickgx2ZMRZoMye8fOsiTWZqYtkxvXkKm8BMzjT7t/vIdq")
	fmt.Println(i.Driver, i.Params["version"], i.Params["cost"])
	// Output: bcrypt 2b 10
}

func ExampleDetectDriver() {
	for _, h := range []string{
		"$2a$10$N9qo8uLOickgx2ZMRZoMye8fOsiTWZqYtkxvXkKm8BMzjT7t/vIdq",
		"$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"5f4dcc3b5aa765d61d8327deb882cf99",
	} {
		d, ok := hashing.DetectDriver(h)
		fmt.Printf("%q %v\n", d, ok)
	}
	// Output:
	// "bcrypt" true
	// "argon2id" true
	// "" false
}
