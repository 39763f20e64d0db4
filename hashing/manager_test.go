package hashing_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/hasbyte1/go-bcrypt/bcrypt"
	"github.com/hasbyte1/go-bcrypt/hashing"
)

// newTestManager registers all built-in drivers with fast parameters and
// bcrypt as the default.
func newTestManager(tb testing.TB, logger *slog.Logger) *hashing.Manager {
	tb.Helper()
	m, err := hashing.NewManagerFromConfig(hashing.Config{
		Driver: hashing.DriverBcrypt,
		Bcrypt: hashing.BcryptOptions{Cost: bcrypt.MinCost},
		Argon:  fastArgon2Opts(),
	}, logger)
	if err != nil {
		tb.Fatalf("NewManagerFromConfig: %v", err)
	}
	return m
}

func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), &buf
}

// ──────────────────────────────────────────────────────────────────────────────
// Construction and registry
// ──────────────────────────────────────────────────────────────────────────────

func TestNewDefaultManager(t *testing.T) {
	m, err := hashing.NewDefaultManager(nil)
	if err != nil {
		t.Fatalf("NewDefaultManager: %v", err)
	}
	if m.DefaultDriver() != hashing.DriverBcrypt {
		t.Errorf("default driver = %q, want bcrypt", m.DefaultDriver())
	}
	for _, d := range []hashing.DriverName{hashing.DriverBcrypt, hashing.DriverArgon2i, hashing.DriverArgon2id} {
		if !m.HasDriver(d) {
			t.Errorf("driver %q not registered", d)
		}
	}
}

func TestManager_RegisterDriver_Errors(t *testing.T) {
	m := hashing.NewManager(hashing.DriverBcrypt, nil)
	h := newTestBcryptHasher(t)
	if err := m.RegisterDriver("", h); !errors.Is(err, hashing.ErrEmptyDriverName) {
		t.Errorf("empty name: got %v", err)
	}
	if err := m.RegisterDriver("x", nil); !errors.Is(err, hashing.ErrNilHasher) {
		t.Errorf("nil hasher: got %v", err)
	}
}

func TestManager_RegisterDriver_Replace(t *testing.T) {
	m := newTestManager(t, nil)
	h, _ := hashing.NewBcryptHasher(hashing.BcryptOptions{Cost: 5})
	if err := m.RegisterDriver(hashing.DriverBcrypt, h); err != nil {
		t.Fatal(err)
	}
	got, err := m.Driver(hashing.DriverBcrypt)
	if err != nil {
		t.Fatal(err)
	}
	if got.(*hashing.BcryptHasher).Cost() != 5 {
		t.Error("driver was not replaced")
	}
}

func TestManager_Driver_NotFound(t *testing.T) {
	m := hashing.NewManager(hashing.DriverBcrypt, nil)
	if _, err := m.Driver("nope"); !errors.Is(err, hashing.ErrDriverNotFound) {
		t.Errorf("got %v", err)
	}
}

func TestManager_SetDefaultDriver(t *testing.T) {
	m := newTestManager(t, nil)
	if err := m.SetDefaultDriver(hashing.DriverArgon2id); err != nil {
		t.Fatal(err)
	}
	if m.DefaultDriver() != hashing.DriverArgon2id {
		t.Errorf("default = %q", m.DefaultDriver())
	}
	if err := m.SetDefaultDriver("nope"); !errors.Is(err, hashing.ErrDriverNotFound) {
		t.Errorf("unregistered: got %v", err)
	}
	if m.DefaultDriver() != hashing.DriverArgon2id {
		t.Error("failed SetDefaultDriver changed the default")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Make / Check
// ──────────────────────────────────────────────────────────────────────────────

func TestManager_Make_UsesDefault(t *testing.T) {
	m := newTestManager(t, nil)
	hash, err := m.Make("pw")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(hash, "$2b$04$") {
		t.Errorf("hash %q is not default bcrypt", hash)
	}
}

func TestManager_Make_NoDefault(t *testing.T) {
	m := hashing.NewManager(hashing.DriverArgon2id, nil)
	if _, err := m.Make("pw"); !errors.Is(err, hashing.ErrDriverNotFound) {
		t.Errorf("got %v", err)
	}
}

func TestManager_Check_DetectsDriver(t *testing.T) {
	m := newTestManager(t, nil)
	for _, d := range []hashing.DriverName{hashing.DriverBcrypt, hashing.DriverArgon2i, hashing.DriverArgon2id} {
		h, _ := m.Driver(d)
		hash, err := h.Make("pw")
		if err != nil {
			t.Fatal(err)
		}
		if ok, err := m.Check("pw", hash); err != nil || !ok {
			t.Errorf("%s: Check(correct) = %v, %v", d, ok, err)
		}
		if ok, err := m.Check("wrong", hash); err != nil || ok {
			t.Errorf("%s: Check(wrong) = %v, %v", d, ok, err)
		}
	}
}

func TestManager_Check_LogsMalformedHash(t *testing.T) {
	logger, buf := newBufferLogger()
	m := newTestManager(t, logger)

	_, err := m.Check("pw", "$2b$04$truncated")
	if !errors.Is(err, hashing.ErrInvalidHash) {
		t.Fatalf("got %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "malformed stored hash") || !strings.Contains(out, "driver=bcrypt") {
		t.Errorf("log output = %q", out)
	}

	buf.Reset()
	if _, err := m.Check("pw", "plaintext"); !errors.Is(err, hashing.ErrInvalidHash) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(buf.String(), "unrecognised stored hash") {
		t.Errorf("log output = %q", buf.String())
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// NeedsRehash / Info
// ──────────────────────────────────────────────────────────────────────────────

func TestManager_NeedsRehash(t *testing.T) {
	logger, buf := newBufferLogger()
	m := newTestManager(t, logger)

	current, _ := m.Make("pw")
	if stale, err := m.NeedsRehash(current); err != nil || stale {
		t.Errorf("current hash: %v, %v", stale, err)
	}

	old := "$2b$10$N9qo8uLOickgx2ZMRZoMye8fOsiTWZqYtkxvXkKm8BMzjT7t/vIdq"
	if stale, err := m.NeedsRehash(old); err != nil || !stale {
		t.Errorf("cost 10 hash: %v, %v", stale, err)
	}

	a2, _ := m.Driver(hashing.DriverArgon2id)
	foreign, _ := a2.Make("pw")
	if stale, err := m.NeedsRehash(foreign); err != nil || !stale {
		t.Errorf("argon2id hash: %v, %v", stale, err)
	}
	if !strings.Contains(buf.String(), "from=argon2id") {
		t.Errorf("log output = %q", buf.String())
	}

	if _, err := m.NeedsRehash("plaintext"); !errors.Is(err, hashing.ErrInvalidHash) {
		t.Errorf("plaintext: got %v", err)
	}
}

func TestManager_Info(t *testing.T) {
	m := newTestManager(t, nil)
	info, err := m.Info("$2y$06$abcdefghijklmnopqrstuu10cNU3mXRamSUZYs8I8M/Szu..qXq5K")
	if err != nil {
		t.Fatal(err)
	}
	if info.Driver != hashing.DriverBcrypt || info.Params["cost"] != 6 || info.Params["version"] != "2y" {
		t.Errorf("got %+v", info)
	}
	if _, err := m.Info("nope"); !errors.Is(err, hashing.ErrInvalidHash) {
		t.Errorf("unknown: got %v", err)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Migration and concurrency
// ──────────────────────────────────────────────────────────────────────────────

func TestManager_Migration_BcryptToArgon2id(t *testing.T) {
	m := newTestManager(t, nil)
	legacy, _ := m.Make("s3cret")

	if err := m.SetDefaultDriver(hashing.DriverArgon2id); err != nil {
		t.Fatal(err)
	}

	ok, err := m.Check("s3cret", legacy)
	if err != nil || !ok {
		t.Fatalf("legacy hash no longer verifies: %v, %v", ok, err)
	}
	stale, _ := m.NeedsRehash(legacy)
	if !stale {
		t.Fatal("legacy bcrypt hash should need rehash")
	}
	fresh, err := m.Make("s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if d, _ := hashing.DetectDriver(fresh); d != hashing.DriverArgon2id {
		t.Errorf("fresh hash driver = %q", d)
	}
	if stale, _ := m.NeedsRehash(fresh); stale {
		t.Error("fresh hash should not need rehash")
	}
}

func TestManager_Concurrent(t *testing.T) {
	m := newTestManager(t, nil)
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			hash, err := m.Make("pw")
			if err != nil {
				errs <- err
				return
			}
			if ok, err := m.Check("pw", hash); err != nil || !ok {
				errs <- errors.New("round trip failed")
			}
		}()
		go func() {
			defer wg.Done()
			h, _ := hashing.NewBcryptHasher(hashing.BcryptOptions{Cost: bcrypt.MinCost})
			_ = m.RegisterDriver(hashing.DriverBcrypt, h)
			_ = m.HasDriver(hashing.DriverArgon2i)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
