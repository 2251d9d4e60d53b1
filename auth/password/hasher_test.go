package password

import (
	"strings"
	"testing"
)

// testHasher keeps argon2 cheap enough for the test suite.
func testHasher() *Argon2Hasher {
	return NewArgon2Hasher(WithArgon2Memory(8 * 1024))
}

func TestArgon2_HashVerify_RoundTrip(t *testing.T) {
	h := testHasher()
	hash, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("expected argon2id encoding, got %q", hash)
	}
	if err := h.Verify("correct horse battery staple", hash); err != nil {
		t.Errorf("expected match, got %v", err)
	}
}

func TestArgon2_Hash_SaltedPerCall(t *testing.T) {
	h := testHasher()
	a, err := h.Hash("same input")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	b, err := h.Hash("same input")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if a == b {
		t.Error("repeated hashes of the same input must differ (random salt)")
	}
}

func TestArgon2_Verify_WrongPassword(t *testing.T) {
	h := testHasher()
	hash, err := h.Hash("right")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if err := h.Verify("wrong", hash); err != ErrMismatch {
		t.Errorf("expected ErrMismatch, got %v", err)
	}
}

func TestArgon2_TruncationSymmetry(t *testing.T) {
	h := testHasher()

	base := strings.Repeat("A", MaxPasswordBytes)
	hash, err := h.Hash(base)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	// Anything appended past the cap is ignored on verify too.
	if err := h.Verify(base+"ignored suffix", hash); err != nil {
		t.Errorf("suffix past %d bytes must not affect verification: %v", MaxPasswordBytes, err)
	}

	// And the long form hashes to something the short form verifies.
	longHash, err := h.Hash(base + "another tail")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if err := h.Verify(base, longHash); err != nil {
		t.Errorf("truncation must apply identically on hash and verify: %v", err)
	}
}

func TestArgon2_Verify_MalformedHash(t *testing.T) {
	h := testHasher()
	malformed := []string{
		"",
		"not a hash",
		"$argon2id$",
		"$argon2i$v=19$m=8192,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=8192,t=1,p=4$!!!$aGFzaA",
		"$argon2id$v=19$m=8192,t=1,p=4$c2FsdA$!!!",
		"$argon2id$v=19$garbage$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=8192,t=1,p=0$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=8192,t=0,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=4294967295,t=1,p=4$c2FsdA$aGFzaA",
	}
	for _, bad := range malformed {
		if err := h.Verify("anything", bad); err != ErrMismatch {
			t.Errorf("Verify(%q) = %v, want ErrMismatch", bad, err)
		}
	}
}

func TestBcrypt_HashVerify_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(WithCost(4))
	hash, err := h.Hash("hunter22")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if err := h.Verify("hunter22", hash); err != nil {
		t.Errorf("expected match, got %v", err)
	}
	if err := h.Verify("hunter23", hash); err != ErrMismatch {
		t.Errorf("expected ErrMismatch, got %v", err)
	}
}

func TestBcrypt_LongPasswordTruncated(t *testing.T) {
	h := NewBcryptHasher(WithCost(4))
	long := strings.Repeat("x", 200)
	hash, err := h.Hash(long)
	if err != nil {
		t.Fatalf("bcrypt must accept over-length input after truncation: %v", err)
	}
	if err := h.Verify(long, hash); err != nil {
		t.Errorf("expected match, got %v", err)
	}
	if err := h.Verify(long[:MaxPasswordBytes], hash); err != nil {
		t.Errorf("truncated form must verify too, got %v", err)
	}
}

func TestBcrypt_Verify_MalformedHash(t *testing.T) {
	h := NewBcryptHasher(WithCost(4))
	if err := h.Verify("anything", "not-a-bcrypt-hash"); err != ErrMismatch {
		t.Errorf("expected ErrMismatch, got %v", err)
	}
}

func TestNewHasher_FromConfig(t *testing.T) {
	cfg := Config{}
	if h, ok := NewHasher(cfg).(*Argon2Hasher); !ok || h == nil {
		t.Error("default algorithm should be argon2id")
	}

	cfg = Config{Algorithm: AlgorithmBcrypt, BcryptCost: 4}
	if h, ok := NewHasher(cfg).(*BcryptHasher); !ok || h == nil {
		t.Error("bcrypt algorithm should yield a BcryptHasher")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{Algorithm: "scrypt"}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unsupported algorithm")
	}

	cfg = Config{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}
