package cipher

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
)

// NoKey is the validated "key" of the keyless families.
type NoKey struct{}

func (NoKey) Describe() string { return "none" }

// digestCipher wraps a one-way hash function. Encrypt computes the uppercase
// hex digest; Decrypt always fails with ErrNotReversible.
type digestCipher struct {
	base
	sum func([]byte) []byte
}

func newDigest(id, name, description string, sum func([]byte) []byte) *digestCipher {
	return &digestCipher{
		base: base{
			id:          id,
			name:        name,
			family:      FamilyHash,
			description: description,
			keyHint:     "no key",
		},
		sum: sum,
	}
}

func newMD5() *digestCipher {
	return newDigest("md5", "MD5",
		"128-bit digest from 1992. Collisions are trivial today; shown for history.",
		func(data []byte) []byte { h := md5.Sum(data); return h[:] })
}

func newSHA1() *digestCipher {
	return newDigest("sha1", "SHA-1",
		"160-bit digest. Collision-broken since 2017, still common in legacy systems.",
		func(data []byte) []byte { h := sha1.Sum(data); return h[:] })
}

func newSHA256() *digestCipher {
	return newDigest("sha256", "SHA-256",
		"256-bit member of the SHA-2 family, the current general-purpose default.",
		func(data []byte) []byte { h := sha256.Sum256(data); return h[:] })
}

func newSHA512() *digestCipher {
	return newDigest("sha512", "SHA-512",
		"512-bit member of the SHA-2 family.",
		func(data []byte) []byte { h := sha512.Sum512(data); return h[:] })
}

func newBLAKE2b() *digestCipher {
	return newDigest("blake2b", "BLAKE2b",
		"Fast 256-bit BLAKE2b digest, a modern SHA-2 alternative.",
		func(data []byte) []byte { h := blake2b.Sum256(data); return h[:] })
}

func newBLAKE2s() *digestCipher {
	return newDigest("blake2s", "BLAKE2s",
		"BLAKE2 variant optimized for 32-bit platforms, 256-bit digest.",
		func(data []byte) []byte { h := blake2s.Sum256(data); return h[:] })
}

func (c *digestCipher) ValidateKey(params Params) (Key, error) {
	// Hashes take no key; any provided parameters are ignored.
	_ = params
	return NoKey{}, nil
}

func (c *digestCipher) Encrypt(text string, key Key) (*Result, error) {
	if _, ok := key.(NoKey); !ok {
		return nil, wrongKeyType(c.id, key)
	}
	digest := strings.ToUpper(hex.EncodeToString(c.sum([]byte(text))))
	return &Result{Algorithm: c.id, Input: text, Output: digest, Key: "none"}, nil
}

func (c *digestCipher) Decrypt(text string, key Key) (*Result, error) {
	_ = text
	_ = key
	return nil, fmt.Errorf("%s: %w", c.id, ErrNotReversible)
}
