package cipher

import (
	"encoding/base64"
	"fmt"
	"io"
	"math/big"

	"github.com/RowanDark/cipherlab/internal/modmath"
)

const (
	rsaMinBits   = 64
	rsaDefaultE  = 65537
	rsaChunkTrim = 1 // bytes of headroom so every chunk is numerically < n
)

// RSAKey holds the modulus and both exponents of a keypair. It is immutable
// after construction.
type RSAKey struct {
	N *big.Int
	E *big.Int
	D *big.Int
}

func (k RSAKey) Describe() string { return fmt.Sprintf("%d-bit modulus, e=%v", k.N.BitLen(), k.E) }

// GenerateRSAKey produces a textbook RSA keypair: two random primes from rnd,
// n = p*q, phi = (p-1)(q-1), e = 65537, d = e^-1 mod phi. It fails with
// ErrWeakKey when p equals q or e shares a factor with phi, and bounds the
// requested size so untrusted callers cannot demand unbounded CPU.
func GenerateRSAKey(bits int, maxBits int, rnd io.Reader) (RSAKey, error) {
	if maxBits <= 0 {
		maxBits = 4096
	}
	if bits < rsaMinBits || bits > maxBits {
		return RSAKey{}, keyErr("rsa", ErrInvalidKeyLength, "modulus size %d outside [%d, %d]", bits, rsaMinBits, maxBits)
	}

	p, err := modmath.GeneratePrime(bits/2, rnd)
	if err != nil {
		return RSAKey{}, err
	}
	q, err := modmath.GeneratePrime(bits-bits/2, rnd)
	if err != nil {
		return RSAKey{}, err
	}
	return newRSAKey(p, q, big.NewInt(rsaDefaultE))
}

// newRSAKey derives a keypair from fixed primes. Split out so the weak-key
// branches are testable without a randomness source.
func newRSAKey(p, q, e *big.Int) (RSAKey, error) {
	if p.Cmp(q) == 0 {
		return RSAKey{}, keyErr("rsa", ErrWeakKey, "p equals q")
	}
	n := new(big.Int).Mul(p, q)
	one := big.NewInt(1)
	phi := new(big.Int).Mul(new(big.Int).Sub(p, one), new(big.Int).Sub(q, one))

	if g := new(big.Int).GCD(nil, nil, e, phi); g.Cmp(one) != 0 {
		return RSAKey{}, keyErr("rsa", ErrWeakKey, "gcd(e, phi) = %v, want 1", g)
	}
	d := new(big.Int).ModInverse(e, phi)
	if d == nil {
		return RSAKey{}, keyErr("rsa", ErrWeakKey, "e has no inverse mod phi")
	}
	return RSAKey{N: n, E: new(big.Int).Set(e), D: d}, nil
}

// rsaCipher performs textbook modular-exponentiation RSA over message chunks
// small enough to stay below the modulus. Deliberately unpadded: the point is
// the number theory, not semantic security.
type rsaCipher struct {
	base
	maxBits int
	rand    io.Reader
}

func newRSA(opts Options) *rsaCipher {
	return &rsaCipher{
		base: base{
			id:     "rsa",
			name:   "RSA",
			family: FamilyAsymmetric,
			description: "Rivest-Shamir-Adleman public-key encryption: c = m^e mod n " +
				"and m = c^d mod n over a modulus built from two secret primes.",
			keyHint: "n, e, d: decimal integers of a generated keypair",
		},
		maxBits: opts.RSAMaxBits,
		rand:    opts.Rand,
	}
}

// Generate builds a fresh keypair with this cipher's configured bounds and
// randomness source.
func (c *rsaCipher) Generate(bits int) (RSAKey, error) {
	return GenerateRSAKey(bits, c.maxBits, c.rand)
}

func (c *rsaCipher) ValidateKey(params Params) (Key, error) {
	n, err := paramBigInt(params, "n")
	if err != nil {
		return nil, err
	}
	e, err := paramBigInt(params, "e")
	if err != nil {
		return nil, err
	}
	d, err := paramBigInt(params, "d")
	if err != nil {
		return nil, err
	}
	if n.BitLen() < rsaMinBits {
		return nil, keyErr(c.id, ErrWeakKey, "modulus is only %d bits", n.BitLen())
	}
	if n.BitLen() > c.maxBits {
		return nil, keyErr(c.id, ErrInvalidKeyLength, "modulus is %d bits, ceiling is %d", n.BitLen(), c.maxBits)
	}
	return RSAKey{N: n, E: e, D: d}, nil
}

func paramBigInt(params Params, name string) (*big.Int, error) {
	s, err := params.String(name)
	if err != nil {
		return nil, err
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("parameter %q is not a decimal integer", name)
	}
	return v, nil
}

func (c *rsaCipher) Encrypt(text string, key Key) (*Result, error) {
	k, ok := key.(RSAKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}

	chunkSize := (k.N.BitLen()-1)/8 - rsaChunkTrim
	if chunkSize < 1 {
		chunkSize = 1
	}
	data := []byte(text)

	var out []byte
	for i := 0; i < len(data); i += chunkSize {
		end := min(i+chunkSize, len(data))
		m := new(big.Int).SetBytes(data[i:end])
		if m.Cmp(k.N) >= 0 {
			return nil, fmt.Errorf("%w: message chunk is not below the modulus", ErrInvalidInput)
		}
		ct := modmath.ModExp(m, k.E, k.N)
		out = appendChunk(out, end-i, ct.Bytes())
	}
	// Empty input still produces one (empty) chunk so decryption is total.
	if len(data) == 0 {
		out = appendChunk(out, 0, nil)
	}

	return &Result{
		Algorithm: c.id,
		Input:     text,
		Output:    base64.StdEncoding.EncodeToString(out),
		Key:       k.Describe(),
	}, nil
}

func (c *rsaCipher) Decrypt(text string, key Key) (*Result, error) {
	k, ok := key.(RSAKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	data, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: ciphertext must be base64: %v", ErrInvalidInput, err)
	}

	var out []byte
	for i := 0; i < len(data); {
		if i+4 > len(data) {
			return nil, fmt.Errorf("%w: truncated chunk header", ErrInvalidInput)
		}
		width := int(data[i])<<8 | int(data[i+1])
		length := int(data[i+2])<<8 | int(data[i+3])
		i += 4
		if i+length > len(data) {
			return nil, fmt.Errorf("%w: truncated chunk body", ErrInvalidInput)
		}
		ct := new(big.Int).SetBytes(data[i : i+length])
		i += length
		if ct.Cmp(k.N) >= 0 {
			return nil, fmt.Errorf("%w: ciphertext chunk is not below the modulus", ErrInvalidInput)
		}
		m := modmath.ModExp(ct, k.D, k.N)
		if m.BitLen() > 8*width {
			return nil, fmt.Errorf("%w: plaintext chunk overflows its recorded width", ErrInvalidInput)
		}
		buf := make([]byte, width)
		m.FillBytes(buf)
		out = append(out, buf...)
	}

	return &Result{Algorithm: c.id, Input: text, Output: string(out), Key: k.Describe()}, nil
}

// appendChunk writes the plaintext chunk width and the ciphertext length, each
// as a big-endian 16-bit prefix, followed by the ciphertext bytes. The width
// is carried because big.Int drops leading zero bytes of a chunk and decrypt
// must restore them.
func appendChunk(dst []byte, width int, chunk []byte) []byte {
	dst = append(dst, byte(width>>8), byte(width))
	dst = append(dst, byte(len(chunk)>>8), byte(len(chunk)))
	return append(dst, chunk...)
}
