package cipher

import (
	"fmt"

	"github.com/RowanDark/cipherlab/internal/alphabet"
	"github.com/RowanDark/cipherlab/internal/modmath"
)

// ShiftKey is the validated key for the shift ciphers. The shift is already
// normalized into [0, n).
type ShiftKey struct {
	Shift int
}

func (k ShiftKey) Describe() string { return fmt.Sprintf("shift=%d", k.Shift) }

// MultiplierKey is the validated key for the multiplicative cipher. The
// inverse is computed once at validation time.
type MultiplierKey struct {
	A    int
	AInv int
}

func (k MultiplierKey) Describe() string { return fmt.Sprintf("a=%d", k.A) }

// AffineKey is the validated key pair for the affine cipher.
type AffineKey struct {
	A    int
	B    int
	AInv int
}

func (k AffineKey) Describe() string { return fmt.Sprintf("a=%d b=%d", k.A, k.B) }

// caesarCipher shifts each letter by a fixed amount, preserving case.
type caesarCipher struct {
	letterCipher
}

func newCaesar(opts Options) *caesarCipher {
	return &caesarCipher{letterCipher{
		base: base{
			id:     "caesar",
			name:   "Caesar Cipher",
			family: FamilySubstitution,
			description: "Shifts each letter by a fixed number of positions in the " +
				"alphabet. Named after Julius Caesar, who used it for military dispatches.",
			keyHint: "shift: any integer (reduced modulo the alphabet size)",
		},
		alpha:  alphabet.Upper(),
		policy: opts.Policy,
	}}
}

func (c *caesarCipher) ValidateKey(params Params) (Key, error) {
	shift, err := params.Int("shift")
	if err != nil {
		return nil, err
	}
	// Any integer is a valid shift; arithmetic is modulo the alphabet size.
	return ShiftKey{Shift: modmath.Mod(shift, c.alpha.Len())}, nil
}

func (c *caesarCipher) Encrypt(text string, key Key) (*Result, error) {
	k, ok := key.(ShiftKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	return c.shiftBy(text, k, k.Shift)
}

func (c *caesarCipher) Decrypt(text string, key Key) (*Result, error) {
	k, ok := key.(ShiftKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	return c.shiftBy(text, k, c.alpha.Len()-k.Shift)
}

func (c *caesarCipher) shiftBy(text string, k ShiftKey, shift int) (*Result, error) {
	var tr trace
	tr.addf("E(x) = (x + %d) mod %d", shift, c.alpha.Len())
	out, err := c.mapLetters(text, true, func(idx, _ int) int {
		tr.addf("%c (%d) -> %c (%d)", c.alpha.Rune(idx), idx, c.alpha.Rune(idx+shift), modmath.Mod(idx+shift, c.alpha.Len()))
		return idx + shift
	})
	if err != nil {
		return nil, err
	}
	return &Result{Algorithm: c.id, Input: text, Output: out, Key: k.Describe(), Steps: tr.list()}, nil
}

// additiveCipher is the textbook E(x) = (x + k) mod n presentation of the
// shift cipher. Kept separate from Caesar so the two formulations can be
// compared side by side.
type additiveCipher struct {
	letterCipher
}

func newAdditive(opts Options) *additiveCipher {
	return &additiveCipher{letterCipher{
		base: base{
			id:     "additive",
			name:   "Additive Cipher",
			family: FamilySubstitution,
			description: "Adds a constant key to each letter position modulo the " +
				"alphabet size: E(x) = (x + k) mod n. Mathematically the same as Caesar.",
			keyHint: "shift: any integer (reduced modulo the alphabet size)",
		},
		alpha:  alphabet.Upper(),
		policy: opts.Policy,
	}}
}

func (c *additiveCipher) ValidateKey(params Params) (Key, error) {
	shift, err := params.Int("shift")
	if err != nil {
		return nil, err
	}
	return ShiftKey{Shift: modmath.Mod(shift, c.alpha.Len())}, nil
}

func (c *additiveCipher) Encrypt(text string, key Key) (*Result, error) {
	k, ok := key.(ShiftKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	out, err := c.mapLetters(text, true, func(idx, _ int) int { return idx + k.Shift })
	if err != nil {
		return nil, err
	}
	return &Result{Algorithm: c.id, Input: text, Output: out, Key: k.Describe()}, nil
}

func (c *additiveCipher) Decrypt(text string, key Key) (*Result, error) {
	k, ok := key.(ShiftKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	out, err := c.mapLetters(text, true, func(idx, _ int) int { return idx - k.Shift })
	if err != nil {
		return nil, err
	}
	return &Result{Algorithm: c.id, Input: text, Output: out, Key: k.Describe()}, nil
}

// multiplicativeCipher computes E(x) = (a * x) mod n. The multiplier must be
// coprime to the alphabet size so that decryption exists.
type multiplicativeCipher struct {
	letterCipher
}

func newMultiplicative(opts Options) *multiplicativeCipher {
	return &multiplicativeCipher{letterCipher{
		base: base{
			id:     "multiplicative",
			name:   "Multiplicative Cipher",
			family: FamilySubstitution,
			description: "Multiplies each letter position by a key modulo the alphabet " +
				"size. The key must be coprime with the alphabet size so the transform inverts.",
			keyHint: "a: integer coprime with 26 (1,3,5,7,9,11,15,17,19,21,23,25)",
		},
		alpha:  alphabet.Upper(),
		policy: opts.Policy,
	}}
}

func (c *multiplicativeCipher) ValidateKey(params Params) (Key, error) {
	a, err := params.Int("a")
	if err != nil {
		return nil, err
	}
	n := c.alpha.Len()
	if modmath.GCD(a, n) != 1 {
		return nil, keyErr(c.id, ErrNonInvertibleMultiplier, "a=%d, gcd(a, %d) != 1", a, n)
	}
	aInv, err := modmath.ModInverse(a, n)
	if err != nil {
		return nil, keyErr(c.id, ErrNonInvertibleMultiplier, "a=%d: %v", a, err)
	}
	return MultiplierKey{A: modmath.Mod(a, n), AInv: aInv}, nil
}

func (c *multiplicativeCipher) Encrypt(text string, key Key) (*Result, error) {
	k, ok := key.(MultiplierKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	var tr trace
	tr.addf("E(x) = (%d * x) mod %d", k.A, c.alpha.Len())
	out, err := c.mapLetters(text, false, func(idx, _ int) int {
		enc := modmath.Mod(k.A*idx, c.alpha.Len())
		tr.addf("%c (%d): %d*%d mod %d = %d -> %c", c.alpha.Rune(idx), idx, k.A, idx, c.alpha.Len(), enc, c.alpha.Rune(enc))
		return enc
	})
	if err != nil {
		return nil, err
	}
	return &Result{Algorithm: c.id, Input: text, Output: out, Key: k.Describe(), Steps: tr.list()}, nil
}

func (c *multiplicativeCipher) Decrypt(text string, key Key) (*Result, error) {
	k, ok := key.(MultiplierKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	out, err := c.mapLetters(text, false, func(idx, _ int) int { return k.AInv * idx })
	if err != nil {
		return nil, err
	}
	return &Result{Algorithm: c.id, Input: text, Output: out, Key: k.Describe()}, nil
}

// affineCipher combines the multiplicative and additive ciphers:
// E(x) = (a*x + b) mod n.
type affineCipher struct {
	letterCipher
}

func newAffine(opts Options) *affineCipher {
	return &affineCipher{letterCipher{
		base: base{
			id:     "affine",
			name:   "Affine Cipher",
			family: FamilySubstitution,
			description: "Encrypts with E(x) = (a*x + b) mod n, combining a " +
				"multiplicative and an additive step. 'a' must be coprime with n.",
			keyHint: "a: integer coprime with 26, b: any integer",
		},
		alpha:  alphabet.Upper(),
		policy: opts.Policy,
	}}
}

func (c *affineCipher) ValidateKey(params Params) (Key, error) {
	a, err := params.Int("a")
	if err != nil {
		return nil, err
	}
	b, err := params.Int("b")
	if err != nil {
		return nil, err
	}
	n := c.alpha.Len()
	if modmath.GCD(a, n) != 1 {
		return nil, keyErr(c.id, ErrNonInvertibleMultiplier, "a=%d, gcd(a, %d) != 1", a, n)
	}
	aInv, err := modmath.ModInverse(a, n)
	if err != nil {
		return nil, keyErr(c.id, ErrNonInvertibleMultiplier, "a=%d: %v", a, err)
	}
	return AffineKey{A: modmath.Mod(a, n), B: modmath.Mod(b, n), AInv: aInv}, nil
}

func (c *affineCipher) Encrypt(text string, key Key) (*Result, error) {
	k, ok := key.(AffineKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	n := c.alpha.Len()
	var tr trace
	tr.addf("E(x) = (%d*x + %d) mod %d", k.A, k.B, n)
	out, err := c.mapLetters(text, false, func(idx, _ int) int {
		enc := modmath.Mod(k.A*idx+k.B, n)
		tr.addf("%c (%d): (%d*%d + %d) mod %d = %d -> %c", c.alpha.Rune(idx), idx, k.A, idx, k.B, n, enc, c.alpha.Rune(enc))
		return enc
	})
	if err != nil {
		return nil, err
	}
	return &Result{Algorithm: c.id, Input: text, Output: out, Key: k.Describe(), Steps: tr.list()}, nil
}

func (c *affineCipher) Decrypt(text string, key Key) (*Result, error) {
	k, ok := key.(AffineKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	out, err := c.mapLetters(text, false, func(idx, _ int) int { return k.AInv * (idx - k.B) })
	if err != nil {
		return nil, err
	}
	return &Result{Algorithm: c.id, Input: text, Output: out, Key: k.Describe()}, nil
}
