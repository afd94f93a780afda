package cipher

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/RowanDark/cipherlab/internal/alphabet"
)

// PadKey is a validated one-time pad: uppercase letters only.
type PadKey struct {
	Pad string
}

func (k PadKey) Describe() string { return fmt.Sprintf("pad of %d letters", len(k.Pad)) }

// BytesKey is a validated raw byte key for the Vernam cipher.
type BytesKey struct {
	Bytes []byte
}

func (k BytesKey) Describe() string { return fmt.Sprintf("key of %d bytes", len(k.Bytes)) }

// oneTimePadCipher shifts each letter by the matching pad letter. A pad used
// with a message of a different letter count is rejected; pads generated by
// the engine come from a cryptographically sound source and are never reused.
type oneTimePadCipher struct {
	letterCipher
}

func newOneTimePad(opts Options) *oneTimePadCipher {
	return &oneTimePadCipher{letterCipher{
		base: base{
			id:     "otp",
			name:   "One-Time Pad",
			family: FamilyStream,
			description: "The only cipher proven unbreakable when the key is truly " +
				"random, exactly as long as the message, and never reused.",
			keyHint: "key: random letters, exactly one per message letter",
		},
		alpha:  alphabet.Upper(),
		policy: opts.Policy,
	}}
}

func (c *oneTimePadCipher) ValidateKey(params Params) (Key, error) {
	raw, err := params.String("key")
	if err != nil {
		return nil, err
	}
	pad := strings.ReplaceAll(strings.ToUpper(raw), " ", "")
	if pad == "" {
		return nil, keyErr(c.id, ErrEmptyKey, "pad is required")
	}
	for _, r := range pad {
		if !c.alpha.Contains(r) {
			return nil, keyErr(c.id, ErrInvalidSymbol, "pad contains %q", r)
		}
	}
	return PadKey{Pad: pad}, nil
}

func (c *oneTimePadCipher) Encrypt(text string, key Key) (*Result, error) {
	return c.shift(text, key, 1)
}

func (c *oneTimePadCipher) Decrypt(text string, key Key) (*Result, error) {
	return c.shift(text, key, -1)
}

func (c *oneTimePadCipher) shift(text string, key Key, dir int) (*Result, error) {
	k, ok := key.(PadKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	letters := c.alpha.Letters(text)
	if letters != len(k.Pad) {
		return nil, keyErr(c.id, ErrKeyLengthMismatch, "pad has %d letters, message has %d", len(k.Pad), letters)
	}
	pad := []rune(k.Pad)
	out, err := c.mapLetters(text, true, func(idx, pos int) int {
		shift, _ := c.alpha.Index(pad[pos])
		return idx + dir*shift
	})
	if err != nil {
		return nil, err
	}
	return &Result{Algorithm: c.id, Input: text, Output: out, Key: k.Describe()}, nil
}

// vernamCipher XORs message bytes with key bytes and emits uppercase hex.
type vernamCipher struct {
	base
}

func newVernam(opts Options) *vernamCipher {
	_ = opts
	return &vernamCipher{base{
		id:     "vernam",
		name:   "Vernam Cipher",
		family: FamilyStream,
		description: "Gilbert Vernam's 1917 teleprinter cipher: plaintext bytes XORed " +
			"with key bytes. With a random single-use key of the same length it is a " +
			"one-time pad.",
		keyHint: "key: text, exactly one byte per message byte",
	}}
}

func (c *vernamCipher) ValidateKey(params Params) (Key, error) {
	raw, err := params.String("key")
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, keyErr(c.id, ErrEmptyKey, "key is required")
	}
	return BytesKey{Bytes: []byte(raw)}, nil
}

func (c *vernamCipher) Encrypt(text string, key Key) (*Result, error) {
	k, ok := key.(BytesKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	data := []byte(text)
	if len(data) != len(k.Bytes) {
		return nil, keyErr(c.id, ErrKeyLengthMismatch, "key has %d bytes, message has %d", len(k.Bytes), len(data))
	}
	out := make([]byte, len(data))
	for i := range data {
		out[i] = data[i] ^ k.Bytes[i]
	}
	return &Result{
		Algorithm: c.id,
		Input:     text,
		Output:    strings.ToUpper(hex.EncodeToString(out)),
		Key:       k.Describe(),
	}, nil
}

func (c *vernamCipher) Decrypt(text string, key Key) (*Result, error) {
	k, ok := key.(BytesKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	data, err := hex.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("%w: vernam ciphertext must be hex: %v", ErrInvalidInput, err)
	}
	if len(data) != len(k.Bytes) {
		return nil, keyErr(c.id, ErrKeyLengthMismatch, "key has %d bytes, ciphertext has %d", len(k.Bytes), len(data))
	}
	out := make([]byte, len(data))
	for i := range data {
		out[i] = data[i] ^ k.Bytes[i]
	}
	return &Result{Algorithm: c.id, Input: text, Output: string(out), Key: k.Describe()}, nil
}
