package cipher

import (
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	feistelRounds    = 16
	feistelBlockBits = 64
)

// FeistelKey is a validated key stretched into the 16 round keys.
type FeistelKey struct {
	Key       string
	roundKeys [][]byte
}

func (k FeistelKey) Describe() string { return fmt.Sprintf("key of %d chars, 16 rounds", len(k.Key)) }

// feistelCipher is an educational Feistel network: 64-bit blocks, 16 rounds,
// a rotating key schedule, and a toy round function. Decryption runs the same
// rounds with the key order reversed.
type feistelCipher struct {
	base
}

func newFeistel(opts Options) *feistelCipher {
	_ = opts
	return &feistelCipher{base{
		id:     "feistel",
		name:   "Feistel Cipher",
		family: FamilyBlock,
		description: "A demonstration Feistel network as used inside DES: each round " +
			"applies a round function to one half of the block and swaps the halves. " +
			"Encrypt and decrypt share the same structure with reversed round keys.",
		keyHint: "key: any non-empty text, stretched to 64 bits",
	}}
}

func (c *feistelCipher) ValidateKey(params Params) (Key, error) {
	raw, err := params.String("key")
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, keyErr(c.id, ErrEmptyKey, "key is required")
	}
	return FeistelKey{Key: raw, roundKeys: feistelRoundKeys(raw)}, nil
}

// feistelRoundKeys stretches the key to 64 bits and derives one 32-bit round
// key per round by rotating the key bits.
func feistelRoundKeys(key string) [][]byte {
	keyBits := bytesToBits([]byte(key))
	for len(keyBits) < feistelBlockBits {
		keyBits = append(keyBits, keyBits[:min(len(keyBits), feistelBlockBits-len(keyBits))]...)
	}
	keyBits = keyBits[:feistelBlockBits]

	keys := make([][]byte, feistelRounds)
	for i := range keys {
		shift := ((i + 1) * 4) % feistelBlockBits
		rotated := append(append([]byte{}, keyBits[shift:]...), keyBits[:shift]...)
		keys[i] = rotated[:feistelBlockBits/2]
	}
	return keys
}

// feistelRoundFn XORs the half with the round key and rotates each 4-bit
// group. Deliberately weak; the point is the network structure.
func feistelRoundFn(half, roundKey []byte) []byte {
	out := make([]byte, len(roundKey))
	for i := range out {
		out[i] = half[i%len(half)] ^ roundKey[i]
	}
	for i := 0; i+3 < len(out); i += 4 {
		out[i], out[i+1], out[i+2], out[i+3] = out[i+1], out[i+2], out[i+3], out[i]
	}
	return out[:len(half)]
}

func feistelBlock(block []byte, roundKeys [][]byte) []byte {
	half := len(block) / 2
	left := append([]byte{}, block[:half]...)
	right := append([]byte{}, block[half:]...)

	for _, rk := range roundKeys {
		f := feistelRoundFn(right, rk)
		newRight := make([]byte, len(left))
		for i := range left {
			newRight[i] = left[i] ^ f[i]
		}
		left, right = right, newRight
	}
	// Undo the last swap so decryption mirrors encryption.
	return append(right, left...)
}

func (c *feistelCipher) Encrypt(text string, key Key) (*Result, error) {
	k, ok := key.(FeistelKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	bits := bytesToBits([]byte(text))
	for len(bits)%feistelBlockBits != 0 {
		bits = append(bits, 0)
	}

	var out []byte
	for i := 0; i < len(bits); i += feistelBlockBits {
		out = append(out, feistelBlock(bits[i:i+feistelBlockBits], k.roundKeys)...)
	}
	return &Result{
		Algorithm: c.id,
		Input:     text,
		Output:    strings.ToUpper(hex.EncodeToString(bitsToBytes(out))),
		Key:       k.Describe(),
	}, nil
}

func (c *feistelCipher) Decrypt(text string, key Key) (*Result, error) {
	k, ok := key.(FeistelKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	raw, err := hex.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("%w: feistel ciphertext must be hex: %v", ErrInvalidInput, err)
	}
	bits := bytesToBits(raw)
	for len(bits)%feistelBlockBits != 0 {
		bits = append(bits, 0)
	}

	reversed := make([][]byte, len(k.roundKeys))
	for i, rk := range k.roundKeys {
		reversed[len(k.roundKeys)-1-i] = rk
	}

	var out []byte
	for i := 0; i < len(bits); i += feistelBlockBits {
		out = append(out, feistelBlock(bits[i:i+feistelBlockBits], reversed)...)
	}
	plain := strings.TrimRight(string(bitsToBytes(out)), "\x00")
	return &Result{Algorithm: c.id, Input: text, Output: plain, Key: k.Describe()}, nil
}

// bytesToBits expands bytes into one byte per bit, most significant first.
func bytesToBits(data []byte) []byte {
	bits := make([]byte, 0, len(data)*8)
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>i)&1)
		}
	}
	return bits
}

func bitsToBytes(bits []byte) []byte {
	out := make([]byte, 0, (len(bits)+7)/8)
	for i := 0; i < len(bits); i += 8 {
		var b byte
		for j := 0; j < 8 && i+j < len(bits); j++ {
			b |= bits[i+j] << (7 - j)
		}
		out = append(out, b)
	}
	return out
}
