package cipher

import (
	"bytes"
	"crypto/aes"
	stdcipher "crypto/cipher"
	"crypto/des"
	"encoding/base64"
	"fmt"
	"io"
)

// BlockKey is a validated symmetric block-cipher key.
type BlockKey struct {
	Bytes []byte
}

func (k BlockKey) Describe() string { return fmt.Sprintf("%d-bit key", len(k.Bytes)*8) }

// blockCipher wraps a standard-library block cipher in CBC mode with PKCS#7
// padding. Ciphertext is base64(IV || blocks); the IV comes from the
// configured randomness source.
type blockCipher struct {
	base
	rand      io.Reader
	keySizes  []int
	newCipher func(key []byte) (stdcipher.Block, error)
}

func newDES(opts Options) *blockCipher {
	return &blockCipher{
		base: base{
			id:     "des",
			name:   "DES",
			family: FamilyBlock,
			description: "The 1977 Data Encryption Standard: a 16-round Feistel cipher " +
				"with 64-bit blocks and a 56-bit effective key. Broken by exhaustive " +
				"search today, kept here for its historical structure.",
			keyHint: "key: exactly 8 bytes",
		},
		rand:      opts.Rand,
		keySizes:  []int{8},
		newCipher: des.NewCipher,
	}
}

func newAES(opts Options) *blockCipher {
	return &blockCipher{
		base: base{
			id:     "aes",
			name:   "AES",
			family: FamilyBlock,
			description: "The Advanced Encryption Standard (2001): a substitution-" +
				"permutation network with 128-bit blocks and 128/192/256-bit keys.",
			keyHint: "key: exactly 16, 24, or 32 bytes",
		},
		rand:      opts.Rand,
		keySizes:  []int{16, 24, 32},
		newCipher: aes.NewCipher,
	}
}

func (c *blockCipher) ValidateKey(params Params) (Key, error) {
	raw, err := params.String("key")
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, keyErr(c.id, ErrEmptyKey, "key is required")
	}
	key := []byte(raw)
	for _, size := range c.keySizes {
		if len(key) == size {
			return BlockKey{Bytes: key}, nil
		}
	}
	return nil, keyErr(c.id, ErrInvalidKeyLength, "key is %d bytes, want one of %v", len(key), c.keySizes)
}

func (c *blockCipher) Encrypt(text string, key Key) (*Result, error) {
	k, ok := key.(BlockKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	block, err := c.newCipher(k.Bytes)
	if err != nil {
		return nil, keyErr(c.id, ErrInvalidKeyLength, "%v", err)
	}

	padded := pkcs7Pad([]byte(text), block.BlockSize())
	iv := make([]byte, block.BlockSize())
	if _, err := io.ReadFull(c.rand, iv); err != nil {
		return nil, fmt.Errorf("%s: read iv: %w", c.id, err)
	}

	ct := make([]byte, len(padded))
	stdcipher.NewCBCEncrypter(block, iv).CryptBlocks(ct, padded)

	return &Result{
		Algorithm: c.id,
		Input:     text,
		Output:    base64.StdEncoding.EncodeToString(append(iv, ct...)),
		Key:       k.Describe(),
	}, nil
}

func (c *blockCipher) Decrypt(text string, key Key) (*Result, error) {
	k, ok := key.(BlockKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	block, err := c.newCipher(k.Bytes)
	if err != nil {
		return nil, keyErr(c.id, ErrInvalidKeyLength, "%v", err)
	}

	data, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: ciphertext must be base64: %v", ErrInvalidInput, err)
	}
	bs := block.BlockSize()
	if len(data) < 2*bs || len(data)%bs != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not IV plus whole blocks", ErrInvalidInput, len(data))
	}

	iv, ct := data[:bs], data[bs:]
	pt := make([]byte, len(ct))
	stdcipher.NewCBCDecrypter(block, iv).CryptBlocks(pt, ct)

	unpadded, err := pkcs7Unpad(pt, bs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return &Result{Algorithm: c.id, Input: text, Output: string(unpadded), Key: k.Describe()}, nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	pad := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(pad)}, pad)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("bad padded length %d", len(data))
	}
	pad := int(data[len(data)-1])
	if pad < 1 || pad > blockSize {
		return nil, fmt.Errorf("bad padding byte %d", pad)
	}
	for _, b := range data[len(data)-pad:] {
		if int(b) != pad {
			return nil, fmt.Errorf("inconsistent padding")
		}
	}
	return data[:len(data)-pad], nil
}
