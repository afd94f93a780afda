package cipher

import (
	"fmt"
	"strings"

	"github.com/RowanDark/cipherlab/internal/alphabet"
)

// KeywordKey is a validated keyword mapped entirely onto the alphabet,
// uppercased with spaces removed.
type KeywordKey struct {
	Word string
}

func (k KeywordKey) Describe() string { return fmt.Sprintf("keyword=%s", k.Word) }

func validateKeyword(id string, alpha *alphabet.Alphabet, params Params) (KeywordKey, error) {
	raw, err := params.String("keyword")
	if err != nil {
		return KeywordKey{}, err
	}
	word := strings.ReplaceAll(strings.ToUpper(raw), " ", "")
	if word == "" {
		return KeywordKey{}, keyErr(id, ErrEmptyKey, "keyword is required")
	}
	for _, r := range word {
		if !alpha.Contains(r) {
			return KeywordKey{}, keyErr(id, ErrInvalidSymbol, "keyword contains %q", r)
		}
	}
	return KeywordKey{Word: word}, nil
}

// vigenereCipher shifts each letter by the next keyword letter, repeating the
// keyword. A single-letter keyword degenerates to Caesar with that shift.
type vigenereCipher struct {
	letterCipher
}

func newVigenere(opts Options) *vigenereCipher {
	return &vigenereCipher{letterCipher{
		base: base{
			id:     "vigenere",
			name:   "Vigenère Cipher",
			family: FamilyPolyalphabetic,
			description: "Polyalphabetic substitution: each keyword letter sets the " +
				"shift for the corresponding plaintext letter. Considered unbreakable " +
				"for three centuries until Kasiski examination.",
			keyHint: "keyword: letters only",
		},
		alpha:  alphabet.Upper(),
		policy: opts.Policy,
	}}
}

func (c *vigenereCipher) ValidateKey(params Params) (Key, error) {
	return validateKeyword(c.id, c.alpha, params)
}

func (c *vigenereCipher) Encrypt(text string, key Key) (*Result, error) {
	k, ok := key.(KeywordKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	word := []rune(k.Word)
	var tr trace
	out, err := c.mapLetters(text, false, func(idx, pos int) int {
		shift, _ := c.alpha.Index(word[pos%len(word)])
		tr.addf("%c + %c (shift %d) = %c", c.alpha.Rune(idx), word[pos%len(word)], shift, c.alpha.Rune(idx+shift))
		return idx + shift
	})
	if err != nil {
		return nil, err
	}
	return &Result{Algorithm: c.id, Input: text, Output: out, Key: k.Describe(), Steps: tr.list()}, nil
}

func (c *vigenereCipher) Decrypt(text string, key Key) (*Result, error) {
	k, ok := key.(KeywordKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	word := []rune(k.Word)
	out, err := c.mapLetters(text, false, func(idx, pos int) int {
		shift, _ := c.alpha.Index(word[pos%len(word)])
		return idx - shift
	})
	if err != nil {
		return nil, err
	}
	return &Result{Algorithm: c.id, Input: text, Output: out, Key: k.Describe()}, nil
}

// autokeyCipher extends the keyword with the plaintext itself, removing the
// repeating-key weakness of Vigenère.
type autokeyCipher struct {
	letterCipher
}

func newAutokey(opts Options) *autokeyCipher {
	return &autokeyCipher{letterCipher{
		base: base{
			id:     "autokey",
			name:   "Autokey Cipher",
			family: FamilyPolyalphabetic,
			description: "A Vigenère variant that appends the plaintext to the primer " +
				"keyword, so the running key never repeats.",
			keyHint: "keyword: primer, letters only",
		},
		alpha:  alphabet.Upper(),
		policy: opts.Policy,
	}}
}

func (c *autokeyCipher) ValidateKey(params Params) (Key, error) {
	return validateKeyword(c.id, c.alpha, params)
}

func (c *autokeyCipher) Encrypt(text string, key Key) (*Result, error) {
	k, ok := key.(KeywordKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	fullKey := []rune(k.Word + c.alpha.Normalize(text))
	out, err := c.mapLetters(text, false, func(idx, pos int) int {
		shift, _ := c.alpha.Index(fullKey[pos])
		return idx + shift
	})
	if err != nil {
		return nil, err
	}
	return &Result{Algorithm: c.id, Input: text, Output: out, Key: k.Describe()}, nil
}

func (c *autokeyCipher) Decrypt(text string, key Key) (*Result, error) {
	k, ok := key.(KeywordKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	// The running key grows with each recovered plaintext letter.
	runningKey := []rune(k.Word)
	out, err := c.mapLetters(text, false, func(idx, pos int) int {
		shift, _ := c.alpha.Index(runningKey[pos])
		plain := idx - shift
		runningKey = append(runningKey, c.alpha.Rune(plain))
		return plain
	})
	if err != nil {
		return nil, err
	}
	return &Result{Algorithm: c.id, Input: text, Output: out, Key: k.Describe()}, nil
}
