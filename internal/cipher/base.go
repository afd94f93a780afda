package cipher

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/RowanDark/cipherlab/internal/alphabet"
)

// base carries the metadata every cipher exposes. Concrete ciphers embed it
// and add their own transform logic; there is no behavioural inheritance.
type base struct {
	id          string
	name        string
	family      Family
	description string
	keyHint     string
}

func (b base) ID() string          { return b.id }
func (b base) Name() string        { return b.name }
func (b base) Family() Family      { return b.family }
func (b base) Description() string { return b.description }
func (b base) KeyHint() string     { return b.keyHint }

// letterCipher bundles the alphabet and the non-alphabet policy shared by
// every letter-oriented family.
type letterCipher struct {
	base
	alpha  *alphabet.Alphabet
	policy alphabet.Policy
}

// mapLetters rewrites text by applying shift to each alphabet letter, where
// shift receives the letter's index and the running count of letters seen so
// far. keepCase preserves the case of the input letter; otherwise output is
// uppercase. Non-alphabet runes follow the policy and do not advance the
// letter counter.
func (lc *letterCipher) mapLetters(text string, keepCase bool, shift func(idx, pos int) int) (string, error) {
	var b strings.Builder
	b.Grow(len(text))
	pos := 0
	for _, r := range text {
		idx, ok := lc.alpha.Index(r)
		if !ok {
			if lc.policy == alphabet.PolicyReject {
				return "", fmt.Errorf("%w: character %q is outside the alphabet", ErrInvalidInput, r)
			}
			b.WriteRune(r)
			continue
		}
		out := lc.alpha.Rune(shift(idx, pos))
		if keepCase && r >= 'a' && r <= 'z' {
			out = out - 'A' + 'a'
		}
		b.WriteRune(out)
		pos++
	}
	return b.String(), nil
}

// checkPolicy rejects non-alphabet input up front for ciphers that strip
// rather than map, so the reject policy still holds for them.
func (lc *letterCipher) checkPolicy(text string) error {
	if lc.policy != alphabet.PolicyReject {
		return nil
	}
	for _, r := range text {
		// Spaces are always stripped by the block-oriented ciphers, so
		// the reject policy does not apply to them.
		if unicode.IsSpace(r) {
			continue
		}
		if !lc.alpha.Contains(r) {
			return fmt.Errorf("%w: character %q is outside the alphabet", ErrInvalidInput, r)
		}
	}
	return nil
}

func wrongKeyType(id string, key Key) error {
	return keyErr(id, ErrMissingKeyParam, "key %T was not produced by this cipher's ValidateKey", key)
}
