// Package alphabet defines the symbol set and index mapping used by the
// classical cipher implementations.
package alphabet

import (
	"fmt"
	"strings"
	"unicode"
)

// Policy controls how characters outside the alphabet are handled during a
// transform. The same policy must be applied on encrypt and decrypt so that
// round-trips hold.
type Policy string

const (
	// PolicyPassThrough copies non-alphabet characters to the output
	// unchanged without consuming key material.
	PolicyPassThrough Policy = "pass"

	// PolicyReject fails the transform on the first non-alphabet character.
	PolicyReject Policy = "reject"
)

// ParsePolicy converts a configuration string into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyPassThrough:
		return PolicyPassThrough, nil
	case PolicyReject:
		return PolicyReject, nil
	default:
		return "", fmt.Errorf("unknown non-alphabet policy %q (want %q or %q)", s, PolicyPassThrough, PolicyReject)
	}
}

// Alphabet is an ordered, index-addressable sequence of symbols. The size is
// fixed for the lifetime of a transform and is the modulus for all
// substitution arithmetic. An Alphabet is read-only after construction and
// safe for unsynchronized concurrent use.
type Alphabet struct {
	symbols []rune
	index   map[rune]int
}

// Upper returns the default alphabet of 26 uppercase Latin letters. Lowercase
// input maps onto the same indices.
func Upper() *Alphabet {
	return New([]rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ"))
}

// New builds an alphabet from an ordered symbol list. Lowercase variants of
// the symbols share the index of their uppercase form.
func New(symbols []rune) *Alphabet {
	a := &Alphabet{
		symbols: symbols,
		index:   make(map[rune]int, len(symbols)*2),
	}
	for i, r := range symbols {
		a.index[r] = i
		if lower := unicode.ToLower(r); lower != r {
			a.index[lower] = i
		}
	}
	return a
}

// Len returns the alphabet size, i.e. the modulus for substitution math.
func (a *Alphabet) Len() int {
	return len(a.symbols)
}

// Index maps a symbol to its position. The second return is false when the
// rune is outside the alphabet.
func (a *Alphabet) Index(r rune) (int, bool) {
	i, ok := a.index[r]
	return i, ok
}

// Rune returns the uppercase symbol at position i mod Len.
func (a *Alphabet) Rune(i int) rune {
	n := len(a.symbols)
	i %= n
	if i < 0 {
		i += n
	}
	return a.symbols[i]
}

// Contains reports whether the rune belongs to the alphabet in either case.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

// Normalize uppercases the text and drops every rune outside the alphabet.
// Ciphers that operate on letter blocks (Playfair, Hill, transpositions)
// prepare their input with it.
func (a *Alphabet) Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if i, ok := a.index[r]; ok {
			b.WriteRune(a.symbols[i])
		}
	}
	return b.String()
}

// Letters counts the runes of text that belong to the alphabet.
func (a *Alphabet) Letters(text string) int {
	n := 0
	for _, r := range text {
		if a.Contains(r) {
			n++
		}
	}
	return n
}
