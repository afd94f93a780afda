package cipher

import (
	"crypto/rand"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/RowanDark/cipherlab/internal/alphabet"
)

// Family is the category tag of a cipher.
type Family string

const (
	FamilySubstitution   Family = "substitution"
	FamilyPolyalphabetic Family = "polyalphabetic"
	FamilyDigraph        Family = "digraph"
	FamilyMatrix         Family = "matrix"
	FamilyStream         Family = "stream"
	FamilyTransposition  Family = "transposition"
	FamilyBlock          Family = "block"
	FamilyAsymmetric     Family = "asymmetric"
	FamilyHash           Family = "hash"
	FamilyToken          Family = "token"
)

// Key is a validated, immutable key ready for a transform. Each family has
// its own concrete shape; validation happens exactly once, in ValidateKey,
// before any transform sees the key.
type Key interface {
	// Describe returns a short human-readable summary for display and
	// result reporting. It must not leak secret material verbatim for the
	// modern families.
	Describe() string
}

// Cipher is the capability set every algorithm implements. Implementations
// are stateless and safe for concurrent use.
type Cipher interface {
	// ID returns the unique registry identifier, e.g. "caesar".
	ID() string

	// Name returns the human-readable algorithm name.
	Name() string

	// Family returns the category tag.
	Family() Family

	// Description returns a sentence or two about the algorithm.
	Description() string

	// KeyHint describes the expected key parameters.
	KeyHint() string

	// ValidateKey checks the raw parameters against the family's validity
	// predicate and returns an immutable Key.
	ValidateKey(params Params) (Key, error)

	// Encrypt transforms plaintext under a validated key.
	Encrypt(text string, key Key) (*Result, error)

	// Decrypt reverses Encrypt. One-way families return ErrNotReversible.
	Decrypt(text string, key Key) (*Result, error)
}

// Result carries the outcome of a transform. It is owned by the caller; the
// engine retains nothing.
type Result struct {
	Algorithm string   `json:"algorithm"`
	Input     string   `json:"input"`
	Output    string   `json:"output"`
	Key       string   `json:"key"`
	Steps     []string `json:"steps,omitempty"`
}

// Params is the raw key-parameter map handed across the engine boundary.
// Recognized keys vary by algorithm; unknown keys are ignored.
type Params map[string]any

// Int extracts a required integer parameter. JSON decoding commonly delivers
// numbers as float64 and forms deliver them as strings, so both convert.
func (p Params) Int(name string) (int, error) {
	v, ok := p[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingKeyParam, name)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("parameter %q is not an integer: %v", name, n)
		}
		return int(n), nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("parameter %q is not an integer: %w", name, err)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("parameter %q has unsupported type %T", name, v)
	}
}

// String extracts a required string parameter.
func (p Params) String(name string) (string, error) {
	v, ok := p[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingKeyParam, name)
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case fmt.Stringer:
		return s.String(), nil
	case int:
		return strconv.Itoa(s), nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("parameter %q has unsupported type %T", name, v)
	}
}

// Options configures the default cipher set. The zero value is completed by
// applyDefaults.
type Options struct {
	// Policy controls non-alphabet character handling for the letter-based
	// families.
	Policy alphabet.Policy

	// Filler pads Playfair digraphs, odd Hill blocks, and short columnar
	// rows. Must be an alphabet letter.
	Filler rune

	// RSAMaxBits bounds requested RSA modulus sizes so an exposed keygen
	// endpoint cannot burn unbounded CPU.
	RSAMaxBits int

	// Rand supplies random material for key generation and block-cipher
	// IVs. Defaults to crypto/rand.Reader; tests inject a seeded source.
	Rand io.Reader
}

func (o Options) applyDefaults() Options {
	if o.Policy == "" {
		o.Policy = alphabet.PolicyPassThrough
	}
	if o.Filler == 0 {
		o.Filler = 'X'
	}
	if o.RSAMaxBits == 0 {
		o.RSAMaxBits = 4096
	}
	if o.Rand == nil {
		o.Rand = rand.Reader
	}
	return o
}

// trace accumulates a bounded number of explanatory steps for a Result.
type trace struct {
	steps []string
}

const traceLimit = 12

func (t *trace) addf(format string, args ...any) {
	if len(t.steps) >= traceLimit {
		return
	}
	t.steps = append(t.steps, fmt.Sprintf(format, args...))
}

func (t *trace) list() []string {
	return t.steps
}
