package cipher

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure modes shared across families. Callers
// branch with errors.Is; the wrapped messages carry the specifics.
var (
	// ErrUnknownAlgorithm reports a lookup for an id no cipher registered.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrDuplicateAlgorithm reports a second registration of the same id.
	ErrDuplicateAlgorithm = errors.New("algorithm already registered")

	// ErrMissingKeyParam reports a required key parameter that was absent.
	ErrMissingKeyParam = errors.New("missing key parameter")

	// ErrEmptyKey reports a key with no usable material.
	ErrEmptyKey = errors.New("empty key")

	// ErrInvalidSymbol reports key material outside the cipher's alphabet.
	ErrInvalidSymbol = errors.New("invalid symbol in key")

	// ErrNonInvertibleMultiplier reports a multiplier that is not coprime
	// with the alphabet size.
	ErrNonInvertibleMultiplier = errors.New("multiplier is not invertible")

	// ErrNonInvertibleMatrix reports a key matrix with no inverse mod the
	// alphabet size.
	ErrNonInvertibleMatrix = errors.New("matrix is not invertible")

	// ErrKeyLengthMismatch reports a key whose length must equal the
	// message length but does not.
	ErrKeyLengthMismatch = errors.New("key length does not match message")

	// ErrInvalidKeyLength reports key material of an unsupported size.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrWeakKey reports key material that validates structurally but is
	// cryptographically unusable, e.g. RSA with p equal to q.
	ErrWeakKey = errors.New("weak key")

	// ErrInvalidInput reports text the transform cannot process.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotReversible reports a decrypt request against a one-way family.
	ErrNotReversible = errors.New("transform is not reversible")
)

// KeyError wraps a sentinel with the algorithm and a human-readable detail.
// errors.Is matches the sentinel through Unwrap.
type KeyError struct {
	Algorithm string
	Reason    error
	Detail    string
}

func (e *KeyError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Algorithm, e.Reason)
	}
	return fmt.Sprintf("%s: %v: %s", e.Algorithm, e.Reason, e.Detail)
}

func (e *KeyError) Unwrap() error { return e.Reason }

func keyErr(algorithm string, reason error, format string, args ...any) error {
	return &KeyError{
		Algorithm: algorithm,
		Reason:    reason,
		Detail:    fmt.Sprintf(format, args...),
	}
}
