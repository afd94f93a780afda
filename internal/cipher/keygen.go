package cipher

import (
	"fmt"
	"io"
	"strings"
)

const padAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generatePad draws uniform random letters from rnd. Rejection sampling
// keeps the distribution unbiased: 26 does not divide 256, so plain modulo
// would favor A through T.
func generatePad(letters int, rnd io.Reader) (string, error) {
	if letters < 1 {
		return "", fmt.Errorf("pad length must be positive, got %d", letters)
	}

	// Largest multiple of 26 below 256.
	const limit = 26 * (256 / 26)

	var b strings.Builder
	b.Grow(letters)
	buf := make([]byte, 64)
	for b.Len() < letters {
		n, err := rnd.Read(buf)
		if err != nil {
			return "", fmt.Errorf("read random pad material: %w", err)
		}
		for _, v := range buf[:n] {
			if int(v) >= limit {
				continue
			}
			b.WriteByte(padAlphabet[int(v)%26])
			if b.Len() == letters {
				break
			}
		}
	}
	return b.String(), nil
}
