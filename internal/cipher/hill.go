package cipher

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/RowanDark/cipherlab/internal/alphabet"
	"github.com/RowanDark/cipherlab/internal/modmath"
)

// MatrixKey is a validated Hill key: a square matrix invertible mod the
// alphabet size, with its inverse precomputed by integer extended-Euclidean
// arithmetic at validation time.
type MatrixKey struct {
	Cells   [][]int
	Inverse [][]int
}

func (k MatrixKey) Describe() string {
	parts := make([]string, 0, len(k.Cells)*len(k.Cells))
	for _, row := range k.Cells {
		for _, v := range row {
			parts = append(parts, strconv.Itoa(v))
		}
	}
	return fmt.Sprintf("matrix=%dx%d [%s]", len(k.Cells), len(k.Cells), strings.Join(parts, " "))
}

// hillCipher encrypts k-letter blocks by matrix multiplication mod 26.
type hillCipher struct {
	letterCipher
	filler rune
}

func newHill(opts Options) *hillCipher {
	return &hillCipher{
		letterCipher: letterCipher{
			base: base{
				id:     "hill",
				name:   "Hill Cipher",
				family: FamilyMatrix,
				description: "Encrypts blocks of letters by multiplying them with a key " +
					"matrix modulo 26. The matrix determinant must be coprime to 26 so the " +
					"inverse matrix exists. Invented by Lester S. Hill in 1929.",
				keyHint: "matrix: k*k integers, row-major, e.g. \"3 3 2 5\"",
			},
			alpha:  alphabet.Upper(),
			policy: opts.Policy,
		},
		filler: opts.Filler,
	}
}

func (c *hillCipher) ValidateKey(params Params) (Key, error) {
	raw, err := params.String("matrix")
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil, keyErr(c.id, ErrEmptyKey, "matrix is required")
	}

	k := intSqrt(len(fields))
	if k < 2 || k*k != len(fields) {
		return nil, keyErr(c.id, ErrNonInvertibleMatrix, "need k*k numbers for a square matrix with k >= 2, got %d", len(fields))
	}

	cells := make([][]int, k)
	for i := range cells {
		cells[i] = make([]int, k)
		for j := range cells[i] {
			v, err := strconv.Atoi(fields[i*k+j])
			if err != nil {
				return nil, keyErr(c.id, ErrInvalidSymbol, "matrix entry %q is not an integer", fields[i*k+j])
			}
			cells[i][j] = v
		}
	}

	n := c.alpha.Len()
	det := modmath.Mod(modmath.MatrixDeterminant(cells), n)
	if modmath.GCD(det, n) != 1 {
		return nil, keyErr(c.id, ErrNonInvertibleMatrix, "determinant %d is not coprime to %d", det, n)
	}
	inv, err := modmath.MatrixInverseMod(cells, n)
	if err != nil {
		return nil, keyErr(c.id, ErrNonInvertibleMatrix, "%v", err)
	}
	return MatrixKey{Cells: cells, Inverse: inv}, nil
}

func (c *hillCipher) Encrypt(text string, key Key) (*Result, error) {
	k, ok := key.(MatrixKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	if err := c.checkPolicy(text); err != nil {
		return nil, err
	}
	out, err := c.transform(text, k.Cells, true)
	if err != nil {
		return nil, err
	}
	return &Result{Algorithm: c.id, Input: text, Output: out, Key: k.Describe()}, nil
}

func (c *hillCipher) Decrypt(text string, key Key) (*Result, error) {
	k, ok := key.(MatrixKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	if err := c.checkPolicy(text); err != nil {
		return nil, err
	}
	out, err := c.transform(text, k.Inverse, false)
	if err != nil {
		return nil, err
	}
	return &Result{Algorithm: c.id, Input: text, Output: out, Key: k.Describe()}, nil
}

func (c *hillCipher) transform(text string, matrix [][]int, pad bool) (string, error) {
	k := len(matrix)
	clean := []rune(c.alpha.Normalize(text))

	if pad {
		for len(clean)%k != 0 {
			clean = append(clean, c.filler)
		}
	} else if len(clean)%k != 0 {
		return "", fmt.Errorf("%w: hill ciphertext length %d is not a multiple of the block size %d", ErrInvalidInput, len(clean), k)
	}

	var out strings.Builder
	out.Grow(len(clean))
	vec := make([]int, k)
	for i := 0; i < len(clean); i += k {
		for j := 0; j < k; j++ {
			vec[j], _ = c.alpha.Index(clean[i+j])
		}
		for _, v := range modmath.MatrixMulVec(matrix, vec, c.alpha.Len()) {
			out.WriteRune(c.alpha.Rune(v))
		}
	}
	return out.String(), nil
}

func intSqrt(n int) int {
	r := 0
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
