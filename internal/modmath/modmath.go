// Package modmath provides the integer arithmetic shared by the cipher
// implementations: GCD, extended-Euclidean modular inverses, matrix inversion
// over Z_n, modular exponentiation, and probabilistic prime generation.
//
// Everything here is exact integer math. Matrix inversion in particular must
// never fall back to floating point: rounding a fractional inverse silently
// corrupts decryption.
package modmath

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// GCD returns the greatest common divisor of a and b.
func GCD(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ExtendedGCD returns g = gcd(a, b) together with x, y such that
// a*x + b*y = g.
func ExtendedGCD(a, b int) (g, x, y int) {
	x0, x1 := 1, 0
	y0, y1 := 0, 1
	for b != 0 {
		q := a / b
		a, b = b, a-q*b
		x0, x1 = x1, x0-q*x1
		y0, y1 = y1, y0-q*y1
	}
	return a, x0, y0
}

// ModInverse returns a^-1 mod n, which exists iff gcd(a, n) = 1.
func ModInverse(a, n int) (int, error) {
	a = Mod(a, n)
	g, x, _ := ExtendedGCD(a, n)
	if g != 1 {
		return 0, fmt.Errorf("no inverse for %d mod %d (gcd %d)", a, n, g)
	}
	return Mod(x, n), nil
}

// Mod returns a mod n in the range [0, n).
func Mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}

// MatrixDeterminant computes the determinant of a square matrix by cofactor
// expansion. Key matrices are small (2x2 or 3x3 in practice), so the O(k!)
// expansion is fine.
func MatrixDeterminant(m [][]int) int {
	k := len(m)
	if k == 1 {
		return m[0][0]
	}
	if k == 2 {
		return m[0][0]*m[1][1] - m[0][1]*m[1][0]
	}
	det := 0
	sign := 1
	for col := 0; col < k; col++ {
		det += sign * m[0][col] * MatrixDeterminant(minor(m, 0, col))
		sign = -sign
	}
	return det
}

func minor(m [][]int, row, col int) [][]int {
	k := len(m)
	out := make([][]int, 0, k-1)
	for i := 0; i < k; i++ {
		if i == row {
			continue
		}
		r := make([]int, 0, k-1)
		for j := 0; j < k; j++ {
			if j == col {
				continue
			}
			r = append(r, m[i][j])
		}
		out = append(out, r)
	}
	return out
}

// MatrixInverseMod computes the inverse of a square matrix over Z_n via the
// adjugate and the extended-Euclidean inverse of the determinant. It fails
// when the determinant is not coprime to n.
func MatrixInverseMod(m [][]int, n int) ([][]int, error) {
	k := len(m)
	for _, row := range m {
		if len(row) != k {
			return nil, fmt.Errorf("matrix is not square")
		}
	}

	det := Mod(MatrixDeterminant(m), n)
	detInv, err := ModInverse(det, n)
	if err != nil {
		return nil, fmt.Errorf("matrix not invertible mod %d: %w", n, err)
	}

	inv := make([][]int, k)
	for i := range inv {
		inv[i] = make([]int, k)
	}
	if k == 1 {
		inv[0][0] = detInv
		return inv, nil
	}

	// adjugate: transpose of the cofactor matrix
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			sign := 1
			if (i+j)%2 == 1 {
				sign = -1
			}
			cof := sign * MatrixDeterminant(minor(m, i, j))
			inv[j][i] = Mod(detInv*cof, n)
		}
	}
	return inv, nil
}

// MatrixMulVec multiplies a k×k matrix by a k-vector mod n.
func MatrixMulVec(m [][]int, v []int, n int) []int {
	k := len(m)
	out := make([]int, k)
	for i := 0; i < k; i++ {
		sum := 0
		for j := 0; j < k; j++ {
			sum += m[i][j] * v[j]
		}
		out[i] = Mod(sum, n)
	}
	return out
}

// ModExp returns base^exp mod m over big integers.
func ModExp(base, exp, m *big.Int) *big.Int {
	return new(big.Int).Exp(base, exp, m)
}

// GeneratePrime produces a random prime of the given bit length from the
// provided randomness source. A nil source falls back to crypto/rand. The
// underlying primality check is the probabilistic Miller-Rabin test.
func GeneratePrime(bits int, rnd io.Reader) (*big.Int, error) {
	if bits < 2 {
		return nil, fmt.Errorf("prime bit length %d too small", bits)
	}
	if rnd == nil {
		rnd = rand.Reader
	}
	p, err := rand.Prime(rnd, bits)
	if err != nil {
		return nil, fmt.Errorf("generate %d-bit prime: %w", bits, err)
	}
	return p, nil
}
