package modmath

import (
	"math/big"
	"testing"
)

func TestGCD(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{12, 8, 4},
		{26, 5, 1},
		{26, 4, 2},
		{0, 7, 7},
		{7, 0, 7},
		{-12, 8, 4},
		{1, 1, 1},
	}

	for _, tt := range tests {
		if got := GCD(tt.a, tt.b); got != tt.want {
			t.Errorf("GCD(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestExtendedGCD(t *testing.T) {
	tests := []struct{ a, b int }{
		{240, 46},
		{26, 7},
		{17, 26},
		{1, 26},
	}

	for _, tt := range tests {
		g, x, y := ExtendedGCD(tt.a, tt.b)
		if got := tt.a*x + tt.b*y; got != g {
			t.Errorf("ExtendedGCD(%d, %d): %d*%d + %d*%d = %d, want gcd %d",
				tt.a, tt.b, tt.a, x, tt.b, y, got, g)
		}
		if g != GCD(tt.a, tt.b) {
			t.Errorf("ExtendedGCD(%d, %d) gcd = %d, want %d", tt.a, tt.b, g, GCD(tt.a, tt.b))
		}
	}
}

func TestModInverse(t *testing.T) {
	// Every residue coprime to 26 must invert; the composite ones must not.
	for a := 1; a < 26; a++ {
		inv, err := ModInverse(a, 26)
		if GCD(a, 26) != 1 {
			if err == nil {
				t.Errorf("ModInverse(%d, 26) succeeded for non-coprime input", a)
			}
			continue
		}
		if err != nil {
			t.Errorf("ModInverse(%d, 26): %v", a, err)
			continue
		}
		if Mod(a*inv, 26) != 1 {
			t.Errorf("ModInverse(%d, 26) = %d, but %d*%d mod 26 = %d", a, inv, a, inv, Mod(a*inv, 26))
		}
	}
}

func TestModInverseNegative(t *testing.T) {
	inv, err := ModInverse(-7, 26)
	if err != nil {
		t.Fatalf("ModInverse(-7, 26): %v", err)
	}
	if Mod(-7*inv, 26) != 1 {
		t.Errorf("inverse of -7 mod 26 = %d is wrong", inv)
	}
}

func TestMatrixDeterminant(t *testing.T) {
	tests := []struct {
		name string
		m    [][]int
		want int
	}{
		{"2x2", [][]int{{3, 3}, {2, 5}}, 9},
		{"2x2 singular", [][]int{{2, 4}, {1, 2}}, 0},
		{"3x3", [][]int{{6, 24, 1}, {13, 16, 10}, {20, 17, 15}}, 441},
		{"1x1", [][]int{{7}}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatrixDeterminant(tt.m); got != tt.want {
				t.Errorf("determinant = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMatrixInverseMod(t *testing.T) {
	m := [][]int{{3, 3}, {2, 5}}
	inv, err := MatrixInverseMod(m, 26)
	if err != nil {
		t.Fatalf("MatrixInverseMod: %v", err)
	}

	// m * inv must be the identity mod 26.
	for i := 0; i < 2; i++ {
		col := []int{0, 0}
		col[i] = 1
		got := MatrixMulVec(m, MatrixMulVec(inv, col, 26), 26)
		for j := range got {
			want := 0
			if j == i {
				want = 1
			}
			if got[j] != want {
				t.Errorf("m*inv column %d = %v, want identity column", i, got)
			}
		}
	}
}

func TestMatrixInverseMod3x3(t *testing.T) {
	m := [][]int{{6, 24, 1}, {13, 16, 10}, {20, 17, 15}}
	inv, err := MatrixInverseMod(m, 26)
	if err != nil {
		t.Fatalf("MatrixInverseMod 3x3: %v", err)
	}
	// Known inverse of the classic GYBNQKURP Hill key.
	want := [][]int{{8, 5, 10}, {21, 8, 21}, {21, 12, 8}}
	for i := range want {
		for j := range want[i] {
			if inv[i][j] != want[i][j] {
				t.Fatalf("inv[%d][%d] = %d, want %d", i, j, inv[i][j], want[i][j])
			}
		}
	}
}

func TestMatrixInverseModSingular(t *testing.T) {
	if _, err := MatrixInverseMod([][]int{{2, 4}, {1, 2}}, 26); err == nil {
		t.Fatal("expected error for singular matrix")
	}
	// det = 13 shares a factor with 26
	if _, err := MatrixInverseMod([][]int{{13, 0}, {0, 1}}, 26); err == nil {
		t.Fatal("expected error for determinant not coprime to 26")
	}
}

func TestMatrixInverseModNotSquare(t *testing.T) {
	if _, err := MatrixInverseMod([][]int{{1, 2, 3}, {4, 5, 6}}, 26); err == nil {
		t.Fatal("expected error for non-square matrix")
	}
}

func TestModExp(t *testing.T) {
	tests := []struct {
		base, exp, mod, want int64
	}{
		{4, 13, 497, 445},
		{2, 10, 1000, 24},
		{7, 0, 13, 1},
	}

	for _, tt := range tests {
		got := ModExp(big.NewInt(tt.base), big.NewInt(tt.exp), big.NewInt(tt.mod))
		if got.Int64() != tt.want {
			t.Errorf("ModExp(%d, %d, %d) = %v, want %d", tt.base, tt.exp, tt.mod, got, tt.want)
		}
	}
}

func TestGeneratePrime(t *testing.T) {
	p, err := GeneratePrime(64, nil)
	if err != nil {
		t.Fatalf("GeneratePrime: %v", err)
	}
	if p.BitLen() != 64 {
		t.Errorf("prime bit length = %d, want 64", p.BitLen())
	}
	if !p.ProbablyPrime(20) {
		t.Errorf("%v is not prime", p)
	}
}

func TestGeneratePrimeTooSmall(t *testing.T) {
	if _, err := GeneratePrime(1, nil); err == nil {
		t.Fatal("expected error for 1-bit prime request")
	}
}
