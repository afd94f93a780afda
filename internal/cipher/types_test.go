package cipher

import (
	"errors"
	"testing"
)

func TestParamsInt(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		want    int
		wantErr error
	}{
		{"int", Params{"shift": 3}, 3, nil},
		{"int64", Params{"shift": int64(3)}, 3, nil},
		{"float64 from json", Params{"shift": float64(3)}, 3, nil},
		{"string from form", Params{"shift": "3"}, 3, nil},
		{"negative string", Params{"shift": "-4"}, -4, nil},
		{"missing", Params{}, 0, ErrMissingKeyParam},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.params.Int("shift")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Int: %v", err)
			}
			if got != tt.want {
				t.Errorf("Int = %d, want %d", got, tt.want)
			}
		})
	}

	if _, err := (Params{"shift": "three"}).Int("shift"); err == nil {
		t.Error("expected error for non-numeric string")
	}
	// A fractional shift must not be truncated to the nearest integer.
	if _, err := (Params{"shift": 3.7}).Int("shift"); err == nil {
		t.Error("expected error for fractional float64")
	}
	if _, err := (Params{"shift": []int{3}}).Int("shift"); err == nil {
		t.Error("expected error for unsupported type")
	}
}

func TestParamsString(t *testing.T) {
	if got, err := (Params{"keyword": "KEY"}).String("keyword"); err != nil || got != "KEY" {
		t.Errorf("String = %q, %v", got, err)
	}
	if got, err := (Params{"keyword": 42}).String("keyword"); err != nil || got != "42" {
		t.Errorf("String(int) = %q, %v", got, err)
	}
	if _, err := (Params{}).String("keyword"); !errors.Is(err, ErrMissingKeyParam) {
		t.Errorf("err = %v, want ErrMissingKeyParam", err)
	}
}

func TestKeyErrorWrapping(t *testing.T) {
	err := keyErr("hill", ErrNonInvertibleMatrix, "determinant %d", 13)

	if !errors.Is(err, ErrNonInvertibleMatrix) {
		t.Error("errors.Is does not match the sentinel")
	}
	var ke *KeyError
	if !errors.As(err, &ke) {
		t.Fatal("errors.As does not extract *KeyError")
	}
	if ke.Algorithm != "hill" {
		t.Errorf("Algorithm = %q, want hill", ke.Algorithm)
	}
	if ke.Detail != "determinant 13" {
		t.Errorf("Detail = %q", ke.Detail)
	}
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.applyDefaults()
	if o.Filler != 'X' {
		t.Errorf("Filler = %q, want X", o.Filler)
	}
	if o.RSAMaxBits != 4096 {
		t.Errorf("RSAMaxBits = %d, want 4096", o.RSAMaxBits)
	}
	if o.Rand == nil {
		t.Error("Rand not defaulted")
	}

	custom := Options{Filler: 'Q', RSAMaxBits: 512}.applyDefaults()
	if custom.Filler != 'Q' || custom.RSAMaxBits != 512 {
		t.Errorf("explicit options overwritten: %+v", custom)
	}
}

func TestTraceLimit(t *testing.T) {
	var tr trace
	for i := 0; i < traceLimit*2; i++ {
		tr.addf("step %d", i)
	}
	if got := len(tr.list()); got != traceLimit {
		t.Errorf("trace kept %d steps, want %d", got, traceLimit)
	}
}
