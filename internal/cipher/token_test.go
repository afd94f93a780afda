package cipher

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestJWTSignAndVerify(t *testing.T) {
	c := newJWT()
	key := mustKey(t, c, map[string]any{"secret": "top secret"})

	claims := `{"sub":"alice","admin":true}`
	token := mustEncrypt(t, c, claims, key)
	if strings.Count(token, ".") != 2 {
		t.Fatalf("token %q does not have three segments", token)
	}

	out := mustDecrypt(t, c, token, key)
	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("verified claims are not JSON: %v", err)
	}
	if got["sub"] != "alice" {
		t.Errorf("sub = %v, want alice", got["sub"])
	}
	if got["admin"] != true {
		t.Errorf("admin = %v, want true", got["admin"])
	}
}

func TestJWTWrongSecret(t *testing.T) {
	c := newJWT()
	signer := mustKey(t, c, map[string]any{"secret": "right"})
	verifier := mustKey(t, c, map[string]any{"secret": "wrong"})

	token := mustEncrypt(t, c, `{"sub":"alice"}`, signer)
	if _, err := c.Decrypt(token, verifier); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestJWTRejectsNonJSONClaims(t *testing.T) {
	c := newJWT()
	key := mustKey(t, c, map[string]any{"secret": "s"})

	if _, err := c.Encrypt("not json", key); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestJWTRejectsMangledToken(t *testing.T) {
	c := newJWT()
	key := mustKey(t, c, map[string]any{"secret": "s"})

	token := mustEncrypt(t, c, `{"sub":"alice"}`, key)
	mangled := token + "x"
	if _, err := c.Decrypt(mangled, key); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestJWTEmptySecret(t *testing.T) {
	c := newJWT()
	if _, err := c.ValidateKey(Params{"secret": ""}); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("err = %v, want ErrEmptyKey", err)
	}
	if _, err := c.ValidateKey(Params{}); !errors.Is(err, ErrMissingKeyParam) {
		t.Errorf("err = %v, want ErrMissingKeyParam", err)
	}
}
