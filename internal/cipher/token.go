package cipher

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// SecretKey is a validated HMAC secret.
type SecretKey struct {
	Secret []byte
}

func (k SecretKey) Describe() string { return fmt.Sprintf("HS256 secret of %d bytes", len(k.Secret)) }

// jwtCipher signs and verifies JSON Web Tokens with HS256. Encrypt takes a
// JSON claims document and produces a signed token; Decrypt verifies the
// signature and returns the claims as indented JSON.
type jwtCipher struct {
	base
}

func newJWT() *jwtCipher {
	return &jwtCipher{base{
		id:     "jwt",
		name:   "JWT (HS256)",
		family: FamilyToken,
		description: "Signs JSON claims as an HMAC-SHA256 JSON Web Token and verifies " +
			"tokens back into claims. A practical view of keyed one-way functions.",
		keyHint: "secret: HMAC secret text",
	}}
}

func (c *jwtCipher) ValidateKey(params Params) (Key, error) {
	secret, err := params.String("secret")
	if err != nil {
		return nil, err
	}
	if secret == "" {
		return nil, keyErr(c.id, ErrEmptyKey, "secret is required")
	}
	return SecretKey{Secret: []byte(secret)}, nil
}

func (c *jwtCipher) Encrypt(text string, key Key) (*Result, error) {
	k, ok := key.(SecretKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}

	claims := jwt.MapClaims{}
	if err := json.Unmarshal([]byte(text), &claims); err != nil {
		return nil, fmt.Errorf("%w: claims must be a JSON object: %v", ErrInvalidInput, err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(k.Secret)
	if err != nil {
		return nil, fmt.Errorf("jwt sign failed: %w", err)
	}
	return &Result{Algorithm: c.id, Input: text, Output: signed, Key: k.Describe()}, nil
}

func (c *jwtCipher) Decrypt(text string, key Key) (*Result, error) {
	k, ok := key.(SecretKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}

	parsed, err := jwt.Parse(strings.TrimSpace(text), func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return k.Secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected claims type", ErrInvalidInput)
	}
	out, err := json.MarshalIndent(claims, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("format claims: %w", err)
	}
	return &Result{Algorithm: c.id, Input: text, Output: string(out), Key: k.Describe()}, nil
}
