// Package cipher implements classical and modern cryptographic transforms
// behind a single registry-dispatched contract.
//
// # Overview
//
// Every algorithm satisfies the Cipher interface: validate a key, encrypt,
// decrypt. A caller asks the Engine to run "algorithm X with key parameters
// Y" without knowing the mathematics of X:
//
//	engine, _ := cipher.NewDefaultEngine(cipher.Options{})
//	res, _ := engine.Encrypt("caesar", "ABC", map[string]any{"shift": 3})
//	// res.Output: "DEF"
//
// The families span substitution (Caesar, multiplicative, affine),
// polyalphabetic (Vigenère, autokey), digraph (Playfair), matrix (Hill),
// stream (one-time pad, Vernam), transposition (rail fence, columnar),
// block (Feistel demo, DES, AES), asymmetric (textbook RSA), one-way
// digests, and HS256 JWTs.
//
// # Key validation
//
// Each family checks its own validity predicate exactly once, before any
// transform runs: an affine multiplier must be coprime to the alphabet size,
// a Hill matrix determinant must invert mod 26 (by extended-Euclidean
// integer arithmetic, never floating point), a one-time pad must cover the
// message exactly, an RSA keypair must come from distinct primes. Failures
// surface as a *KeyError wrapping a sentinel such as
// ErrNonInvertibleMatrix, matchable with errors.Is.
//
// # Pipelines and recipes
//
// Pipeline chains transforms so the output of one step feeds the next, and
// reverses a reversible chain by decrypting in the opposite order.
// RecipeStore names and persists pipelines as JSON.
//
// # Security caveat
//
// The classical families are pedagogically, intentionally weak, and the RSA
// implementation is textbook and unpadded. Nothing here is a substitute for
// a vetted cryptography library in production.
//
// # Thread safety
//
// Registry and Alphabet are read-only after construction; ciphers are
// stateless. Everything except RecipeStore (which locks internally) may be
// used concurrently without synchronization.
package cipher
