package cipher

import (
	"fmt"
	"iter"
)

// Metadata is the registry's view of an algorithm, used for UI enumeration.
type Metadata struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Family      Family `json:"family"`
	Description string `json:"description"`
	KeyHint     string `json:"key_hint"`
}

// Registry maps algorithm identifiers to their implementations. It is built
// once at process start and treated as read-only afterwards, so lookups need
// no locking. Entries enumerate in registration order.
type Registry struct {
	order []Cipher
	byID  map[string]Cipher
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Cipher)}
}

// Register adds a cipher. It fails on a nil cipher, an empty id, or an id
// that is already present.
func (r *Registry) Register(c Cipher) error {
	if c == nil {
		return fmt.Errorf("cannot register nil cipher")
	}
	id := c.ID()
	if id == "" {
		return fmt.Errorf("cipher id cannot be empty")
	}
	if _, exists := r.byID[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateAlgorithm, id)
	}
	r.byID[id] = c
	r.order = append(r.order, c)
	return nil
}

// Lookup retrieves a cipher by id.
func (r *Registry) Lookup(id string) (Cipher, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, id)
	}
	return c, nil
}

// All yields metadata in registration order. The sequence is finite and
// restartable, so callers may range over it any number of times.
func (r *Registry) All() iter.Seq[Metadata] {
	return func(yield func(Metadata) bool) {
		for _, c := range r.order {
			if !yield(metadataOf(c)) {
				return
			}
		}
	}
}

// List returns metadata for every registered cipher in registration order.
func (r *Registry) List() []Metadata {
	out := make([]Metadata, 0, len(r.order))
	for _, c := range r.order {
		out = append(out, metadataOf(c))
	}
	return out
}

// ByFamily returns metadata filtered to one family, still in registration
// order.
func (r *Registry) ByFamily(f Family) []Metadata {
	out := make([]Metadata, 0)
	for _, c := range r.order {
		if c.Family() == f {
			out = append(out, metadataOf(c))
		}
	}
	return out
}

func metadataOf(c Cipher) Metadata {
	return Metadata{
		ID:          c.ID(),
		Name:        c.Name(),
		Family:      c.Family(),
		Description: c.Description(),
		KeyHint:     c.KeyHint(),
	}
}

// NewDefaultRegistry builds the standard cipher set in its canonical order.
func NewDefaultRegistry(opts Options) (*Registry, error) {
	opts = opts.applyDefaults()
	r := NewRegistry()

	ciphers := []Cipher{
		newCaesar(opts),
		newAdditive(opts),
		newMultiplicative(opts),
		newAffine(opts),
		newVigenere(opts),
		newAutokey(opts),
		newPlayfair(opts),
		newHill(opts),
		newOneTimePad(opts),
		newVernam(opts),
		newRailFence(opts),
		newColumnar(opts),
		newFeistel(opts),
		newDES(opts),
		newAES(opts),
		newRSA(opts),
		newMD5(),
		newSHA1(),
		newSHA256(),
		newSHA512(),
		newBLAKE2b(),
		newBLAKE2s(),
		newJWT(),
	}

	for _, c := range ciphers {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}
