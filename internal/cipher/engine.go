package cipher

// Engine is the request/response boundary consumed by external callers. It
// performs lookup, key validation, and the transform in order, returning
// typed errors at the first failed stage. The engine holds no per-request
// state and is safe for concurrent use.
type Engine struct {
	reg  *Registry
	opts Options
}

// NewEngine wraps a registry built from the same options.
func NewEngine(reg *Registry, opts Options) *Engine {
	return &Engine{reg: reg, opts: opts.applyDefaults()}
}

// NewDefaultEngine builds the standard cipher set and the engine over it.
func NewDefaultEngine(opts Options) (*Engine, error) {
	reg, err := NewDefaultRegistry(opts)
	if err != nil {
		return nil, err
	}
	return NewEngine(reg, opts), nil
}

// Registry exposes the read-only registry, e.g. for enumeration.
func (e *Engine) Registry() *Registry {
	return e.reg
}

// ListAlgorithms returns metadata for every algorithm in registration order.
func (e *Engine) ListAlgorithms() []Metadata {
	return e.reg.List()
}

// Encrypt validates the key parameters for the algorithm and runs the
// forward transform.
func (e *Engine) Encrypt(algorithmID, plaintext string, params map[string]any) (*Result, error) {
	c, err := e.reg.Lookup(algorithmID)
	if err != nil {
		return nil, err
	}
	key, err := c.ValidateKey(Params(params))
	if err != nil {
		return nil, err
	}
	return c.Encrypt(plaintext, key)
}

// Decrypt validates the key parameters and runs the inverse transform.
// One-way algorithms return ErrNotReversible.
func (e *Engine) Decrypt(algorithmID, ciphertext string, params map[string]any) (*Result, error) {
	c, err := e.reg.Lookup(algorithmID)
	if err != nil {
		return nil, err
	}
	key, err := c.ValidateKey(Params(params))
	if err != nil {
		return nil, err
	}
	return c.Decrypt(ciphertext, key)
}

// GeneratePad produces a fresh random one-time pad of the given letter count
// from the engine's randomness source. Pads are generated per call and never
// cached or reused.
func (e *Engine) GeneratePad(letters int) (string, error) {
	return generatePad(letters, e.opts.Rand)
}

// GenerateRSAKey produces a fresh keypair bounded by the configured ceiling.
func (e *Engine) GenerateRSAKey(bits int) (RSAKey, error) {
	return GenerateRSAKey(bits, e.opts.RSAMaxBits, e.opts.Rand)
}
