package cipher

import (
	"errors"
	"fmt"
)

// StepConfig is one stage of a pipeline: an algorithm id plus its key
// parameters.
type StepConfig struct {
	Algorithm  string         `json:"algorithm"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// Pipeline chains transforms so the output of each step feeds the next,
// e.g. substitution followed by transposition, a classic field combination.
type Pipeline struct {
	Steps      []StepConfig `json:"steps"`
	Reversible bool         `json:"reversible"`
}

// Encrypt runs every step's forward transform in order.
func (p *Pipeline) Encrypt(e *Engine, input string) (string, error) {
	result := input
	for i, step := range p.Steps {
		out, err := e.Encrypt(step.Algorithm, result, step.Parameters)
		if err != nil {
			return "", fmt.Errorf("step %d (%s): %w", i, step.Algorithm, err)
		}
		result = out.Output
	}
	return result, nil
}

// Decrypt undoes the pipeline by running the inverse transforms in reverse
// order. It fails if the pipeline was not declared reversible or contains a
// one-way step.
func (p *Pipeline) Decrypt(e *Engine, input string) (string, error) {
	if !p.Reversible {
		return "", errors.New("pipeline is not reversible")
	}
	result := input
	for i := len(p.Steps) - 1; i >= 0; i-- {
		step := p.Steps[i]
		out, err := e.Decrypt(step.Algorithm, result, step.Parameters)
		if err != nil {
			return "", fmt.Errorf("step %d (%s): %w", i, step.Algorithm, err)
		}
		result = out.Output
	}
	return result, nil
}

// Validate checks that every step resolves to a known algorithm with valid
// key parameters, and that declared reversibility is actually achievable.
func (p *Pipeline) Validate(e *Engine) error {
	if len(p.Steps) == 0 {
		return errors.New("pipeline has no steps")
	}
	for i, step := range p.Steps {
		c, err := e.reg.Lookup(step.Algorithm)
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if _, err := c.ValidateKey(Params(step.Parameters)); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, step.Algorithm, err)
		}
		if p.Reversible && c.Family() == FamilyHash {
			return fmt.Errorf("step %d (%s): %w", i, step.Algorithm, ErrNotReversible)
		}
	}
	return nil
}
