package cipher

import (
	"fmt"
	"sort"
	"strings"

	"github.com/RowanDark/cipherlab/internal/alphabet"
)

// RailKey is a validated rail depth. Depth 1 and depths at or beyond the
// message length are degenerate but valid identity-like transforms.
type RailKey struct {
	Rails int
}

func (k RailKey) Describe() string { return fmt.Sprintf("rails=%d", k.Rails) }

// ColumnKey is a validated columnar keyword with its precomputed read order:
// the column indices sorted by letter rank, ties broken by position.
type ColumnKey struct {
	Word  string
	Order []int
}

func (k ColumnKey) Describe() string { return fmt.Sprintf("keyword=%s", k.Word) }

// railFenceCipher writes the message in a zigzag across the rails and reads
// each rail left to right.
type railFenceCipher struct {
	letterCipher
}

func newRailFence(opts Options) *railFenceCipher {
	return &railFenceCipher{letterCipher{
		base: base{
			id:     "railfence",
			name:   "Rail Fence Cipher",
			family: FamilyTransposition,
			description: "Writes the message in a zigzag over a number of rails and " +
				"reads the rails off in order. Pure transposition, no substitution.",
			keyHint: "rails: positive integer",
		},
		alpha:  alphabet.Upper(),
		policy: opts.Policy,
	}}
}

func (c *railFenceCipher) ValidateKey(params Params) (Key, error) {
	rails, err := params.Int("rails")
	if err != nil {
		return nil, err
	}
	if rails < 1 {
		return nil, keyErr(c.id, ErrInvalidKeyLength, "rails must be positive, got %d", rails)
	}
	return RailKey{Rails: rails}, nil
}

func (c *railFenceCipher) Encrypt(text string, key Key) (*Result, error) {
	k, ok := key.(RailKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	if err := c.checkPolicy(text); err != nil {
		return nil, err
	}
	clean := []rune(c.alpha.Normalize(text))
	if k.Rails == 1 || k.Rails >= len(clean) {
		return &Result{Algorithm: c.id, Input: text, Output: string(clean), Key: k.Describe()}, nil
	}

	fence := make([][]rune, k.Rails)
	for rail, dir, i := 0, 1, 0; i < len(clean); i++ {
		fence[rail] = append(fence[rail], clean[i])
		rail += dir
		if rail == 0 || rail == k.Rails-1 {
			dir = -dir
		}
	}

	var tr trace
	var out strings.Builder
	out.Grow(len(clean))
	for i, rail := range fence {
		tr.addf("rail %d: %s", i, string(rail))
		out.WriteString(string(rail))
	}
	return &Result{Algorithm: c.id, Input: text, Output: out.String(), Key: k.Describe(), Steps: tr.list()}, nil
}

func (c *railFenceCipher) Decrypt(text string, key Key) (*Result, error) {
	k, ok := key.(RailKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	if err := c.checkPolicy(text); err != nil {
		return nil, err
	}
	clean := []rune(c.alpha.Normalize(text))
	n := len(clean)
	if k.Rails == 1 || k.Rails >= n {
		return &Result{Algorithm: c.id, Input: text, Output: string(clean), Key: k.Describe()}, nil
	}

	// Zigzag visits rails in the cycle 0..r-1..1; count how many letters
	// land on each rail.
	cycle := make([]int, 0, 2*k.Rails-2)
	for i := 0; i < k.Rails; i++ {
		cycle = append(cycle, i)
	}
	for i := k.Rails - 2; i > 0; i-- {
		cycle = append(cycle, i)
	}
	counts := make([]int, k.Rails)
	for i := 0; i < n; i++ {
		counts[cycle[i%len(cycle)]]++
	}

	rails := make([][]rune, k.Rails)
	idx := 0
	for i, count := range counts {
		rails[i] = clean[idx : idx+count]
		idx += count
	}

	out := make([]rune, 0, n)
	read := make([]int, k.Rails)
	for rail, dir, i := 0, 1, 0; i < n; i++ {
		out = append(out, rails[rail][read[rail]])
		read[rail]++
		rail += dir
		if rail == 0 || rail == k.Rails-1 {
			dir = -dir
		}
	}
	return &Result{Algorithm: c.id, Input: text, Output: string(out), Key: k.Describe()}, nil
}

// columnarCipher writes the message in rows under the keyword and reads the
// columns in the keyword's alphabetical order.
type columnarCipher struct {
	letterCipher
	filler rune
}

func newColumnar(opts Options) *columnarCipher {
	return &columnarCipher{
		letterCipher: letterCipher{
			base: base{
				id:     "columnar",
				name:   "Columnar Transposition",
				family: FamilyTransposition,
				description: "Writes the plaintext in rows under a keyword and reads " +
					"columns in the alphabetical order of the keyword letters. Widely used " +
					"in both world wars.",
				keyHint: "keyword: at least two letters",
			},
			alpha:  alphabet.Upper(),
			policy: opts.Policy,
		},
		filler: opts.Filler,
	}
}

func (c *columnarCipher) ValidateKey(params Params) (Key, error) {
	raw, err := params.String("keyword")
	if err != nil {
		return nil, err
	}
	word := strings.ReplaceAll(strings.ToUpper(raw), " ", "")
	if word == "" {
		return nil, keyErr(c.id, ErrEmptyKey, "keyword is required")
	}
	for _, r := range word {
		if !c.alpha.Contains(r) {
			return nil, keyErr(c.id, ErrInvalidSymbol, "keyword contains %q", r)
		}
	}
	if len(word) < 2 {
		return nil, keyErr(c.id, ErrInvalidKeyLength, "keyword needs at least two letters")
	}
	return ColumnKey{Word: word, Order: columnOrder(word)}, nil
}

// columnOrder returns the column indices in the order they are read:
// lexicographic rank of the keyword letters, ties broken by position.
func columnOrder(word string) []int {
	runes := []rune(word)
	order := make([]int, len(runes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return runes[order[a]] < runes[order[b]]
	})
	return order
}

func (c *columnarCipher) Encrypt(text string, key Key) (*Result, error) {
	k, ok := key.(ColumnKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	if err := c.checkPolicy(text); err != nil {
		return nil, err
	}
	clean := []rune(c.alpha.Normalize(text))
	cols := len(k.Word)
	for len(clean)%cols != 0 {
		clean = append(clean, c.filler)
	}
	rows := len(clean) / cols

	var tr trace
	tr.addf("grid %d rows x %d cols under %s", rows, cols, k.Word)

	out := make([]rune, 0, len(clean))
	for _, col := range k.Order {
		for row := 0; row < rows; row++ {
			out = append(out, clean[row*cols+col])
		}
		tr.addf("column %c (%d) read", rune(k.Word[col]), col)
	}
	return &Result{Algorithm: c.id, Input: text, Output: string(out), Key: k.Describe(), Steps: tr.list()}, nil
}

func (c *columnarCipher) Decrypt(text string, key Key) (*Result, error) {
	k, ok := key.(ColumnKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	if err := c.checkPolicy(text); err != nil {
		return nil, err
	}
	clean := []rune(c.alpha.Normalize(text))
	cols := len(k.Word)
	if len(clean)%cols != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not a multiple of the %d columns", ErrInvalidInput, len(clean), cols)
	}
	rows := len(clean) / cols

	columns := make([][]rune, cols)
	idx := 0
	for _, col := range k.Order {
		columns[col] = clean[idx : idx+rows]
		idx += rows
	}

	out := make([]rune, 0, len(clean))
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			out = append(out, columns[col][row])
		}
	}
	return &Result{Algorithm: c.id, Input: text, Output: string(out), Key: k.Describe()}, nil
}
