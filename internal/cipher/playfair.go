package cipher

import (
	"fmt"
	"strings"

	"github.com/RowanDark/cipherlab/internal/alphabet"
)

const playfairAlphabet = "ABCDEFGHIKLMNOPQRSTUVWXYZ" // I/J merged

// PlayfairKey is the validated 5x5 key square with a position index for each
// letter. The square is always constructible from a keyword with at least one
// letter.
type PlayfairKey struct {
	Grid    [5][5]rune
	pos     map[rune][2]int
	Keyword string
	Filler  rune
}

func (k PlayfairKey) Describe() string { return fmt.Sprintf("keyword=%s", k.Keyword) }

// playfairCipher encrypts digraphs against a 5x5 key square.
type playfairCipher struct {
	letterCipher
	filler rune
}

func newPlayfair(opts Options) *playfairCipher {
	return &playfairCipher{
		letterCipher: letterCipher{
			base: base{
				id:     "playfair",
				name:   "Playfair Cipher",
				family: FamilyDigraph,
				description: "Encrypts letter pairs against a 5x5 key square with I and J " +
					"merged. Invented by Wheatstone in 1854 and used by the British in WWI.",
				keyHint: "keyword: letters, generates the 5x5 square",
			},
			alpha:  alphabet.Upper(),
			policy: opts.Policy,
		},
		filler: opts.Filler,
	}
}

func (c *playfairCipher) ValidateKey(params Params) (Key, error) {
	raw, err := params.String("keyword")
	if err != nil {
		return nil, err
	}
	keyword := c.alpha.Normalize(raw)
	if keyword == "" {
		return nil, keyErr(c.id, ErrEmptyKey, "keyword needs at least one letter")
	}

	key := PlayfairKey{Keyword: keyword, Filler: c.filler, pos: make(map[rune][2]int, 25)}

	seen := make(map[rune]bool, 25)
	cells := make([]rune, 0, 25)
	add := func(r rune) {
		if r == 'J' {
			r = 'I'
		}
		if !seen[r] {
			seen[r] = true
			cells = append(cells, r)
		}
	}
	for _, r := range keyword {
		add(r)
	}
	for _, r := range playfairAlphabet {
		add(r)
	}

	for i, r := range cells {
		key.Grid[i/5][i%5] = r
		key.pos[r] = [2]int{i / 5, i % 5}
	}
	return key, nil
}

// prepare splits the text into digraphs: J maps to I, doubled letters and an
// odd tail are padded with the filler.
func (c *playfairCipher) prepare(text string) []string {
	clean := strings.ReplaceAll(c.alpha.Normalize(text), "J", "I")
	runes := []rune(clean)

	var digraphs []string
	for i := 0; i < len(runes); {
		switch {
		case i+1 >= len(runes):
			digraphs = append(digraphs, string([]rune{runes[i], c.filler}))
			i++
		case runes[i] == runes[i+1]:
			digraphs = append(digraphs, string([]rune{runes[i], c.filler}))
			i++
		default:
			digraphs = append(digraphs, string(runes[i:i+2]))
			i += 2
		}
	}
	return digraphs
}

func (c *playfairCipher) Encrypt(text string, key Key) (*Result, error) {
	k, ok := key.(PlayfairKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	if err := c.checkPolicy(text); err != nil {
		return nil, err
	}

	var tr trace
	for row := 0; row < 5; row++ {
		tr.addf("square row %d: %s", row, string(k.Grid[row][:]))
	}

	var out strings.Builder
	for _, dg := range c.prepare(text) {
		a, b := c.transformPair(k, []rune(dg), 1)
		tr.addf("%s -> %c%c", dg, a, b)
		out.WriteRune(a)
		out.WriteRune(b)
	}
	return &Result{Algorithm: c.id, Input: text, Output: out.String(), Key: k.Describe(), Steps: tr.list()}, nil
}

func (c *playfairCipher) Decrypt(text string, key Key) (*Result, error) {
	k, ok := key.(PlayfairKey)
	if !ok {
		return nil, wrongKeyType(c.id, key)
	}
	if err := c.checkPolicy(text); err != nil {
		return nil, err
	}

	clean := strings.ReplaceAll(c.alpha.Normalize(text), "J", "I")
	runes := []rune(clean)
	if len(runes)%2 != 0 {
		return nil, fmt.Errorf("%w: playfair ciphertext must have an even number of letters, got %d", ErrInvalidInput, len(runes))
	}

	var out strings.Builder
	for i := 0; i < len(runes); i += 2 {
		a, b := c.transformPair(k, runes[i:i+2], -1)
		out.WriteRune(a)
		out.WriteRune(b)
	}
	return &Result{Algorithm: c.id, Input: text, Output: out.String(), Key: k.Describe()}, nil
}

// transformPair applies the row/column/rectangle rules; dir is +1 for
// encryption and -1 for decryption.
func (c *playfairCipher) transformPair(k PlayfairKey, pair []rune, dir int) (rune, rune) {
	p1 := k.pos[pair[0]]
	p2 := k.pos[pair[1]]
	r1, c1 := p1[0], p1[1]
	r2, c2 := p2[0], p2[1]

	switch {
	case r1 == r2:
		return k.Grid[r1][mod5(c1+dir)], k.Grid[r2][mod5(c2+dir)]
	case c1 == c2:
		return k.Grid[mod5(r1+dir)][c1], k.Grid[mod5(r2+dir)][c2]
	default:
		return k.Grid[r1][c2], k.Grid[r2][c1]
	}
}

func mod5(i int) int {
	i %= 5
	if i < 0 {
		i += 5
	}
	return i
}
