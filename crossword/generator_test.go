package crossword

import (
	"bytes"
	"fmt"
	"log"
	"math/rand/v2"
	"testing"

	"github.com/bodul/arcade3d/lattice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkPuzzle asserts the invariants every generated puzzle must hold.
func checkPuzzle(t *testing.T, p *Puzzle) {
	t.Helper()

	seen := make(map[string]bool)
	for id, w := range p.Words {
		require.Equal(t, id, w.ID)
		assert.False(t, seen[w.Text], "word %s used twice", w.Text)
		seen[w.Text] = true
		assert.True(t, w.Dir.IsAxis(), "word %s direction %v", w.Text, w.Dir)
		require.Len(t, w.Cells, len(w.Text))

		for i, c := range w.Cells {
			assert.Equal(t, w.Anchor.Step(w.Dir, i), c)
			assert.True(t, c.In(p.Size), "word %s leaves the lattice at %v", w.Text, c)
			wc := p.Board.At(c)
			require.NotNil(t, wc, "word %s cell %v missing", w.Text, c)
			assert.Equal(t, w.Text[i], wc.Correct, "letters disagree at %v", c)
			assert.True(t, wc.Members.Has(w.ID))
		}
	}

	for _, c := range p.Board.Cells() {
		wc := p.Board.At(c)
		require.NotEmpty(t, wc.WordIDs())
		for _, id := range wc.WordIDs() {
			assert.Contains(t, p.Words[id].Cells, c)
		}
	}

	for i, a := range p.Words {
		for _, b := range p.Words[i+1:] {
			if a.Dir.Axis() != b.Dir.Axis() {
				continue
			}
			for _, ca := range a.Cells {
				assert.NotContains(t, b.Cells, ca, "%s and %s overlap", a.Text, b.Text)
				for _, d := range lattice.Axes {
					n := ca.Add(d)
					if containsCoord(a.Cells, n) {
						continue
					}
					assert.NotContains(t, b.Cells, n, "%s and %s are flush", a.Text, b.Text)
				}
			}
		}
	}

	// Every word after the seed crosses an earlier one.
	for _, w := range p.Words[min(1, len(p.Words)):] {
		crosses := false
		for _, c := range w.Cells {
			for _, id := range p.Board.At(c).WordIDs() {
				if id < w.ID {
					crosses = true
				}
			}
		}
		assert.True(t, crosses, "word %s is disconnected", w.Text)
	}
}

func containsCoord(cells []lattice.Coord, c lattice.Coord) bool {
	for _, x := range cells {
		if x == c {
			return true
		}
	}
	return false
}

func TestGenerateInvariants(t *testing.T) {
	for _, size := range []int{5, 7, 9} {
		for _, difficulty := range []string{"easy", "medium", "hard"} {
			for seed := uint64(1); seed <= 10; seed++ {
				t.Run(fmt.Sprintf("%d/%s/%d", size, difficulty, seed), func(t *testing.T) {
					p := GenerateDifficulty(size, difficulty, WithSeed(seed))
					require.Equal(t, size, p.Size)
					assert.LessOrEqual(t, len(p.Words), TargetWords(size))
					checkPuzzle(t, p)
				})
			}
		}
	}
}

func TestGenerateSeedWord(t *testing.T) {
	p := GenerateDifficulty(5, "easy", WithSeed(7))
	require.NotEmpty(t, p.Words)

	seed := p.Words[0]
	assert.Equal(t, lattice.PosX, seed.Dir)
	assert.Equal(t, 4, seed.Anchor.Z)
	assert.Equal(t, 2, seed.Anchor.Y)
	assert.Equal(t, (5-len(seed.Text))/2, seed.Anchor.X)
}

func TestGenerateGrows(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		p := GenerateDifficulty(5, "easy", WithSeed(seed))
		assert.Greater(t, len(p.Words), 1, "seed %d", seed)
		checkPuzzle(t, p)
	}
}

func TestGenerateReachesTarget(t *testing.T) {
	p := GenerateDifficulty(5, "easy", WithSeed(3), WithTargets(map[int]int{5: 3}))
	assert.Len(t, p.Words, 3)
	checkPuzzle(t, p)
}

func TestGenerateDeterministic(t *testing.T) {
	summary := func(p *Puzzle) []string {
		var out []string
		for _, w := range p.Words {
			out = append(out, fmt.Sprintf("%s@%v%v", w.Text, w.Anchor, w.Dir))
		}
		for _, c := range p.Board.Cells() {
			out = append(out, fmt.Sprintf("%v=%c%v", c, p.Board.At(c).Correct, p.Board.At(c).WordIDs()))
		}
		return out
	}

	a := GenerateDifficulty(9, "medium", WithRand(rand.New(rand.NewPCG(1, 2))))
	b := GenerateDifficulty(9, "medium", WithRand(rand.New(rand.NewPCG(1, 2))))
	assert.Equal(t, summary(a), summary(b))

	c := GenerateDifficulty(9, "medium", WithSeed(99))
	d := GenerateDifficulty(9, "medium", WithSeed(99))
	assert.Equal(t, summary(c), summary(d))
}

func TestGenerateSmallList(t *testing.T) {
	entries := []Entry{{Word: "CAT"}, {Word: "CAR"}, {Word: "ART"}, {Word: "TAR"}}
	for seed := uint64(0); seed < 10; seed++ {
		p := Generate(5, entries, WithSeed(seed))
		require.Greater(t, len(p.Words), 1, "seed %d", seed)
		assert.LessOrEqual(t, len(p.Words), 4)

		// The second word shares a lettered cell with the seed.
		shared := 0
		for _, c := range p.Words[1].Cells {
			if containsCoord(p.Words[0].Cells, c) {
				shared++
				assert.True(t, p.Board.At(c).Intersection())
			}
		}
		assert.Equal(t, 1, shared)
		checkPuzzle(t, p)
	}
}

func TestGenerateDegenerate(t *testing.T) {
	p := Generate(5, nil)
	assert.Empty(t, p.Words)
	assert.Empty(t, p.Board.Cells())

	p = Generate(5, []Entry{{Word: "ELEPHANT"}, {Word: "x-ray"}})
	assert.Empty(t, p.Words)

	// A lone word has nothing to cross.
	p = Generate(5, []Entry{{Word: "sun"}, {Word: "SUN"}}, WithSeed(1))
	require.Len(t, p.Words, 1)
	assert.Equal(t, "SUN", p.Words[0].Text)
}

func TestGenerateMaxAttempts(t *testing.T) {
	// No pair of words shares a letter, so every growth step fails.
	entries := []Entry{{Word: "CAT"}, {Word: "DOG"}, {Word: "SUN"}, {Word: "ELK"}}
	p := Generate(5, entries, WithSeed(5), WithMaxAttempts(3))
	assert.Len(t, p.Words, 1)
}

func TestTargetWords(t *testing.T) {
	assert.Equal(t, 10, TargetWords(5))
	assert.Equal(t, 15, TargetWords(7))
	assert.Equal(t, 20, TargetWords(9))
	assert.Equal(t, 10, TargetWords(6))
}

func TestWithTargetsCopiesMap(t *testing.T) {
	targets := map[int]int{5: 2}
	opt := WithTargets(targets)
	targets[5] = 4

	entries := []Entry{{Word: "CAT"}, {Word: "CAR"}, {Word: "ART"}, {Word: "TAR"}}
	p := Generate(5, entries, WithSeed(0), opt)
	assert.Len(t, p.Words, 2)
}

func TestGenerateLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	entries := []Entry{{Word: "CAT"}, {Word: "CAR"}, {Word: "ART"}, {Word: "TAR"}}
	p := Generate(5, entries, WithSeed(2), WithLogger(logger))
	assert.Contains(t, buf.String(), fmt.Sprintf("crossword: placed %d/10 words in grid size 5", len(p.Words)))

	buf.Reset()
	Generate(3, []Entry{{Word: "ELEPHANT"}}, WithLogger(logger))
	assert.Contains(t, buf.String(), "no word fits in grid size 3")
}
