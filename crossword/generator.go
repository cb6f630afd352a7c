package crossword

import (
	"io"
	"log"
	"maps"
	"math/rand/v2"
	"strings"

	"github.com/bodul/arcade3d/lattice"
)

// DefaultMaxAttempts bounds consecutive failed growth steps.
const DefaultMaxAttempts = 1000

// defaultTargets maps a grid size to the number of words a puzzle aims for.
// Sizes missing from the map aim for defaultTarget words.
var defaultTargets = map[int]int{5: 10, 7: 15, 9: 20}

const defaultTarget = 10

// Rand is the random source used by the generator. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// globalRand forwards to the goroutine-safe top-level functions of
// math/rand/v2.
type globalRand struct{}

func (globalRand) IntN(n int) int                     { return rand.IntN(n) }
func (globalRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

type options struct {
	rng         Rand
	maxAttempts int
	targets     map[int]int
	logger      *log.Logger
}

// Option configures Generate.
type Option func(*options)

// WithRand sets the random source. Two runs with equally seeded sources and
// the same inputs produce the same puzzle.
func WithRand(r Rand) Option {
	return func(o *options) {
		if r != nil {
			o.rng = r
		}
	}
}

// WithSeed is WithRand with a PCG source seeded from seed.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithMaxAttempts sets how many growth steps in a row may fail before the
// generator gives up.
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxAttempts = n
		}
	}
}

// WithTargets overrides the target word count per grid size. The map is
// copied.
func WithTargets(targets map[int]int) Option {
	targets = maps.Clone(targets)
	return func(o *options) {
		if len(targets) > 0 {
			o.targets = targets
		}
	}
}

// WithLogger traces generation steps to l.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func (o *options) target(size int) int {
	if n, ok := o.targets[size]; ok && n > 0 {
		return n
	}
	return defaultTarget
}

// TargetWords returns the default target word count for a grid size.
func TargetWords(size int) int {
	o := options{targets: defaultTargets}
	return o.target(size)
}

// GenerateDifficulty builds a puzzle from the word list registered for
// difficulty.
func GenerateDifficulty(gridSize int, difficulty string, opts ...Option) *Puzzle {
	return Generate(gridSize, WordList(difficulty), opts...)
}

// Generate builds a puzzle in a gridSize lattice from entries. The first word
// is laid along +x, centered on the z = gridSize-1 face; every later word
// crosses a word already placed. Generation stops at the target word count,
// after too many failed steps in a row, or when no word is left to try. The
// result may hold fewer words than the target, or none if no entry fits.
func Generate(gridSize int, entries []Entry, opts ...Option) *Puzzle {
	o := options{
		rng:         globalRand{},
		maxAttempts: DefaultMaxAttempts,
		targets:     defaultTargets,
		logger:      log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(&o)
	}

	b := NewBuilder(gridSize)

	var pool []Entry
	for _, e := range normalizeEntries(entries) {
		if len(e.Word) <= gridSize {
			pool = append(pool, e)
		}
	}
	if len(pool) == 0 {
		o.logger.Printf("crossword: no word fits in grid size %d", gridSize)
		return b.Puzzle()
	}

	seed := pool[o.rng.IntN(len(pool))]
	anchor := lattice.C((gridSize-len(seed.Word))/2, gridSize/2, gridSize-1)
	if _, err := b.TryPlace(seed, anchor, lattice.PosX); err != nil {
		o.logger.Printf("crossword: seed %s rejected: %v", seed.Word, err)
		return b.Puzzle()
	}

	target := o.target(gridSize)
	failures := 0
	for b.Len() < target && failures < o.maxAttempts && b.Len() < len(pool) {
		spots := b.crossings()
		if len(spots) == 0 {
			break
		}
		if b.grow(spots[o.rng.IntN(len(spots))], pool, o.rng) {
			failures = 0
			continue
		}
		failures++
	}
	o.logger.Printf("crossword: placed %d/%d words in grid size %d", b.Len(), target, gridSize)
	return b.Puzzle()
}

// crossing is a cell of a placed word where a new word may cross it.
type crossing struct {
	at     lattice.Coord
	letter byte
	word   *Word
}

func (b *Builder) crossings() []crossing {
	var out []crossing
	for _, w := range b.words {
		for i, c := range w.Cells {
			out = append(out, crossing{at: c, letter: w.Text[i], word: w})
		}
	}
	return out
}

// grow tries to place one unused word through spot. Candidate words and
// directions are shuffled; the first valid placement wins.
func (b *Builder) grow(spot crossing, pool []Entry, rng Rand) bool {
	var candidates []Entry
	for _, e := range pool {
		if !b.used.Has(e.Word) && strings.IndexByte(e.Word, spot.letter) >= 0 {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return false
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	// A crossing word must not share the axis of the word it crosses.
	dirs := make([]lattice.Vec, 0, len(lattice.Axes))
	for _, d := range lattice.Axes {
		if d.Axis() != spot.word.Dir.Axis() {
			dirs = append(dirs, d)
		}
	}
	rng.Shuffle(len(dirs), func(i, j int) {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	})

	for _, e := range candidates {
		for i := 0; i < len(e.Word); i++ {
			if e.Word[i] != spot.letter {
				continue
			}
			for _, d := range dirs {
				if _, err := b.TryCross(e, spot.at, i, d); err == nil {
					return true
				}
			}
		}
	}
	return false
}
