package crossword

import (
	"errors"

	"github.com/bodul/arcade3d/lattice"
	"github.com/zyedidia/generic/mapset"
)

// Placement failures. The board is left untouched when TryPlace or TryCross
// returns one of them.
var (
	ErrBadWord          = errors.New("word must only contain letters A-Z")
	ErrUsedWord         = errors.New("word already placed")
	ErrBadDirection     = errors.New("direction is not an axis")
	ErrOutOfBounds      = errors.New("word does not fit in the lattice")
	ErrLetterConflict   = errors.New("letter differs from the one already placed")
	ErrOverlap          = errors.New("word overlaps a word on the same axis")
	ErrParallelAdjacent = errors.New("word touches a parallel word")
	ErrNoIntersection   = errors.New("no matching letter at the crossing cell")
)

// Builder owns a crossword board while it is being filled. TryPlace is the
// only way words get on the board.
type Builder struct {
	board *Board
	words []*Word
	used  mapset.Set[string]
}

// NewBuilder starts an empty board of side size.
func NewBuilder(size int) *Builder {
	return &Builder{
		board: newBoard(size),
		used:  mapset.New[string](),
	}
}

// Len returns the number of placed words.
func (b *Builder) Len() int { return len(b.words) }

// Used reports whether the literal word is already on the board.
func (b *Builder) Used(word string) bool {
	w, ok := normalizeWord(word)
	return ok && b.used.Has(w)
}

// TryPlace lays e from anchor along dir. Every occupied cell it covers must
// already hold the same letter and belong to words on other axes, and none of
// its cells may touch a cell of a word on the same axis.
func (b *Builder) TryPlace(e Entry, anchor lattice.Coord, dir lattice.Vec) (*Word, error) {
	text, ok := normalizeWord(e.Word)
	if !ok {
		return nil, ErrBadWord
	}
	if b.used.Has(text) {
		return nil, ErrUsedWord
	}
	if !dir.IsAxis() {
		return nil, ErrBadDirection
	}

	size := b.board.Size()
	axis := dir.Axis()
	cells := make([]lattice.Coord, len(text))
	for i := range cells {
		cells[i] = anchor.Step(dir, i)
		if !cells[i].In(size) {
			return nil, ErrOutOfBounds
		}
	}

	for i, c := range cells {
		wc := b.board.At(c)
		if wc == nil {
			continue
		}
		if wc.Correct != text[i] {
			return nil, ErrLetterConflict
		}
		if b.onAxis(wc, axis) {
			return nil, ErrOverlap
		}
	}

	own := mapset.New[lattice.Coord]()
	for _, c := range cells {
		own.Put(c)
	}
	for _, c := range cells {
		for _, d := range lattice.Axes {
			n := c.Add(d)
			if !n.In(size) || own.Has(n) {
				continue
			}
			if wc := b.board.At(n); wc != nil && b.onAxis(wc, axis) {
				return nil, ErrParallelAdjacent
			}
		}
	}

	w := &Word{
		ID:         len(b.words),
		Text:       text,
		Definition: e.Definition,
		Anchor:     anchor,
		Dir:        dir,
		Cells:      cells,
	}
	for i, c := range cells {
		wc := b.board.At(c)
		if wc == nil {
			wc = &WordCell{Correct: text[i], Members: mapset.New[int]()}
			b.board.grid.Set(c, wc)
		}
		wc.Members.Put(w.ID)
	}
	b.words = append(b.words, w)
	b.used.Put(text)
	return w, nil
}

// TryCross places e so that its letter at index lands on the occupied cell
// at, then applies the TryPlace rules.
func (b *Builder) TryCross(e Entry, at lattice.Coord, index int, dir lattice.Vec) (*Word, error) {
	text, ok := normalizeWord(e.Word)
	if !ok {
		return nil, ErrBadWord
	}
	wc := b.board.At(at)
	if wc == nil || index < 0 || index >= len(text) || wc.Correct != text[index] {
		return nil, ErrNoIntersection
	}
	return b.TryPlace(e, at.Step(dir, -index), dir)
}

// onAxis reports whether a word through wc runs along axis.
func (b *Builder) onAxis(wc *WordCell, axis int) bool {
	found := false
	wc.Members.Each(func(id int) {
		if b.words[id].Dir.Axis() == axis {
			found = true
		}
	})
	return found
}

// Puzzle hands the board and words over to the caller. The builder must not
// be used afterwards.
func (b *Builder) Puzzle() *Puzzle {
	return &Puzzle{
		Size:  b.board.Size(),
		Board: b.board,
		Words: b.words,
	}
}
