package crossword

import (
	"errors"

	"github.com/bodul/arcade3d/lattice"
)

var (
	ErrNotWordCell = errors.New("no word passes through this cell")
	ErrBadLetter   = errors.New("letter must be A-Z")
	ErrEmptyCell   = errors.New("cell has no letter")
)

// Puzzle is a generated crossword together with the letters entered so far.
type Puzzle struct {
	Size  int
	Board *Board
	Words []*Word
}

func (p *Puzzle) cell(c lattice.Coord) (*WordCell, error) {
	wc := p.Board.At(c)
	if wc == nil {
		return nil, ErrNotWordCell
	}
	return wc, nil
}

// Enter writes letter at c. Lower case is folded; 0 erases the cell. Any
// hint or check mark on the cell is cleared.
func (p *Puzzle) Enter(c lattice.Coord, letter byte) error {
	wc, err := p.cell(c)
	if err != nil {
		return err
	}
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	if letter != 0 && (letter < 'A' || letter > 'Z') {
		return ErrBadLetter
	}
	wc.Current = letter
	wc.State = CellUnchecked
	return nil
}

// Check reports whether the letter entered at c is the correct one and
// marks the cell Correct or Wrong.
func (p *Puzzle) Check(c lattice.Coord) (bool, error) {
	wc, err := p.cell(c)
	if err != nil {
		return false, err
	}
	if wc.Current == 0 {
		return false, ErrEmptyCell
	}
	ok := wc.Current == wc.Correct
	if ok {
		wc.State = CellCorrect
	} else {
		wc.State = CellWrong
	}
	return ok, nil
}

// Hint fills a random empty word cell with its correct letter, marks it
// Hinted and returns it. It returns false when every word cell already holds a letter.
func (p *Puzzle) Hint(r Rand) (lattice.Coord, bool) {
	if r == nil {
		r = globalRand{}
	}
	var empty []lattice.Coord
	for _, c := range p.Board.Cells() {
		if p.Board.At(c).Current == 0 {
			empty = append(empty, c)
		}
	}
	if len(empty) == 0 {
		return lattice.Coord{}, false
	}
	c := empty[r.IntN(len(empty))]
	wc := p.Board.At(c)
	wc.Current = wc.Correct
	wc.State = CellHinted
	return c, true
}

// Complete reports whether every word cell holds its correct letter.
// A puzzle without words is never complete.
func (p *Puzzle) Complete() bool {
	cells := p.Board.Cells()
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		wc := p.Board.At(c)
		if wc.Current != wc.Correct {
			return false
		}
	}
	return true
}

// WordsAt returns the words through c ordered by id.
func (p *Puzzle) WordsAt(c lattice.Coord) []*Word {
	wc := p.Board.At(c)
	if wc == nil {
		return nil
	}
	ids := wc.WordIDs()
	out := make([]*Word, 0, len(ids))
	for _, id := range ids {
		out = append(out, p.Words[id])
	}
	return out
}
