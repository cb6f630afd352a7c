// Package crossword generates 3D crossword puzzles: words laid along the
// axes of a cubic lattice, each new word crossing one already placed.
package crossword

import (
	"fmt"
	"sort"

	"github.com/bodul/arcade3d/lattice"
	"github.com/zyedidia/generic/mapset"
)

// CellState is the feedback attached to a word cell by hints and checks.
type CellState uint8

const (
	CellUnchecked CellState = iota
	CellHinted              // letter revealed by Hint
	CellCorrect             // last Check matched
	CellWrong               // last Check did not match
)

var cellStateNames = [...]string{"", "hinted", "correct", "wrong"}

func (s CellState) String() string {
	if int(s) < len(cellStateNames) {
		return cellStateNames[s]
	}
	return fmt.Sprintf("CellState(%d)", s)
}

// WordCell is a lattice cell that at least one word passes through.
type WordCell struct {
	Correct byte      // letter required when solved, never changes once set
	Current byte      // letter entered by the player, 0 when empty
	State   CellState // cleared whenever Current changes through Enter
	Members mapset.Set[int]
}

// WordIDs returns the ids of the words through the cell, ascending.
func (c *WordCell) WordIDs() []int {
	ids := make([]int, 0, c.Members.Size())
	c.Members.Each(func(id int) {
		ids = append(ids, id)
	})
	sort.Ints(ids)
	return ids
}

// Intersection reports whether more than one word crosses the cell.
func (c *WordCell) Intersection() bool {
	return c.Members.Size() > 1
}

// Word is a placed word. It does not change after placement.
type Word struct {
	ID         int             `json:"id"`
	Text       string          `json:"text"`
	Definition string          `json:"definition"`
	Anchor     lattice.Coord   `json:"anchor"`
	Dir        lattice.Vec     `json:"direction"`
	Cells      []lattice.Coord `json:"cells"`
}

// Board is the crossword lattice. A nil cell is empty.
type Board struct {
	grid *lattice.Grid[*WordCell]
}

func newBoard(size int) *Board {
	return &Board{grid: lattice.NewGrid[*WordCell](size)}
}

// Size returns the side length of the lattice.
func (b *Board) Size() int { return b.grid.Size() }

// At returns the word cell at c, or nil when no word passes there.
func (b *Board) At(c lattice.Coord) *WordCell { return b.grid.At(c) }

// Cells lists the coordinates of every word cell in x, y, z order.
func (b *Board) Cells() []lattice.Coord {
	var out []lattice.Coord
	b.grid.Each(func(c lattice.Coord, wc *WordCell) {
		if wc != nil {
			out = append(out, c)
		}
	})
	return out
}
