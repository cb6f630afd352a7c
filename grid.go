package main

import (
	"time"

	"github.com/bodul/arcade3d/connectfour"
	"github.com/bodul/arcade3d/lattice"
)

// CellView is a word cell as seen by the solver. Letter is what was
// entered, never the solution.
type CellView struct {
	lattice.Coord
	Letter string `json:"letter,omitempty"`
	State  string `json:"state,omitempty"` // "hinted", "correct" or "wrong"
	Words  []int  `json:"words"`
}

// WordView is a clue: where the word starts, where it goes, how long it is.
type WordView struct {
	ID         int           `json:"id"`
	Definition string        `json:"definition"`
	Anchor     lattice.Coord `json:"anchor"`
	Direction  string        `json:"direction"`
	Length     int           `json:"length"`
}

type CrosswordView struct {
	ID         string     `json:"id"`
	Size       int        `json:"size"`
	Difficulty string     `json:"difficulty"`
	Cells      []CellView `json:"cells"`
	Words      []WordView `json:"words"`
	Complete   bool       `json:"complete"`
	CreatedAt  time.Time  `json:"created_at"`
}

type CrosswordSummary struct {
	ID         string    `json:"id"`
	Size       int       `json:"size"`
	Difficulty string    `json:"difficulty"`
	Words      int       `json:"words"`
	Complete   bool      `json:"complete"`
	CreatedAt  time.Time `json:"created_at"`
}

type CheckView struct {
	Correct  bool `json:"correct"`
	Complete bool `json:"complete"`
}

type HintView struct {
	lattice.Coord
	Letter   string `json:"letter"`
	Complete bool   `json:"complete"`
}

// caller holds s.mu
func newCrosswordView(s *CrosswordSession) CrosswordView {
	p := s.puzzle
	v := CrosswordView{
		ID:         s.ID,
		Size:       p.Size,
		Difficulty: s.Difficulty,
		Cells:      []CellView{},
		Words:      make([]WordView, 0, len(p.Words)),
		Complete:   p.Complete(),
		CreatedAt:  s.CreatedAt,
	}
	for _, c := range p.Board.Cells() {
		wc := p.Board.At(c)
		cv := CellView{Coord: c, State: wc.State.String(), Words: wc.WordIDs()}
		if wc.Current != 0 {
			cv.Letter = string(wc.Current)
		}
		v.Cells = append(v.Cells, cv)
	}
	for _, w := range p.Words {
		v.Words = append(v.Words, WordView{
			ID:         w.ID,
			Definition: w.Definition,
			Anchor:     w.Anchor,
			Direction:  w.Dir.String(),
			Length:     len(w.Text),
		})
	}
	return v
}

// PieceView is one occupied cell of a Connect-Four board.
type PieceView struct {
	lattice.Coord
	Seat connectfour.Player `json:"seat"`
}

type ConnectFourView struct {
	ID        string             `json:"id"`
	Size      int                `json:"size"`
	Players   []*Player          `json:"players"`
	Pieces    []PieceView        `json:"pieces"`
	Heights   [][]int            `json:"heights"` // [x][z] landing y, -1 when full
	Next      connectfour.Player `json:"next"`
	Over      bool               `json:"over"`
	Winner    connectfour.Player `json:"winner"`
	Winning   []lattice.Coord    `json:"winning,omitempty"`
	Moves     int                `json:"moves"`
	Last      *lattice.Coord     `json:"last,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

type MoveView struct {
	lattice.Coord
	Seat    connectfour.Player `json:"seat"`
	Next    connectfour.Player `json:"next"`
	Over    bool               `json:"over"`
	Winner  connectfour.Player `json:"winner"`
	Winning []lattice.Coord    `json:"winning,omitempty"`
}

// caller holds s.mu
func newConnectFourView(s *ConnectFourSession) ConnectFourView {
	g := s.game
	v := ConnectFourView{
		ID:        s.ID,
		Size:      g.Size,
		Players:   s.Players,
		Pieces:    []PieceView{},
		Heights:   make([][]int, g.Size),
		Next:      g.Next,
		Over:      g.Over,
		Winner:    g.Winner,
		Winning:   g.Winning,
		Moves:     g.Moves,
		Last:      g.Last,
		CreatedAt: s.CreatedAt,
	}
	for x := range g.Size {
		v.Heights[x] = make([]int, g.Size)
		for z := range g.Size {
			v.Heights[x][z] = g.Height(x, z)
		}
	}
	g.Board.Each(func(c lattice.Coord, p connectfour.Player) {
		if p != connectfour.Empty {
			v.Pieces = append(v.Pieces, PieceView{Coord: c, Seat: p})
		}
	})
	return v
}
