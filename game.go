package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/bodul/arcade3d/connectfour"
	"github.com/bodul/arcade3d/crossword"
	"github.com/bodul/arcade3d/lattice"
)

// Player is one seat of a Connect-Four session.
type Player struct {
	Seat   connectfour.Player `json:"seat"`
	Pseudo string             `json:"pseudo"`
	Color  string             `json:"color"`
}

// playerColors is the palette assigned to seats in order.
var playerColors = []string{
	"#dc2626", "#3b82f6", "#eab308", "#22c55e",
	"#fb923c", "#f9a8d4", "#ffffff", "#1f2937",
}

// CrosswordSession is a generated puzzle being solved.
type CrosswordSession struct {
	ID         string
	Difficulty string
	CreatedAt  time.Time
	puzzle     *crossword.Puzzle
	mu         sync.Mutex
}

// Enter writes a letter, or erases the cell when letter is 0.
func (s *CrosswordSession) Enter(c lattice.Coord, letter byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puzzle.Enter(c, letter)
}

// Check compares the letter at c with the solution and marks the cell.
func (s *CrosswordSession) Check(c lattice.Coord) (CheckView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.puzzle.Check(c)
	if err != nil {
		return CheckView{}, err
	}
	return CheckView{Correct: ok, Complete: ok && s.puzzle.Complete()}, nil
}

// Hint reveals one empty cell. ok is false once every cell is filled.
func (s *CrosswordSession) Hint() (h HintView, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.puzzle.Hint(nil)
	if !ok {
		return HintView{}, false
	}
	return HintView{
		Coord:    c,
		Letter:   string(s.puzzle.Board.At(c).Correct),
		Complete: s.puzzle.Complete(),
	}, true
}

// View snapshots the puzzle without its solution.
func (s *CrosswordSession) View() CrosswordView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return newCrosswordView(s)
}

func (s *CrosswordSession) Summary() CrosswordSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CrosswordSummary{
		ID:         s.ID,
		Size:       s.puzzle.Size,
		Difficulty: s.Difficulty,
		Words:      len(s.puzzle.Words),
		Complete:   s.puzzle.Complete(),
		CreatedAt:  s.CreatedAt,
	}
}

// ConnectFourSession is a 3D Connect-Four match shared by its seats.
type ConnectFourSession struct {
	ID        string
	Players   []*Player
	CreatedAt time.Time
	game      *connectfour.Game
	mu        sync.Mutex
}

func newConnectFourSession(size int, pseudos []string) (*ConnectFourSession, error) {
	if len(pseudos) > connectfour.MaxPlayers {
		return nil, connectfour.ErrInvalidPlayers
	}
	g, err := connectfour.NewGame(size, len(pseudos))
	if err != nil {
		return nil, err
	}
	players := make([]*Player, len(pseudos))
	for i, p := range pseudos {
		if p == "" {
			p = fmt.Sprintf("Joueur %d", i+1)
		}
		players[i] = &Player{
			Seat:   connectfour.Player(i + 1),
			Pseudo: p,
			Color:  playerColors[i%len(playerColors)],
		}
	}
	return &ConnectFourSession{
		ID:        generateID(),
		Players:   players,
		CreatedAt: time.Now(),
		game:      g,
	}, nil
}

// Play drops a piece for the seat whose turn it is.
func (s *ConnectFourSession) Play(x, z int) (MoveView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seat := s.game.Next
	c, err := s.game.Play(x, z)
	if err != nil {
		return MoveView{}, err
	}
	return MoveView{
		Coord:   c,
		Seat:    seat,
		Next:    s.game.Next,
		Over:    s.game.Over,
		Winner:  s.game.Winner,
		Winning: s.game.Winning,
	}, nil
}

func (s *ConnectFourSession) Reset() ConnectFourView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.Reset()
	return newConnectFourView(s)
}

func (s *ConnectFourSession) View() ConnectFourView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return newConnectFourView(s)
}
