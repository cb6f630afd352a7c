package connectfour

import (
	"errors"

	"github.com/bodul/arcade3d/lattice"
)

var (
	ErrColumnOutOfRange = errors.New("column out of range")
	ErrColumnFull       = errors.New("column full")
	ErrInvalidPlayer    = errors.New("invalid player")
	ErrInvalidPlayers   = errors.New("player count must be between 2 and 8")
	ErrInvalidSize      = errors.New("board size must be between 4 and 9")
	ErrGameOver         = errors.New("game over")
)

// Board sizes accepted by NewGame.
const (
	MinSize = WinLength
	MaxSize = 9
)

// Game holds the mutable state of one 3D Connect-Four match.
type Game struct {
	Size    int
	Players int
	Board   *Board
	Next    Player          // player to move
	Over    bool            // true after a win or a draw
	Winner  Player          // Empty on a draw or while playing
	Winning []lattice.Coord // cells of the winning line
	Moves   int             // pieces placed so far
	Last    *lattice.Coord  // landing cell of the last move
}

// NewGame creates an empty game for the given board size and player count.
func NewGame(size, players int) (*Game, error) {
	if size < MinSize || size > MaxSize {
		return nil, ErrInvalidSize
	}
	if players < MinPlayers || players > MaxPlayers {
		return nil, ErrInvalidPlayers
	}
	return &Game{
		Size:    size,
		Players: players,
		Board:   NewBoard(size),
		Next:    1,
	}, nil
}

// Drop lets a piece fall down column (x, z) and returns where it landed.
// Height grows along +y from y = 0.
func Drop(board *Board, x, z int, p Player) (lattice.Coord, error) {
	n := board.Size()
	if x < 0 || x >= n || z < 0 || z >= n {
		return lattice.Coord{}, ErrColumnOutOfRange
	}
	if p == Empty || p > MaxPlayers {
		return lattice.Coord{}, ErrInvalidPlayer
	}
	for y := 0; y < n; y++ {
		c := lattice.C(x, y, z)
		if board.At(c) == Empty {
			board.Set(c, p)
			return c, nil
		}
	}
	return lattice.Coord{}, ErrColumnFull
}

// Full reports whether every cell is taken.
func (g *Game) Full() bool {
	return g.Moves >= g.Size*g.Size*g.Size
}

// Play drops the current player's piece in column (x, z), then ends the game
// on a win or a full board, or passes the turn.
func (g *Game) Play(x, z int) (lattice.Coord, error) {
	if g.Over {
		return lattice.Coord{}, ErrGameOver
	}
	c, err := Drop(g.Board, x, z, g.Next)
	if err != nil {
		return lattice.Coord{}, err
	}
	g.Moves++
	g.Last = &c

	if run := DetectWin(g.Board, c, g.Next, g.Size); run != nil {
		g.Over, g.Winner, g.Winning = true, g.Next, run
		return c, nil
	}
	if g.Full() {
		g.Over = true
		return c, nil
	}
	g.Next = g.nextPlayer()
	return c, nil
}

func (g *Game) nextPlayer() Player {
	if int(g.Next) >= g.Players {
		return 1
	}
	return g.Next + 1
}

// Height returns the landing height of the next piece in column (x, z),
// or -1 when the column is full or out of range.
func (g *Game) Height(x, z int) int {
	if x < 0 || x >= g.Size || z < 0 || z >= g.Size {
		return -1
	}
	for y := 0; y < g.Size; y++ {
		if g.Board.At(lattice.C(x, y, z)) == Empty {
			return y
		}
	}
	return -1
}

// Reset clears the board and keeps size and player count.
func (g *Game) Reset() {
	*g = Game{
		Size:    g.Size,
		Players: g.Players,
		Board:   NewBoard(g.Size),
		Next:    1,
	}
}
