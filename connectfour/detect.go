// Package connectfour implements 3D Connect-Four on a cubic lattice: the
// pivot-scoped win detector and the game controller that drives it.
package connectfour

import (
	"fmt"

	"github.com/bodul/arcade3d/lattice"
)

const (
	// WinLength is the number of aligned pieces needed to win.
	WinLength = 4
	// MinPlayers and MaxPlayers bound the player count of a game.
	MinPlayers = 2
	MaxPlayers = 8
)

// Player is a cell value: Empty or a player id in 1..MaxPlayers.
type Player uint8

// Empty marks a free cell.
const Empty Player = 0

// Board is the game lattice.
type Board = lattice.Grid[Player]

// NewBoard creates an empty board of side size.
func NewBoard(size int) *Board {
	return lattice.NewGrid[Player](size)
}

// DetectWin scans the 13 lines through pivot and returns the cells of the
// first run of at least WinLength pieces of player, pivot first. It returns
// nil when no line through pivot is long enough; runs elsewhere on the board
// are ignored.
//
// The caller places the piece before calling, and gridSize must match the
// board. Both are only checked in debug builds.
func DetectWin(board *Board, pivot lattice.Coord, player Player, gridSize int) []lattice.Coord {
	if lattice.Debug {
		if gridSize != board.Size() {
			panic(fmt.Sprintf("connectfour: grid size %d does not match board size %d", gridSize, board.Size()))
		}
		if board.At(pivot) != player {
			panic(fmt.Sprintf("connectfour: pivot %v does not hold player %d", pivot, player))
		}
	}

	for _, d := range lattice.Lines {
		run := []lattice.Coord{pivot}
		run = walk(board, run, pivot, d, player, gridSize)
		run = walk(board, run, pivot, d.Neg(), player, gridSize)
		if len(run) >= WinLength {
			return run
		}
	}
	return nil
}

// walk appends the consecutive cells of player found stepping from pivot
// along d.
func walk(board *Board, run []lattice.Coord, pivot lattice.Coord, d lattice.Vec, player Player, gridSize int) []lattice.Coord {
	c := pivot.Add(d)
	for c.In(gridSize) && board.At(c) == player {
		run = append(run, c)
		c = c.Add(d)
	}
	return run
}
