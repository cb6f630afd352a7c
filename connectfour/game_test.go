package connectfour

import (
	"testing"

	"github.com/bodul/arcade3d/lattice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameValidation(t *testing.T) {
	_, err := NewGame(3, 2)
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = NewGame(10, 2)
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = NewGame(5, 1)
	assert.ErrorIs(t, err, ErrInvalidPlayers)
	_, err = NewGame(5, 9)
	assert.ErrorIs(t, err, ErrInvalidPlayers)

	g, err := NewGame(7, 8)
	require.NoError(t, err)
	assert.Equal(t, Player(1), g.Next)
	assert.Equal(t, 7, g.Board.Size())
}

func TestDropStacks(t *testing.T) {
	b := NewBoard(4)
	for y := 0; y < 4; y++ {
		c, err := Drop(b, 1, 2, 1)
		require.NoError(t, err)
		assert.Equal(t, lattice.C(1, y, 2), c)
	}
	_, err := Drop(b, 1, 2, 1)
	assert.ErrorIs(t, err, ErrColumnFull)

	_, err = Drop(b, 4, 0, 1)
	assert.ErrorIs(t, err, ErrColumnOutOfRange)
	_, err = Drop(b, 0, -1, 1)
	assert.ErrorIs(t, err, ErrColumnOutOfRange)
	_, err = Drop(b, 0, 0, Empty)
	assert.ErrorIs(t, err, ErrInvalidPlayer)
	_, err = Drop(b, 0, 0, 9)
	assert.ErrorIs(t, err, ErrInvalidPlayer)
}

func TestPlayRotatesAllPlayers(t *testing.T) {
	g, err := NewGame(9, 8)
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		assert.Equal(t, Player(i+1), g.Next)
		_, err := g.Play(i, 0)
		require.NoError(t, err)
	}
	assert.Equal(t, Player(1), g.Next)
	assert.Equal(t, 8, g.Moves)
	require.NotNil(t, g.Last)
	assert.Equal(t, lattice.C(7, 0, 0), *g.Last)
}

func TestPlayVerticalWin(t *testing.T) {
	g, err := NewGame(5, 2)
	require.NoError(t, err)

	// Player 1 stacks column (0,0), player 2 stacks column (4,4).
	for i := 0; i < 3; i++ {
		_, err = g.Play(0, 0)
		require.NoError(t, err)
		_, err = g.Play(4, 4)
		require.NoError(t, err)
	}
	c, err := g.Play(0, 0)
	require.NoError(t, err)
	assert.Equal(t, lattice.C(0, 3, 0), c)
	assert.True(t, g.Over)
	assert.Equal(t, Player(1), g.Winner)
	assert.Len(t, g.Winning, 4)

	_, err = g.Play(1, 1)
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestPlayDraw(t *testing.T) {
	g, err := NewGame(4, 8)
	require.NoError(t, err)

	// x+2y+4z never stays constant mod 8 along any line, so no two
	// neighbors on a line share a player.
	pattern := func(c lattice.Coord) Player {
		return Player((c.X+2*c.Y+4*c.Z)%8 + 1)
	}
	last := lattice.C(3, 3, 3)
	g.Board.Each(func(c lattice.Coord, _ Player) {
		if c != last {
			g.Board.Set(c, pattern(c))
			g.Moves++
		}
	})
	g.Next = pattern(last)

	_, err = g.Play(3, 3)
	require.NoError(t, err)
	assert.True(t, g.Over)
	assert.Equal(t, Empty, g.Winner)
	assert.True(t, g.Full())
}

func TestHeightAndReset(t *testing.T) {
	g, err := NewGame(4, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Height(2, 2))
	_, err = g.Play(2, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Height(2, 2))
	assert.Equal(t, -1, g.Height(5, 0))

	g.Reset()
	assert.Equal(t, 0, g.Moves)
	assert.Equal(t, Player(1), g.Next)
	assert.Equal(t, 3, g.Players)
	assert.Equal(t, 0, g.Height(2, 2))
	assert.Nil(t, g.Last)
}
