package board_test

import (
	"testing"

	"github.com/herohde/infinitychess/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestCoordinate(t *testing.T) {
	c := board.NewCoordinate(3, -4)
	assert.Equal(t, int64(3), c.X)
	assert.Equal(t, int64(-4), c.Y)
	assert.Equal(t, "(3, -4)", c.String())

	assert.Equal(t, board.NewCoordinate(4, -2), c.Add(1, 2))
}

func TestCoordinateIsComparable(t *testing.T) {
	// Coordinate must be usable as a map key: this is the whole reason it is
	// int64-backed rather than a big.Int wrapper.
	m := map[board.Coordinate]board.Piece{
		board.NewCoordinate(1, 1): board.NewPiece(board.White, board.Rook),
	}
	_, ok := m[board.NewCoordinate(1, 1)]
	assert.True(t, ok)
}

func TestCoordinateFarFromOrigin(t *testing.T) {
	// The board is unbounded: coordinates well outside any standard 8x8
	// board must behave identically to ones near the origin.
	c := board.NewCoordinate(1_000_000, -999_999)
	assert.Equal(t, board.NewCoordinate(1_000_001, -999_998), c.Add(1, 1))
}
