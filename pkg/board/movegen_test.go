package board_test

import (
	"testing"

	"github.com/herohde/infinitychess/pkg/board"
	"github.com/stretchr/testify/assert"
)

// TestGenerateMovesOpeningSetup covers move counts from the standard opening.
// The unbounded board invalidates the usual bounded 8x8 folklore numbers (20
// non-ray + 4 InfiniteRay): on ℤ×ℤ, knights and the king gain extra
// destinations through the now-open rank 0 and below, and every back-rank
// sliding piece has at least one unobstructed ray toward negative y. This
// generator produces 33 Normal moves (16 pawn + 14 knight + 3 king) and 11
// InfiniteRay entries from the starting layout. See DESIGN.md.
func TestGenerateMovesOpeningSetup(t *testing.T) {
	p := board.Start()

	var list board.MoveList
	board.GenerateMoves(p, &list)

	var normal, rays int
	for _, m := range list.Slice() {
		switch m.Kind {
		case board.InfiniteRay:
			rays++
		default:
			normal++
		}
	}

	assert.Equal(t, 33, normal)
	assert.Equal(t, 11, rays)
	assert.Equal(t, 44, list.Count)
}

func TestGenerateMovesNoDuplicates(t *testing.T) {
	p := board.Start()

	var list board.MoveList
	board.GenerateMoves(p, &list)

	seen := map[board.Move]bool{}
	for _, m := range list.Slice() {
		assert.False(t, seen[m], "duplicate move %v", m)
		seen[m] = true
	}
}

func TestGenerateMovesTargetsAreEmptyOrOpponent(t *testing.T) {
	p := board.Start()

	var list board.MoveList
	board.GenerateMoves(p, &list)

	for _, m := range list.Slice() {
		if m.Kind != board.Normal && m.Kind != board.Promotion {
			continue
		}
		target, occupied := p.Get(m.To)
		if occupied {
			assert.NotEqual(t, p.SideToMove(), target.Color, "move %v targets a friendly piece", m)
		}
	}
}

// TestGenerateMovesInfiniteBoardRook covers a rook alone on an empty board,
// with a friendly king blocking its S ray and an opponent king sitting on its
// N ray. The S ray yields no move (friendly blocker); the N ray yields a
// single capture of the opponent king; E and W are unobstructed.
func TestGenerateMovesInfiniteBoardRook(t *testing.T) {
	p := board.Empty()
	p.Set(board.NewCoordinate(0, 0), board.NewPiece(board.White, board.Rook))
	p.Set(board.NewCoordinate(0, -5), board.NewPiece(board.White, board.King))
	p.Set(board.NewCoordinate(0, 5), board.NewPiece(board.Black, board.King))

	var list board.MoveList
	board.GenerateMoves(p, &list)

	var rays []board.Direction
	var normals []board.Move
	for _, m := range list.Slice() {
		switch {
		case m.From == board.NewCoordinate(0, 0) && m.Kind == board.InfiniteRay:
			rays = append(rays, m.Direction)
		case m.From == board.NewCoordinate(0, 0):
			normals = append(normals, m)
		}
	}

	assert.ElementsMatch(t, []board.Direction{board.E, board.W}, rays)
	if assert.Len(t, normals, 1) {
		assert.Equal(t, board.NewCoordinate(0, 5), normals[0].To)
		assert.True(t, normals[0].IsCapture())
	}
}

func TestGenerateMovesPromotion(t *testing.T) {
	p := board.Empty()
	p.Set(board.NewCoordinate(1, 7), board.NewPiece(board.White, board.Pawn))
	p.Set(board.NewCoordinate(1, 1), board.NewPiece(board.White, board.King))
	p.Set(board.NewCoordinate(8, 8), board.NewPiece(board.Black, board.King))

	var list board.MoveList
	board.GenerateMoves(p, &list)

	var promotions []board.Role
	for _, m := range list.Slice() {
		if m.Kind == board.Promotion {
			promotions = append(promotions, m.PromoteTo)
		}
	}
	assert.ElementsMatch(t, []board.Role{board.Queen, board.Rook, board.Knight, board.Bishop}, promotions)
}

func TestGenerateMovesEnPassant(t *testing.T) {
	p := board.Empty()
	p.Set(board.NewCoordinate(1, 1), board.NewPiece(board.White, board.King))
	p.Set(board.NewCoordinate(8, 8), board.NewPiece(board.Black, board.King))
	p.Set(board.NewCoordinate(5, 2), board.NewPiece(board.White, board.Pawn))
	p.Set(board.NewCoordinate(4, 4), board.NewPiece(board.Black, board.Pawn))

	ok := p.Make(board.Move{Kind: board.Normal, From: board.NewCoordinate(5, 2), To: board.NewCoordinate(5, 4), Piece: board.NewPiece(board.White, board.Pawn)})
	assert.True(t, ok)

	var list board.MoveList
	board.GenerateMoves(p, &list)

	var found bool
	for _, m := range list.Slice() {
		if m.Kind == board.EnPassant && m.From == board.NewCoordinate(4, 4) && m.To == board.NewCoordinate(5, 3) {
			found = true
		}
	}
	assert.True(t, found, "expected an en passant capture to (5,3)")
}
