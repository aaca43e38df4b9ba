package search_test

import (
	"testing"

	"github.com/herohde/infinitychess/pkg/board"
	"github.com/herohde/infinitychess/pkg/eval"
	"github.com/herohde/infinitychess/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flipToBlack is a test-only helper: Empty() always starts White to move and
// Position exposes no direct setter for it, so a harmless White king shuffle
// on a corner of the board far from the real fixture is used to toggle
// SideToMove after the fixture's actual pieces are placed.
func flipToBlack(p *board.Position) {
	from, to := board.NewCoordinate(1000, 1000), board.NewCoordinate(1000, 1001)
	p.Set(from, board.NewPiece(board.White, board.King))
	ok := p.Make(board.Move{Kind: board.Normal, From: from, To: to, Piece: board.NewPiece(board.White, board.King)})
	if !ok {
		panic("flipToBlack: unexpected illegal setup move")
	}
	p.Remove(to)
}

// TestSearchFindsMateInOne covers a rook-ladder mate where two rooks already
// pin down the ranks flanking the black king and a third rook is one move
// from delivering check along the king's own rank. Sliding pieces only move
// by capturing the nearest piece on a ray, so the mating move is the capture
// of a black knight standing on the king's rank.
func TestSearchFindsMateInOne(t *testing.T) {
	p := board.Empty()
	p.Set(board.NewCoordinate(20, 20), board.NewPiece(board.White, board.King))
	p.Set(board.NewCoordinate(4, 1), board.NewPiece(board.Black, board.King))
	p.Set(board.NewCoordinate(8, 1), board.NewPiece(board.Black, board.Knight))
	p.Set(board.NewCoordinate(0, 0), board.NewPiece(board.White, board.Rook))  // seals rank y=0
	p.Set(board.NewCoordinate(0, 2), board.NewPiece(board.White, board.Rook))  // seals rank y=2
	p.Set(board.NewCoordinate(8, 10), board.NewPiece(board.White, board.Rook)) // captures on (8,1) to deliver mate

	s := search.NewSearcher(eval.Material{})
	score := s.Search(p, 3)

	assert.Greater(t, int(score), int(eval.MateScore), "expected a detected forced mate, got score %v", score)

	pv := s.PrincipalVariation()
	if assert.NotEmpty(t, pv, "expected a principal variation leading to the mate") {
		assert.Equal(t, board.Rook, pv[0].Piece.Role)
		assert.Equal(t, board.NewCoordinate(8, 10), pv[0].From)
		assert.Equal(t, board.NewCoordinate(8, 1), pv[0].To)
	}
}

// TestSearchCheckmateIsExactMateValue covers the same rook ladder with mate
// already delivered: black to move, in check, with no legal response. A mate
// detected at the root (ply 0) scores exactly -MateValue.
func TestSearchCheckmateIsExactMateValue(t *testing.T) {
	p := board.Empty()
	p.Set(board.NewCoordinate(20, 20), board.NewPiece(board.White, board.King))
	p.Set(board.NewCoordinate(4, 1), board.NewPiece(board.Black, board.King))
	p.Set(board.NewCoordinate(0, 0), board.NewPiece(board.White, board.Rook))
	p.Set(board.NewCoordinate(0, 2), board.NewPiece(board.White, board.Rook))
	p.Set(board.NewCoordinate(8, 1), board.NewPiece(board.White, board.Rook))
	flipToBlack(p)

	require.True(t, p.IsAttacked(p.KingOf(board.Black), board.White), "fixture must be check")

	s := search.NewSearcher(eval.Material{})
	score := s.Search(p, 2)

	assert.Equal(t, -eval.MateValue, score)
}

// TestSearchStalemateIsZero covers the lone black king's 8 neighboring
// squares all being covered by White without
// the king itself being in check, so the side to move has no legal move and
// the position is a draw, not a loss.
func TestSearchStalemateIsZero(t *testing.T) {
	p := board.Empty()
	p.Set(board.NewCoordinate(0, 0), board.NewPiece(board.Black, board.King))
	p.Set(board.NewCoordinate(0, 2), board.NewPiece(board.White, board.King)) // covers (-1,1),(0,1),(1,1)
	p.Set(board.NewCoordinate(1, 5), board.NewPiece(board.White, board.Rook)) // file x=1 covers (1,0)
	p.Set(board.NewCoordinate(5, -1), board.NewPiece(board.White, board.Rook)) // rank y=-1 covers (1,-1),(0,-1),(-1,-1)
	p.Set(board.NewCoordinate(-1, 5), board.NewPiece(board.White, board.Rook)) // file x=-1 covers (-1,0),(-1,1)
	flipToBlack(p)

	require.False(t, p.IsAttacked(p.KingOf(board.Black), board.White), "fixture must not be check")

	var list board.MoveList
	board.GenerateMoves(p, &list)
	for _, m := range list.Slice() {
		if m.Kind == board.InfiniteRay {
			continue
		}
		require.False(t, p.Make(m), "fixture must have no legal move, but %v is legal", m)
	}

	s := search.NewSearcher(eval.Material{})
	score := s.Search(p, 2)
	assert.Equal(t, eval.Score(0), score)
}
