package eval_test

import (
	"testing"

	"github.com/herohde/infinitychess/pkg/board"
	"github.com/herohde/infinitychess/pkg/eval"
	"github.com/stretchr/testify/assert"
)

func TestMaterialStartIsBalanced(t *testing.T) {
	p := board.Start()
	assert.Equal(t, eval.Score(0), eval.Material{}.Evaluate(p))
}

func TestMaterialFavorsWhiteWhenAhead(t *testing.T) {
	p := board.Empty()
	p.Set(board.NewCoordinate(1, 1), board.NewPiece(board.White, board.King))
	p.Set(board.NewCoordinate(8, 8), board.NewPiece(board.Black, board.King))
	p.Set(board.NewCoordinate(4, 4), board.NewPiece(board.White, board.Queen))

	assert.Equal(t, eval.Score(board.Value[board.Queen]), eval.Material{}.Evaluate(p))
}

func TestMaterialNegatedForBlackToMove(t *testing.T) {
	p := board.Empty()
	p.Set(board.NewCoordinate(1, 1), board.NewPiece(board.White, board.King))
	p.Set(board.NewCoordinate(8, 8), board.NewPiece(board.Black, board.King))
	p.Set(board.NewCoordinate(4, 4), board.NewPiece(board.White, board.Queen))

	ok := p.Make(board.Move{Kind: board.Normal, From: board.NewCoordinate(1, 1), To: board.NewCoordinate(1, 2), Piece: board.NewPiece(board.White, board.King)})
	if ok {
		defer p.Unmake(board.Move{Kind: board.Normal, From: board.NewCoordinate(1, 1), To: board.NewCoordinate(1, 2), Piece: board.NewPiece(board.White, board.King)})
	}

	assert.Equal(t, eval.Score(-board.Value[board.Queen]), eval.Material{}.Evaluate(p))
}

func TestMaterialInsufficientIsDraw(t *testing.T) {
	p := board.Empty()
	p.Set(board.NewCoordinate(1, 1), board.NewPiece(board.White, board.King))
	p.Set(board.NewCoordinate(8, 8), board.NewPiece(board.Black, board.King))
	p.Set(board.NewCoordinate(4, 4), board.NewPiece(board.White, board.Bishop))

	assert.Equal(t, eval.Score(0), eval.Material{}.Evaluate(p))
}

func TestMaterialSufficientWithRook(t *testing.T) {
	p := board.Empty()
	p.Set(board.NewCoordinate(1, 1), board.NewPiece(board.White, board.King))
	p.Set(board.NewCoordinate(8, 8), board.NewPiece(board.Black, board.King))
	p.Set(board.NewCoordinate(4, 4), board.NewPiece(board.White, board.Rook))

	assert.Equal(t, eval.Score(board.Value[board.Rook]), eval.Material{}.Evaluate(p))
}

func TestNominalGainCapture(t *testing.T) {
	m := board.Move{Kind: board.Normal, Piece: board.NewPiece(board.White, board.Knight), Capture: board.NewPiece(board.Black, board.Rook)}
	assert.Equal(t, board.Value[board.Rook], eval.NominalGain(m))
}

func TestNominalGainPromotion(t *testing.T) {
	m := board.Move{Kind: board.Promotion, PromoteTo: board.Queen}
	assert.Equal(t, board.Value[board.Queen]-board.Value[board.Pawn], eval.NominalGain(m))
}
