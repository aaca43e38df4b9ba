// Package eval contains static position evaluation.
package eval

import "github.com/herohde/infinitychess/pkg/board"

// Evaluator is a static position evaluator, returning a score in centipawns
// from the side-to-move's perspective.
type Evaluator interface {
	Evaluate(p *board.Position) Score
}

// Material is a material-balance evaluator using board.Value, with
// insufficient-material draw detection. The board is unbounded, so
// heuristics keyed on board edges or distance-to-boundary don't generalize;
// material is the only signal that does.
type Material struct{}

func (Material) Evaluate(p *board.Position) Score {
	white, black, sufficient := materialBalance(p)
	if !sufficient {
		return 0
	}

	return Score(white-black) * Score(p.SideToMove().Unit())
}

// materialBalance tallies material for both sides in one pass, folding the
// insufficient-material check into the same piece scan instead of running a
// second traversal.
func materialBalance(p *board.Position) (white, black int, sufficient bool) {
	var whiteMinors, blackMinors int
	var whiteHasMajorOrPawn, blackHasMajorOrPawn bool

	for _, pc := range p.Squares() {
		v := board.Value[pc.Role]
		if pc.Color == board.White {
			white += v
		} else {
			black += v
		}

		switch pc.Role {
		case board.Pawn, board.Rook, board.Queen:
			if pc.Color == board.White {
				whiteHasMajorOrPawn = true
			} else {
				blackHasMajorOrPawn = true
			}
		case board.Knight, board.Bishop:
			if pc.Color == board.White {
				whiteMinors++
			} else {
				blackMinors++
			}
		}
	}

	whiteInsufficient := !whiteHasMajorOrPawn && whiteMinors <= 1
	blackInsufficient := !blackHasMajorOrPawn && blackMinors <= 1
	return white, black, !(whiteInsufficient && blackInsufficient)
}

// NominalGain estimates the material swing of a move in centipawns: the value
// of whatever it captures, plus the promoted piece's gain over a pawn for
// promotions. Used by the searcher for capture/promotion move ordering.
func NominalGain(m board.Move) int {
	switch m.Kind {
	case board.Promotion:
		gain := board.Value[m.PromoteTo] - board.Value[board.Pawn]
		if m.Capture.IsValid() {
			gain += board.Value[m.Capture.Role]
		}
		return gain
	case board.EnPassant:
		return board.Value[board.Pawn]
	default:
		if m.Capture.IsValid() {
			return board.Value[m.Capture.Role]
		}
		return 0
	}
}
