// Package search implements the game-tree search: iterative-deepening
// negamax with quiescence, killer-move and PV-aware ordering, late-move
// reduction and futility pruning, all bounded by a wall-clock deadline
// instead of a fixed node budget.
package search

import (
	"time"

	"github.com/herohde/infinitychess/pkg/board"
	"github.com/herohde/infinitychess/pkg/eval"
	"go.uber.org/atomic"
)

// maxPly bounds recursion depth and the size of the killer/PV tables.
const maxPly = 127

// timeUp is a sentinel score returned up the call stack the instant the
// deadline or Stop flag trips, so callers can recognize an aborted search
// without a second channel or error value.
const timeUp = eval.Infinity + 500

// Stop is a process-wide kill switch checked by every Searcher. Set it to
// abort every in-flight search immediately; Launch resets it when starting a
// new one.
var Stop atomic.Bool

// Searcher holds the mutable state of a single iterative-deepening run:
// current ply, node count, killer moves, the triangular PV table and the
// soft deadline. Not safe for concurrent use — one Searcher per Launch.
type Searcher struct {
	Eval eval.Evaluator

	ply   int
	nodes uint64

	killers [2][maxPly]board.Move

	pv       [maxPly][maxPly]board.Move
	pvLength [maxPly]int

	followPV, scorePV bool

	fullDepthMoves int
	reductionLimit int

	timeset  bool
	deadline time.Time
}

// NewSearcher returns a Searcher using the given evaluator.
func NewSearcher(e eval.Evaluator) *Searcher {
	return &Searcher{
		Eval:           e,
		fullDepthMoves: 3,
		reductionLimit: 2,
	}
}

// Nodes returns the cumulative node count since construction.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// SetDeadline arms a wall-clock deadline; once it passes, Search aborts and
// returns the timeUp sentinel. A zero Time disarms it.
func (s *Searcher) SetDeadline(deadline time.Time) {
	s.timeset = !deadline.IsZero()
	s.deadline = deadline
}

func (s *Searcher) stopSearch() bool {
	return Stop.Load() || (s.timeset && time.Now().After(s.deadline))
}

// PrincipalVariation returns the best line found by the most recent Search
// call, read off the root row of the PV table.
func (s *Searcher) PrincipalVariation() []board.Move {
	n := s.pvLength[0]
	pv := make([]board.Move, n)
	copy(pv, s.pv[0][:n])
	return pv
}

// Search runs a single fixed-depth negamax pass from p's current position and
// returns the root score. Intended to be called with successively larger
// depth by a Launcher implementing iterative deepening. p is restored to its
// original state before Search returns, whether or not the search completed.
func (s *Searcher) Search(p *board.Position, depth int) eval.Score {
	s.ply = 0
	s.followPV = true

	return s.negamax(p, -eval.Infinity, eval.Infinity, depth)
}

func (s *Searcher) quiescence(p *board.Position, alpha, beta eval.Score) eval.Score {
	s.nodes++

	stand := s.Eval.Evaluate(p)
	if stand >= beta {
		return beta
	}
	alpha = eval.Max(alpha, stand)
	if s.ply >= maxPly {
		return stand
	}
	if s.stopSearch() {
		return timeUp
	}

	var raw board.MoveList
	board.GenerateMoves(p, &raw)
	ml := s.orderedMoves(p, raw.Slice())

	for {
		mv, pr, ok := ml.Next()
		if !ok {
			break
		}
		if int(pr)-8000 < 0 {
			break // remaining moves are quiet moves or captures that lose material; quiescence only extends the rest
		}
		if mv.Kind == board.InfiniteRay {
			continue
		}

		if !p.Make(mv) {
			continue
		}
		s.ply++
		score := -s.quiescence(p, -beta, -alpha)
		p.Unmake(mv)
		s.ply--

		if s.stopSearch() {
			return timeUp
		}

		if score > alpha {
			alpha = score
			if score >= beta {
				return beta
			}
		}
	}
	return alpha
}

func (s *Searcher) negamax(p *board.Position, alpha, beta eval.Score, depth int) eval.Score {
	pvNode := beta-alpha > 1
	isRoot := s.ply == 0

	s.nodes++
	s.pvLength[s.ply] = s.ply

	if s.ply >= maxPly {
		return s.Eval.Evaluate(p)
	}

	if !isRoot {
		alpha = eval.Max(alpha, -eval.MateValue)
		beta = eval.Min(beta, eval.MateValue-1)
		if alpha >= beta {
			return alpha
		}
	}

	if depth <= 0 {
		return s.quiescence(p, alpha, beta)
	}

	mover := p.SideToMove()
	inCheck := p.IsAttacked(p.KingOf(mover), mover.Opponent())
	if inCheck {
		depth++
	}

	if s.stopSearch() {
		return timeUp
	}

	standEval := s.Eval.Evaluate(p)
	if !inCheck && !pvNode && depth < 3 {
		margin := eval.Score(100 * depth)
		if standEval-margin >= beta {
			return standEval - margin
		}
	}

	if s.stopSearch() {
		return timeUp
	}

	var raw board.MoveList
	board.GenerateMoves(p, &raw)
	if s.followPV {
		s.enablePVScoring(raw.Slice())
	}
	ml := s.orderedMoves(p, raw.Slice())

	legalMoves := 0
	movesSearched := 0
	bestScore := -eval.Infinity
	skipQuiet := false
	var bestMove board.Move

	for {
		mv, _, ok := ml.Next()
		if !ok {
			break
		}
		if mv.Kind == board.InfiniteRay {
			continue
		}

		quiet := isQuiet(mv)
		if quiet && skipQuiet {
			continue
		}

		isKiller := s.killers[0][s.ply].Equals(mv) || s.killers[1][s.ply].Equals(mv)
		if !isRoot && bestScore > -eval.Infinity {
			if depth < 8 && quiet && !isKiller && standEval <= alpha && abs32(alpha) < eval.Infinity-100 {
				skipQuiet = true
				continue
			}
		}

		if !p.Make(mv) {
			continue
		}
		s.ply++
		legalMoves++

		var score eval.Score
		switch {
		case movesSearched == 0:
			score = -s.negamax(p, -beta, -alpha, depth-1)
		default:
			if movesSearched >= s.fullDepthMoves && depth >= s.reductionLimit && !inCheck {
				score = -s.negamax(p, -alpha-1, -alpha, depth-2)
			} else {
				score = alpha + 1
			}
			if score > alpha {
				score = -s.negamax(p, -alpha-1, -alpha, depth-1)
				if score > alpha && score < beta {
					score = -s.negamax(p, -beta, -alpha, depth-1)
				}
			}
		}

		p.Unmake(mv)
		s.ply--

		if s.stopSearch() {
			return timeUp
		}
		movesSearched++

		bestScore = eval.Max(bestScore, score)

		if score > alpha {
			bestMove = mv
			alpha = score

			s.pv[s.ply][s.ply] = mv
			for next := s.ply + 1; next < s.pvLength[s.ply+1]; next++ {
				s.pv[s.ply][next] = s.pv[s.ply+1][next]
			}
			s.pvLength[s.ply] = s.pvLength[s.ply+1]

			if score >= beta {
				if quiet {
					s.killers[1][s.ply] = s.killers[0][s.ply]
					s.killers[0][s.ply] = mv
				}
				return beta
			}
		}
	}
	_ = bestMove

	if legalMoves == 0 {
		if inCheck {
			return -eval.MateValue + eval.Score(s.ply)
		}
		return 0
	}
	return alpha
}

// enablePVScoring arms PV-move scoring for this ply's ordering whenever the
// remembered principal variation passes through the current node, so the PV
// move from the previous iteration is searched first.
func (s *Searcher) enablePVScoring(moves []board.Move) {
	s.followPV = false
	for _, m := range moves {
		if s.pv[0][s.ply].Equals(m) {
			s.scorePV = true
			s.followPV = true
			return
		}
	}
}

func (s *Searcher) orderedMoves(p *board.Position, moves []board.Move) *MoveList {
	return NewMoveList(moves, func(m board.Move) Priority {
		return s.scoreMove(p, m)
	})
}

// scoreMove ranks a pseudo-legal move for ordering purposes: PV move first,
// then captures (MVV-LVA) and promotions by nominal material gain, then
// killers, then everything else.
func (s *Searcher) scoreMove(p *board.Position, m board.Move) Priority {
	if s.scorePV && s.pv[0][s.ply].Equals(m) {
		s.scorePV = false
		return 16000
	}

	switch m.Kind {
	case board.Promotion:
		return Priority(9500 + eval.NominalGain(m))

	case board.EnPassant:
		return Priority(8000 + eval.NominalGain(m))

	case board.CastlingMove:
		return 400

	default: // Normal
		if m.Capture.IsValid() {
			return Priority(8000 + eval.NominalGain(m) - board.Value[m.Piece.Role])
		}
		if s.killers[0][s.ply].Equals(m) {
			return 4000
		}
		if s.killers[1][s.ply].Equals(m) {
			return 2500
		}
		return 0
	}
}

// isQuiet reports whether m is a non-capturing Normal/Promotion move. Castling
// and en passant are excluded from late-move pruning.
func isQuiet(m board.Move) bool {
	if m.Kind != board.Normal && m.Kind != board.Promotion {
		return false
	}
	return !m.Capture.IsValid()
}

func abs32(s eval.Score) eval.Score {
	if s < 0 {
		return -s
	}
	return s
}
