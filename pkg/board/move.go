package board

import "fmt"

// Direction is one of the eight ray directions a Rook/Bishop/Queen may slide
// along. Used only by the InfiniteRay move variant.
type Direction uint8

const (
	N Direction = iota
	S
	E
	W
	NE
	NW
	SE
	SW
)

// Delta returns the unit (dx, dy) step for the direction.
func (d Direction) Delta() (int64, int64) {
	switch d {
	case N:
		return 0, 1
	case S:
		return 0, -1
	case E:
		return 1, 0
	case W:
		return -1, 0
	case NE:
		return 1, 1
	case NW:
		return -1, 1
	case SE:
		return 1, -1
	case SW:
		return -1, -1
	default:
		panic("invalid direction")
	}
}

func (d Direction) String() string {
	switch d {
	case N:
		return "N"
	case S:
		return "S"
	case E:
		return "E"
	case W:
		return "W"
	case NE:
		return "NE"
	case NW:
		return "NW"
	case SE:
		return "SE"
	case SW:
		return "SW"
	default:
		return "?"
	}
}

// MoveKind tags the Move variant.
type MoveKind uint8

const (
	Normal MoveKind = iota
	CastlingMove
	EnPassant
	Promotion
	InfiniteRay
)

// Move represents a not-necessarily-legal move, tagged by kind. Capture and
// Piece are contextual metadata filled in by the generator so the searcher
// can score moves without re-querying the position.
type Move struct {
	Kind MoveKind

	From, To Coordinate

	// PromoteTo is the desired piece for a Promotion move; zero otherwise.
	PromoteTo Role

	// Direction is set only for InfiniteRay moves.
	Direction Direction

	// Piece is the moving piece, and Capture the captured piece (NoPiece if
	// none). Filled in by the generator; used for move ordering.
	Piece   Piece
	Capture Piece
}

// IsCapture reports whether the move removes an opposing piece from the board.
// EnPassant always captures; Normal/Promotion capture iff Capture is set.
func (m Move) IsCapture() bool {
	return m.Kind == EnPassant || ((m.Kind == Normal || m.Kind == Promotion) && m.Capture.IsValid())
}

// EnPassantCapture returns the square of the pawn captured en passant.
func (m Move) EnPassantCapture() Coordinate {
	return Coordinate{X: m.To.X, Y: m.From.Y}
}

// Equals compares the semantically-relevant fields of two moves (ignores the
// cached Piece/Capture metadata, which is a function of From/To/Kind anyway).
func (m Move) Equals(o Move) bool {
	return m.Kind == o.Kind && m.From == o.From && m.To == o.To && m.PromoteTo == o.PromoteTo && m.Direction == o.Direction
}

func (m Move) String() string {
	switch m.Kind {
	case InfiniteRay:
		return fmt.Sprintf("%v->%v...", m.From, m.Direction)
	case Promotion:
		return fmt.Sprintf("%v%v=%v", m.From, m.To, m.PromoteTo)
	default:
		return fmt.Sprintf("%v%v", m.From, m.To)
	}
}

// MoveList is a bounded move buffer with a counter: capacity 256 is adequate
// for any position reached from the standard opening.
const MoveListCapacity = 256

type MoveList struct {
	Moves [MoveListCapacity]Move
	Count int
}

// Add appends a move. Panics on overflow: exceeding the fixed capacity means
// either the cap needs raising or something upstream generated garbage, and
// either way silently dropping moves would be worse than failing loudly.
func (l *MoveList) Add(m Move) {
	if l.Count >= MoveListCapacity {
		panic(fmt.Sprintf("move list overflow: more than %v pseudo-legal moves", MoveListCapacity))
	}
	l.Moves[l.Count] = m
	l.Count++
}

// Slice returns the populated prefix as a plain slice, for callers (e.g. the
// searcher) that want to sort/iterate without touching the fixed array.
func (l *MoveList) Slice() []Move {
	return l.Moves[:l.Count]
}
