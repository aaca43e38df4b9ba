package board

import "fmt"

// snapshot is a full copy of the mutable fields of Position, pushed onto the
// undo stack by Make and popped by Unmake: a copy-make scheme, trading the
// cost of cloning the square map for a trivial, branch-free Unmake.
type snapshot struct {
	squares    map[Coordinate]Piece
	castling   Castling
	enPassant  Coordinate
	hasEP      bool
	sideToMove Color
}

// Position holds sparse board state, side to move, castling rights, the
// en-passant target and an undo stack.
type Position struct {
	squares    map[Coordinate]Piece
	castling   Castling
	enPassant  Coordinate
	hasEP      bool
	sideToMove Color

	history []snapshot
}

// Start returns the canonical opening position.
func Start() *Position {
	p := Empty()
	p.castling = FullCastlingRights
	p.sideToMove = White

	for x := int64(1); x <= 8; x++ {
		p.Set(NewCoordinate(x, 2), NewPiece(White, Pawn))
		p.Set(NewCoordinate(x, 7), NewPiece(Black, Pawn))
	}

	back := []Role{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for i, r := range back {
		x := int64(i + 1)
		p.Set(NewCoordinate(x, 1), NewPiece(White, r))
		p.Set(NewCoordinate(x, 8), NewPiece(Black, r))
	}
	return p
}

// Empty returns an empty board that callers may populate via Set.
func Empty() *Position {
	return &Position{
		squares: map[Coordinate]Piece{},
	}
}

func (p *Position) Get(c Coordinate) (Piece, bool) {
	pc, ok := p.squares[c]
	return pc, ok
}

func (p *Position) Set(c Coordinate, pc Piece) {
	p.squares[c] = pc
}

func (p *Position) Remove(c Coordinate) {
	delete(p.squares, c)
}

// Squares returns the occupied squares. Callers must not mutate the result.
func (p *Position) Squares() map[Coordinate]Piece {
	return p.squares
}

func (p *Position) SideToMove() Color {
	return p.sideToMove
}

func (p *Position) Castling() Castling {
	return p.castling
}

// EnPassant returns the square a pawn just skipped over, if any.
func (p *Position) EnPassant() (Coordinate, bool) {
	return p.enPassant, p.hasEP
}

// KingOf scans squares for the king of the given color. Exactly one is
// guaranteed to exist in any legal position.
func (p *Position) KingOf(c Color) Coordinate {
	for sq, pc := range p.squares {
		if pc.Role == King && pc.Color == c {
			return sq
		}
	}
	panic(fmt.Sprintf("invariant violation: no %v king on board", c))
}

// IsAttacked returns true iff sq is attacked by a piece of color by. It is a
// pure query: it flips side-to-move, generates by's pseudo-legal moves, and
// restores side-to-move before returning, leaving the position unchanged.
func (p *Position) IsAttacked(sq Coordinate, by Color) bool {
	saved := p.sideToMove
	p.sideToMove = by

	var list MoveList
	GenerateMoves(p, &list)

	p.sideToMove = saved

	for _, m := range list.Slice() {
		if (m.Kind == Normal || m.Kind == Promotion) && m.To == sq {
			return true
		}
	}
	return false
}

// Make applies m and returns false (leaving the position exactly as before)
// if doing so leaves the mover's own king attacked. On success, side to move
// has toggled; on failure it has been restored.
func (p *Position) Make(m Move) bool {
	if m.Kind == InfiniteRay {
		// Symbolic: no terminating square, nothing to apply.
		return false
	}

	p.history = append(p.history, snapshot{
		squares:    cloneSquares(p.squares),
		castling:   p.castling,
		enPassant:  p.enPassant,
		hasEP:      p.hasEP,
		sideToMove: p.sideToMove,
	})

	mover := p.sideToMove
	piece, ok := p.Get(m.From)
	if !ok {
		panic(fmt.Sprintf("invariant violation: no piece at %v for move %v", m.From, m))
	}

	switch m.Kind {
	case EnPassant:
		p.Remove(m.EnPassantCapture())
		p.Remove(m.From)
		p.Set(m.To, piece)

	case Promotion:
		p.Remove(m.From)
		p.Set(m.To, NewPiece(mover, m.PromoteTo))

	case CastlingMove:
		p.Remove(m.From)
		p.Set(m.To, piece)
		rookFrom, rookTo := castlingRookMove(m.From, m.To)
		rook, _ := p.Get(rookFrom)
		p.Remove(rookFrom)
		p.Set(rookTo, rook)

	default: // Normal
		p.Remove(m.From)
		p.Set(m.To, piece)
	}

	p.updateCastlingRights(m.From, m.To, piece)
	p.updateEnPassant(m.From, m.To, piece)

	p.sideToMove = mover.Opponent()

	if p.IsAttacked(p.KingOf(mover), p.sideToMove) {
		p.restoreTop()
		return false
	}
	return true
}

// Unmake restores the position to its state immediately before the matching
// Make(m). It must follow only a Make that returned true: a failed Make has
// already restored the position itself.
func (p *Position) Unmake(m Move) {
	if m.Kind == InfiniteRay {
		return
	}
	p.restoreTop()
}

func (p *Position) restoreTop() {
	n := len(p.history)
	top := p.history[n-1]
	p.history = p.history[:n-1]

	p.squares = top.squares
	p.castling = top.castling
	p.enPassant = top.enPassant
	p.hasEP = top.hasEP
	p.sideToMove = top.sideToMove
}

// castlingRookMove returns the rook's (from, to) for a king move from/to:
// long-castling king target is (3, r), short is (7, r).
func castlingRookMove(kingFrom, kingTo Coordinate) (Coordinate, Coordinate) {
	r := kingFrom.Y
	if kingTo.X == 3 {
		return NewCoordinate(1, r), NewCoordinate(4, r)
	}
	return NewCoordinate(8, r), NewCoordinate(6, r)
}

func (p *Position) updateCastlingRights(from, to Coordinate, piece Piece) {
	switch {
	case piece.Role == King && piece.Color == White:
		p.castling = p.castling.Clear(WhiteKingSide | WhiteQueenSide)
	case piece.Role == King && piece.Color == Black:
		p.castling = p.castling.Clear(BlackKingSide | BlackQueenSide)
	}

	clearRookRights := func(sq Coordinate) {
		switch sq {
		case NewCoordinate(1, 1):
			p.castling = p.castling.Clear(WhiteQueenSide)
		case NewCoordinate(8, 1):
			p.castling = p.castling.Clear(WhiteKingSide)
		case NewCoordinate(1, 8):
			p.castling = p.castling.Clear(BlackQueenSide)
		case NewCoordinate(8, 8):
			p.castling = p.castling.Clear(BlackKingSide)
		}
	}
	clearRookRights(from)
	clearRookRights(to)
}

func (p *Position) updateEnPassant(from, to Coordinate, piece Piece) {
	p.hasEP = false
	if piece.Role == Pawn && abs(to.Y-from.Y) == 2 {
		p.enPassant = NewCoordinate(from.X, (from.Y+to.Y)/2)
		p.hasEP = true
	}
}

func cloneSquares(m map[Coordinate]Piece) map[Coordinate]Piece {
	c := make(map[Coordinate]Piece, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// Dump renders the board as ASCII, computing min/max over occupied squares so
// it copes with arbitrary x/y ranges. Debug tooling only.
func (p *Position) Dump() string {
	if len(p.squares) == 0 {
		return "(empty board)"
	}

	minX, maxX, minY, maxY := int64(0), int64(0), int64(0), int64(0)
	first := true
	for sq := range p.squares {
		if first {
			minX, maxX, minY, maxY = sq.X, sq.X, sq.Y, sq.Y
			first = false
			continue
		}
		if sq.X < minX {
			minX = sq.X
		}
		if sq.X > maxX {
			maxX = sq.X
		}
		if sq.Y < minY {
			minY = sq.Y
		}
		if sq.Y > maxY {
			maxY = sq.Y
		}
	}

	var out []byte
	for y := maxY; y >= minY; y-- {
		for x := minX; x <= maxX; x++ {
			if pc, ok := p.Get(NewCoordinate(x, y)); ok {
				out = append(out, []byte(pc.String())...)
			} else {
				out = append(out, '.')
			}
			out = append(out, ' ')
		}
		out = append(out, '\n')
	}
	return string(out)
}
