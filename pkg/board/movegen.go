package board

// GenerateMoves emits the pseudo-legal move set for the side to move:
// geometric and capture legality only, not king-safety. Legality filtering
// happens in Position.Make.
func GenerateMoves(p *Position, list *MoveList) {
	mover := p.sideToMove
	for sq, piece := range p.squares {
		if piece.Color != mover {
			continue
		}
		switch piece.Role {
		case Pawn:
			generatePawnMoves(p, sq, piece, list)
		case Knight:
			generateKnightMoves(p, sq, piece, list)
		case King:
			generateKingMoves(p, sq, piece, list)
		case Rook:
			generateSlides(p, sq, piece, list, rookDirections[:])
		case Bishop:
			generateSlides(p, sq, piece, list, bishopDirections[:])
		case Queen:
			generateSlides(p, sq, piece, list, queenDirections[:])
		}
	}
}

func isOpponent(mover Color, target Piece) bool {
	return target.IsValid() && target.Color != mover
}

var promotionRoles = [4]Role{Queen, Rook, Knight, Bishop}

func generatePawnMoves(p *Position, from Coordinate, piece Piece, list *MoveList) {
	d := int64(1)
	startRank := int64(2)
	promoRank := int64(8)
	if piece.Color == Black {
		d = -1
		startRank = 7
		promoRank = 1
	}

	push := from.Add(0, d)
	if _, occupied := p.Get(push); !occupied {
		if push.Y == promoRank {
			for _, r := range promotionRoles {
				list.Add(Move{Kind: Promotion, From: from, To: push, PromoteTo: r, Piece: piece})
			}
		} else {
			list.Add(Move{Kind: Normal, From: from, To: push, Piece: piece})
		}

		if from.Y == startRank {
			double := from.Add(0, 2*d)
			if _, occupied := p.Get(double); !occupied {
				list.Add(Move{Kind: Normal, From: from, To: double, Piece: piece})
			}
		}
	}

	for _, dx := range [2]int64{-1, 1} {
		capture := from.Add(dx, d)
		if target, ok := p.Get(capture); ok {
			if isOpponent(piece.Color, target) {
				if capture.Y == promoRank {
					for _, r := range promotionRoles {
						list.Add(Move{Kind: Promotion, From: from, To: capture, PromoteTo: r, Piece: piece, Capture: target})
					}
				} else {
					list.Add(Move{Kind: Normal, From: from, To: capture, Piece: piece, Capture: target})
				}
			}
		} else if ep, has := p.EnPassant(); has && capture == ep {
			list.Add(Move{Kind: EnPassant, From: from, To: capture, Piece: piece, Capture: NewPiece(piece.Color.Opponent(), Pawn)})
		}
	}
}

var knightOffsets = [8][2]int64{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

func generateKnightMoves(p *Position, from Coordinate, piece Piece, list *MoveList) {
	for _, o := range knightOffsets {
		to := from.Add(o[0], o[1])
		if target, ok := p.Get(to); ok {
			if isOpponent(piece.Color, target) {
				list.Add(Move{Kind: Normal, From: from, To: to, Piece: piece, Capture: target})
			}
		} else {
			list.Add(Move{Kind: Normal, From: from, To: to, Piece: piece})
		}
	}
}

var kingOffsets = [8][2]int64{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

func generateKingMoves(p *Position, from Coordinate, piece Piece, list *MoveList) {
	for _, o := range kingOffsets {
		to := from.Add(o[0], o[1])
		if target, ok := p.Get(to); ok {
			if isOpponent(piece.Color, target) {
				list.Add(Move{Kind: Normal, From: from, To: to, Piece: piece, Capture: target})
			}
		} else {
			list.Add(Move{Kind: Normal, From: from, To: to, Piece: piece})
		}
	}

	generateCastling(p, from, piece, list)
}

// generateCastling emits a Castling move whenever the king stands on its
// starting square, the corresponding right is set and the files between king
// and rook are empty. It does not verify that the king does not castle
// through check; that's left to the legality filter in Make, which only
// catches the ending square. A loose generator kept simple on purpose, since
// Make already rejects anything that lands the king in check.
func generateCastling(p *Position, from Coordinate, piece Piece, list *MoveList) {
	var homeRank int64
	var kingSide, queenSide Castling
	if piece.Color == White {
		homeRank = 1
		kingSide, queenSide = WhiteKingSide, WhiteQueenSide
	} else {
		homeRank = 8
		kingSide, queenSide = BlackKingSide, BlackQueenSide
	}
	if from != NewCoordinate(5, homeRank) {
		return
	}

	empty := func(x int64) bool {
		_, ok := p.Get(NewCoordinate(x, homeRank))
		return !ok
	}

	if p.castling.IsAllowed(kingSide) && empty(6) && empty(7) {
		list.Add(Move{Kind: CastlingMove, From: from, To: NewCoordinate(7, homeRank), Piece: piece})
	}
	if p.castling.IsAllowed(queenSide) && empty(4) && empty(3) && empty(2) {
		list.Add(Move{Kind: CastlingMove, From: from, To: NewCoordinate(3, homeRank), Piece: piece})
	}
}

var rookDirections = [4]Direction{N, S, E, W}
var bishopDirections = [4]Direction{NE, NW, SE, SW}
var queenDirections = [8]Direction{N, S, E, W, NE, NW, SE, SW}

// generateSlides implements the rook/bishop/queen ray scan: for each
// direction, find the nearest piece on squares by a linear scan (no
// bounded-board ray table is possible on an unbounded board), and emit either
// a capture of that blocker, nothing (friendly blocker) or a symbolic
// InfiniteRay if the ray is unobstructed.
func generateSlides(p *Position, from Coordinate, piece Piece, list *MoveList, directions []Direction) {
	for _, dir := range directions {
		dx, dy := dir.Delta()

		var nearest Coordinate
		var nearestPiece Piece
		var nearestDist int64
		found := false

		for sq, target := range p.squares {
			if sq == from {
				continue
			}
			var dist int64
			var onRay bool
			switch {
			case dx == 0: // vertical ray (N/S)
				onRay = sq.X == from.X && sign(sq.Y-from.Y) == dy
				dist = abs(sq.Y - from.Y)
			case dy == 0: // horizontal ray (E/W)
				onRay = sq.Y == from.Y && sign(sq.X-from.X) == dx
				dist = abs(sq.X - from.X)
			default: // diagonal ray
				ddx, ddy := sq.X-from.X, sq.Y-from.Y
				onRay = abs(ddx) == abs(ddy) && ddx != 0 && sign(ddx) == dx && sign(ddy) == dy
				dist = abs(ddx)
			}
			if !onRay {
				continue
			}
			if !found || dist < nearestDist {
				nearest, nearestPiece, nearestDist, found = sq, target, dist, true
			}
		}

		if !found {
			list.Add(Move{Kind: InfiniteRay, From: from, Direction: dir, Piece: piece})
			continue
		}
		if isOpponent(piece.Color, nearestPiece) {
			list.Add(Move{Kind: Normal, From: from, To: nearest, Piece: piece, Capture: nearestPiece})
		}
		// else: friendly blocker, no move on this ray.
	}
}
