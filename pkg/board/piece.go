package board

import "fmt"

// Role identifies a piece kind, independent of color.
type Role uint8

const (
	NoRole Role = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (r Role) String() string {
	switch r {
	case Pawn:
		return "p"
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	case King:
		return "k"
	default:
		return "?"
	}
}

// ParseRole parses a role letter such as 'q' or 'N' (case-insensitive).
func ParseRole(r rune) (Role, bool) {
	switch r {
	case 'p', 'P':
		return Pawn, true
	case 'n', 'N':
		return Knight, true
	case 'b', 'B':
		return Bishop, true
	case 'r', 'R':
		return Rook, true
	case 'q', 'Q':
		return Queen, true
	case 'k', 'K':
		return King, true
	default:
		return NoRole, false
	}
}

// Value is the nominal material value of a role, in centipawns.
var Value = map[Role]int{
	NoRole: 0,
	Pawn:   100,
	Knight: 300,
	Bishop: 400,
	Rook:   700,
	Queen:  1200,
	King:   0,
}

// Piece is one of the twelve tagged {Role, Color} values.
type Piece struct {
	Role  Role
	Color Color
}

// NoPiece is the zero value, used as a sentinel for "no piece" where a Piece (not
// an (Piece, bool) pair) is expected, e.g. in Move.Capture.
var NoPiece = Piece{}

func NewPiece(c Color, r Role) Piece {
	return Piece{Role: r, Color: c}
}

func (p Piece) IsWhite() bool {
	return p.Role != NoRole && p.Color == White
}

func (p Piece) IsBlack() bool {
	return p.Role != NoRole && p.Color == Black
}

func (p Piece) IsValid() bool {
	return p.Role != NoRole
}

func (p Piece) String() string {
	if p.Role == NoRole {
		return "-"
	}
	if p.Color == White {
		return fmt.Sprintf("%c", []rune(p.Role.String())[0]-32) // uppercase
	}
	return p.Role.String()
}
