// perft is a move-generator self-check: it counts the leaf nodes reached by
// exhaustively applying make/unmake from the standard opening to a fixed
// depth. See https://www.chessprogramming.org/Perft_Results. No FEN support:
// the only supported start position is the hardcoded opening.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/herohde/infinitychess/pkg/board"
)

var (
	depth  = flag.Int("depth", 4, "Search depth")
	divide = flag.Bool("divide", false, "Print per-root-move leaf counts at the final depth")
)

func main() {
	flag.Parse()

	for i := 1; i <= *depth; i++ {
		start := time.Now()
		nodes := perft(board.Start(), i, *divide && i == *depth)
		duration := time.Since(start)

		fmt.Printf("perft,%v,%v,%v\n", i, nodes, duration.Microseconds())
	}
}

func perft(p *board.Position, depth int, d bool) int64 {
	if depth == 0 {
		return 1
	}

	var list board.MoveList
	board.GenerateMoves(p, &list)

	var nodes int64
	for _, m := range list.Slice() {
		if m.Kind == board.InfiniteRay {
			continue // symbolic: no terminating square to recurse into
		}
		if !p.Make(m) {
			continue // Make already restored the position on rejection
		}
		count := perft(p, depth-1, false)
		p.Unmake(m)

		if d {
			fmt.Printf("%v: %v\n", m, count)
		}
		nodes += count
	}
	return nodes
}
