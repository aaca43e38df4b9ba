// Command infinitychess runs a debug console for the unbounded-board chess
// engine. No UCI protocol adapter; just the line-oriented console driver.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/herohde/infinitychess/pkg/engine"
	"github.com/herohde/infinitychess/pkg/engine/console"
)

var depth = flag.Uint("depth", 4, "Default search depth limit (0 = unlimited, until halted)")

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: infinitychess [options]

INFINITYCHESS is a chess engine for the unbounded ℤ×ℤ board variant.
Commands (stdin, one per line): reset, move <x1> <y1> <x2> <y2> [promo],
undo, show, go [depth], depth <n>, halt, quit.

Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	e := engine.New(ctx, "infinitychess", "infinitychess authors", engine.WithOptions(engine.Options{Depth: *depth}))

	in := engine.ReadStdinLines(ctx)
	driver, out := console.NewDriver(ctx, e, in)
	go engine.WriteStdoutLines(ctx, out)

	<-driver.Closed()
}
