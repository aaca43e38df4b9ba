// Package console implements a minimal line-oriented debug driver for the
// engine: reset/move/show/go/quit. Surrounding tooling, not core engine
// logic.
package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/herohde/infinitychess/pkg/board"
	"github.com/herohde/infinitychess/pkg/engine"
	"github.com/herohde/infinitychess/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/iox"
	"go.uber.org/atomic"
)

// Driver reads commands from in and writes output lines to the returned
// channel until in is closed or "quit" is received.
type Driver struct {
	iox.AsyncCloser

	e *engine.Engine

	out chan<- string

	active atomic.Bool // true while the user is waiting on an active search
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		e:           e,
		out:         out,
	}
	go d.process(ctx, in)
	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "Console driver initialized")

	d.out <- fmt.Sprintf("engine %v (%v)", d.e.Name(), d.e.Author())
	d.printBoard()

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}
			if d.dispatch(ctx, line) {
				return
			}

		case <-d.Closed():
			d.ensureInactive(ctx)
			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

// dispatch handles one input line, returning true iff the driver should exit.
func (d *Driver) dispatch(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "reset", "r":
		d.ensureInactive(ctx)
		d.e.Reset(ctx)
		d.printBoard()

	case "move", "m":
		d.ensureInactive(ctx)
		if len(args) == 0 {
			d.out <- "usage: move <from> <to> [promo]"
			break
		}
		m, err := parseMove(d.e.Position(), args)
		if err != nil {
			d.out <- fmt.Sprintf("invalid move: %v", err)
			break
		}
		if err := d.e.Move(ctx, m); err != nil {
			d.out <- fmt.Sprintf("illegal move: %v", err)
			break
		}
		d.printBoard()

	case "undo", "u":
		d.ensureInactive(ctx)
		if err := d.e.TakeBack(ctx); err != nil {
			d.out <- fmt.Sprintf("undo failed: %v", err)
			break
		}
		d.printBoard()

	case "show", "p":
		d.printBoard()

	case "go", "analyze", "a":
		d.ensureInactive(ctx)

		var opt search.Options
		if len(args) > 0 {
			depth, _ := strconv.Atoi(args[0])
			opt.DepthLimit = lang.Some(uint(depth))
		}

		out, err := d.e.Analyze(ctx, opt)
		if err != nil {
			d.out <- fmt.Sprintf("analyze failed: %v", err)
			break
		}
		d.active.Store(true)

		go func() {
			var last search.PV
			for pv := range out {
				last = pv
				d.out <- pv.String()
			}
			d.searchCompleted(last)
		}()

	case "depth", "d":
		if len(args) > 0 {
			depth, _ := strconv.Atoi(args[0])
			d.e.SetDepth(uint(depth))
		}

	case "halt", "stop":
		pv, err := d.e.Halt(ctx)
		if err == nil {
			d.searchCompleted(pv)
		}

	case "quit", "exit", "q":
		d.ensureInactive(ctx)
		return true

	default:
		d.out <- fmt.Sprintf("unrecognized command: %v", cmd)
	}
	return false
}

func (d *Driver) ensureInactive(ctx context.Context) {
	d.active.Store(false)
	_, _ = d.e.Halt(ctx)
}

func (d *Driver) searchCompleted(pv search.PV) {
	if d.active.CompareAndSwap(true, false) {
		if len(pv.Moves) > 0 {
			d.out <- fmt.Sprintf("bestmove %v", pv.Moves[0])
		}
	}
}

func (d *Driver) printBoard() {
	d.out <- ""
	d.out <- d.e.Position().Dump()
}

// parseMove parses "from to [promo]" coordinate strings such as "1 2 1 4" or
// "1 7 1 8 q" into a pseudo-legal move the engine can apply. Full
// algebraic/SAN parsing is out of scope for this debug tooling.
func parseMove(p *board.Position, args []string) (board.Move, error) {
	nums := make([]int64, 0, 5)
	for _, a := range args {
		if len(nums) == 4 {
			break
		}
		v, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return board.Move{}, fmt.Errorf("bad coordinate %q: %w", a, err)
		}
		nums = append(nums, v)
	}
	if len(nums) != 4 {
		return board.Move{}, fmt.Errorf("expected 4 coordinates (fromX fromY toX toY), got %v", len(nums))
	}
	from := board.NewCoordinate(nums[0], nums[1])
	to := board.NewCoordinate(nums[2], nums[3])

	var promo board.Role
	if len(args) > 4 {
		r, ok := board.ParseRole([]rune(args[4])[0])
		if !ok {
			return board.Move{}, fmt.Errorf("bad promotion role %q", args[4])
		}
		promo = r
	}

	var list board.MoveList
	board.GenerateMoves(p, &list)
	for _, m := range list.Slice() {
		if m.From == from && m.To == to && (promo == board.NoRole || m.PromoteTo == promo) {
			return m, nil
		}
	}
	return board.Move{}, fmt.Errorf("no such pseudo-legal move %v->%v", from, to)
}
