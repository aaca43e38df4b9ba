package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/herohde/infinitychess/pkg/board"
	"github.com/herohde/infinitychess/pkg/eval"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// PV is one iteration's result: the best line found, its score and the
// resources spent finding it.
type PV struct {
	Depth int
	Nodes uint64
	Score eval.Score
	Moves []board.Move
	Time  time.Duration
}

func (pv PV) String() string {
	var sb strings.Builder
	for i, m := range pv.Moves {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(m.String())
	}
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v pv=[%v]", pv.Depth, pv.Score, pv.Nodes, pv.Time, sb.String())
}

// Options holds per-search knobs. Time control is a single wall-clock budget
// rather than a White/Black clock negotiation.
type Options struct {
	// DepthLimit, if set, stops iterative deepening once reached.
	DepthLimit lang.Optional[uint]
	// TimeBudget, if set, is a wall-clock deadline: the iteration running when
	// it passes is aborted and its result discarded, and no deeper iteration
	// is started.
	TimeBudget lang.Optional[time.Duration]
}

func (o Options) String() string {
	var parts []string
	if v, ok := o.DepthLimit.V(); ok {
		parts = append(parts, fmt.Sprintf("depth=%v", v))
	}
	if v, ok := o.TimeBudget.V(); ok {
		parts = append(parts, fmt.Sprintf("time=%v", v))
	}
	return fmt.Sprintf("[%v]", strings.Join(parts, ", "))
}

// Launcher manages searches run against an evaluator, producing a stream of
// increasingly deep PVs.
type Launcher interface {
	Launch(ctx context.Context, p *board.Position, eval eval.Evaluator, opt Options) (Handle, <-chan PV)
}

// Handle lets the caller stop an in-flight search and retrieve its best PV so
// far.
type Handle interface {
	Halt() PV
}

// Iterative is the standard Launcher: it repeatedly calls Searcher.Search
// with increasing depth until a limit fires, emitting a PV after each
// completed depth.
type Iterative struct{}

func (Iterative) Launch(ctx context.Context, p *board.Position, e eval.Evaluator, opt Options) (Handle, <-chan PV) {
	out := make(chan PV, 1)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
	}
	go h.process(ctx, p, e, opt, out)
	return h, out
}

type handle struct {
	init, quit iox.AsyncCloser

	pv PV
	mu sync.Mutex
}

func (h *handle) process(ctx context.Context, p *board.Position, e eval.Evaluator, opt Options, out chan PV) {
	defer h.init.Close()
	defer close(out)

	Stop.Store(false)

	s := NewSearcher(e)
	if budget, ok := opt.TimeBudget.V(); ok {
		s.SetDeadline(time.Now().Add(budget))
	}

	_, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	depth := 1
	for !h.quit.IsClosed() {
		start := time.Now()

		score := s.Search(p, depth)
		if s.stopSearch() && score == timeUp {
			return
		}

		pv := PV{
			Depth: depth,
			Nodes: s.Nodes(),
			Score: score,
			Moves: s.PrincipalVariation(),
			Time:  time.Since(start),
		}

		logw.Debugf(ctx, "Searched %v: %v", p, pv)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		h.init.Close()

		if limit, ok := opt.DepthLimit.V(); ok && uint(depth) == limit {
			return
		}
		if eval.IsMate(score) {
			return // forced mate found within full-width search; no point searching deeper.
		}
		if s.stopSearch() {
			return
		}
		depth++
	}
}

func (h *handle) Halt() PV {
	<-h.init.Closed()
	h.quit.Close()
	Stop.Store(true)

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.pv
}
