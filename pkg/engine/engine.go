// Package engine ties together position, evaluation and search into the
// move-by-move API a driver (console, CLI, tests) actually calls.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/herohde/infinitychess/pkg/board"
	"github.com/herohde/infinitychess/pkg/eval"
	"github.com/herohde/infinitychess/pkg/search"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

// Options are engine-wide defaults, overridden per-call by search.Options
// where applicable.
type Options struct {
	// Depth is the default search depth limit. Zero means no limit.
	Depth uint
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v}", o.Depth)
}

// Engine encapsulates game-playing logic: position management, evaluation and
// search, exposing the typed surface a driver calls against. No
// transposition table or opening book; those are out of scope.
type Engine struct {
	name, author string

	launcher search.Launcher
	eval     eval.Evaluator
	opts     Options

	p       *board.Position
	history []board.Move
	active  search.Handle
	mu      sync.Mutex
}

// Option is an engine construction option.
type Option func(*Engine)

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithEvaluator overrides the default material evaluator.
func WithEvaluator(ev eval.Evaluator) Option {
	return func(e *Engine) {
		e.eval = ev
	}
}

func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{
		name:     name,
		author:   author,
		launcher: search.Iterative{},
		eval:     eval.Material{},
	}
	for _, fn := range opts {
		fn(e)
	}
	e.Reset(ctx)

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

func (e *Engine) SetDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Depth = depth
}

// Position returns the current position. Callers must not mutate it.
func (e *Engine) Position() *board.Position {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.p
}

// Reset starts a new game from the standard opening position.
func (e *Engine) Reset(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Reset, depth=%v", e.opts.Depth)

	e.haltSearchIfActiveLocked(ctx)
	e.p = board.Start()
	e.history = nil

	logw.Infof(ctx, "New position:\n%v", e.p.Dump())
}

// Move applies m, usually an opponent move, to the current position. Fails if
// m is illegal (not pseudo-legal, or leaves the mover's own king attacked).
func (e *Engine) Move(ctx context.Context, m board.Move) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Move %v", m)

	e.haltSearchIfActiveLocked(ctx)

	var list board.MoveList
	board.GenerateMoves(e.p, &list)

	for _, candidate := range list.Slice() {
		if !candidate.Equals(m) {
			continue
		}
		if !e.p.Make(candidate) {
			return fmt.Errorf("illegal move: %v", candidate)
		}
		e.history = append(e.history, candidate)
		logw.Infof(ctx, "Move %v applied", candidate)
		return nil
	}
	return fmt.Errorf("invalid move: %v", m)
}

// TakeBack undoes the most recently applied move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.history) == 0 {
		return fmt.Errorf("no move to take back")
	}

	e.haltSearchIfActiveLocked(ctx)

	n := len(e.history) - 1
	m := e.history[n]
	e.history = e.history[:n]

	e.p.Unmake(m)
	logw.Infof(ctx, "Takeback %v", m)
	return nil
}

// Analyze starts a search of the current position, returning a channel of
// increasingly deep principal variations.
func (e *Engine) Analyze(ctx context.Context, opt search.Options) (<-chan search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := opt.DepthLimit.V(); !ok && e.opts.Depth > 0 {
		opt.DepthLimit = lang.Some(e.opts.Depth)
	}

	logw.Infof(ctx, "Analyze %v, opt=%v", e.p.Dump(), opt)

	if e.active != nil {
		return nil, fmt.Errorf("search already active")
	}

	handle, out := e.launcher.Launch(ctx, e.p, e.eval, opt)
	e.active = handle
	return out, nil
}

// Halt halts the active search and returns the principal variation, if any.
func (e *Engine) Halt(ctx context.Context) (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Halt")

	pv, ok := e.haltSearchIfActiveLocked(ctx)
	if !ok {
		return search.PV{}, fmt.Errorf("no active search")
	}
	return pv, nil
}

func (e *Engine) haltSearchIfActiveLocked(ctx context.Context) (search.PV, bool) {
	if e.active != nil {
		pv := e.active.Halt()
		logw.Infof(ctx, "Search halted: %v", pv)

		e.active = nil
		return pv, true
	}
	return search.PV{}, false
}
