package search

import (
	"container/heap"
	"fmt"

	"github.com/herohde/infinitychess/pkg/board"
)

// Priority is a move ordering priority; higher searches first.
type Priority int32

// MoveList is a move priority queue used to implement always-extract-the-
// best-remaining-move ordering. A binary heap gives that externally
// observable order (highest priority first) in O(n log n) instead of the
// O(n^2) a repeated linear scan would cost.
type MoveList struct {
	h moveHeap
}

// NewMoveList builds a move list, scoring each move with fn.
func NewMoveList(moves []board.Move, fn func(board.Move) Priority) *MoveList {
	h := make(moveHeap, len(moves))
	for i, m := range moves {
		h[i] = elm{m: m, val: fn(m)}
	}
	heap.Init(&h)
	return &MoveList{h: h}
}

// Next pops the highest-priority remaining move, along with its priority.
func (ml *MoveList) Next() (board.Move, Priority, bool) {
	if ml.Size() == 0 {
		return board.Move{}, 0, false
	}
	ret := heap.Pop(&ml.h).(elm)
	return ret.m, ret.val, true
}

func (ml *MoveList) Size() int {
	return ml.h.Len()
}

func (ml *MoveList) String() string {
	if ml.Size() == 0 {
		return "[size=0]"
	}
	return fmt.Sprintf("[top=%v, size=%v]", ml.h[0].m, ml.Size())
}

type elm struct {
	m   board.Move
	val Priority
}

type moveHeap []elm

func (h moveHeap) Len() int            { return len(h) }
func (h moveHeap) Less(i, j int) bool  { return h[i].val > h[j].val }
func (h moveHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *moveHeap) Push(x interface{}) { *h = append(*h, x.(elm)) }

func (h *moveHeap) Pop() interface{} {
	old := *h
	n := len(old)
	ret := old[n-1]
	*h = old[0 : n-1]
	return ret
}
