package state

import (
	"iter"

	"github.com/gammazero/deque"
)

// DefaultCapacity is how many committed strokes stay undoable.
const DefaultCapacity = 5

// History is a bounded, linear undo buffer of committed strokes.
//
// Slots 0 through Cursor are active and get drawn. Slots past the cursor
// were undone and wait for Redo. When a commit overflows the capacity the
// oldest slot is evicted and handed back to the caller to be baked.
type History struct {
	slots    deque.Deque[Stroke]
	cursor   int
	capacity int
}

// NewHistory returns an empty history holding at most capacity strokes.
// A capacity of zero (or less) bakes every stroke straight away.
func NewHistory(capacity int) *History {
	return &History{
		cursor:   -1,
		capacity: max(capacity, 0),
	}
}

// Commit appends s after the cursor, dropping any redo strokes first.
// If that overflows the buffer, the evicted front stroke is returned with
// ok set; it must be baked exactly once.
func (h *History) Commit(s Stroke) (evicted Stroke, ok bool) {
	if h.capacity == 0 {
		return s, true
	}
	for h.slots.Len() > h.cursor+1 {
		h.slots.PopBack()
	}
	h.slots.PushBack(s)
	h.cursor++

	if h.slots.Len() > h.capacity {
		evicted = h.slots.PopFront()
		h.cursor--
		return evicted, true
	}
	return Stroke{}, false
}

// Undo moves the cursor back one stroke. It reports false when there is
// nothing left to undo.
func (h *History) Undo() bool {
	if h.cursor < 0 {
		return false
	}
	h.cursor--
	return true
}

// Redo moves the cursor forward one stroke. It reports false when there is
// nothing to redo.
func (h *History) Redo() bool {
	if h.cursor >= h.slots.Len()-1 {
		return false
	}
	h.cursor++
	return true
}

// Clear drops every slot.
func (h *History) Clear() {
	h.slots.Clear()
	h.cursor = -1
}

// Active yields the active strokes oldest first. The strokes are shared
// with the history and must not be modified.
func (h *History) Active() iter.Seq[Stroke] {
	return func(yield func(Stroke) bool) {
		for i := 0; i <= h.cursor; i++ {
			if !yield(h.slots.At(i)) {
				return
			}
		}
	}
}

// Cursor returns the index of the last active slot, or -1.
func (h *History) Cursor() int { return h.cursor }

// Len returns the number of slots, active or not.
func (h *History) Len() int { return h.slots.Len() }

// Cap returns the capacity the history was created with.
func (h *History) Cap() int { return h.capacity }

func (h *History) CanUndo() bool { return h.cursor >= 0 }

func (h *History) CanRedo() bool { return h.cursor < h.slots.Len()-1 }
