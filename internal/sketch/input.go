package sketch

import "Sketchpad/internal/state"

// PointerID identifies one contact (finger, pen or mouse button).
type PointerID int

// Phase is the stage of a pointer contact.
type Phase int

const (
	PhaseBegin Phase = iota
	PhaseMove
	PhaseEnd
	PhaseCancel
)

// PointerEvent is one pointer sample delivered by the host.
type PointerEvent struct {
	ID       PointerID
	Phase    Phase
	Position state.Point
}

// HandlePointer dispatches ev to the matching pointer method.
func (p *Pad) HandlePointer(ev PointerEvent) {
	switch ev.Phase {
	case PhaseBegin:
		p.PointerDown(ev.ID, ev.Position)
	case PhaseMove:
		p.PointerMove(ev.ID, ev.Position)
	case PhaseEnd:
		p.PointerUp(ev.ID)
	case PhaseCancel:
		p.PointerCancel(ev.ID)
	}
}

// Drawing reports whether a stroke is in progress.
func (p *Pad) Drawing() bool { return p.drawing }

// InProgress returns the points of the stroke being drawn. The slice is
// reused and must not be kept.
func (p *Pad) InProgress() []state.Point { return p.points }

// PointerDown starts a stroke at pos. While a stroke is in progress other
// pointers are ignored.
func (p *Pad) PointerDown(id PointerID, pos state.Point) {
	if p.drawing {
		return
	}
	p.drawing = true
	p.pointer = id
	p.points = append(p.points[:0], pos)
}

// PointerMove extends the stroke in progress.
func (p *Pad) PointerMove(id PointerID, pos state.Point) {
	if !p.tracking(id) {
		return
	}
	p.points = append(p.points, pos)
	p.invalidate(RepaintVolatile)
}

// PointerUp commits the stroke in progress with the current attributes.
// A stroke pushed out of the undo window is baked.
func (p *Pad) PointerUp(id PointerID) {
	if !p.tracking(id) {
		return
	}
	s := state.NewStroke(p.points, p.attrs)
	p.abandon()
	p.journal.Record(state.ChangeCommit, &s)

	evicted, ok := p.history.Commit(s)
	if !ok {
		p.invalidate(RepaintVolatile)
		return
	}
	if err := p.layers.Bake(evicted); err != nil {
		logger().Error("bake failed", "stroke", evicted.ID, "err", err)
	} else {
		p.journal.Record(state.ChangeBake, &evicted)
	}
	p.invalidate(RepaintFull)
}

// PointerCancel drops the stroke in progress without committing it.
func (p *Pad) PointerCancel(id PointerID) {
	if !p.tracking(id) {
		return
	}
	p.abandon()
	p.invalidate(RepaintVolatile)
}

func (p *Pad) tracking(id PointerID) bool {
	return p.drawing && id == p.pointer
}

func (p *Pad) abandon() {
	p.drawing = false
	p.points = p.points[:0]
}
