package state

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// ChangeKind names what happened to the drawing.
type ChangeKind string

const (
	ChangeCommit ChangeKind = "commit"
	ChangeBake   ChangeKind = "bake"
	ChangeUndo   ChangeKind = "undo"
	ChangeRedo   ChangeKind = "redo"
	ChangeClear  ChangeKind = "clear"
)

// Change is one stamped entry of the journal.
type Change struct {
	Kind   ChangeKind `json:"kind"`
	Seq    uint64     `json:"seq"`
	Site   string     `json:"site"`
	Stroke *Stroke    `json:"stroke,omitempty"`
	Time   time.Time  `json:"time"`
}

// Journal stamps drawing changes with a per-process site id and a
// monotonically increasing sequence number and fans them out to
// subscribers.
type Journal struct {
	site string
	seq  atomic.Uint64

	mu   sync.RWMutex
	subs []func(Change)
}

func NewJournal() *Journal {
	return &Journal{site: uuid.NewString()}
}

// Site returns the id stamped on every change from this journal.
func (j *Journal) Site() string { return j.site }

// Subscribe registers fn to receive every later change. fn runs on the
// goroutine that records the change.
func (j *Journal) Subscribe(fn func(Change)) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.subs = append(j.subs, fn)
}

// Record stamps a change and delivers it. stroke may be nil.
func (j *Journal) Record(kind ChangeKind, stroke *Stroke) Change {
	c := Change{
		Kind:   kind,
		Seq:    j.seq.Add(1),
		Site:   j.site,
		Stroke: stroke,
		Time:   time.Now(),
	}

	j.mu.RLock()
	subs := j.subs
	j.mu.RUnlock()
	for _, fn := range subs {
		fn(c)
	}
	return c
}
