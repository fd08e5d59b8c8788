// Package timer schedules frame-based delayed and repeating callbacks that
// are grouped by owner so a whole group can be cancelled at once.
package timer

// Owner groups timers. Levels use their level number; zero is reserved for
// timers that outlive every level.
type Owner int

const SessionOwner Owner = 0

// ID identifies one scheduled timer.
type ID uint64

type entry struct {
	id        ID
	owner     Owner
	remaining int
	period    int
	fn        func()
	done      bool
}

// Registry owns every pending timer of a session. It is advanced once per
// tick from the game goroutine and is not safe for concurrent use.
type Registry struct {
	nextID  ID
	entries []*entry
	frame   uint64
}

func NewRegistry() *Registry {
	return &Registry{}
}

// After runs fn once, frames ticks from now.
func (r *Registry) After(owner Owner, frames int, fn func()) ID {
	return r.add(owner, frames, 0, fn)
}

// Every runs fn every frames ticks until cancelled. The first call happens
// one full period from now.
func (r *Registry) Every(owner Owner, frames int, fn func()) ID {
	if frames < 1 {
		frames = 1
	}
	return r.add(owner, frames, frames, fn)
}

func (r *Registry) add(owner Owner, frames, period int, fn func()) ID {
	if r == nil || fn == nil {
		return 0
	}
	if frames < 1 {
		frames = 1
	}
	r.nextID++
	r.entries = append(r.entries, &entry{
		id:        r.nextID,
		owner:     owner,
		remaining: frames,
		period:    period,
		fn:        fn,
	})
	return r.nextID
}

// Cancel stops one timer and reports whether it was still pending.
func (r *Registry) Cancel(id ID) bool {
	if r == nil {
		return false
	}
	for _, e := range r.entries {
		if e.id == id && !e.done {
			e.done = true
			return true
		}
	}
	return false
}

// CancelOwner stops every pending timer of owner, including ones whose
// callbacks are due later in the tick currently being advanced. It returns
// how many were stopped.
func (r *Registry) CancelOwner(owner Owner) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, e := range r.entries {
		if e.owner == owner && !e.done {
			e.done = true
			n++
		}
	}
	return n
}

// Pending returns the number of live timers held by owner.
func (r *Registry) Pending(owner Owner) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, e := range r.entries {
		if e.owner == owner && !e.done {
			n++
		}
	}
	return n
}

// Len returns the number of live timers.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, e := range r.entries {
		if !e.done {
			n++
		}
	}
	return n
}

// Frame returns how many ticks have been advanced.
func (r *Registry) Frame() uint64 {
	if r == nil {
		return 0
	}
	return r.frame
}

// Advance moves every timer one tick forward and fires the due ones in
// registration order. Timers added by a callback start counting next tick.
func (r *Registry) Advance() {
	if r == nil {
		return
	}
	r.frame++
	due := r.entries
	for _, e := range due {
		if e.done {
			continue
		}
		e.remaining--
		if e.remaining > 0 {
			continue
		}
		if e.period > 0 {
			e.remaining = e.period
		} else {
			e.done = true
		}
		e.fn()
	}
	r.compact()
}

func (r *Registry) compact() {
	live := r.entries[:0]
	for _, e := range r.entries {
		if !e.done {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(r.entries); i++ {
		r.entries[i] = nil
	}
	r.entries = live
}
