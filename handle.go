package ck

import (
	"errors"
	"fmt"
)

// ErrStaleHandle is returned when a handle refers to a released object.
var ErrStaleHandle = errors.New("ck: stale handle")

// Handle identifies a toolkit object (root, window, context or widget).
// The low 32 bits hold the arena slot, the high 32 bits its generation, so a
// handle to a destroyed object never aliases a newer one in the same slot.
// The zero Handle is never issued.
type Handle uint64

// Slot returns the arena index.
func (h Handle) Slot() uint32 {
	return uint32(h)
}

// Generation returns the generation the slot had when the handle was issued.
func (h Handle) Generation() uint32 {
	return uint32(h >> 32)
}

// Key returns the handle as a HashMap key.
func (h Handle) Key() int64 {
	return int64(h)
}

func (h Handle) String() string {
	return fmt.Sprintf("%d@%d", h.Slot(), h.Generation())
}

func makeHandle(slot, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(slot))
}

// Handles is a generational arena of object identities.
type Handles struct {
	gens []uint32 // current generation per slot; odd = live
	free []uint32
}

// NewHandles creates an empty arena.
func NewHandles() *Handles {
	return &Handles{}
}

// Alloc issues a fresh handle, reusing released slots first.
func (a *Handles) Alloc() Handle {
	if n := len(a.free); n > 0 {
		slot := a.free[n-1]
		a.free = a.free[:n-1]
		a.gens[slot]++
		return makeHandle(slot, a.gens[slot])
	}
	a.gens = append(a.gens, 1)
	return makeHandle(uint32(len(a.gens)-1), 1)
}

// Release invalidates h. It reports false if h was already stale.
func (a *Handles) Release(h Handle) bool {
	if !a.Alive(h) {
		return false
	}
	slot := h.Slot()
	a.gens[slot]++
	a.free = append(a.free, slot)
	return true
}

// Alive reports whether h refers to a live object.
func (a *Handles) Alive(h Handle) bool {
	slot := h.Slot()
	if int(slot) >= len(a.gens) {
		return false
	}
	gen := a.gens[slot]
	return gen%2 == 1 && gen == h.Generation()
}

// Live returns the number of live handles.
func (a *Handles) Live() int {
	return len(a.gens) - len(a.free)
}
