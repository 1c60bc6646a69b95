package cloth

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

// ErrParticleIndex is returned when a pin command names a particle outside
// the particle array.
var ErrParticleIndex = errors.New("particle index out of range")

// SetPinnedTarget holds particle i at pos. The particle is fixed immediately
// and forced to pos at the start of every Step until released. Holding a
// different particle releases the previous one first.
func (e *Engine) SetPinnedTarget(i int, pos cp.Vector) error {
	if err := e.checkIndex(i); err != nil {
		return err
	}
	if e.hold != nil && e.hold.index != i {
		e.release()
	}
	if e.hold == nil {
		p := &e.particles[i]
		e.hold = &hold{index: i, invMass: p.InvMass, fixed: p.Fixed}
	}
	e.hold.target = pos
	e.applyHold()
	return nil
}

// ReleasePinned ends the hold on particle i and restores its previous pin
// state. Releasing a grid anchor leaves it fixed where it was dropped.
// Releasing a particle that is not held does nothing.
func (e *Engine) ReleasePinned(i int) error {
	if err := e.checkIndex(i); err != nil {
		return err
	}
	if e.hold == nil || e.hold.index != i {
		return nil
	}
	e.release()
	return nil
}

// Held returns the index of the held particle, if any.
func (e *Engine) Held() (int, bool) {
	if e.hold == nil {
		return -1, false
	}
	return e.hold.index, true
}

func (e *Engine) release() {
	h := e.hold
	e.hold = nil
	p := &e.particles[h.index]
	p.Fixed = h.fixed
	p.InvMass = h.invMass
	p.Previous = p.Position
	p.Velocity = cp.Vector{}
}

func (e *Engine) checkIndex(i int) error {
	if i < 0 || i >= len(e.particles) {
		return fmt.Errorf("cloth: pin %d of %d particles: %w", i, len(e.particles), ErrParticleIndex)
	}
	return nil
}
