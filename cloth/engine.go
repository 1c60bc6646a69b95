package cloth

import (
	"math"
	"slices"

	"github.com/jakecoffman/cp"
)

// minDistance is the separation below which two particles are treated as
// coincident and their constraint is skipped for the pass.
const minDistance = 1e-12

// Engine advances a cloth topology one frame at a time. It is not safe for
// concurrent use; pin updates and Step must be serialized by the caller.
type Engine struct {
	particles   []Particle
	constraints []Constraint
	columns     int
	rows        int

	cfg     config
	elapsed float64
	hold    *hold
}

type hold struct {
	index  int
	target cp.Vector
	// saved pin state, restored on release
	invMass float64
	fixed   bool
}

// New creates an engine that owns a copy of the topology's particles and
// constraints.
func New(t Topology, opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Engine{
		particles:   slices.Clone(t.Particles),
		constraints: slices.Clone(t.Constraints),
		columns:     t.Columns,
		rows:        t.Rows,
		cfg:         cfg,
	}
}

// Step advances the simulation by dt seconds: the held particle is moved to
// its target, forces are integrated into every free particle, constraints are
// relaxed, and velocities are recomputed from the corrected positions.
// A non-positive or non-finite dt leaves the state untouched.
func (e *Engine) Step(dt float64) {
	if e == nil || !(dt > 0) || math.IsInf(dt, 0) {
		return
	}

	e.applyHold()
	e.integrate(dt, e.windTime())
	for i := 0; i < e.cfg.iterations; i++ {
		e.relax()
	}
	e.reconcile(dt)

	e.elapsed += dt
}

func (e *Engine) windTime() float64 {
	if e.cfg.clock != nil {
		return e.cfg.clock()
	}
	return e.elapsed
}

func (e *Engine) applyHold() {
	if e.hold == nil {
		return
	}
	p := &e.particles[e.hold.index]
	p.Fixed = true
	p.InvMass = 0
	p.Position = e.hold.target
	p.Previous = e.hold.target
	p.Velocity = cp.Vector{}
}

func (e *Engine) integrate(dt, t float64) {
	damping := e.cfg.damping
	gravity := e.cfg.gravity.Mult(dt)
	for i := range e.particles {
		p := &e.particles[i]
		if p.Fixed {
			continue
		}
		v := p.Velocity.Mult(damping).Add(gravity)
		if e.cfg.wind != nil {
			w := e.cfg.wind.At(t, p.Position)
			if finite(w) {
				v = v.Add(w.Mult(dt))
			}
		}
		p.Velocity = v
		p.Previous = p.Position
		p.Position = p.Position.Add(v.Mult(dt))
	}
}

// relax runs one pass over all constraints in array order.
func (e *Engine) relax() {
	for _, c := range e.constraints {
		a := &e.particles[c.A]
		b := &e.particles[c.B]
		wa, wb := a.weight(), b.weight()
		wsum := wa + wb
		if wsum == 0 {
			continue
		}

		delta := b.Position.Sub(a.Position)
		d := delta.Length()
		if d < minDistance || math.IsNaN(d) || math.IsInf(d, 0) {
			continue
		}

		n := delta.Mult(1 / d)
		s := c.Stiffness * (d - c.RestLength) / wsum
		if wa > 0 {
			a.Position = a.Position.Add(n.Mult(wa * s))
		}
		if wb > 0 {
			b.Position = b.Position.Sub(n.Mult(wb * s))
		}
	}
}

func (e *Engine) reconcile(dt float64) {
	inv := 1 / dt
	for i := range e.particles {
		p := &e.particles[i]
		if p.Fixed {
			continue
		}
		p.Velocity = p.Position.Sub(p.Previous).Mult(inv)
	}
}

// Positions appends the row-major particle positions to dst and returns the
// extended slice.
func (e *Engine) Positions(dst []cp.Vector) []cp.Vector {
	dst = slices.Grow(dst, len(e.particles))
	for i := range e.particles {
		dst = append(dst, e.particles[i].Position)
	}
	return dst
}

// Len returns the number of particles.
func (e *Engine) Len() int {
	return len(e.particles)
}

// Columns returns the grid width the engine was built from.
func (e *Engine) Columns() int {
	return e.columns
}

// Rows returns the grid height the engine was built from.
func (e *Engine) Rows() int {
	return e.rows
}

// Particle returns a copy of particle i.
func (e *Engine) Particle(i int) (Particle, bool) {
	if i < 0 || i >= len(e.particles) {
		return Particle{}, false
	}
	return e.particles[i], true
}

// Constraints returns a copy of the constraint set.
func (e *Engine) Constraints() []Constraint {
	return slices.Clone(e.constraints)
}

// Time returns the accumulated simulation time.
func (e *Engine) Time() float64 {
	return e.elapsed
}

// Nearest returns the particle closest to pos within radius. A negative or
// NaN radius matches nothing.
func (e *Engine) Nearest(pos cp.Vector, radius float64) (int, bool) {
	if !(radius >= 0) {
		return -1, false
	}
	best := -1
	bestSq := radius * radius
	for i := range e.particles {
		d := e.particles[i].Position.DistanceSq(pos)
		if d <= bestSq {
			best = i
			bestSq = d
		}
	}
	return best, best >= 0
}

// Stretch returns the largest relative length error over all constraints.
func (e *Engine) Stretch() float64 {
	var worst float64
	for _, c := range e.constraints {
		if c.RestLength <= 0 {
			continue
		}
		d := e.particles[c.A].Position.Distance(e.particles[c.B].Position)
		if r := math.Abs(d-c.RestLength) / c.RestLength; r > worst {
			worst = r
		}
	}
	return worst
}

// Bounds returns the bounding box of all particle positions.
func (e *Engine) Bounds() cp.BB {
	if len(e.particles) == 0 {
		return cp.BB{}
	}
	first := e.particles[0].Position
	bb := cp.BB{L: first.X, B: first.Y, R: first.X, T: first.Y}
	for i := range e.particles[1:] {
		p := e.particles[i+1].Position
		bb.L = math.Min(bb.L, p.X)
		bb.R = math.Max(bb.R, p.X)
		bb.B = math.Min(bb.B, p.Y)
		bb.T = math.Max(bb.T, p.Y)
	}
	return bb
}

// Finite reports whether every particle position is free of NaN and Inf.
func (e *Engine) Finite() bool {
	for i := range e.particles {
		if !finite(e.particles[i].Position) {
			return false
		}
	}
	return true
}

func finite(v cp.Vector) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
