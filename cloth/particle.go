package cloth

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Particle is a point mass in the simulated surface.
type Particle struct {
	Position cp.Vector
	// Previous is the position at the start of the last integration.
	Previous cp.Vector
	Velocity cp.Vector
	// InvMass is 0 for fixed particles.
	InvMass float64
	Fixed   bool
}

// NewParticle creates a particle at rest. A non-positive or non-finite mass
// is treated as infinite, so the particle is fixed with an inverse mass of 0.
func NewParticle(pos cp.Vector, mass float64, fixed bool) Particle {
	if !(mass > 0) || math.IsInf(mass, 0) {
		fixed = true
	}
	p := Particle{
		Position: pos,
		Previous: pos,
		Fixed:    fixed,
	}
	if !fixed {
		p.InvMass = 1 / mass
	}
	return p
}

func (p *Particle) weight() float64 {
	if p.Fixed {
		return 0
	}
	return p.InvMass
}

// Kind classifies a constraint by the grid adjacency it was built from.
type Kind int

const (
	Structural Kind = iota
	Shear
	Bend
)

func (k Kind) String() string {
	switch k {
	case Structural:
		return "structural"
	case Shear:
		return "shear"
	case Bend:
		return "bend"
	default:
		return "unknown"
	}
}

// Constraint keeps two particles, referenced by index, at RestLength apart.
type Constraint struct {
	A, B       int
	RestLength float64
	// Stiffness is the share of the error corrected per iteration, in (0,1].
	Stiffness float64
	Kind      Kind
}

// Stiffness holds per-class stiffness values.
type Stiffness struct {
	Structural float64
	Shear      float64
	Bend       float64
}

// DefaultStiffness returns the stiffness used for each class unless a grid
// overrides it.
func DefaultStiffness() Stiffness {
	return Stiffness{Structural: 1.0, Shear: 0.5, Bend: 0.2}
}

// of returns the effective stiffness for k. Unset, negative, or NaN values
// fall back to the class default; values above 1 are clamped to 1.
func (s Stiffness) of(k Kind) float64 {
	d := DefaultStiffness()
	v, def := s.Structural, d.Structural
	switch k {
	case Shear:
		v, def = s.Shear, d.Shear
	case Bend:
		v, def = s.Bend, d.Bend
	}
	switch {
	case math.IsNaN(v) || v <= 0:
		return def
	case v > 1:
		return 1
	}
	return v
}
