package cloth

import (
	"math"

	"github.com/jakecoffman/cp"
)

// AnchorFunc reports whether the grid cell at column x, row y starts pinned.
// Row 0 is the top row.
type AnchorFunc func(x, y int) bool

// TopRow pins the entire top row, as for a towel on a line.
func TopRow() AnchorFunc {
	return func(_, y int) bool { return y == 0 }
}

// TopRange pins columns from..to (inclusive) of the top row, as for a
// garment hung by its shoulders.
func TopRange(from, to int) AnchorFunc {
	if from > to {
		from, to = to, from
	}
	return func(x, y int) bool { return y == 0 && x >= from && x <= to }
}

// LeftColumn pins the first column, as for a flag on a pole.
func LeftColumn() AnchorFunc {
	return func(x, _ int) bool { return x == 0 }
}

// Corners pins the two top corners of a grid with the given column count.
func Corners(columns int) AnchorFunc {
	return func(x, y int) bool { return y == 0 && (x == 0 || x == columns-1) }
}

// NoAnchors leaves every particle free.
func NoAnchors() AnchorFunc {
	return func(_, _ int) bool { return false }
}

// Grid describes a rectangular cloth.
type Grid struct {
	Columns int
	Rows    int
	Spacing float64
	// Origin is the position of the top-left particle. Columns extend along
	// +X and rows along -Y.
	Origin    cp.Vector
	Anchor    AnchorFunc
	Stiffness Stiffness
	// Mass of each free particle. Defaults to 1.
	Mass float64
}

// Topology is the particle and constraint set produced from a Grid.
type Topology struct {
	Columns     int
	Rows        int
	Particles   []Particle
	Constraints []Constraint
}

// Index returns the row-major particle index of cell (x, y).
func (t Topology) Index(x, y int) int {
	return y*t.Columns + x
}

// Count returns the number of constraints of kind k.
func (t Topology) Count(k Kind) int {
	n := 0
	for _, c := range t.Constraints {
		if c.Kind == k {
			n++
		}
	}
	return n
}

// Build lays out the grid's particles in row-major order and connects them
// with structural, shear, and bend constraints. Non-positive dimensions yield
// an empty topology.
func Build(g Grid) Topology {
	if g.Columns <= 0 || g.Rows <= 0 {
		return Topology{}
	}
	cols, rows := g.Columns, g.Rows
	mass := g.Mass
	if mass <= 0 {
		mass = 1
	}
	anchor := g.Anchor
	if anchor == nil {
		anchor = NoAnchors()
	}

	t := Topology{
		Columns:     cols,
		Rows:        rows,
		Particles:   make([]Particle, 0, cols*rows),
		Constraints: make([]Constraint, 0, constraintCapacity(cols, rows)),
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			pos := cp.Vector{
				X: g.Origin.X + float64(x)*g.Spacing,
				Y: g.Origin.Y - float64(y)*g.Spacing,
			}
			t.Particles = append(t.Particles, NewParticle(pos, mass, anchor(x, y)))
		}
	}

	diag := g.Spacing * math.Sqrt2
	link := func(a, b int, rest float64, k Kind) {
		t.Constraints = append(t.Constraints, Constraint{
			A:          a,
			B:          b,
			RestLength: rest,
			Stiffness:  g.Stiffness.of(k),
			Kind:       k,
		})
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			i := y*cols + x

			if x < cols-1 {
				link(i, i+1, g.Spacing, Structural)
			}
			if y < rows-1 {
				link(i, i+cols, g.Spacing, Structural)
			}

			if x < cols-1 && y < rows-1 {
				link(i, i+cols+1, diag, Shear)
			}
			if x > 0 && y < rows-1 {
				link(i, i+cols-1, diag, Shear)
			}

			if x < cols-2 {
				link(i, i+2, 2*g.Spacing, Bend)
			}
			if y < rows-2 {
				link(i, i+2*cols, 2*g.Spacing, Bend)
			}
		}
	}

	return t
}

// ConstraintCounts returns the number of structural, shear, and bend
// constraints a columns×rows grid produces.
func ConstraintCounts(columns, rows int) (structural, shear, bend int) {
	if columns <= 0 || rows <= 0 {
		return 0, 0, 0
	}
	structural = (columns-1)*rows + columns*(rows-1)
	shear = 2 * (columns - 1) * (rows - 1)
	bend = max(0, columns-2)*rows + columns*max(0, rows-2)
	return structural, shear, bend
}

func constraintCapacity(columns, rows int) int {
	s, sh, b := ConstraintCounts(columns, rows)
	return s + sh + b
}
