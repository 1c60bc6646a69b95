package cloth

import "github.com/jakecoffman/cp"

const (
	DefaultDamping    = 0.99
	DefaultIterations = 5
)

// DefaultGravity is Earth gravity along -Y.
var DefaultGravity = cp.Vector{X: 0, Y: -9.81}

// WindField returns the wind acceleration at time t for a particle at p.
type WindField interface {
	At(t float64, p cp.Vector) cp.Vector
}

// WindFunc adapts a function to WindField.
type WindFunc func(t float64, p cp.Vector) cp.Vector

func (f WindFunc) At(t float64, p cp.Vector) cp.Vector {
	return f(t, p)
}

// Option configures an Engine during creation.
type Option func(*config)

type config struct {
	gravity    cp.Vector
	damping    float64
	iterations int
	wind       WindField
	clock      func() float64
}

func defaultConfig() config {
	return config{
		gravity:    DefaultGravity,
		damping:    DefaultDamping,
		iterations: DefaultIterations,
	}
}

// WithGravity sets the gravitational acceleration.
func WithGravity(g cp.Vector) Option {
	return func(c *config) {
		c.gravity = g
	}
}

// WithDamping sets the per-step velocity multiplier. Values outside [0,1]
// are ignored.
func WithDamping(d float64) Option {
	return func(c *config) {
		if d >= 0 && d <= 1 {
			c.damping = d
		}
	}
}

// WithIterations sets the number of relaxation passes per step. Values below
// 1 are ignored.
func WithIterations(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.iterations = n
		}
	}
}

// WithWind sets the wind field. A nil field disables wind.
func WithWind(w WindField) Option {
	return func(c *config) {
		c.wind = w
	}
}

// WithClock makes the wind sample time from clock instead of the engine's
// accumulated simulation time.
//
// Example:
//
//	start := time.Now()
//	e := cloth.New(top, cloth.WithClock(func() float64 {
//	    return time.Since(start).Seconds()
//	}))
func WithClock(clock func() float64) Option {
	return func(c *config) {
		c.clock = clock
	}
}
