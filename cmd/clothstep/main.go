// Command clothstep runs a preset headless and reports how the cloth settled.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/milk9111/drapery/presets"
)

var errNonFinite = errors.New("cloth went non-finite")

type report struct {
	Name    string
	Steps   int
	Time    float64
	Stretch float64
	L, B    float64
	R, T    float64
	// StepNaN is the first step after which a position was not finite, or
	// -1 when every step stayed finite.
	StepNaN int
}

func run(name string, steps int, dt float64) (report, error) {
	spec, err := presets.LoadClothSpec(name)
	if err != nil {
		return report{}, err
	}
	engine, err := spec.NewEngine()
	if err != nil {
		return report{}, err
	}

	r := report{Name: spec.Name, Steps: steps, StepNaN: -1}
	for i := 0; i < steps; i++ {
		engine.Step(dt)
		if !engine.Finite() {
			r.StepNaN = i
			break
		}
	}

	bb := engine.Bounds()
	r.Time = engine.Time()
	r.Stretch = engine.Stretch()
	r.L, r.B, r.R, r.T = bb.L, bb.B, bb.R, bb.T
	if r.StepNaN >= 0 {
		return r, fmt.Errorf("clothstep: %s: step %d: %w", spec.Name, r.StepNaN, errNonFinite)
	}
	return r, nil
}

func (r report) write(w io.Writer) {
	fmt.Fprintf(w, "preset   %s\n", r.Name)
	fmt.Fprintf(w, "steps    %d (t=%.3fs)\n", r.Steps, r.Time)
	fmt.Fprintf(w, "stretch  %.6f\n", r.Stretch)
	fmt.Fprintf(w, "bounds   [%.4f, %.4f] x [%.4f, %.4f]\n", r.L, r.R, r.B, r.T)
	if r.StepNaN >= 0 {
		fmt.Fprintf(w, "finite   no (step %d)\n", r.StepNaN)
	} else {
		fmt.Fprintln(w, "finite   yes")
	}
}

func main() {
	preset := flag.String("preset", "towel", "preset name in presets/ (basename, .yaml optional)")
	steps := flag.Int("steps", 600, "number of steps to run")
	dt := flag.Float64("dt", 1.0/60, "timestep in seconds")
	dir := flag.String("dir", presets.Dir, "directory checked for preset overrides")
	flag.Parse()

	presets.Dir = *dir

	r, err := run(*preset, *steps, *dt)
	if r.Name != "" {
		r.write(os.Stdout)
	}
	if err != nil {
		log.Fatal(err)
	}
}
