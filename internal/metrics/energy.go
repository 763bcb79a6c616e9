// Package metrics observes the bubble field frame by frame.
package metrics

import (
	"time"

	"github.com/san-kum/skillwall/internal/physics"
)

type Metric interface {
	Name() string
	Observe(bubbles []physics.Bubble, t time.Duration)
	Value() float64
	Reset()
}

// KineticEnergy sums ½·m·v² over the field, taking a bubble's mass as its
// area in px² and velocity in px/ms. Value is the latest sample.
type KineticEnergy struct {
	name    string
	current float64
	peak    float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(bubbles []physics.Bubble, t time.Duration) {
	e.current = Kinetic(bubbles)
	if e.current > e.peak {
		e.peak = e.current
	}
	e.samples++
}

func (e *KineticEnergy) Value() float64 { return e.current }

// Peak is the largest energy seen since the last reset.
func (e *KineticEnergy) Peak() float64 { return e.peak }

func (e *KineticEnergy) Reset() {
	e.current = 0
	e.peak = 0
	e.samples = 0
}

// Kinetic is the total kinetic energy of bubbles.
func Kinetic(bubbles []physics.Bubble) float64 {
	total := 0.0
	for i := range bubbles {
		b := &bubbles[i]
		m := b.Size * b.Size
		total += 0.5 * m * (b.VX*b.VX + b.VY*b.VY)
	}
	return total
}
