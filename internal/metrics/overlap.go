package metrics

import (
	"math"
	"time"

	"github.com/san-kum/skillwall/internal/physics"
)

// Overlap reports the fraction of observed frames in which at least one
// same-side pair sat closer than the sum of its radii.
type Overlap struct {
	name       string
	violations int
	samples    int
}

func NewOverlap() *Overlap {
	return &Overlap{name: "overlap"}
}

func (o *Overlap) Name() string { return o.name }

func (o *Overlap) Observe(bubbles []physics.Bubble, t time.Duration) {
	o.samples++
	if OverlappingPairs(bubbles) > 0 {
		o.violations++
	}
}

func (o *Overlap) Value() float64 {
	if o.samples == 0 {
		return 0
	}
	return float64(o.violations) / float64(o.samples)
}

func (o *Overlap) Reset() {
	o.violations = 0
	o.samples = 0
}

// OverlappingPairs counts same-side pairs whose circles intersect.
func OverlappingPairs(bubbles []physics.Bubble) int {
	n := 0
	for i := range bubbles {
		for j := i + 1; j < len(bubbles); j++ {
			a, b := &bubbles[i], &bubbles[j]
			if a.Side != b.Side {
				continue
			}
			ca, cb := a.Center(), b.Center()
			if math.Hypot(ca.X-cb.X, ca.Y-cb.Y) < a.Radius()+b.Radius() {
				n++
			}
		}
	}
	return n
}
