package metrics

import (
	"math"

	"github.com/san-kum/groversim/internal/grover"
)

// NormDrift tracks the largest deviation of sum(v^2) from 1. The uniform
// start has unit norm and a correct update keeps the drift at rounding level.
type NormDrift struct {
	name     string
	maxDrift float64
}

func NewNormDrift() *NormDrift {
	return &NormDrift{name: "norm_drift"}
}

func (n *NormDrift) Name() string { return n.name }

func (n *NormDrift) OnStep(step int, amplitude, mean float64, v grover.StateVector) {
	n.maxDrift = math.Max(n.maxDrift, math.Abs(v.NormSquared()-1))
}

func (n *NormDrift) Value() float64 { return n.maxDrift }
func (n *NormDrift) Reset()         { n.maxDrift = 0 }
