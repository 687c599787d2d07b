package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/groversim/internal/grover"
)

type Point struct{ X, Y float64 }

// PhasePortrait records, after every step, the marked amplitude and the
// combined unmarked amplitude sqrt(N-1)*b. For a correct run the points lie
// on the unit circle.
type PhasePortrait struct {
	marked int
	Points []Point
}

func NewPhasePortrait(marked int) *PhasePortrait {
	return &PhasePortrait{marked: marked, Points: make([]Point, 0)}
}

func (p *PhasePortrait) OnStep(step int, amplitude, mean float64, v grover.StateVector) {
	other := 0.0
	if len(v) > 1 {
		j := 0
		if p.marked == 0 {
			j = 1
		}
		other = v[j] * math.Sqrt(float64(len(v)-1))
	}
	p.Points = append(p.Points, Point{X: other, Y: amplitude})
}

// MaxRadiusError is the largest | |point| - 1 | over the recorded points.
func (p *PhasePortrait) MaxRadiusError() float64 {
	worst := 0.0
	for _, pt := range p.Points {
		worst = math.Max(worst, math.Abs(math.Hypot(pt.X, pt.Y)-1))
	}
	return worst
}

// ASCII draws the recorded points on a width x height character grid with
// both axes through the origin.
func (p *PhasePortrait) ASCII(width, height int) string {
	if len(p.Points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	// the portrait lives in the unit disc
	const lim = 1.1
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	midCol := (width - 1) / 2
	midRow := (height - 1) / 2
	for row := 0; row < height; row++ {
		canvas[row][midCol] = '│'
	}
	for col := 0; col < width; col++ {
		canvas[midRow][col] = '─'
	}
	canvas[midRow][midCol] = '┼'

	for _, pt := range p.Points {
		col := int((pt.X + lim) / (2 * lim) * float64(width-1))
		row := height - 1 - int((pt.Y+lim)/(2*lim)*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
