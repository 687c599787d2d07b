package export

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/san-kum/groversim/internal/grover"
)

// Series is one polyline of a chart. X may be nil, in which case the sample
// index is used.
type Series struct {
	Name   string
	Color  string
	X      []float64
	Y      []float64
	Points bool
}

type Chart struct {
	Width, Height int
	Title         string
	Series        []Series
}

const pad = 40

// SVG renders every series of the chart into a shared coordinate frame.
func (c Chart) SVG() string {
	minX, maxX, minY, maxY, ok := c.bounds()
	if !ok {
		return ""
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.05
	maxY += rangeY * 0.05
	rangeY = maxY - minY

	plotW := float64(c.Width - 2*pad)
	plotH := float64(c.Height - 2*pad)
	px := func(x float64) float64 { return pad + (x-minX)/rangeX*plotW }
	py := func(y float64) float64 { return pad + plotH - (y-minY)/rangeY*plotH }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<rect x="%d" y="%d" width="%.0f" height="%.0f" fill="none" stroke="#888888"/>
`, c.Width, c.Height, c.Width, c.Height, pad, pad, plotW, plotH))

	if c.Title != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-family="sans-serif" font-size="14">%s</text>
`, pad, pad/2, c.Title))
	}
	sb.WriteString(fmt.Sprintf(`<text x="4" y="%.1f" font-family="sans-serif" font-size="10">%.3g</text>
<text x="4" y="%.1f" font-family="sans-serif" font-size="10">%.3g</text>
`, py(maxY)+4, maxY, py(minY), minY))

	for si, s := range c.Series {
		if len(s.Y) == 0 {
			continue
		}
		color := s.Color
		if color == "" {
			color = palette[si%len(palette)]
		}

		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.2" d="`, color))
		for i, y := range s.Y {
			cmd := " L"
			if i == 0 {
				cmd = "M"
			}
			sb.WriteString(fmt.Sprintf("%s%.1f,%.1f", cmd, px(s.xAt(i)), py(y)))
		}
		sb.WriteString(`"/>
`)

		if s.Points {
			for i, y := range s.Y {
				sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="2" fill="%s"/>
`, px(s.xAt(i)), py(y), color))
			}
		}

		if s.Name != "" {
			sb.WriteString(fmt.Sprintf(`<text x="%.0f" y="%d" font-family="sans-serif" font-size="11" fill="%s">%s</text>
`, float64(c.Width-pad-110), pad+14*(si+1), color, s.Name))
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

var palette = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728"}

func (s Series) xAt(i int) float64 {
	if i < len(s.X) {
		return s.X[i]
	}
	return float64(i)
}

func (c Chart) bounds() (minX, maxX, minY, maxY float64, ok bool) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, s := range c.Series {
		for i, y := range s.Y {
			x := s.xAt(i)
			minX, maxX = math.Min(minX, x), math.Max(maxX, x)
			minY, maxY = math.Min(minY, y), math.Max(maxY, y)
			ok = true
		}
	}
	return
}

// TraceChart plots the marked amplitude, the mean and a zero baseline
// against the step index.
func TraceChart(result *grover.Result, width, height int) Chart {
	zeros := make([]float64, len(result.Amplitudes))
	return Chart{
		Width:  width,
		Height: height,
		Title:  fmt.Sprintf("N=%d marked=%d steps=%d", result.N, result.Marked, len(result.Amplitudes)),
		Series: []Series{
			{Name: "amplitude", Y: result.Amplitudes},
			{Name: "mean", Y: result.Means},
			{Name: "zero", Y: zeros},
		},
	}
}

// PeaksChart plots peak values against their detection order.
func PeaksChart(peaks []grover.Peak, width, height int) Chart {
	idx, vals := grover.PeakSeries(peaks)
	return Chart{
		Width:  width,
		Height: height,
		Title:  fmt.Sprintf("%d peaks", len(peaks)),
		Series: []Series{{Name: "peak value", X: idx, Y: vals, Points: true}},
	}
}

// WriteFile writes the chart to path. Empty charts produce no file.
func (c Chart) WriteFile(path string) (bool, error) {
	svg := c.SVG()
	if svg == "" {
		return false, nil
	}
	return true, os.WriteFile(path, []byte(svg), 0644)
}
