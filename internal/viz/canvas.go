package viz

import "strings"

// Braille cells hold a 2x4 dot matrix:
//
//	1 4
//	2 5
//	3 6
//	7 8
const brailleBlank = 0x2800

var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a character grid addressed in dots: (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// DotsW and DotsH are the canvas size in dots.
func (c *Canvas) DotsW() int { return c.Width * 2 }
func (c *Canvas) DotsH() int { return c.Height * 4 }

// Set lights the dot at (x, y); out of range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.DotsW() || y >= c.DotsH() {
		return
	}
	c.Grid[y/4][x/2] |= dotBits[y%4][x%2]
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x >= c.DotsW() || y >= c.DotsH() {
		return false
	}
	return c.Grid[y/4][x/2]&dotBits[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// VLine lights every dot of column x between y0 and y1 inclusive.
func (c *Canvas) VLine(x, y0, y1 int) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		c.Set(x, y)
	}
}

// HLine lights every step-th dot of row y; step 1 draws a solid line.
func (c *Canvas) HLine(y, step int) {
	if step < 1 {
		step = 1
	}
	for x := 0; x < c.DotsW(); x += step {
		c.Set(x, y)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}
