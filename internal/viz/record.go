package viz

import (
	"image"
	"image/color"
	"image/gif"
	"os"
	"time"
)

const (
	cellW = 8
	cellH = 16
)

// canvasFrame rasterises the canvas, each Braille dot becoming a
// (cellW/2)x(cellH/4) block.
func canvasFrame(c *Canvas) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, c.Width*cellW, c.Height*cellH), color.Palette{color.Black, color.White})
	dotW, dotH := cellW/2, cellH/4
	for y := 0; y < c.DotsH(); y++ {
		for x := 0; x < c.DotsW(); x++ {
			if !c.IsSet(x, y) {
				continue
			}
			for py := 0; py < dotH; py++ {
				for px := 0; px < dotW; px++ {
					img.SetColorIndex(x*dotW+px, y*dotH+py, 1)
				}
			}
		}
	}
	return img
}

func saveGIF(path string, frames []*image.Paletted, interval time.Duration) error {
	delay := int(interval / (10 * time.Millisecond))
	if delay < 1 {
		delay = 1
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}
