package icon

import (
	"image"
	"image/color"
	"math"
)

// Palette borrowed from the Sense HAT board
var (
	darkBG    = color.RGBA{R: 0x12, G: 0x14, B: 0x12, A: 0xFF}
	padGreen  = color.RGBA{R: 0x2E, G: 0x7D, B: 0x32, A: 0xFF}
	arrowTint = color.RGBA{R: 0x81, G: 0xC7, B: 0x84, A: 0xFF}
	capRim    = color.RGBA{R: 0xA5, G: 0xD6, B: 0xA7, A: 0xFF}
	capLight  = color.RGBA{R: 0xE8, G: 0xF5, B: 0xE9, A: 0xFF}
	glowCol   = color.RGBA{R: 0x2E, G: 0x7D, B: 0x32, A: 0x60}
)

// Generate returns 64x64 and 32x32 icon images for use with ebiten.SetWindowIcon.
func Generate() []image.Image {
	return []image.Image{
		generate(64),
		generate(32),
	}
}

func generate(size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float64(size)

	// Rounded board outline on a transparent-ish dark square
	fillRoundedRect(img, 0, 0, s, s, s*0.18, darkBG)

	// Joystick pad, the four direction arrows and the center cap
	drawPad(img, s)
	drawArrows(img, s)
	drawCap(img, s)

	return img
}

func drawPad(img *image.RGBA, s float64) {
	// Glow behind the pad
	fillCircle(img, s*0.50, s*0.50, s*0.44, glowCol)
	fillRoundedRect(img, s*0.14, s*0.14, s*0.72, s*0.72, s*0.16, padGreen)
}

func drawArrows(img *image.RGBA, s float64) {
	c := s * 0.50
	d := s * 0.26 // arrow base distance from the middle
	h := s * 0.09 // arrow height
	w := s * 0.17 // arrow base width

	// One triangle pointing out per direction
	fillTriangle(img, c, c-d-h, c-w/2, c-d, c+w/2, c-d, arrowTint)
	fillTriangle(img, c, c+d+h, c-w/2, c+d, c+w/2, c+d, arrowTint)
	fillTriangle(img, c-d-h, c, c-d, c-w/2, c-d, c+w/2, arrowTint)
	fillTriangle(img, c+d+h, c, c+d, c-w/2, c+d, c+w/2, arrowTint)
}

func drawCap(img *image.RGBA, s float64) {
	fillCircle(img, s*0.50, s*0.50, s*0.17, capRim)
	fillCircle(img, s*0.50, s*0.50, s*0.13, capLight)

	// Highlight on the cap
	fillCircle(img, s*0.46, s*0.46, s*0.045, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xB0})
}

func fillTriangle(img *image.RGBA, x0, y0, x1, y1, x2, y2 float64, c color.Color) {
	bounds := img.Bounds()
	minX := int(math.Floor(math.Min(x0, math.Min(x1, x2))))
	maxX := int(math.Ceil(math.Max(x0, math.Max(x1, x2))))
	minY := int(math.Floor(math.Min(y0, math.Min(y1, y2))))
	maxY := int(math.Ceil(math.Max(y0, math.Max(y1, y2))))

	edge := func(ax, ay, bx, by, px, py float64) float64 {
		return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
	}

	for y := minY; y <= maxY && y < bounds.Max.Y; y++ {
		for x := minX; x <= maxX && x < bounds.Max.X; x++ {
			if x < 0 || y < 0 {
				continue
			}
			fx := float64(x) + 0.5
			fy := float64(y) + 0.5
			w0 := edge(x0, y0, x1, y1, fx, fy)
			w1 := edge(x1, y1, x2, y2, fx, fy)
			w2 := edge(x2, y2, x0, y0, fx, fy)
			if (w0 >= 0 && w1 >= 0 && w2 >= 0) || (w0 <= 0 && w1 <= 0 && w2 <= 0) {
				blendPixel(img, x, y, c)
			}
		}
	}
}

func fillRoundedRect(img *image.RGBA, xf, yf, wf, hf, rf float64, c color.Color) {
	x0 := int(xf)
	y0 := int(yf)
	x1 := int(xf + wf)
	y1 := int(yf + hf)
	r := rf
	bounds := img.Bounds()

	for y := y0; y <= y1 && y < bounds.Max.Y; y++ {
		for x := x0; x <= x1 && x < bounds.Max.X; x++ {
			if x < 0 || y < 0 {
				continue
			}
			fx := float64(x)
			fy := float64(y)
			inside := true

			// Check corners
			if fx < xf+r && fy < yf+r {
				dx := xf + r - fx
				dy := yf + r - fy
				if dx*dx+dy*dy > r*r {
					inside = false
				}
			} else if fx > xf+wf-r && fy < yf+r {
				dx := fx - (xf + wf - r)
				dy := yf + r - fy
				if dx*dx+dy*dy > r*r {
					inside = false
				}
			} else if fx < xf+r && fy > yf+hf-r {
				dx := xf + r - fx
				dy := fy - (yf + hf - r)
				if dx*dx+dy*dy > r*r {
					inside = false
				}
			} else if fx > xf+wf-r && fy > yf+hf-r {
				dx := fx - (xf + wf - r)
				dy := fy - (yf + hf - r)
				if dx*dx+dy*dy > r*r {
					inside = false
				}
			}

			if inside {
				blendPixel(img, x, y, c)
			}
		}
	}
}

func fillCircle(img *image.RGBA, cx, cy, r float64, c color.Color) {
	bounds := img.Bounds()
	x0 := int(cx - r)
	y0 := int(cy - r)
	x1 := int(cx + r + 1)
	y1 := int(cy + r + 1)
	r2 := r * r

	for y := y0; y <= y1 && y < bounds.Max.Y; y++ {
		for x := x0; x <= x1 && x < bounds.Max.X; x++ {
			if x < 0 || y < 0 {
				continue
			}
			dx := float64(x) - cx
			dy := float64(y) - cy
			if dx*dx+dy*dy <= r2 {
				blendPixel(img, x, y, c)
			}
		}
	}
}

// blendPixel alpha-blends color c onto the existing pixel at (x, y).
func blendPixel(img *image.RGBA, x, y int, c color.Color) {
	r0, g0, b0, a0 := c.RGBA()
	if a0 == 0 {
		return
	}
	if a0 == 0xFFFF {
		img.Set(x, y, c)
		return
	}

	// Existing pixel
	existing := img.RGBAAt(x, y)
	er := uint32(existing.R) * 257
	eg := uint32(existing.G) * 257
	eb := uint32(existing.B) * 257

	// Alpha blend
	alpha := a0
	invAlpha := 0xFFFF - alpha
	nr := (r0*alpha + er*invAlpha) / 0xFFFF
	ng := (g0*alpha + eg*invAlpha) / 0xFFFF
	nb := (b0*alpha + eb*invAlpha) / 0xFFFF

	img.SetRGBA(x, y, color.RGBA{
		R: uint8(nr >> 8),
		G: uint8(ng >> 8),
		B: uint8(nb >> 8),
		A: 0xFF,
	})
}
