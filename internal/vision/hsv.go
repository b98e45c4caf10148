package vision

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSV в шкале OpenCV: H 0..180, S и V 0..255
type HSV [3]int

// ToHSV переводит 8-битный RGB в HSV шкалы OpenCV
func ToHSV(r, g, b uint8) HSV {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, v := c.Hsv()
	return HSV{
		int(math.Round(h / 2)),
		int(math.Round(s * 255)),
		int(math.Round(v * 255)),
	}
}

// InBand проверяет попадание в диапазон [low, high] по всем трём каналам
func (c HSV) InBand(low, high HSV) bool {
	for i := 0; i < 3; i++ {
		if c[i] < low[i] || c[i] > high[i] {
			return false
		}
	}
	return true
}

// Mask бинарная маска в координатах изображения
type Mask struct {
	Rect image.Rectangle
	Bits []bool
}

// At значение маски в точке (false за границами)
func (m *Mask) At(x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(m.Rect) {
		return false
	}
	return m.Bits[(y-m.Rect.Min.Y)*m.Rect.Dx()+(x-m.Rect.Min.X)]
}

// Count число установленных точек
func (m *Mask) Count() int {
	n := 0
	for _, bit := range m.Bits {
		if bit {
			n++
		}
	}
	return n
}

// InRange строит маску пикселей, чей HSV лежит в диапазоне (аналог cv2.inRange)
func InRange(img *image.RGBA, low, high HSV) *Mask {
	bounds := img.Bounds()
	mask := &Mask{Rect: bounds, Bits: make([]bool, bounds.Dx()*bounds.Dy())}
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := img.RGBAAt(x, y)
			mask.Bits[i] = ToHSV(px.R, px.G, px.B).InBand(low, high)
			i++
		}
	}
	return mask
}
