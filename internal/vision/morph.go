package vision

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// NewMask пустая маска размера rect
func NewMask(rect image.Rectangle) *Mask {
	return &Mask{Rect: rect, Bits: make([]bool, rect.Dx()*rect.Dy())}
}

// Set устанавливает точку маски (за границами ничего не делает)
func (m *Mask) Set(x, y int, v bool) {
	if !(image.Point{X: x, Y: y}).In(m.Rect) {
		return
	}
	m.Bits[(y-m.Rect.Min.Y)*m.Rect.Dx()+(x-m.Rect.Min.X)] = v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MedianFilter медианное сглаживание бинарной маски окном k x k.
// Для бинарной маски медиана это большинство; за краем повторяются крайние точки.
func MedianFilter(m *Mask, k int) *Mask {
	r := m.Rect
	out := NewMask(r)
	if r.Empty() {
		return out
	}
	half := k / 2
	need := k*k/2 + 1

	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			n := 0
			for dy := -half; dy <= half; dy++ {
				yy := clamp(y+dy, r.Min.Y, r.Max.Y-1)
				for dx := -half; dx <= half; dx++ {
					if m.At(clamp(x+dx, r.Min.X, r.Max.X-1), yy) {
						n++
					}
				}
			}
			out.Bits[i] = n >= need
			i++
		}
	}
	return out
}

// Kernel структурный элемент морфологии: смещения относительно центра
type Kernel []image.Point

// Ellipse эллиптический элемент k x k (как MORPH_ELLIPSE в OpenCV)
func Ellipse(k int) Kernel {
	half := k / 2
	var kernel Kernel
	for dy := -half; dy <= half; dy++ {
		// полуширина строки эллипса, вписанного в квадрат k x k
		t := float64(dy) / float64(half)
		w := int(math.Round(float64(half) * math.Sqrt(math.Max(0, 1-t*t))))
		if half == 0 {
			w = 0
		}
		for dx := -w; dx <= w; dx++ {
			kernel = append(kernel, image.Point{X: dx, Y: dy})
		}
	}
	return kernel
}

// Dilate расширение: точка установлена, если установлен хоть один сосед под элементом
func Dilate(m *Mask, kernel Kernel) *Mask {
	return morph(m, kernel, false)
}

// Erode сужение: точка остаётся, если установлены все соседи внутри маски
func Erode(m *Mask, kernel Kernel) *Mask {
	return morph(m, kernel, true)
}

func morph(m *Mask, kernel Kernel, erode bool) *Mask {
	r := m.Rect
	out := NewMask(r)
	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			v := erode
			for _, d := range kernel {
				p := image.Point{X: x + d.X, Y: y + d.Y}
				// точки за краем не влияют на результат
				if !p.In(r) {
					continue
				}
				if m.At(p.X, p.Y) != erode {
					v = !erode
					break
				}
			}
			out.Bits[i] = v
			i++
		}
	}
	return out
}

// Close закрытие: заполняет мелкие дыры
func Close(m *Mask, kernel Kernel) *Mask {
	return Erode(Dilate(m, kernel), kernel)
}

// Open открытие: убирает мелкий шум
func Open(m *Mask, kernel Kernel) *Mask {
	return Dilate(Erode(m, kernel), kernel)
}

// Blob связная область маски
type Blob struct {
	Area int
	// Top верхняя точка: медиана x по самой верхней строке пятна
	Top    image.Point
	Bounds image.Rectangle
}

var neighbours8 = [8][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}

// Components находит 8-связные пятна маски в порядке обхода строк
func Components(m *Mask) []Blob {
	r := m.Rect
	visited := make([]bool, len(m.Bits))
	index := func(x, y int) int { return (y-r.Min.Y)*r.Dx() + (x - r.Min.X) }

	var blobs []Blob
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if !m.At(x, y) || visited[index(x, y)] {
				continue
			}

			// обход в ширину; первая точка уже на верхней строке пятна
			topY := y
			var topXs []int
			area := 0
			bounds := image.Rect(x, y, x+1, y+1)
			queue := []image.Point{{X: x, Y: y}}
			visited[index(x, y)] = true
			for len(queue) > 0 {
				p := queue[0]
				queue = queue[1:]
				area++
				bounds = bounds.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))
				if p.Y == topY {
					topXs = append(topXs, p.X)
				}
				for _, d := range neighbours8 {
					nx, ny := p.X+d[0], p.Y+d[1]
					if !m.At(nx, ny) || visited[index(nx, ny)] {
						continue
					}
					visited[index(nx, ny)] = true
					queue = append(queue, image.Point{X: nx, Y: ny})
				}
			}

			blobs = append(blobs, Blob{Area: area, Top: image.Point{X: medianInt(topXs), Y: topY}, Bounds: bounds})
		}
	}
	return blobs
}

func medianInt(xs []int) int {
	sort.Ints(xs)
	n := len(xs)
	if n%2 == 1 {
		return xs[n/2]
	}
	return (xs[n/2-1] + xs[n/2]) / 2
}

// RGBDistance евклидово расстояние между цветами в RGB
func RGBDistance(a, b color.RGBA) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// LabDistance расстояние в 8-битной шкале Lab OpenCV (L 0..255, a и b со сдвигом 128)
func LabDistance(a, b color.RGBA) float64 {
	l1, a1, b1 := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}.Lab()
	l2, a2, b2 := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}.Lab()
	dl := (l1 - l2) * 255
	da := (a1 - a2) * 100
	db := (b1 - b2) * 100
	return math.Sqrt(dl*dl + da*da + db*db)
}
