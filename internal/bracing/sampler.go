package bracing

import (
	"fmt"
	"image"

	"minibot/internal/helpers"
	"minibot/internal/metrics"
	"minibot/internal/screen"
)

// Layout экранные координаты центров клеток
type Layout [Size][Size]image.Point

// LayoutFromCenters строит Layout из координат конфига
func LayoutFromCenters(centers [][]image.Point) (Layout, error) {
	var l Layout
	if len(centers) != Size {
		return l, fmt.Errorf("ожидается %d строк центров клеток, получено %d", Size, len(centers))
	}
	for r, row := range centers {
		if len(row) != Size {
			return l, fmt.Errorf("строка центров %d: ожидается %d точек, получено %d", r, Size, len(row))
		}
		copy(l[r][:], row)
	}
	return l, nil
}

// Point экранная точка клетки
func (l Layout) Point(c Cell) image.Point {
	return l[c.Row][c.Col]
}

// Classify переводит средний цвет клетки в символ.
// Правила проверяются по порядку, первое совпадение выигрывает;
// Blank одновременно настоящий класс и запасной вариант.
func Classify(r, g, b float64) Symbol {
	switch {
	case r > 150 && g > 100 && b > 40:
		return Blank
	case r > 35 && r > b+20:
		return Red
	case b > 35 && b > r+5:
		return Blue
	case r < 15 && g < 15 && b < 15:
		return Empty
	default:
		return Blank
	}
}

// Sampler считывает поле с экрана
type Sampler struct {
	capturer screen.Capturer
	layout   Layout
	radius   int
}

// NewSampler создает новый экземпляр Sampler; radius половина стороны усредняемого квадрата
func NewSampler(capturer screen.Capturer, layout Layout, radius int) *Sampler {
	if radius < 1 {
		radius = 1
	}
	return &Sampler{capturer: capturer, layout: layout, radius: radius}
}

func (s *Sampler) cellArea(c Cell) image.Rectangle {
	p := s.layout.Point(c)
	return image.Rect(p.X-s.radius, p.Y-s.radius, p.X+s.radius, p.Y+s.radius)
}

// Sample один захват области поля и классификация всех 16 клеток.
// Единственная ошибка - сбой захвата экрана.
func (s *Sampler) Sample() (Grid, error) {
	var grid Grid

	var bounds image.Rectangle
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			bounds = bounds.Union(s.cellArea(Cell{r, c}))
		}
	}

	img, err := s.capturer.Capture(bounds)
	if err != nil {
		return grid, fmt.Errorf("захват поля hull bracing: %w", err)
	}
	metrics.Samples.Inc()

	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			red, green, blue := helpers.MeanColor(img, s.cellArea(Cell{r, c}))
			grid[r][c] = Classify(red, green, blue)
		}
	}
	return grid, nil
}
