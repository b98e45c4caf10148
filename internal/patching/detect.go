package patching

import (
	"fmt"
	"image"

	"minibot/internal/config"
	"minibot/internal/screen"
	"minibot/internal/vision"
)

const (
	medianKernel = 5
	regionMargin = 20
	// нижняя полоса области с кнопками мини-игр
	regionBottomTrim = 50
)

// ScanRegion область поиска утечек: от левого верхнего угла окна до крайних
// точек поля, кнопок и галочек (+20 px), без нижних 50 px с кнопками
func ScanRegion(g config.Geometry) image.Rectangle {
	var points []image.Point
	for _, row := range g.GridCenters {
		points = append(points, row...)
	}
	points = append(points, g.Buttons.Bracing, g.Buttons.Patching, g.Buttons.Sawing, g.Buttons.Scrubbing)
	for _, check := range []config.CoordinatesWithSize{
		g.GreenChecks.Bracing, g.GreenChecks.Patching, g.GreenChecks.Sawing, g.GreenChecks.Scrubbing,
	} {
		points = append(points, image.Point{X: check.X + check.Width, Y: check.Y + check.Height})
	}

	right, bottom := g.BoxOffset.X, g.BoxOffset.Y
	for _, p := range points {
		if p.X > right {
			right = p.X
		}
		if p.Y > bottom {
			bottom = p.Y
		}
	}
	return image.Rect(g.BoxOffset.X, g.BoxOffset.Y, right+regionMargin, bottom+regionMargin-regionBottomTrim)
}

// Detector ищет утечки на экране
type Detector struct {
	capturer screen.Capturer
	region   image.Rectangle
	low      vision.HSV
	high     vision.HSV
	minArea  int
}

// NewDetector создает новый экземпляр Detector
func NewDetector(capturer screen.Capturer, region image.Rectangle, cfg config.Patching) *Detector {
	return &Detector{
		capturer: capturer,
		region:   region,
		low:      vision.HSV(cfg.HSVLow),
		high:     vision.HSV(cfg.HSVHigh),
		minArea:  cfg.MinArea,
	}
}

// Region область поиска
func (d *Detector) Region() image.Rectangle {
	return d.region
}

// Detect точки клика по утечкам в экранных координатах
func (d *Detector) Detect() ([]image.Point, error) {
	img, err := d.capturer.Capture(d.region)
	if err != nil {
		return nil, fmt.Errorf("захват области hull patching: %w", err)
	}

	mask := vision.MedianFilter(vision.InRange(img, d.low, d.high), medianKernel)

	var tops []image.Point
	for _, blob := range vision.Components(mask) {
		if blob.Area < d.minArea {
			continue
		}
		p := blob.Top
		if p.X <= d.region.Min.X || p.Y <= d.region.Min.Y || p.X >= d.region.Max.X-1 || p.Y >= d.region.Max.Y-1 {
			continue
		}
		tops = append(tops, p)
	}
	return tops, nil
}

func dist2(a, b image.Point) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// OrderNearest жадный обход: каждый раз ближайшая из оставшихся точек
func OrderNearest(points []image.Point, start image.Point) []image.Point {
	remaining := append([]image.Point(nil), points...)
	ordered := make([]image.Point, 0, len(points))
	cur := start
	for len(remaining) > 0 {
		best := 0
		for i := 1; i < len(remaining); i++ {
			if dist2(cur, remaining[i]) < dist2(cur, remaining[best]) {
				best = i
			}
		}
		cur = remaining[best]
		ordered = append(ordered, cur)
		remaining = append(remaining[:best], remaining[best+1:]...)
	}
	return ordered
}
