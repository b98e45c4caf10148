package sawing

import (
	"fmt"
	"image"
	"math"
	"sort"

	"minibot/internal/config"
	"minibot/internal/helpers"
	"minibot/internal/screen"

	xdraw "golang.org/x/image/draw"
)

// Типы досок
const (
	BoardL          = "l"
	BoardDiagonal   = "diagonal"
	BoardHorizontal = "horizontal"
	BoardVertical   = "vertical"
	BoardZigzag     = "zigzag"
)

// размер шаблона, в котором заданы точки распила
const (
	templateWidth  = 600.0
	templateHeight = 300.0
)

// точки распила в координатах шаблона 600x300
var templateWaypoints = map[string][]image.Point{
	BoardL:          {{X: 300, Y: 0}, {X: 300, Y: 152}, {X: 600, Y: 152}},
	BoardDiagonal:   {{X: 360, Y: 0}, {X: 220, Y: 350}},
	BoardHorizontal: {{X: 0, Y: 150}, {X: 600, Y: 150}},
	BoardVertical:   {{X: 285, Y: 0}, {X: 285, Y: 300}},
	BoardZigzag:     {{X: 155, Y: 300}, {X: 258, Y: 85}, {X: 332, Y: 230}, {X: 455, Y: 0}},
}

// Waypoints точки распила доски в экранных координатах. Точки прижимаются
// к доске с отступом margin; диагональный распил выходит за доску.
func Waypoints(board string, region image.Rectangle, margin int) ([]image.Point, bool) {
	rel, ok := templateWaypoints[board]
	if !ok {
		return nil, false
	}
	w, h := float64(region.Dx()), float64(region.Dy())
	points := make([]image.Point, 0, len(rel))
	for _, p := range rel {
		x := region.Min.X + int(float64(p.X)*w/templateWidth)
		y := region.Min.Y + int(float64(p.Y)*h/templateHeight)
		if board != BoardDiagonal {
			x = max(region.Min.X+margin, min(x, region.Max.X-margin))
			y = max(region.Min.Y+margin, min(y, region.Max.Y-margin))
		}
		points = append(points, image.Point{X: x, Y: y})
	}
	return points, true
}

// Template шаблон доски, приведённый к размеру области
type Template struct {
	Name  string
	Image *image.RGBA
}

// LoadTemplates читает шаблоны досок и масштабирует их под область
func LoadTemplates(paths map[string]string, region image.Rectangle) ([]Template, error) {
	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)

	templates := make([]Template, 0, len(names))
	for _, name := range names {
		src, err := helpers.LoadImage(paths[name])
		if err != nil {
			return nil, fmt.Errorf("шаблон доски %s: %w", name, err)
		}
		dst := image.NewRGBA(region)
		xdraw.BiLinear.Scale(dst, region, src, src.Bounds(), xdraw.Src, nil)
		templates = append(templates, Template{Name: name, Image: dst})
	}
	return templates, nil
}

// Correlation нормированная корреляция двух изображений одного размера
// (TM_CCOEFF_NORMED без сдвига): каналы центрируются по своим средним
func Correlation(a, b *image.RGBA) float64 {
	ra, rb := a.Bounds(), b.Bounds()
	if ra.Size() != rb.Size() || ra.Empty() {
		return 0
	}
	n := float64(ra.Dx() * ra.Dy())

	var meanA, meanB [3]float64
	for dy := 0; dy < ra.Dy(); dy++ {
		for dx := 0; dx < ra.Dx(); dx++ {
			pa := a.RGBAAt(ra.Min.X+dx, ra.Min.Y+dy)
			pb := b.RGBAAt(rb.Min.X+dx, rb.Min.Y+dy)
			meanA[0] += float64(pa.R)
			meanA[1] += float64(pa.G)
			meanA[2] += float64(pa.B)
			meanB[0] += float64(pb.R)
			meanB[1] += float64(pb.G)
			meanB[2] += float64(pb.B)
		}
	}
	for c := 0; c < 3; c++ {
		meanA[c] /= n
		meanB[c] /= n
	}

	var cross, sumA, sumB float64
	for dy := 0; dy < ra.Dy(); dy++ {
		for dx := 0; dx < ra.Dx(); dx++ {
			pa := a.RGBAAt(ra.Min.X+dx, ra.Min.Y+dy)
			pb := b.RGBAAt(rb.Min.X+dx, rb.Min.Y+dy)
			va := [3]float64{float64(pa.R) - meanA[0], float64(pa.G) - meanA[1], float64(pa.B) - meanA[2]}
			vb := [3]float64{float64(pb.R) - meanB[0], float64(pb.G) - meanB[1], float64(pb.B) - meanB[2]}
			for c := 0; c < 3; c++ {
				cross += va[c] * vb[c]
				sumA += va[c] * va[c]
				sumB += vb[c] * vb[c]
			}
		}
	}
	if sumA == 0 || sumB == 0 {
		return 0
	}
	return cross / math.Sqrt(sumA*sumB)
}

// Matcher определяет тип доски на экране по шаблонам
type Matcher struct {
	capturer  screen.Capturer
	region    image.Rectangle
	paths     map[string]string
	threshold float64
	templates []Template
}

// NewMatcher создает новый экземпляр Matcher; шаблоны читаются при первом поиске
func NewMatcher(capturer screen.Capturer, cfg config.Sawing) *Matcher {
	return &Matcher{
		capturer:  capturer,
		region:    cfg.Rect(),
		paths:     cfg.Templates,
		threshold: cfg.MatchThreshold,
	}
}

// Region область доски на экране
func (m *Matcher) Region() image.Rectangle {
	return m.region
}

// Detect тип доски и его оценка; пустое имя, если ни один шаблон не набрал порога
func (m *Matcher) Detect() (string, float64, error) {
	if m.templates == nil {
		templates, err := LoadTemplates(m.paths, m.region)
		if err != nil {
			return "", 0, err
		}
		m.templates = templates
	}

	img, err := m.capturer.Capture(m.region)
	if err != nil {
		return "", 0, fmt.Errorf("захват доски plank sawing: %w", err)
	}

	best, score := "", 0.0
	for _, t := range m.templates {
		if s := Correlation(img, t.Image); s > score {
			best, score = t.Name, s
		}
	}
	if score < m.threshold {
		return "", score, nil
	}
	return best, score, nil
}
