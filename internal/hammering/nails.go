package hammering

import (
	"fmt"
	"image"
	"image/color"

	"minibot/internal/config"
	"minibot/internal/screen"
	"minibot/internal/vision"
)

// Nail текущее положение шляпки гвоздя
type Nail struct {
	At    image.Point
	Flush bool
}

// NailFinder ищет гвозди и спрайт молотка на экране
type NailFinder struct {
	capturer screen.Capturer
	box      image.Rectangle
	cfg      config.Hammering
	nail     color.RGBA
	sprite   color.RGBA
}

func rgb(c [3]int) color.RGBA {
	return color.RGBA{R: uint8(c[0]), G: uint8(c[1]), B: uint8(c[2]), A: 255}
}

// BoxRegion окно мини-игры
func BoxRegion(g config.Geometry) image.Rectangle {
	return image.Rectangle{Min: g.BoxOffset, Max: g.BoxOffset.Add(g.BoxSize)}
}

// NewNailFinder создает новый экземпляр NailFinder
func NewNailFinder(capturer screen.Capturer, box image.Rectangle, cfg config.Hammering) *NailFinder {
	return &NailFinder{
		capturer: capturer,
		box:      box,
		cfg:      cfg,
		nail:     rgb(cfg.NailRGB),
		sprite:   rgb(cfg.SpriteRGB),
	}
}

// GroupPositions склеивает отсортированные x в центры групп: соседние точки
// одной группы отстоят не больше чем на maxGap
func GroupPositions(xs []int, maxGap int) []int {
	if len(xs) == 0 {
		return nil
	}
	var centers []int
	group := []int{xs[0]}
	flush := func() {
		sum := 0
		for _, x := range group {
			sum += x
		}
		centers = append(centers, sum/len(group))
	}
	for _, x := range xs[1:] {
		if x-group[len(group)-1] <= maxGap {
			group = append(group, x)
			continue
		}
		flush()
		group = []int{x}
	}
	flush()
	return centers
}

// Nailheads шляпки на линии сканирования scan_y в пределах окна мини-игры
func (f *NailFinder) Nailheads() ([]image.Point, error) {
	line := image.Rect(f.box.Min.X, f.cfg.ScanY, f.box.Max.X, f.cfg.ScanY+1)
	img, err := f.capturer.Capture(line)
	if err != nil {
		return nil, fmt.Errorf("захват линии гвоздей: %w", err)
	}

	var xs []int
	for x := line.Min.X; x < line.Max.X; x++ {
		if vision.LabDistance(img.RGBAAt(x, f.cfg.ScanY), f.nail) <= f.cfg.NailTolerance {
			xs = append(xs, x)
		}
	}

	var nails []image.Point
	for _, x := range GroupPositions(xs, f.cfg.GroupDistance) {
		nails = append(nails, image.Point{X: x, Y: f.cfg.ScanY})
	}
	return nails, nil
}

// Track ищет шляпку каждого гвоздя в полосе под исходной точкой.
// Гвоздь, которого не видно в полосе, считается забитым.
func (f *NailFinder) Track(nails []image.Point) ([]Nail, error) {
	states := make([]Nail, 0, len(nails))
	for _, n := range nails {
		strip := image.Rect(n.X-f.cfg.StripWidth/2, n.Y, n.X-f.cfg.StripWidth/2+f.cfg.StripWidth, n.Y+f.cfg.TrackRange)
		img, err := f.capturer.Capture(strip)
		if err != nil {
			return nil, fmt.Errorf("захват полосы гвоздя x=%d: %w", n.X, err)
		}

		state := Nail{At: image.Point{X: n.X, Y: f.cfg.FlushY + 10}, Flush: true}
	search:
		for y := strip.Min.Y; y < strip.Max.Y; y++ {
			for x := strip.Min.X; x < strip.Max.X; x++ {
				if vision.RGBDistance(img.RGBAAt(x, y), f.nail) <= f.cfg.NailTolerance {
					state = Nail{At: image.Point{X: n.X, Y: y}, Flush: y >= f.cfg.FlushY}
					break search
				}
			}
		}
		states = append(states, state)
	}
	return states, nil
}

// SpriteVisible виден ли спрайт молотка правее курсора
func (f *NailFinder) SpriteVisible(cursor image.Point) (bool, error) {
	p := cursor.Add(image.Point{X: f.cfg.SpriteOffset})
	img, err := f.capturer.Capture(image.Rect(p.X, p.Y, p.X+1, p.Y+1))
	if err != nil {
		return false, fmt.Errorf("захват точки спрайта %v: %w", p, err)
	}
	return vision.RGBDistance(img.RGBAAt(p.X, p.Y), f.sprite) <= f.cfg.SpriteTolerance, nil
}
