package scrubbing

import (
	"fmt"
	"image"
	"math"
	"sort"

	"minibot/internal/config"
	"minibot/internal/helpers"
	"minibot/internal/screen"
	"minibot/internal/vision"

	xdraw "golang.org/x/image/draw"
)

const morphKernel = 5

// Segment грязный отрезок строки в экранных x
type Segment struct {
	Left  int
	Right int
}

// Row полоса доски, по которой нужно пройтись щёткой
type Row struct {
	Index    int
	CenterY  int
	Segments []Segment
}

// LoadReference читает эталон чистой доски и приводит его к размеру области
func LoadReference(path string, region image.Rectangle) (*image.RGBA, error) {
	src, err := helpers.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("эталон чистой доски %s: %w", path, err)
	}
	dst := image.NewRGBA(region)
	xdraw.BiLinear.Scale(dst, region, src, src.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// Board сравнивает доску на экране с эталоном чистой доски
type Board struct {
	capturer screen.Capturer
	region   image.Rectangle
	cfg      config.Scrubbing
	clean    *image.RGBA
}

// NewBoard создает новый экземпляр Board; эталон читается при первом сравнении
func NewBoard(capturer screen.Capturer, cfg config.Scrubbing) *Board {
	return &Board{capturer: capturer, region: cfg.Rect(), cfg: cfg}
}

// Region область доски на экране
func (b *Board) Region() image.Rectangle {
	return b.region
}

func absDiff(a, b uint8) float64 {
	if a > b {
		return float64(a - b)
	}
	return float64(b - a)
}

// DirtMask маска точек, где кадр заметно отличается от эталона (после закрытия и открытия)
func DirtMask(current, clean *image.RGBA, threshold int) *vision.Mask {
	r := current.Bounds()
	mask := vision.NewMask(r)
	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c, e := current.RGBAAt(x, y), clean.RGBAAt(x, y)
			gray := math.Round(0.299*absDiff(c.R, e.R) + 0.587*absDiff(c.G, e.G) + 0.114*absDiff(c.B, e.B))
			mask.Bits[i] = int(gray) > threshold
			i++
		}
	}
	kernel := vision.Ellipse(morphKernel)
	return vision.Open(vision.Close(mask, kernel), kernel)
}

// Dirty грязные области доски в экранных координатах
func (b *Board) Dirty() ([]image.Rectangle, error) {
	if b.clean == nil {
		clean, err := LoadReference(b.cfg.CleanReference, b.region)
		if err != nil {
			return nil, err
		}
		b.clean = clean
	}

	img, err := b.capturer.Capture(b.region)
	if err != nil {
		return nil, fmt.Errorf("захват доски hull scrubbing: %w", err)
	}

	var regions []image.Rectangle
	for _, blob := range vision.Components(DirtMask(img, b.clean, b.cfg.DiffThreshold)) {
		if blob.Area >= b.cfg.MinDirtyArea {
			regions = append(regions, blob.Bounds)
		}
	}
	return regions, nil
}

// MergeSegments склеивает отрезки, между которыми не больше gap пикселей
func MergeSegments(segments []Segment, gap int) []Segment {
	if len(segments) == 0 {
		return nil
	}
	sorted := append([]Segment(nil), segments...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Left < sorted[j].Left })

	merged := []Segment{sorted[0]}
	for _, s := range sorted[1:] {
		cur := &merged[len(merged)-1]
		if s.Left-cur.Right <= gap {
			if s.Right > cur.Right {
				cur.Right = s.Right
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// PlanRows делит доску на cfg.Rows полос и для каждой внутренней полосы
// (без верхней и нижней) собирает расширенные отрезки над грязью
func PlanRows(dirty []image.Rectangle, region image.Rectangle, cfg config.Scrubbing) []Row {
	height := region.Dy() / cfg.Rows
	var rows []Row
	for i := 1; i < cfg.Rows-1; i++ {
		top := region.Min.Y + i*height
		bottom := top + height

		var segments []Segment
		for _, d := range dirty {
			if d.Max.Y <= top || d.Min.Y >= bottom {
				continue
			}
			left := d.Min.X - cfg.SegmentMargin
			if left < region.Min.X {
				left = region.Min.X
			}
			right := d.Max.X + cfg.SegmentMargin
			if right > region.Max.X {
				right = region.Max.X
			}
			segments = append(segments, Segment{Left: left, Right: right})
		}
		if len(segments) == 0 {
			continue
		}
		rows = append(rows, Row{
			Index:    i,
			CenterY:  top + height/2,
			Segments: MergeSegments(segments, cfg.MergeDistance),
		})
	}
	return rows
}
