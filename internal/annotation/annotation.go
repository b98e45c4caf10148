package annotation

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	"minibot/internal/config"
	"minibot/internal/helpers"
	"minibot/internal/logger"
	"minibot/internal/patching"
	"minibot/internal/types"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var ErrUnsupportedImage = errors.New("неподдерживаемый формат изображения")

var supportedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

var (
	pointFill   = color.RGBA{255, 255, 0, 255}
	rectColor   = color.RGBA{255, 0, 255, 255}
	regionColor = color.RGBA{0, 255, 0, 255}
	labelBack   = color.RGBA{0, 0, 0, 255}
	labelFront  = color.RGBA{255, 255, 255, 255}
)

const (
	pointRadius = 5
	labelPad    = 3
)

// ScreenCenter центр экрана 1920x1080
var ScreenCenter = image.Point{X: 960, Y: 540}

// Annotator рисует откалиброванную геометрию поверх скриншота
type Annotator struct {
	geometry config.Geometry
	logger   *logger.LoggerManager
}

// NewAnnotator создает новый экземпляр Annotator
func NewAnnotator(geometry config.Geometry, loggerManager *logger.LoggerManager) *Annotator {
	return &Annotator{geometry: geometry, logger: loggerManager}
}

// OutputPath путь результата: <base>_annotated.png
func OutputPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "_annotated.png"
}

// AnnotateFile читает скриншот, рисует разметку и пишет <base>_annotated.png рядом
func (a *Annotator) AnnotateFile(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		return "", fmt.Errorf("%s: %w", path, ErrUnsupportedImage)
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("скриншот %s: %w", path, err)
	}

	img, err := helpers.LoadImage(path)
	if err != nil {
		return "", err
	}

	out := OutputPath(path)
	if err := helpers.SaveCombinedImage(a.Draw(img), out); err != nil {
		return "", err
	}
	a.logger.Info("🖼️ Разметка сохранена: %s", out)
	return out, nil
}

// Draw копия изображения с разметкой
func (a *Annotator) Draw(src image.Image) *image.RGBA {
	img := image.NewRGBA(src.Bounds())
	draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)

	g := a.geometry
	box := config.CoordinatesWithSize{X: g.BoxOffset.X, Y: g.BoxOffset.Y, Width: g.BoxSize.X, Height: g.BoxSize.Y}
	drawRect(img, box.Rect(), rectColor, fmt.Sprintf("MINIGAME_BOX (%dx%d)", g.BoxSize.X, g.BoxSize.Y))

	region := patching.ScanRegion(g)
	drawRect(img, region, regionColor, "PATCH_SCAN_REGION")

	for _, m := range types.Minigames {
		if p, ok := g.Button(m); ok {
			drawPoint(img, p, strings.ToUpper(m.String())+"_BUTTON")
		}
		if check, ok := g.GreenCheck(m); ok {
			drawRect(img, check.Rect(), rectColor, strings.ToUpper(m.String())+"_GREEN_CHECK")
		}
	}

	for r, row := range g.GridCenters {
		for c, p := range row {
			drawPoint(img, p, fmt.Sprintf("GRID[%d][%d]", r, c))
		}
	}

	drawPoint(img, ScreenCenter, fmt.Sprintf("SCREEN_CENTER (%d,%d)", ScreenCenter.X, ScreenCenter.Y))
	return img
}

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r.Intersect(img.Bounds()), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// outline рамка толщиной width внутрь прямоугольника
func outline(img *image.RGBA, r image.Rectangle, c color.Color, width int) {
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width), c)
	fill(img, image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y), c)
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y), c)
	fill(img, image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y), c)
}

func drawRect(img *image.RGBA, r image.Rectangle, c color.Color, label string) {
	outline(img, r, c, 2)
	drawLabel(img, r.Min.X+r.Dx()/2, r.Min.Y, label)
}

func drawPoint(img *image.RGBA, p image.Point, label string) {
	b := img.Bounds()
	for dy := -pointRadius; dy <= pointRadius; dy++ {
		for dx := -pointRadius; dx <= pointRadius; dx++ {
			d2 := dx*dx + dy*dy
			if d2 > pointRadius*pointRadius {
				continue
			}
			q := image.Point{X: p.X + dx, Y: p.Y + dy}
			if !q.In(b) {
				continue
			}
			if d2 > (pointRadius-1)*(pointRadius-1) {
				img.Set(q.X, q.Y, labelBack)
			} else {
				img.Set(q.X, q.Y, pointFill)
			}
		}
	}
	drawLabel(img, p.X, p.Y, label)
}

// drawLabel подпись в чёрной плашке над точкой (x, y)
func drawLabel(img *image.RGBA, x, y int, text string) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	height := face.Metrics().Height.Ceil()

	boxW, boxH := width+2*labelPad, height+2*labelPad
	topLeft := image.Point{X: x - boxW/2, Y: y - 10 - boxH}
	box := image.Rectangle{Min: topLeft, Max: topLeft.Add(image.Point{X: boxW, Y: boxH})}

	fill(img, box, labelBack)
	outline(img, box, labelFront, 1)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelFront),
		Face: face,
		Dot:  fixed.P(box.Min.X+labelPad, box.Max.Y-labelPad-face.Metrics().Descent.Ceil()),
	}
	d.DrawString(text)
}
