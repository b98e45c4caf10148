package patching

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"minibot/internal/config"
	"minibot/internal/screen"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	leakColor       = color.RGBA{0, 128, 255, 255}
	backgroundColor = color.RGBA{90, 90, 90, 255}
)

func paint(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func leakFrame() *image.RGBA {
	frame := image.NewRGBA(image.Rect(0, 0, 200, 120))
	paint(frame, frame.Bounds(), backgroundColor)
	paint(frame, image.Rect(100, 50, 130, 70), leakColor) // настоящая утечка
	paint(frame, image.Rect(20, 20, 30, 30), leakColor)   // слишком мелкая
	paint(frame, image.Rect(150, 0, 190, 20), leakColor)  // касается края области
	paint(frame, image.Rect(60, 90, 62, 92), leakColor)   // шум
	return frame
}

func TestScanRegion_Default(t *testing.T) {
	region := ScanRegion(config.Default().Geometry)
	assert.Equal(t, image.Rect(493, 170, 1305, 895), region)
}

func TestDetector_Detect(t *testing.T) {
	capturer := &screen.StaticCapturer{Frame: leakFrame()}
	d := NewDetector(capturer, image.Rect(0, 0, 200, 120), config.Default().Patching)

	tops, err := d.Detect()
	require.NoError(t, err)
	assert.Equal(t, []image.Point{{X: 114, Y: 50}}, tops)
	assert.Equal(t, 1, capturer.Calls)
}

func TestOrderNearest(t *testing.T) {
	points := []image.Point{{X: 100, Y: 0}, {X: 10, Y: 0}, {X: 50, Y: 0}}
	got := OrderNearest(points, image.Point{})
	assert.Equal(t, []image.Point{{X: 10, Y: 0}, {X: 50, Y: 0}, {X: 100, Y: 0}}, got)
	assert.Equal(t, image.Point{X: 100, Y: 0}, points[0], "input is not reordered")
	assert.Empty(t, OrderNearest(nil, image.Point{}))
}
