package sawing

import (
	"image"
	"image/color"
	"image/draw"
	"path/filepath"
	"testing"

	"minibot/internal/config"
	"minibot/internal/helpers"
	"minibot/internal/screen"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	darkWood  = color.RGBA{54, 36, 27, 255}
	lightWood = color.RGBA{190, 150, 100, 255}
)

func paint(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// splitBoard доска, разделённая на тёмную и светлую половины
func splitBoard(r image.Rectangle, horizontal bool) *image.RGBA {
	img := image.NewRGBA(r)
	paint(img, r, lightWood)
	half := r
	if horizontal {
		half.Max.Y = r.Min.Y + r.Dy()/2
	} else {
		half.Max.X = r.Min.X + r.Dx()/2
	}
	paint(img, half, darkWood)
	return img
}

func writeTemplates(t *testing.T) map[string]string {
	t.Helper()
	dir := t.TempDir()
	paths := map[string]string{
		BoardHorizontal: filepath.Join(dir, "board-horizontal.png"),
		BoardVertical:   filepath.Join(dir, "board-vertical.png"),
	}
	size := image.Rect(0, 0, 600, 300)
	require.NoError(t, helpers.SaveCombinedImage(splitBoard(size, true), paths[BoardHorizontal]))
	require.NoError(t, helpers.SaveCombinedImage(splitBoard(size, false), paths[BoardVertical]))
	return paths
}

func TestWaypoints(t *testing.T) {
	region := config.Default().Sawing.Rect()

	points, ok := Waypoints(BoardL, region, 2)
	require.True(t, ok)
	assert.Equal(t, []image.Point{{X: 962, Y: 442}, {X: 962, Y: 579}, {X: 1278, Y: 579}}, points)

	points, ok = Waypoints(BoardDiagonal, region, 2)
	require.True(t, ok)
	assert.Equal(t, []image.Point{{X: 1026, Y: 440}, {X: 877, Y: 760}}, points, "диагональ не прижимается к доске")

	_, ok = Waypoints("spiral", region, 2)
	assert.False(t, ok)
}

func TestCorrelation(t *testing.T) {
	r := image.Rect(10, 10, 70, 40)
	h := splitBoard(r, true)
	v := splitBoard(r, false)

	assert.InDelta(t, 1.0, Correlation(h, h), 1e-9)
	assert.InDelta(t, 0.0, Correlation(h, v), 1e-9)

	shifted := splitBoard(image.Rect(0, 0, 60, 30), true)
	assert.InDelta(t, 1.0, Correlation(h, shifted), 1e-9, "сравнение не зависит от начала координат")

	flat := image.NewRGBA(r)
	paint(flat, r, lightWood)
	assert.Zero(t, Correlation(h, flat))
	assert.Zero(t, Correlation(h, image.NewRGBA(image.Rect(0, 0, 5, 5))))
}

func newTestMatcher(t *testing.T, frame image.Image) (*Matcher, *screen.StaticCapturer) {
	cfg := config.Default().Sawing
	cfg.Templates = writeTemplates(t)
	capturer := &screen.StaticCapturer{Frame: frame}
	return NewMatcher(capturer, cfg), capturer
}

func TestMatcher_Detect(t *testing.T) {
	region := config.Default().Sawing.Rect()
	frame := image.NewRGBA(image.Rect(0, 0, 1920, 1080))
	draw.Draw(frame, region, splitBoard(region, true), region.Min, draw.Src)

	m, _ := newTestMatcher(t, frame)
	board, score, err := m.Detect()
	require.NoError(t, err)
	assert.Equal(t, BoardHorizontal, board)
	assert.Greater(t, score, 0.9)
}

func TestMatcher_NoBoard(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 1920, 1080))
	paint(frame, frame.Bounds(), lightWood)

	m, _ := newTestMatcher(t, frame)
	board, _, err := m.Detect()
	require.NoError(t, err)
	assert.Empty(t, board)
}

func TestMatcher_MissingTemplate(t *testing.T) {
	cfg := config.Default().Sawing
	cfg.Templates = map[string]string{BoardZigzag: filepath.Join(t.TempDir(), "missing.png")}
	capturer := &screen.StaticCapturer{Frame: image.NewRGBA(image.Rect(0, 0, 10, 10))}

	_, _, err := NewMatcher(capturer, cfg).Detect()
	assert.Error(t, err)
	assert.Zero(t, capturer.Calls)
}
