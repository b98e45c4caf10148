package hammering

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
	nailColor   = color.RGBA{110, 110, 110, 255}
	woodColor   = color.RGBA{150, 100, 60, 255}
	spriteColor = color.RGBA{254, 245, 170, 255}
)

func paint(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// hullFrame: гвоздь у x=600 торчит, у x=900 забит ниже flush_y
func hullFrame() *image.RGBA {
	frame := image.NewRGBA(image.Rect(0, 0, 1500, 700))
	paint(frame, frame.Bounds(), woodColor)
	paint(frame, image.Rect(600, 470, 610, 540), nailColor)
	paint(frame, image.Rect(900, 470, 910, 481), nailColor)
	return frame
}

func newFinder(frame image.Image) (*NailFinder, *screen.StaticCapturer) {
	capturer := &screen.StaticCapturer{Frame: frame}
	return NewNailFinder(capturer, BoxRegion(config.Default().Geometry), config.Default().Hammering), capturer
}

func TestBoxRegion(t *testing.T) {
	assert.Equal(t, image.Rect(493, 170, 1428, 910), BoxRegion(config.Default().Geometry))
}

func TestGroupPositions(t *testing.T) {
	assert.Equal(t, []int{2, 40, 100}, GroupPositions([]int{1, 2, 3, 40, 41, 100}, 25))
	assert.Equal(t, []int{30}, GroupPositions([]int{10, 30, 50}, 25), "цепочка с малыми шагами одна группа")
	assert.Nil(t, GroupPositions(nil, 25))
}

func TestNailheads(t *testing.T) {
	f, capturer := newFinder(hullFrame())

	nails, err := f.Nailheads()
	require.NoError(t, err)
	assert.Equal(t, []image.Point{{X: 604, Y: 480}, {X: 904, Y: 480}}, nails)
	assert.Equal(t, 1, capturer.Calls, "одна строка за один захват")
}

func TestTrack(t *testing.T) {
	frame := hullFrame()
	// второй гвоздь забит: шляпка ушла ниже flush_y
	paint(frame, image.Rect(900, 470, 910, 481), woodColor)
	paint(frame, image.Rect(900, 565, 910, 575), nailColor)
	f, _ := newFinder(frame)

	states, err := f.Track([]image.Point{{X: 604, Y: 480}, {X: 904, Y: 480}, {X: 1200, Y: 480}})
	require.NoError(t, err)
	require.Len(t, states, 3)
	assert.Equal(t, Nail{At: image.Point{X: 604, Y: 480}, Flush: false}, states[0])
	assert.Equal(t, Nail{At: image.Point{X: 904, Y: 565}, Flush: true}, states[1])
	assert.True(t, states[2].Flush, "не найденный гвоздь считается забитым")
}

func TestSpriteVisible(t *testing.T) {
	frame := hullFrame()
	frame.SetRGBA(624, 480, spriteColor)
	f, _ := newFinder(frame)

	visible, err := f.SpriteVisible(image.Point{X: 604, Y: 480})
	require.NoError(t, err)
	assert.True(t, visible)

	visible, err = f.SpriteVisible(image.Point{X: 904, Y: 480})
	require.NoError(t, err)
	assert.False(t, visible)
}
