package vision

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullMask(rect image.Rectangle) *Mask {
	m := NewMask(rect)
	for i := range m.Bits {
		m.Bits[i] = true
	}
	return m
}

func TestMedianFilter_RemovesSpecks(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 20, 20))
	draw.Draw(frame, frame.Bounds(), &image.Uniform{C: color.RGBA{90, 90, 90, 255}}, image.Point{}, draw.Src)
	draw.Draw(frame, image.Rect(5, 5, 7, 7), &image.Uniform{C: color.RGBA{0, 128, 255, 255}}, image.Point{}, draw.Src)

	raw := InRange(frame, HSV{90, 40, 70}, HSV{120, 255, 255})
	assert.Equal(t, 4, raw.Count())
	assert.Zero(t, MedianFilter(raw, 5).Count())
}

func TestMedianFilter_KeepsSolidAreas(t *testing.T) {
	assert.Equal(t, 100, MedianFilter(fullMask(image.Rect(0, 0, 10, 10)), 5).Count())
}

func TestEllipse(t *testing.T) {
	kernel := Ellipse(5)
	// 1 + 5 + 5 + 5 + 1
	assert.Len(t, kernel, 17)
	assert.Contains(t, kernel, image.Point{X: 0, Y: -2})
	assert.NotContains(t, kernel, image.Point{X: 1, Y: -2})
	assert.Contains(t, kernel, image.Point{X: -2, Y: 1})
}

func TestOpen_RemovesNoise(t *testing.T) {
	m := NewMask(image.Rect(0, 0, 30, 30))
	m.Set(3, 3, true)
	for y := 10; y < 20; y++ {
		for x := 10; x < 20; x++ {
			m.Set(x, y, true)
		}
	}
	opened := Open(m, Ellipse(5))
	assert.False(t, opened.At(3, 3))
	assert.True(t, opened.At(15, 15))
}

func TestClose_FillsHoles(t *testing.T) {
	m := fullMask(image.Rect(0, 0, 20, 20))
	m.Set(10, 10, false)
	closed := Close(m, Ellipse(5))
	assert.True(t, closed.At(10, 10))
	assert.Equal(t, 400, closed.Count(), "края не съедаются")
}

func TestComponents(t *testing.T) {
	m := NewMask(image.Rect(10, 10, 16, 14))
	// диагональная пара связна, отдельная точка - своё пятно
	m.Set(11, 10, true)
	m.Set(12, 10, true)
	m.Set(13, 11, true)
	m.Set(15, 13, true)

	blobs := Components(m)
	require.Len(t, blobs, 2)
	assert.Equal(t, 3, blobs[0].Area)
	assert.Equal(t, image.Point{X: 11, Y: 10}, blobs[0].Top)
	assert.Equal(t, image.Rect(11, 10, 14, 12), blobs[0].Bounds)
	assert.Equal(t, 1, blobs[1].Area)
	assert.Equal(t, image.Point{X: 15, Y: 13}, blobs[1].Top)
	assert.Equal(t, image.Rect(15, 13, 16, 14), blobs[1].Bounds)
}

func TestColorDistances(t *testing.T) {
	gray := color.RGBA{110, 110, 110, 255}
	assert.Zero(t, RGBDistance(gray, gray))
	assert.InDelta(t, 5.196, RGBDistance(gray, color.RGBA{113, 113, 113, 255}), 0.001)

	assert.InDelta(t, 0, LabDistance(gray, gray), 1e-9)
	assert.Less(t, LabDistance(gray, color.RGBA{113, 112, 111, 255}), 15.0)
	assert.Greater(t, LabDistance(gray, color.RGBA{200, 40, 40, 255}), 15.0)
	assert.InDelta(t, 255, LabDistance(color.RGBA{A: 255}, color.RGBA{255, 255, 255, 255}), 1)
}
