package helpers

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(img *image.RGBA, area image.Rectangle, c color.RGBA) {
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func TestGetPixelColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 20, 20))
	img.SetRGBA(12, 13, color.RGBA{R: 86, G: 1, B: 2, A: 255})

	r, g, b, err := GetPixelColor(img, 12, 13)
	require.NoError(t, err)
	assert.Equal(t, []int{86, 1, 2}, []int{r, g, b})

	_, _, _, err = GetPixelColor(img, 0, 0)
	assert.Error(t, err)
}

func TestMeanColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	fill(img, image.Rect(0, 0, 2, 2), color.RGBA{R: 100, A: 255})
	fill(img, image.Rect(2, 0, 4, 2), color.RGBA{B: 50, A: 255})

	r, g, b := MeanColor(img, img.Bounds())
	assert.InDelta(t, 50.0, r, 1e-9)
	assert.InDelta(t, 0.0, g, 1e-9)
	assert.InDelta(t, 25.0, b, 1e-9)

	// часть области за границей изображения не учитывается
	r, _, _ = MeanColor(img, image.Rect(-5, -5, 2, 2))
	assert.InDelta(t, 100.0, r, 1e-9)

	r, g, b = MeanColor(img, image.Rect(50, 50, 60, 60))
	assert.Zero(t, r+g+b)
}

func TestSaveAndLoadImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	img.SetRGBA(1, 1, color.RGBA{R: 9, G: 8, B: 7, A: 255})
	path := filepath.Join(t.TempDir(), "out.png")

	require.NoError(t, SaveCombinedImage(img, path))
	loaded, err := LoadImage(path)
	require.NoError(t, err)

	r, g, b, err := GetPixelColor(loaded, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{9, 8, 7}, []int{r, g, b})
}
