package helpers

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// GetPixelColor получает цвет пикселя по координатам
func GetPixelColor(img image.Image, x int, y int) (int, int, int, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return 0, 0, 0, fmt.Errorf("точка (%d, %d) вне изображения %v", x, y, bounds)
	}

	clr := img.At(x, y)
	r, g, b, _ := clr.RGBA()
	return int(r >> 8), int(g >> 8), int(b >> 8), nil
}

// MeanColor средний цвет области (часть области вне изображения игнорируется)
func MeanColor(img image.Image, area image.Rectangle) (float64, float64, float64) {
	area = area.Intersect(img.Bounds())
	if area.Empty() {
		return 0, 0, 0
	}

	var sumR, sumG, sumB float64
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			sumR += float64(r >> 8)
			sumG += float64(g >> 8)
			sumB += float64(b >> 8)
		}
	}

	n := float64(area.Dx() * area.Dy())
	return sumR / n, sumG / n, sumB / n
}

// LoadImage читает PNG или JPEG с диска
func LoadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// SaveCombinedImage сохраняет изображение в PNG файл
func SaveCombinedImage(image image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	err = png.Encode(file, image)
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}

	return nil
}
