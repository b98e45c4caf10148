package screen

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"minibot/internal/helpers"
)

// SavePNG сохраняет скриншот в dir под именем с меткой времени
func SavePNG(img image.Image, dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create screenshot dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("screenshot_%s.png", now.Format("20060102_150405")))
	if err := helpers.SaveCombinedImage(img, path); err != nil {
		return "", err
	}
	return path, nil
}
