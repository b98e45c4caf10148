package screen

import (
	"image"
	"image/draw"
)

// StaticCapturer отдаёт области заранее заданного кадра (для тестов и отладки по скриншоту)
type StaticCapturer struct {
	Frame image.Image
	Calls int
}

// Capture копирует область кадра; точки вне кадра остаются чёрными
func (s *StaticCapturer) Capture(rect image.Rectangle) (*image.RGBA, error) {
	s.Calls++
	out := image.NewRGBA(rect)
	draw.Draw(out, rect, s.Frame, rect.Min, draw.Src)
	return out, nil
}
