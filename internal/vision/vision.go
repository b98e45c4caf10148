package vision

import (
	"fmt"
	"time"

	"minibot/internal/config"
	"minibot/internal/screen"
	"minibot/internal/types"
)

var (
	greenLow  = HSV{40, 100, 100}
	greenHigh = HSV{80, 255, 255}
)

// minGreenPixels сколько зелёных пикселей считается видимой галочкой
const minGreenPixels = 50

// Probe проверка зелёной галочки завершения мини-игры
type Probe struct {
	capturer screen.Capturer
	geometry config.Geometry
	sleep    func(time.Duration)
}

// NewProbe создает новый экземпляр Probe
func NewProbe(capturer screen.Capturer, geometry config.Geometry) *Probe {
	return &Probe{
		capturer: capturer,
		geometry: geometry,
		sleep:    time.Sleep,
	}
}

// GreenCheckVisible видна ли галочка завершения для мини-игры
func (p *Probe) GreenCheckVisible(m types.Minigame) (bool, error) {
	region, ok := p.geometry.GreenCheck(m)
	if !ok {
		return false, nil
	}

	img, err := p.capturer.Capture(region.Rect())
	if err != nil {
		return false, fmt.Errorf("захват области галочки %s: %w", m, err)
	}

	return InRange(img, greenLow, greenHigh).Count() > minGreenPixels, nil
}

// ConfirmCompletion требует frames подряд положительных проверок с паузой spacing
func (p *Probe) ConfirmCompletion(m types.Minigame, frames int, spacing time.Duration) (bool, error) {
	for i := 0; i < frames; i++ {
		visible, err := p.GreenCheckVisible(m)
		if err != nil {
			return false, err
		}
		if !visible {
			return false, nil
		}
		p.sleep(spacing)
	}
	return true, nil
}
