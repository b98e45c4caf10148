package screen

import (
	"errors"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// ErrDisplayUnavailable нет активного дисплея: без него бот не может работать
var ErrDisplayUnavailable = errors.New("дисплей недоступен")

// Capturer захватывает область экрана в RGB буфер
type Capturer interface {
	Capture(rect image.Rectangle) (*image.RGBA, error)
}

// ScreenManager захват экрана через kbinani/screenshot
type ScreenManager struct{}

// NewScreenManager создает новый экземпляр ScreenManager
func NewScreenManager() *ScreenManager {
	return &ScreenManager{}
}

// Available проверяет, что подключён хотя бы один дисплей
func Available() bool {
	return screenshot.NumActiveDisplays() > 0
}

// RequireDisplay возвращает ErrDisplayUnavailable, если дисплея нет
func RequireDisplay() error {
	if !Available() {
		return ErrDisplayUnavailable
	}
	return nil
}

// Capture захватывает указанную область экрана
func (m *ScreenManager) Capture(rect image.Rectangle) (*image.RGBA, error) {
	if err := RequireDisplay(); err != nil {
		return nil, err
	}
	img, err := screenshot.CaptureRect(rect)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screenshot %v: %w", rect, err)
	}
	// screenshot отдаёт буфер с началом в (0,0); переносим в экранные координаты
	img.Rect = rect
	return img, nil
}

// CaptureFullScreen захватывает скриншот основного дисплея
func (m *ScreenManager) CaptureFullScreen() (*image.RGBA, error) {
	if err := RequireDisplay(); err != nil {
		return nil, err
	}
	img, err := screenshot.CaptureDisplay(0)
	if err != nil {
		return nil, fmt.Errorf("failed to capture full screen: %w", err)
	}
	return img, nil
}
