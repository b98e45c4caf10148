package arduino

import (
	"sync"
)

// ArduinoPointer управляет мышью через Arduino (HID) по последовательному порту
type ArduinoPointer struct {
	port Port
	mu   sync.Mutex
	x, y int
}

// NewArduinoPointer создает новый экземпляр ArduinoPointer
func NewArduinoPointer(port Port) *ArduinoPointer {
	return &ArduinoPointer{port: port}
}

func (a *ArduinoPointer) do(send func(Port) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return ProcessAndWait(send, WaitForArduinoResponse, a.port)
}

// MoveTo перемещает курсор в абсолютные координаты
func (a *ArduinoPointer) MoveTo(x, y int) error {
	err := a.do(func(p Port) error { return SendMoveToArduino(p, x, y) })
	if err == nil {
		a.mu.Lock()
		a.x, a.y = x, y
		a.mu.Unlock()
	}
	return err
}

func (a *ArduinoPointer) Press() error {
	return a.do(SendMouseDownToArduino)
}

func (a *ArduinoPointer) Release() error {
	return a.do(SendMouseUpToArduino)
}

func (a *ArduinoPointer) Click() error {
	return a.do(SendFastClickToArduino)
}

// Position последняя отправленная позиция (Arduino не сообщает курсор)
func (a *ArduinoPointer) Position() (int, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.x, a.y
}
