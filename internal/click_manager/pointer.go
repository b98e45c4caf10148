package click_manager

import (
	"github.com/go-vgo/robotgo"
)

// Pointer синтетическая мышь: мгновенные перемещения, нажатие и отпускание
type Pointer interface {
	MoveTo(x, y int) error
	Press() error
	Release() error
	Click() error
	Position() (int, int)
}

// RobotgoPointer управление мышью через robotgo
type RobotgoPointer struct{}

// NewRobotgoPointer создает новый экземпляр RobotgoPointer
func NewRobotgoPointer() *RobotgoPointer {
	return &RobotgoPointer{}
}

func (RobotgoPointer) MoveTo(x, y int) error {
	robotgo.Move(x, y)
	return nil
}

func (RobotgoPointer) Press() error {
	return robotgo.Toggle("left")
}

func (RobotgoPointer) Release() error {
	return robotgo.Toggle("left", "up")
}

func (RobotgoPointer) Click() error {
	robotgo.Click("left")
	return nil
}

func (RobotgoPointer) Position() (int, int) {
	return robotgo.Location()
}
