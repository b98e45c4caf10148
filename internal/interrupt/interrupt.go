package interrupt

import (
	"errors"

	"minibot/internal/logger"
	"minibot/internal/types"
)

// ErrHotkeysUnsupported глобальные горячие клавиши доступны только в Windows
var ErrHotkeysUnsupported = errors.New("глобальные горячие клавиши поддерживаются только в Windows")

// Виртуальные коды клавиш Windows
const (
	vk1   uint32 = 0x31
	vk2   uint32 = 0x32
	vk3   uint32 = 0x33
	vk4   uint32 = 0x34
	vk5   uint32 = 0x35
	vkF1  uint32 = 0x70
	vkF11 uint32 = 0x7A
)

var hotkeyTargets = map[uint32]types.Minigame{
	vk1:  types.Scrubbing,
	vk2:  types.Sawing,
	vk3:  types.Bracing,
	vk4:  types.Hammering,
	vk5:  types.Patching,
	vkF1: types.AllSequence,
}

var hotkeyNames = map[uint32]string{
	vk1:  "1",
	vk2:  "2",
	vk3:  "3",
	vk4:  "4",
	vk5:  "5",
	vkF1: "F1",
}

// InterruptManager управляет горячими клавишами
type InterruptManager struct {
	control       *RunControl
	loggerManager *logger.LoggerManager
}

// NewInterruptManager создает новый менеджер прерываний
func NewInterruptManager(control *RunControl, loggerManager *logger.LoggerManager) *InterruptManager {
	return &InterruptManager{
		control:       control,
		loggerManager: loggerManager,
	}
}

// StartMonitoring запускает мониторинг горячих клавиш
func (im *InterruptManager) StartMonitoring() error {
	return im.monitorHotkeys()
}

// HandleKeyDown обрабатывает нажатие клавиши
func (im *InterruptManager) HandleKeyDown(vk uint32) {
	if vk == vkF11 {
		im.control.Stop()
		im.loggerManager.Info("⏹️ Бот остановлен (F11)")
		return
	}

	target, ok := hotkeyTargets[vk]
	if !ok {
		return
	}

	if im.control.Toggle(target) {
		im.loggerManager.Info("🚀 Запуск %s - нажмите %s или F11 для остановки", target, hotkeyNames[vk])
	} else {
		im.loggerManager.Info("⏹️ %s остановлен", target)
	}
}
