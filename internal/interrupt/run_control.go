package interrupt

import (
	"sync/atomic"

	"minibot/internal/types"
)

// RunControl общий флаг выполнения и текущая цель бота.
// Пишет в него слушатель горячих клавиш (и опрос действий из БД),
// читают все компоненты, никогда не блокируясь на нём.
type RunControl struct {
	running atomic.Bool
	target  atomic.Int32
	epoch   atomic.Uint64
}

// NewRunControl создает остановленный RunControl
func NewRunControl() *RunControl {
	return &RunControl{}
}

// Start запускает бота для мини-игры и начинает новую сессию
func (rc *RunControl) Start(target types.Minigame) {
	rc.target.Store(int32(target))
	rc.running.Store(true)
	rc.epoch.Add(1)
}

// Stop останавливает бота; все выданные Lease становятся недействительными
func (rc *RunControl) Stop() {
	rc.running.Store(false)
	rc.epoch.Add(1)
}

// Toggle запускает цель или останавливает её, если она уже запущена.
// Возвращает true, если бот был запущен.
func (rc *RunControl) Toggle(target types.Minigame) bool {
	if rc.Running() && rc.Target() == target {
		rc.Stop()
		return false
	}
	rc.Start(target)
	return true
}

func (rc *RunControl) Running() bool {
	return rc.running.Load()
}

func (rc *RunControl) Target() types.Minigame {
	return types.Minigame(rc.target.Load())
}

func (rc *RunControl) Epoch() uint64 {
	return rc.epoch.Load()
}

// Lease фиксирует текущую сессию
func (rc *RunControl) Lease() Lease {
	return Lease{rc: rc, epoch: rc.Epoch()}
}

// Lease право на работу в рамках одной сессии запуска
type Lease struct {
	rc    *RunControl
	epoch uint64
}

// Alive true, пока бот запущен и сессия не сменилась
func (l Lease) Alive() bool {
	return l.rc != nil && l.rc.Running() && l.rc.Epoch() == l.epoch
}
