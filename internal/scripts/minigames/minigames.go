package minigames

import (
	"context"
	"image"
	"sync/atomic"
	"time"

	"minibot/internal/config"
	"minibot/internal/database"
	"minibot/internal/interrupt"
	"minibot/internal/logger"
	"minibot/internal/metrics"
	"minibot/internal/types"

	"github.com/google/uuid"
)

// опрос флага запуска, пока бот стоит
const idlePoll = 10 * time.Millisecond

// Результаты мини-игры в журнале и метриках
const (
	ResultSolved      = "solved"
	ResultAborted     = "aborted"
	ResultFailed      = "failed"
	ResultUnsupported = "unsupported"
)

// Solver решает одну мини-игру, пока lease жив
type Solver interface {
	Solve(lease interrupt.Lease) (bool, error)
}

// SolverFunc функция как Solver
type SolverFunc func(lease interrupt.Lease) (bool, error)

func (f SolverFunc) Solve(lease interrupt.Lease) (bool, error) {
	return f(lease)
}

// MenuClicker клики по интерфейсу меню
type MenuClicker interface {
	ClickButton(p image.Point) error
	Teleport(p image.Point) error
}

// Journal куда бот пишет статус и результаты
type Journal interface {
	UpdateStatus(status string) error
	SaveRunAsync(run database.RunRecord)
}

// Bot внешний автомат: меню -> мини-игра -> завершение
type Bot struct {
	control  *interrupt.RunControl
	clicker  MenuClicker
	solvers  map[types.Minigame]Solver
	geometry config.Geometry
	timing   config.Timing
	sequence []types.Minigame
	journal  Journal
	state    atomic.Int32
	session  uuid.UUID
	now      func() time.Time
	sleep    func(time.Duration)
	logger   *logger.LoggerManager
}

// NewBot создает новый экземпляр Bot
func NewBot(control *interrupt.RunControl, clicker MenuClicker, cfg config.Config, loggerManager *logger.LoggerManager) (*Bot, error) {
	sequence := make([]types.Minigame, 0, len(cfg.SequenceOrder))
	for _, name := range cfg.SequenceOrder {
		m, err := types.ParseMinigame(name)
		if err != nil {
			return nil, err
		}
		sequence = append(sequence, m)
	}

	return &Bot{
		control:  control,
		clicker:  clicker,
		solvers:  make(map[types.Minigame]Solver),
		geometry: cfg.Geometry,
		timing:   cfg.Timing,
		sequence: sequence,
		now:      time.Now,
		sleep:    time.Sleep,
		logger:   loggerManager,
	}, nil
}

// Register подключает решатель мини-игры
func (b *Bot) Register(m types.Minigame, s Solver) {
	b.solvers[m] = s
}

// SetJournal включает запись статуса и результатов
func (b *Bot) SetJournal(j Journal) {
	b.journal = j
}

// State текущее состояние автомата
func (b *Bot) State() types.BotState {
	return types.BotState(b.state.Load())
}

func (b *Bot) setState(s types.BotState) {
	prev := types.BotState(b.state.Swap(int32(s)))
	if prev != s {
		b.logger.Debug("🔁 %s -> %s", prev, s)
	}
}

func (b *Bot) updateStatus(status string) {
	if b.journal == nil {
		return
	}
	if err := b.journal.UpdateStatus(status); err != nil {
		b.logger.LogError(err, "Ошибка обновления статуса")
	}
}

func (b *Bot) record(m types.Minigame, result string, started time.Time) {
	metrics.Runs.WithLabelValues(m.String(), result).Inc()
	if b.journal == nil {
		return
	}
	b.journal.SaveRunAsync(database.RunRecord{
		SessionID: b.session,
		Minigame:  m,
		Result:    result,
		StartedAt: started,
		Duration:  b.now().Sub(started),
	})
}

// Run ждёт запуска по горячей клавише или команде из БД и проигрывает цель.
// Завершается с отменой ctx.
func (b *Bot) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if !b.control.Running() {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(idlePoll):
			}
			continue
		}

		lease := b.control.Lease()
		b.Play(lease, b.control.Target())

		// завершённая или сорвавшаяся цель останавливает бота; новая сессия не трогается
		if lease.Alive() {
			b.control.Stop()
		}
		b.setState(types.StateMenu)
		b.updateStatus(database.StatusIdle)
	}
}

// Play одна сессия от меню до завершения цели. true, если цель выполнена.
func (b *Bot) Play(lease interrupt.Lease, target types.Minigame) bool {
	b.session = uuid.New()
	b.logger.Info("🚀 Сессия %s: %s", b.session, target)

	if target == types.AllSequence {
		b.setState(types.StateAllSequence)
		b.updateStatus(database.RunningStatus(target))
		return b.runSequence(lease)
	}
	return b.playMinigame(lease, target)
}

// openMinigame кликает кнопку мини-игры в меню и ждёт загрузки
func (b *Bot) openMinigame(m types.Minigame) error {
	b.setState(types.StateMenu)
	button, ok := b.geometry.Button(m)
	if !ok {
		return nil
	}
	if err := b.clicker.ClickButton(button); err != nil {
		return err
	}
	// прицел hammering зелёный и мешает проверке галочки: уводим курсор в центр окна
	if m == types.Hammering {
		if err := b.clicker.Teleport(b.geometry.BoxCenter()); err != nil {
			return err
		}
	}
	b.sleep(config.Seconds(b.timing.MenuLoadDelay))
	return nil
}

func (b *Bot) playMinigame(lease interrupt.Lease, m types.Minigame) bool {
	started := b.now()

	solver, ok := b.solvers[m]
	if !ok {
		b.logger.Info("⚠️ Для %s нет решателя, останавливаемся", m)
		b.record(m, ResultUnsupported, started)
		return false
	}

	b.updateStatus(database.RunningStatus(m))
	if err := b.openMinigame(m); err != nil {
		b.logger.LogError(err, "Ошибка открытия мини-игры "+m.String())
		b.record(m, ResultFailed, started)
		return false
	}
	if !lease.Alive() {
		b.record(m, ResultAborted, started)
		return false
	}

	b.setState(types.StateFor(m))
	solved, err := solver.Solve(lease)
	switch {
	case err != nil:
		b.logger.LogError(err, "Ошибка решения "+m.String())
		b.record(m, ResultFailed, started)
		return false
	case !solved:
		b.record(m, ResultAborted, started)
		return false
	}

	b.setState(types.StateComplete)
	b.logger.Info("✅ %s завершена за %s", m, b.now().Sub(started).Round(time.Millisecond))
	b.record(m, ResultSolved, started)
	return true
}

// runSequence гоняет мини-игры по порядку, пока бот запущен.
// Первая неудача заканчивает последовательность.
func (b *Bot) runSequence(lease interrupt.Lease) bool {
	if len(b.sequence) == 0 {
		return false
	}

	for cycle := 1; lease.Alive(); cycle++ {
		b.logger.Info("🔄 Цикл %d: %d мини-игр", cycle, len(b.sequence))

		for i, m := range b.sequence {
			if !lease.Alive() {
				b.logger.Info("⏹️ Последовательность остановлена")
				return false
			}
			b.logger.Info("▶️ Мини-игра %d/%d: %s", i+1, len(b.sequence), m)

			if !b.playMinigame(lease, m) {
				b.logger.Info("❌ %s не завершена, последовательность прервана", m)
				return false
			}
			b.setState(types.StateAllSequence)

			if i < len(b.sequence)-1 {
				b.sleep(config.Seconds(b.timing.BetweenMinigamesDelay))
			}
		}

		b.logger.Info("🏁 Все мини-игры пройдены")
		for left := b.timing.SequenceRepeatCountdownS; left > 0; left-- {
			if !lease.Alive() {
				b.logger.Info("⏹️ Последовательность остановлена во время отсчёта")
				return true
			}
			b.logger.Info("⏳ Повтор через %d с", left)
			b.sleep(time.Second)
		}
	}
	return true
}
