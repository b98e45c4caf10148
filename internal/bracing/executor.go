package bracing

import (
	"fmt"
	"image"
	"math/rand"
	"time"

	"minibot/internal/logger"
	"minibot/internal/metrics"
)

// Dragger физическое перетаскивание фишки
type Dragger interface {
	DragBetween(from, to image.Point) error
}

// Liveness кооперативный сигнал остановки
type Liveness interface {
	Alive() bool
}

// Executor проигрывает план перетаскиваниями и обновляет локальную копию поля
type Executor struct {
	layout      Layout
	dragger     Dragger
	breathEvery int
	breathMin   time.Duration
	breathMax   time.Duration
	rng         *rand.Rand
	sleep       func(time.Duration)
	logger      *logger.LoggerManager
	moveCount   int
}

// NewExecutor создает новый экземпляр Executor.
// Каждые breathEvery ходов делается случайная пауза из [breathMin, breathMax].
func NewExecutor(layout Layout, dragger Dragger, breathEvery int, breathMin, breathMax time.Duration, loggerManager *logger.LoggerManager) *Executor {
	return &Executor{
		layout:      layout,
		dragger:     dragger,
		breathEvery: breathEvery,
		breathMin:   breathMin,
		breathMax:   breathMax,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep:       time.Sleep,
		logger:      loggerManager,
	}
}

// MoveCount сколько ходов выполнено за всё время жизни Executor
func (e *Executor) MoveCount() int {
	return e.moveCount
}

func (e *Executor) breathe() {
	if e.breathMax <= 0 {
		return
	}
	d := e.breathMin
	if span := e.breathMax - e.breathMin; span > 0 {
		d += time.Duration(e.rng.Int63n(int64(span) + 1))
	}
	e.sleep(d)
}

// Execute выполняет ходы по порядку. Поле обновляется оптимистично, без перечитывания экрана.
// false означает остановку по сигналу; ошибка - сбой устройства ввода.
func (e *Executor) Execute(grid *Grid, moves []Move, live Liveness) (bool, error) {
	for _, m := range moves {
		if !live.Alive() {
			return false, nil
		}

		if err := e.dragger.DragBetween(e.layout.Point(m.From), e.layout.Point(m.To)); err != nil {
			return false, fmt.Errorf("ход %v: %w", m, err)
		}

		grid.Apply(m)
		e.moveCount++
		metrics.Moves.Inc()

		if e.breathEvery > 0 && e.moveCount%e.breathEvery == 0 {
			e.logger.Debug("😮‍💨 Пауза после %d ходов", e.moveCount)
			e.breathe()
		}
	}
	return true, nil
}
