package scrubbing

import (
	"image"
	"time"

	"minibot/internal/config"
	"minibot/internal/logger"
	"minibot/internal/metrics"
	"minibot/internal/types"
)

// DirtSource источник грязных областей доски
type DirtSource interface {
	Dirty() ([]image.Rectangle, error)
	Region() image.Rectangle
}

// Pointer курсор с зажатием кнопки
type Pointer interface {
	Teleport(p image.Point) error
	Press() error
	Release() error
}

// Confirmer проверка зелёной галочки завершения
type Confirmer interface {
	ConfirmCompletion(m types.Minigame, frames int, spacing time.Duration) (bool, error)
}

// Liveness кооперативный сигнал остановки
type Liveness interface {
	Alive() bool
}

// PowerTracker учёт перезарядки усиленной чистки (зажатая кнопка)
type PowerTracker struct {
	recharge time.Duration
	lastEnd  time.Time
	now      func() time.Time
}

// NewPowerTracker создает новый экземпляр PowerTracker
func NewPowerTracker(recharge time.Duration, now func() time.Time) *PowerTracker {
	return &PowerTracker{recharge: recharge, now: now}
}

// Ready перезарядилась ли усиленная чистка
func (p *PowerTracker) Ready() bool {
	return p.lastEnd.IsZero() || p.now().Sub(p.lastEnd) >= p.recharge
}

// Spent отмечает конец использования; с этого момента идёт перезарядка
func (p *PowerTracker) Spent() {
	p.lastEnd = p.now()
}

// Controller цикл hull scrubbing: сравнить доску с эталоном и пройтись по грязным полосам
type Controller struct {
	board          DirtSource
	pointer        Pointer
	probe          Confirmer
	cfg            config.Scrubbing
	power          *PowerTracker
	confirmFrames  int
	confirmSpacing time.Duration
	sleep          func(time.Duration)
	logger         *logger.LoggerManager
}

// NewController создает новый экземпляр Controller
func NewController(board DirtSource, pointer Pointer, probe Confirmer, cfg config.Scrubbing, confirmFrames int, confirmSpacing time.Duration, loggerManager *logger.LoggerManager) *Controller {
	return &Controller{
		board:          board,
		pointer:        pointer,
		probe:          probe,
		cfg:            cfg,
		power:          NewPowerTracker(config.Seconds(cfg.PowerRecharge), time.Now),
		confirmFrames:  confirmFrames,
		confirmSpacing: confirmSpacing,
		sleep:          time.Sleep,
		logger:         loggerManager,
	}
}

func (c *Controller) confirmed() (bool, error) {
	return c.probe.ConfirmCompletion(types.Scrubbing, c.confirmFrames, c.confirmSpacing)
}

// sweep проводит курсор слева направо и обратно по отрезку
func (c *Controller) sweep(y int, s Segment) error {
	if err := c.pointer.Teleport(image.Point{X: s.Right, Y: y}); err != nil {
		return err
	}
	return c.pointer.Teleport(image.Point{X: s.Left, Y: y})
}

func (c *Controller) scrubSegment(y int, s Segment) error {
	if err := c.pointer.Teleport(image.Point{X: s.Left, Y: y}); err != nil {
		return err
	}

	if !c.power.Ready() {
		if err := c.sweep(y, s); err != nil {
			return err
		}
		metrics.ScrubPasses.WithLabelValues("off").Inc()
		c.sleep(config.Seconds(c.cfg.SegmentDelay))
		return nil
	}

	if err := c.pointer.Press(); err != nil {
		return err
	}
	sweepErr := c.sweep(y, s)
	// отпускаем кнопку даже если перемещение сорвалось
	if err := c.pointer.Release(); err != nil && sweepErr == nil {
		sweepErr = err
	}
	c.power.Spent()
	if sweepErr != nil {
		return sweepErr
	}
	metrics.ScrubPasses.WithLabelValues("on").Inc()
	c.sleep(config.Seconds(c.cfg.PowerDelay))
	return nil
}

// Solve чистит доску, пока галочка не подтверждена, попытки не кончились
// или не пришёл сигнал остановки
func (c *Controller) Solve(live Liveness) (bool, error) {
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		if !live.Alive() {
			return false, nil
		}
		if done, err := c.confirmed(); err != nil || done {
			if done {
				c.logger.Info("✅ Hull scrubbing завершён")
			}
			return done, err
		}

		dirty, err := c.board.Dirty()
		if err != nil {
			return false, err
		}
		rows := PlanRows(dirty, c.board.Region(), c.cfg)
		if len(rows) == 0 {
			// грязи не видно, но галочки нет: даём игре время и смотрим снова
			c.sleep(config.Seconds(c.cfg.PassDelay))
			continue
		}
		c.logger.Debug("🧽 Попытка %d: грязных областей %d, полос %d", attempt, len(dirty), len(rows))

		for _, row := range rows {
			for _, s := range row.Segments {
				if !live.Alive() {
					return false, nil
				}
				if err := c.scrubSegment(row.CenterY, s); err != nil {
					return false, err
				}
			}
		}
		c.sleep(config.Seconds(c.cfg.PassDelay))
	}

	c.logger.Info("⚠️ Hull scrubbing: попытки исчерпаны (%d) без галочки", c.cfg.MaxAttempts)
	return false, nil
}
