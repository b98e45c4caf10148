package hammering

import (
	"fmt"
	"image"
	"time"

	"minibot/internal/config"
	"minibot/internal/logger"
	"minibot/internal/metrics"
	"minibot/internal/types"
)

// Finder источник положений гвоздей и спрайта молотка
type Finder interface {
	Nailheads() ([]image.Point, error)
	Track(nails []image.Point) ([]Nail, error)
	SpriteVisible(cursor image.Point) (bool, error)
}

// Pointer курсор: телепорт и клик в текущей точке
type Pointer interface {
	Teleport(p image.Point) error
	Click() error
	Position() image.Point
}

// Confirmer проверка зелёной галочки завершения
type Confirmer interface {
	ConfirmCompletion(m types.Minigame, frames int, spacing time.Duration) (bool, error)
}

// Liveness кооперативный сигнал остановки
type Liveness interface {
	Alive() bool
}

// Controller цикл hull hammering: найти шляпки и бить по незабитым, пока не появится галочка
type Controller struct {
	finder         Finder
	pointer        Pointer
	probe          Confirmer
	cfg            config.Hammering
	confirmFrames  int
	confirmSpacing time.Duration
	sleep          func(time.Duration)
	logger         *logger.LoggerManager
}

// NewController создает новый экземпляр Controller
func NewController(finder Finder, pointer Pointer, probe Confirmer, cfg config.Hammering, confirmFrames int, confirmSpacing time.Duration, loggerManager *logger.LoggerManager) *Controller {
	return &Controller{
		finder:         finder,
		pointer:        pointer,
		probe:          probe,
		cfg:            cfg,
		confirmFrames:  confirmFrames,
		confirmSpacing: confirmSpacing,
		sleep:          time.Sleep,
		logger:         loggerManager,
	}
}

func (c *Controller) confirmed() (bool, error) {
	return c.probe.ConfirmCompletion(types.Hammering, c.confirmFrames, c.confirmSpacing)
}

// waitSprite ждёт появления молотка у курсора не дольше sprite_max_frames кадров
func (c *Controller) waitSprite(live Liveness) (bool, error) {
	for frame := 0; frame < c.cfg.SpriteMaxFrames; frame++ {
		if !live.Alive() {
			return false, nil
		}
		visible, err := c.finder.SpriteVisible(c.pointer.Position())
		if err != nil {
			return false, err
		}
		if visible {
			return true, nil
		}
		c.sleep(config.Seconds(c.cfg.FrameDelay))
	}
	return false, nil
}

// Solve бьёт по гвоздям, пока галочка не подтверждена, попытки не кончились
// или не пришёл сигнал остановки
func (c *Controller) Solve(live Liveness) (bool, error) {
	done, err := c.confirmed()
	if err != nil || done {
		return done, err
	}

	nails, err := c.finder.Nailheads()
	if err != nil {
		return false, err
	}
	if len(nails) == 0 {
		c.logger.Info("⚠️ Шляпки гвоздей не найдены")
		return false, nil
	}
	c.logger.Info("🔨 Найдено гвоздей: %d", len(nails))

	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		if !live.Alive() {
			return false, nil
		}
		if done, err := c.confirmed(); err != nil || done {
			if done {
				c.logger.Info("✅ Hull hammering завершён")
			}
			return done, err
		}

		states, err := c.finder.Track(nails)
		if err != nil {
			return false, err
		}
		var pending []image.Point
		for _, s := range states {
			if !s.Flush {
				pending = append(pending, s.At)
			}
		}
		c.logger.Debug("🔨 Попытка %d: незабитых гвоздей %d", attempt, len(pending))

		for _, p := range pending {
			if !live.Alive() {
				return false, nil
			}
			if err := c.pointer.Teleport(p); err != nil {
				return false, err
			}
			ready, err := c.waitSprite(live)
			if err != nil {
				return false, err
			}
			if ready {
				if err := c.pointer.Click(); err != nil {
					return false, fmt.Errorf("удар по гвоздю %v: %w", p, err)
				}
				metrics.Strikes.Inc()
			} else {
				c.logger.Debug("⌛ Молоток у гвоздя %v не появился", p)
			}
			c.sleep(config.Seconds(c.cfg.NailDelay))
		}
		c.sleep(config.Seconds(c.cfg.SettleDelay))
	}

	c.logger.Info("⚠️ Hull hammering: попытки исчерпаны (%d) без галочки", c.cfg.MaxAttempts)
	return false, nil
}
