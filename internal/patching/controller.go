package patching

import (
	"fmt"
	"image"
	"time"

	"minibot/internal/config"
	"minibot/internal/logger"
	"minibot/internal/metrics"
	"minibot/internal/types"

	"golang.org/x/time/rate"
)

// пауза между проходами, когда утечки ещё есть
const passDelay = 10 * time.Millisecond

// LeakDetector источник точек клика
type LeakDetector interface {
	Detect() ([]image.Point, error)
}

// Clicker быстрый клик в точке экрана
type Clicker interface {
	PressAt(p image.Point) error
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

type recentClick struct {
	at image.Point
	ts time.Time
}

// Controller цикл hull patching: найти утечки и прокликать их, пока не появится галочка
type Controller struct {
	detector       LeakDetector
	clicker        Clicker
	probe          Confirmer
	limiter        *rate.Limiter
	cooldown       time.Duration
	tolerance      int
	idle           time.Duration
	confirmFrames  int
	confirmSpacing time.Duration
	recent         []recentClick
	now            func() time.Time
	sleep          func(time.Duration)
	logger         *logger.LoggerManager
}

// NewController создает новый экземпляр Controller
func NewController(detector LeakDetector, clicker Clicker, probe Confirmer, cfg config.Patching, confirmFrames int, confirmSpacing time.Duration, loggerManager *logger.LoggerManager) *Controller {
	return &Controller{
		detector:       detector,
		clicker:        clicker,
		probe:          probe,
		limiter:        rate.NewLimiter(rate.Every(config.Seconds(cfg.MinClickInterval)), 1),
		cooldown:       config.Seconds(cfg.ReclickCooldown),
		tolerance:      cfg.ReclickTolerance,
		idle:           config.Seconds(cfg.IdleDelay),
		confirmFrames:  confirmFrames,
		confirmSpacing: confirmSpacing,
		now:            time.Now,
		sleep:          time.Sleep,
		logger:         loggerManager,
	}
}

func (c *Controller) pruneRecent(now time.Time) {
	kept := c.recent[:0]
	for _, rc := range c.recent {
		if now.Sub(rc.ts) < c.cooldown {
			kept = append(kept, rc)
		}
	}
	c.recent = kept
}

func (c *Controller) tooRecent(p image.Point) bool {
	for _, rc := range c.recent {
		dx, dy := rc.at.X-p.X, rc.at.Y-p.Y
		if dx < 0 {
			dx = -dx
		}
		if dy < 0 {
			dy = -dy
		}
		if dx <= c.tolerance && dy <= c.tolerance {
			return true
		}
	}
	return false
}

// waitClickSlot выдерживает минимальный интервал между кликами
func (c *Controller) waitClickSlot() {
	now := c.now()
	r := c.limiter.ReserveN(now, 1)
	if d := r.DelayFrom(now); d > 0 {
		c.sleep(d)
	}
}

// Solve кликает утечки, пока галочка не подтверждена или не пришёл сигнал остановки
func (c *Controller) Solve(live Liveness) (bool, error) {
	for live.Alive() {
		done, err := c.probe.ConfirmCompletion(types.Patching, c.confirmFrames, c.confirmSpacing)
		if err != nil {
			return false, err
		}
		if done {
			c.logger.Info("✅ Hull patching завершён")
			return true, nil
		}

		c.pruneRecent(c.now())
		centers, err := c.detector.Detect()
		if err != nil {
			return false, err
		}
		if len(centers) == 0 {
			c.sleep(c.idle)
			continue
		}
		c.logger.Debug("🩹 Найдено утечек: %d", len(centers))

		for _, p := range OrderNearest(centers, c.clicker.Position()) {
			if !live.Alive() {
				return false, nil
			}
			if c.tooRecent(p) {
				continue
			}

			c.waitClickSlot()
			if err := c.clicker.PressAt(p); err != nil {
				return false, fmt.Errorf("клик по утечке %v: %w", p, err)
			}
			c.recent = append(c.recent, recentClick{at: p, ts: c.now()})
			metrics.Clicks.Inc()
			c.sleep(c.idle)
		}
		c.sleep(passDelay)
	}
	return false, nil
}
