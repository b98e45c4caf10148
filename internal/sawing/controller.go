package sawing

import (
	"image"
	"time"

	"minibot/internal/click_manager"
	"minibot/internal/config"
	"minibot/internal/logger"
	"minibot/internal/metrics"
)

// BoardDetector определяет тип доски на экране
type BoardDetector interface {
	Detect() (string, float64, error)
	Region() image.Rectangle
}

// Dragger протягивает пилу через точки пути
type Dragger interface {
	DragPath(path []image.Point, segmentLength, wobble float64, live click_manager.Liveness) (bool, error)
}

// Liveness кооперативный сигнал остановки
type Liveness interface {
	Alive() bool
}

// Controller цикл plank sawing: распознать доску и провести пилу по её линии
type Controller struct {
	detector BoardDetector
	dragger  Dragger
	cfg      config.Sawing
	sleep    func(time.Duration)
	logger   *logger.LoggerManager
}

// NewController создает новый экземпляр Controller
func NewController(detector BoardDetector, dragger Dragger, cfg config.Sawing, loggerManager *logger.LoggerManager) *Controller {
	return &Controller{
		detector: detector,
		dragger:  dragger,
		cfg:      cfg,
		sleep:    time.Sleep,
		logger:   loggerManager,
	}
}

// CutPath путь пилы: от точки появления пилы через точки распила
func (c *Controller) CutPath(board string) ([]image.Point, bool) {
	spawn, ok := c.cfg.Spawns[board]
	if !ok {
		return nil, false
	}
	waypoints, ok := Waypoints(board, c.detector.Region(), c.cfg.ClampMargin)
	if !ok {
		return nil, false
	}
	return append([]image.Point{spawn}, waypoints...), true
}

func (c *Controller) cut(board string, live Liveness) (bool, error) {
	path, ok := c.CutPath(board)
	if !ok {
		c.logger.Info("⚠️ Нет пути распила для доски %s", board)
		return false, nil
	}
	c.logger.Debug("🪚 Доска %s: путь из %d точек", board, len(path))
	return c.dragger.DragPath(path, c.cfg.SegmentLength, c.cfg.Wobble, live)
}

// Solve пилит доски, пока они появляются. Успех: досок не осталось, или
// попытки кончились, а распилов набралось не меньше expected_boards.
func (c *Controller) Solve(live Liveness) (bool, error) {
	cuts := 0
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		if !live.Alive() {
			return false, nil
		}

		board, score, err := c.detector.Detect()
		if err != nil {
			return false, err
		}
		if board == "" {
			c.logger.Info("✅ Plank sawing: досок больше нет (распилов %d)", cuts)
			return true, nil
		}
		c.logger.Debug("🪵 Попытка %d: доска %s (%.2f)", attempt, board, score)

		ok, err := c.cut(board, live)
		if err != nil {
			return false, err
		}
		c.sleep(config.Seconds(c.cfg.AfterCutDelay))

		if ok {
			cuts++
			metrics.Cuts.WithLabelValues(board).Inc()
			c.sleep(config.Seconds(c.cfg.NextBoardDelay))
		} else {
			c.sleep(config.Seconds(c.cfg.RetryDelay))
		}
	}

	c.logger.Info("🪚 Plank sawing: попытки исчерпаны, распилов %d из %d", cuts, c.cfg.ExpectedBoards)
	return cuts >= c.cfg.ExpectedBoards, nil
}
