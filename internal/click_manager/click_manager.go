package click_manager

import (
	"fmt"
	"image"
	"math"
	"math/rand"
	"time"

	"minibot/internal/config"
	"minibot/internal/logger"
	"minibot/internal/metrics"
)

// ClickManager управляет кликами и перетаскиваниями с "человеческими" таймингами
type ClickManager struct {
	pointer Pointer
	timing  config.Timing
	rng     *rand.Rand
	sleep   func(time.Duration)
	logger  *logger.LoggerManager
}

// NewClickManager создает новый экземпляр ClickManager
func NewClickManager(pointer Pointer, timing config.Timing, loggerManager *logger.LoggerManager) *ClickManager {
	return &ClickManager{
		pointer: pointer,
		timing:  timing,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep:   time.Sleep,
		logger:  loggerManager,
	}
}

// EaseInOutQuad квадратичная кривая разгона и торможения, t в [0, 1]
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -2*t*t + 4*t - 1
}

func distance(a, b image.Point) float64 {
	return math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
}

func (m *ClickManager) uniform(lo, hi float64) float64 {
	return lo + m.rng.Float64()*(hi-lo)
}

// SleepRange спит случайное время из диапазона (ничего не делает при Max <= 0)
func (m *ClickManager) SleepRange(r config.Range) {
	if r.Max > 0 {
		m.sleep(config.Seconds(m.uniform(r.Min, r.Max)))
	}
}

// DragDuration длительность движения на distance пикселей:
// пропорциональна расстоянию и зажата в [drag_min_duration, drag_max_duration]
func (m *ClickManager) DragDuration(distance float64) time.Duration {
	speed := math.Max(m.uniform(m.timing.DragSpeed.Min, m.timing.DragSpeed.Max), 1.0)
	dur := distance / speed
	if dur < m.timing.DragMinDuration {
		dur = m.timing.DragMinDuration + m.uniform(0, 0.01)
	}
	if dur > m.timing.DragMaxDuration {
		dur = m.timing.DragMaxDuration - m.uniform(0, 0.01)
	}
	return config.Seconds(math.Max(0.001, dur))
}

// Position текущая позиция курсора
func (m *ClickManager) Position() image.Point {
	x, y := m.pointer.Position()
	return image.Point{X: x, Y: y}
}

// Teleport мгновенно перемещает курсор без анимации
func (m *ClickManager) Teleport(p image.Point) error {
	if err := m.pointer.MoveTo(p.X, p.Y); err != nil {
		return fmt.Errorf("перемещение курсора в %v: %w", p, err)
	}
	return nil
}

// moveTween плавно ведёт курсор from -> to за dur по кривой EaseInOutQuad
func (m *ClickManager) moveTween(from, to image.Point, dur time.Duration) error {
	step := config.Seconds(m.timing.TweenStep)
	steps := 1
	if step > 0 {
		steps = int(dur / step)
	}
	if steps < 1 {
		steps = 1
	}
	pause := dur / time.Duration(steps)

	for i := 1; i <= steps; i++ {
		e := EaseInOutQuad(float64(i) / float64(steps))
		x := from.X + int(math.Round(float64(to.X-from.X)*e))
		y := from.Y + int(math.Round(float64(to.Y-from.Y)*e))
		if err := m.pointer.MoveTo(x, y); err != nil {
			return fmt.Errorf("шаг перемещения в (%d, %d): %w", x, y, err)
		}
		m.sleep(pause)
	}
	return nil
}

// DragBetween перетаскивает с зажатой кнопкой от from до to
func (m *ClickManager) DragBetween(from, to image.Point) error {
	if err := m.Teleport(from); err != nil {
		return err
	}
	m.SleepRange(m.timing.PrePressSettle)

	if err := m.pointer.Press(); err != nil {
		return fmt.Errorf("нажатие кнопки мыши: %w", err)
	}

	moveErr := m.moveTween(from, to, m.DragDuration(distance(from, to)))

	// отпускаем кнопку даже если перемещение сорвалось
	if err := m.pointer.Release(); err != nil && moveErr == nil {
		moveErr = fmt.Errorf("отпускание кнопки мыши: %w", err)
	}
	if moveErr != nil {
		return moveErr
	}

	metrics.Drags.Inc()
	m.SleepRange(m.timing.PostReleaseReaction)
	return nil
}

// ClickButton кликает по кнопке интерфейса
func (m *ClickManager) ClickButton(p image.Point) error {
	if err := m.Teleport(p); err != nil {
		return err
	}
	if err := m.pointer.Click(); err != nil {
		return fmt.Errorf("клик по %v: %w", p, err)
	}
	m.sleep(config.Seconds(m.timing.ClickSettle))
	return nil
}

// PressAt быстрый клик нажатием и отпусканием в точке
func (m *ClickManager) PressAt(p image.Point) error {
	if err := m.Teleport(p); err != nil {
		return err
	}
	if err := m.pointer.Press(); err != nil {
		return fmt.Errorf("нажатие в %v: %w", p, err)
	}
	if err := m.pointer.Release(); err != nil {
		return fmt.Errorf("отпускание в %v: %w", p, err)
	}
	return nil
}

// Click клик в текущей позиции курсора
func (m *ClickManager) Click() error {
	if err := m.pointer.Click(); err != nil {
		return fmt.Errorf("клик: %w", err)
	}
	return nil
}

// Press зажимает кнопку мыши в текущей позиции
func (m *ClickManager) Press() error {
	if err := m.pointer.Press(); err != nil {
		return fmt.Errorf("нажатие кнопки мыши: %w", err)
	}
	return nil
}

// Release отпускает кнопку мыши
func (m *ClickManager) Release() error {
	if err := m.pointer.Release(); err != nil {
		return fmt.Errorf("отпускание кнопки мыши: %w", err)
	}
	return nil
}

// Liveness сигнал продолжения длинного перетаскивания
type Liveness interface {
	Alive() bool
}

// DragPath ведёт зажатую кнопку через точки path. Каждый отрезок режется на
// шаги примерно по segmentLength px со случайным дрожанием до wobble px.
// Возвращает false, если live пропал посреди пути (кнопка при этом отпускается).
func (m *ClickManager) DragPath(path []image.Point, segmentLength, wobble float64, live Liveness) (bool, error) {
	if len(path) == 0 {
		return true, nil
	}
	if err := m.Teleport(path[0]); err != nil {
		return false, err
	}
	m.SleepRange(m.timing.PrePressSettle)
	if err := m.Press(); err != nil {
		return false, err
	}

	completed, moveErr := m.walkPath(path, segmentLength, wobble, live)

	// отпускаем кнопку даже если перемещение сорвалось
	if err := m.Release(); err != nil && moveErr == nil {
		moveErr = err
	}
	if moveErr != nil {
		return false, moveErr
	}
	if !completed {
		return false, nil
	}

	metrics.Drags.Inc()
	m.SleepRange(m.timing.PostReleaseReaction)
	return true, nil
}

func (m *ClickManager) walkPath(path []image.Point, segmentLength, wobble float64, live Liveness) (bool, error) {
	last := path[0]
	for _, target := range path[1:] {
		from := last
		steps := 1
		if segmentLength > 0 {
			steps = int(distance(from, target) / segmentLength)
		}
		if steps < 1 {
			steps = 1
		}
		for i := 1; i <= steps; i++ {
			if !live.Alive() {
				return false, nil
			}
			t := float64(i) / float64(steps)
			next := image.Point{
				X: from.X + int(math.Round(float64(target.X-from.X)*t+m.uniform(-wobble, wobble))),
				Y: from.Y + int(math.Round(float64(target.Y-from.Y)*t+m.uniform(-wobble, wobble))),
			}
			if err := m.moveTween(last, next, m.DragDuration(distance(last, next))); err != nil {
				return false, err
			}
			last = next
		}
	}
	return true, nil
}
