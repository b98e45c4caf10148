package bracing

import (
	"time"

	"minibot/internal/logger"
	"minibot/internal/types"
)

// BoardSampler источник снимков поля
type BoardSampler interface {
	Sample() (Grid, error)
}

// Confirmer проверка зелёной галочки завершения
type Confirmer interface {
	GreenCheckVisible(m types.Minigame) (bool, error)
	ConfirmCompletion(m types.Minigame, frames int, spacing time.Duration) (bool, error)
}

// PlanExecutor проигрывает план на поле
type PlanExecutor interface {
	Execute(grid *Grid, moves []Move, live Liveness) (bool, error)
}

// Result итог работы контроллера
type Result int

const (
	Solved Result = iota
	Aborted
)

// Controller внешний цикл hull bracing: считать, проверить, спланировать, выполнить
type Controller struct {
	sampler        BoardSampler
	executor       PlanExecutor
	probe          Confirmer
	maxDepth       int
	confirmFrames  int
	confirmSpacing time.Duration
	logger         *logger.LoggerManager
}

// NewController создает новый экземпляр Controller
func NewController(sampler BoardSampler, executor PlanExecutor, probe Confirmer, maxDepth, confirmFrames int, confirmSpacing time.Duration, loggerManager *logger.LoggerManager) *Controller {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Controller{
		sampler:        sampler,
		executor:       executor,
		probe:          probe,
		maxDepth:       maxDepth,
		confirmFrames:  confirmFrames,
		confirmSpacing: confirmSpacing,
		logger:         loggerManager,
	}
}

func (c *Controller) check(grid Grid) (Checked, error) {
	signal, err := c.probe.GreenCheckVisible(types.Bracing)
	if err != nil {
		return Checked{}, err
	}
	ev := Checked{Signal: signal, LogicalGoal: GoalAchieved(grid.State())}
	if ev.Signal || ev.LogicalGoal {
		ev.Confirmed, err = c.probe.ConfirmCompletion(types.Bracing, c.confirmFrames, c.confirmSpacing)
		if err != nil {
			return Checked{}, err
		}
	}
	return ev, nil
}

// Run крутит автомат до Done или Aborted. Ошибка означает недоступный экран или устройство ввода.
func (c *Controller) Run(live Liveness) (Result, error) {
	phase := PhaseSampling
	var grid Grid
	var plan PlanResult

	for !phase.Terminal() {
		var ev Event

		if !live.Alive() {
			ev = Stopped{}
		} else {
			switch phase {
			case PhaseSampling:
				sampled, err := c.sampler.Sample()
				if err != nil {
					return Aborted, err
				}
				grid = sampled
				c.logger.Debug("🔍 Поле: %s (счёт %d)", grid.String(), PlacedCount(grid.State()))
				ev = Sampled{}

			case PhaseChecking:
				checked, err := c.check(grid)
				if err != nil {
					return Aborted, err
				}
				if (checked.Signal || checked.LogicalGoal) && !checked.Confirmed {
					c.logger.Info("⚠️ Завершение не подтверждено, перечитываем поле")
				}
				ev = checked

			case PhasePlanning:
				plan = PlanStep(grid.State(), c.maxDepth)
				c.logger.Debug("🧭 План: %s, ходов %d", plan.Outcome, len(plan.Moves))
				ev = Planned{Outcome: plan.Outcome}

			case PhaseExecuting:
				ok, err := c.executor.Execute(&grid, plan.Moves, live)
				if err != nil {
					return Aborted, err
				}
				ev = Executed{OK: ok}
			}
		}

		next := Transition(phase, ev)
		if next != phase {
			c.logger.Debug("bracing: %s -> %s", phase, next)
		}
		phase = next
	}

	if phase == PhaseDone {
		c.logger.Info("✅ Hull bracing решён")
		return Solved, nil
	}
	c.logger.Info("⏹️ Hull bracing прерван")
	return Aborted, nil
}

// Solve адаптер для внешнего автомата бота
func (c *Controller) Solve(live Liveness) (bool, error) {
	result, err := c.Run(live)
	return result == Solved, err
}
