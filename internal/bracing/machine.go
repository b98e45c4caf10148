package bracing

// Phase состояние контроллера hull bracing
type Phase int

const (
	PhaseSampling Phase = iota
	PhaseChecking
	PhasePlanning
	PhaseExecuting
	PhaseDone
	PhaseAborted
)

func (p Phase) String() string {
	switch p {
	case PhaseSampling:
		return "sampling"
	case PhaseChecking:
		return "checking"
	case PhasePlanning:
		return "planning"
	case PhaseExecuting:
		return "executing"
	case PhaseDone:
		return "done"
	case PhaseAborted:
		return "aborted"
	}
	return "unknown"
}

// Terminal Done и Aborted конечные
func (p Phase) Terminal() bool {
	return p == PhaseDone || p == PhaseAborted
}

// Event наблюдение, которое двигает автомат
type Event interface {
	event()
}

// Sampled поле считано с экрана
type Sampled struct{}

// Checked результат проверки завершения.
// Confirmed имеет смысл только если Signal или LogicalGoal.
type Checked struct {
	Signal      bool
	LogicalGoal bool
	Confirmed   bool
}

// Planned исход планирования
type Planned struct {
	Outcome Outcome
}

// Executed результат проигрывания плана
type Executed struct {
	OK bool
}

// Stopped внешний сигнал остановки
type Stopped struct{}

func (Sampled) event()  {}
func (Checked) event()  {}
func (Planned) event()  {}
func (Executed) event() {}
func (Stopped) event()  {}

// Transition следующее состояние автомата; событие, не относящееся к состоянию, его не меняет
func Transition(p Phase, ev Event) Phase {
	if p.Terminal() {
		return p
	}
	if _, ok := ev.(Stopped); ok {
		return PhaseAborted
	}

	switch p {
	case PhaseSampling:
		if _, ok := ev.(Sampled); ok {
			return PhaseChecking
		}
	case PhaseChecking:
		if e, ok := ev.(Checked); ok {
			if e.Signal || e.LogicalGoal {
				if e.Confirmed {
					return PhaseDone
				}
				return PhaseSampling
			}
			return PhasePlanning
		}
	case PhasePlanning:
		if e, ok := ev.(Planned); ok {
			if e.Outcome == Improved {
				return PhaseExecuting
			}
			return PhaseSampling
		}
	case PhaseExecuting:
		if e, ok := ev.(Executed); ok {
			if e.OK {
				return PhaseChecking
			}
			return PhaseAborted
		}
	}
	return p
}
