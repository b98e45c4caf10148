package bracing

import (
	"time"

	"minibot/internal/metrics"
)

// DefaultMaxDepth ограничение длины плана
const DefaultMaxDepth = 12

type node struct {
	state State
	last  *Move
	path  []Move
}

// Plan поиск в ширину первой последовательности ходов, строго увеличивающей PlacedCount.
// Ходы, отменяющие предыдущий, и ходы, уменьшающие счёт, отбрасываются;
// состояние посещается повторно только с большим счётом.
// Пустой результат означает, что за maxDepth ходов улучшения нет.
func Plan(start State, maxDepth int) []Move {
	if GoalAchieved(start) {
		return nil
	}

	startScore := PlacedCount(start)
	locked := LockedCells(start)

	queue := []node{{state: start}}
	seen := map[State]int{start: startScore}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		score := PlacedCount(n.state)
		if score > startScore {
			return n.path
		}
		if len(n.path) >= maxDepth {
			continue
		}

		for _, cand := range Moves(n.state, locked) {
			if n.last != nil && cand.Move.IsInverseOf(*n.last) {
				continue
			}

			nscore := PlacedCount(cand.State)
			if nscore < score {
				continue
			}
			if prev, ok := seen[cand.State]; ok && prev >= nscore {
				continue
			}
			seen[cand.State] = nscore

			path := make([]Move, len(n.path), len(n.path)+1)
			copy(path, n.path)
			mv := cand.Move
			queue = append(queue, node{state: cand.State, last: &mv, path: append(path, mv)})
		}
	}
	return nil
}

// Outcome результат шага планирования
type Outcome int

const (
	// Improved найден план, увеличивающий счёт
	Improved Outcome = iota
	// Exhausted улучшения в пределах глубины нет
	Exhausted
	// Stale текущее представление о поле непригодно для планирования, нужно перечитать экран
	Stale
)

func (o Outcome) String() string {
	switch o {
	case Improved:
		return "improved"
	case Exhausted:
		return "exhausted"
	case Stale:
		return "stale"
	}
	return "unknown"
}

// PlanResult исход планирования и сам план
type PlanResult struct {
	Outcome Outcome
	Moves   []Move
}

// PlanStep планирование с типизированным исходом
func PlanStep(s State, maxDepth int) PlanResult {
	started := time.Now()
	result := planStep(s, maxDepth)
	metrics.PlanDuration.Observe(time.Since(started).Seconds())
	metrics.Plans.WithLabelValues(result.Outcome.String()).Inc()
	return result
}

func planStep(s State, maxDepth int) PlanResult {
	if GoalAchieved(s) || !HasEmpty(s) {
		return PlanResult{Outcome: Stale}
	}
	moves := Plan(s, maxDepth)
	if len(moves) == 0 {
		return PlanResult{Outcome: Exhausted}
	}
	return PlanResult{Outcome: Improved, Moves: moves}
}
