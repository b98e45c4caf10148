package bracing

import (
	"fmt"
	"sort"
)

// Move сдвиг фишки из From в пустую клетку To
type Move struct {
	From Cell
	To   Cell
}

func (m Move) String() string {
	return fmt.Sprintf("%v->%v", m.From, m.To)
}

// IsInverseOf отменяет ли m ход other
func (m Move) IsInverseOf(other Move) bool {
	return m.From == other.To && m.To == other.From
}

// Priority класс хода; меньше значит раньше в поиске
type Priority int

const (
	// PriorityMisplaced сдвиг цветной фишки, стоящей не на своём ряду
	PriorityMisplaced Priority = 0
	// PriorityFiller сдвиг заглушки
	PriorityFiller Priority = 1
	// PriorityPlaced сдвиг уже правильно стоящей фишки
	PriorityPlaced Priority = 2
)

// Candidate ход вместе с полученным состоянием
type Candidate struct {
	State    State
	Move     Move
	Symbol   Symbol
	Priority Priority
}

var neighbours = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// VerticalBias насколько ход приближает цветную фишку к её целевому ряду
func VerticalBias(m Move, sym Symbol) int {
	switch sym {
	case Red:
		return abs(m.From.Row-TopRow) - abs(m.To.Row-TopRow)
	case Blue:
		return abs(m.From.Row-BottomRow) - abs(m.To.Row-BottomRow)
	}
	return 0
}

func priorityOf(from Cell, sym Symbol) Priority {
	if sym == Blank {
		return PriorityFiller
	}
	if IsCorrectlyPlaced(from.Row, from.Col, sym) {
		return PriorityPlaced
	}
	return PriorityMisplaced
}

// Moves все сдвиги соседних фишек в пустые клетки, кроме фишек из locked.
// Порядок: по приоритету, затем по убыванию VerticalBias.
func Moves(s State, locked CellSet) []Candidate {
	var out []Candidate
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			empty := Cell{r, c}
			if s.At(empty) != Empty {
				continue
			}
			for _, d := range neighbours {
				from := empty.Translate(d[0], d[1])
				if !from.InBounds() || locked.Has(from) {
					continue
				}
				sym := s.At(from)
				if sym == Empty {
					continue
				}
				m := Move{From: from, To: empty}
				out = append(out, Candidate{
					State:    s.with(m),
					Move:     m,
					Symbol:   sym,
					Priority: priorityOf(from, sym),
				})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return VerticalBias(out[i].Move, out[i].Symbol) > VerticalBias(out[j].Move, out[j].Symbol)
	})
	return out
}
