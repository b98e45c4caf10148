package bracing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoves_PriorityOrder(t *testing.T) {
	s := mustGrid(t, "R.RR/_R__/____/BBBB").State()
	cands := Moves(s, LockedCells(s))
	require.Len(t, cands, 3)

	assert.Equal(t, Move{From: Cell{1, 1}, To: Cell{0, 1}}, cands[0].Move)
	assert.Equal(t, PriorityMisplaced, cands[0].Priority)
	assert.Equal(t, PriorityPlaced, cands[1].Priority)
	assert.Equal(t, PriorityPlaced, cands[2].Priority)
}

func TestMoves_FillerBeforePlaced(t *testing.T) {
	// пустая клетка между правильной красной и заглушкой
	s := mustGrid(t, "R._R/____/____/BBB_").State()
	cands := Moves(s, LockedCells(s))
	require.NotEmpty(t, cands)

	var order []int
	for _, c := range cands {
		order = append(order, int(c.Priority))
	}
	assert.IsNonDecreasing(t, order)
	assert.Equal(t, PriorityFiller, cands[0].Priority)
	assert.Equal(t, PriorityPlaced, cands[len(cands)-1].Priority)
}

func TestMoves_VerticalBiasWithinPriority(t *testing.T) {
	// синяя фишка в строке 1 может уйти вверх или вниз
	s := mustGrid(t, "_.__/_B__/_.__/____").State()
	cands := Moves(s, LockedCells(s))

	var blue []Candidate
	for _, c := range cands {
		if c.Symbol == Blue {
			blue = append(blue, c)
		}
	}
	require.Len(t, blue, 2)
	assert.Equal(t, Cell{2, 1}, blue[0].Move.To, "moving down toward the bottom row goes first")
	assert.Equal(t, 1, VerticalBias(blue[0].Move, Blue))
	assert.Equal(t, -1, VerticalBias(blue[1].Move, Blue))
}

func TestMoves_LockedRowsNeverMove(t *testing.T) {
	s := mustGrid(t, "RRRR/_.R_/B.__/BBBB").State()
	locked := LockedCells(s)
	cands := Moves(s, locked)
	require.NotEmpty(t, cands)
	for _, c := range cands {
		assert.False(t, locked.Has(c.Move.From), c.Move.String())
		assert.NotEqual(t, TopRow, c.Move.From.Row)
		assert.NotEqual(t, BottomRow, c.Move.From.Row)
	}
}

func TestMoves_NoEmptyCell(t *testing.T) {
	s := mustGrid(t, "R_RR/____/___B/BBBB").State()
	assert.Empty(t, Moves(s, LockedCells(s)))
}

func TestMoves_ResultingState(t *testing.T) {
	s := mustGrid(t, "R.RR/_R__/____/BBBB").State()
	cands := Moves(s, LockedCells(s))
	require.NotEmpty(t, cands)
	assert.Equal(t, "RRRR/_.__/____/BBBB", cands[0].State.String())
	// исходный снимок не меняется
	assert.Equal(t, "R.RR/_R__/____/BBBB", s.String())
}

func TestMoveIsInverseOf(t *testing.T) {
	m := Move{From: Cell{1, 1}, To: Cell{0, 1}}
	assert.True(t, Move{From: Cell{0, 1}, To: Cell{1, 1}}.IsInverseOf(m))
	assert.False(t, m.IsInverseOf(m))
}
