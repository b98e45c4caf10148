package bracing

import (
	"fmt"
	"strings"
)

// Size сторона поля hull bracing
const Size = 4

const (
	// TopRow ряд, который должен стать полностью красным
	TopRow = 0
	// BottomRow ряд, который должен стать полностью синим
	BottomRow = Size - 1
)

// Symbol содержимое клетки поля
type Symbol uint8

const (
	// Empty свободная клетка, в которую можно сдвинуть фишку
	Empty Symbol = iota
	// Blank инертная заглушка (двигается, но не влияет на счёт)
	Blank
	Red
	Blue
)

func (s Symbol) String() string {
	switch s {
	case Empty:
		return "empty"
	case Blank:
		return "blank"
	case Red:
		return "red"
	case Blue:
		return "blue"
	}
	return fmt.Sprintf("symbol(%d)", uint8(s))
}

// Letter однобуквенное обозначение для текстового вида поля
func (s Symbol) Letter() byte {
	switch s {
	case Blank:
		return '_'
	case Red:
		return 'R'
	case Blue:
		return 'B'
	}
	return '.'
}

func symbolFromLetter(ch rune) (Symbol, bool) {
	switch ch {
	case '.', 'e', 'E':
		return Empty, true
	case '_', 'x', 'X':
		return Blank, true
	case 'r', 'R':
		return Red, true
	case 'b', 'B':
		return Blue, true
	}
	return Empty, false
}

// Cell координата клетки поля
type Cell struct {
	Row int
	Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(r%d, c%d)", c.Row, c.Col)
}

func (c Cell) Translate(dr int, dc int) Cell {
	return Cell{c.Row + dr, c.Col + dc}
}

func (c Cell) InBounds() bool {
	return c.Row >= 0 && c.Row < Size && c.Col >= 0 && c.Col < Size
}

// Grid изменяемое поле 4x4, строки сверху вниз
type Grid [Size][Size]Symbol

func (g Grid) At(c Cell) Symbol {
	return g[c.Row][c.Col]
}

func (g *Grid) Set(c Cell, s Symbol) {
	g[c.Row][c.Col] = s
}

// Apply сдвигает фишку по ходу: To получает символ From, From становится пустой
func (g *Grid) Apply(m Move) {
	g.Set(m.To, g.At(m.From))
	g.Set(m.From, Empty)
}

// State неизменяемый снимок поля
func (g Grid) State() State {
	return State{cells: g}
}

func (g Grid) String() string {
	return g.State().String()
}

// State неизменяемый снимок поля; сравним по значению и годится как ключ map
type State struct {
	cells [Size][Size]Symbol
}

func (s State) At(c Cell) Symbol {
	return s.cells[c.Row][c.Col]
}

// Grid изменяемая копия снимка
func (s State) Grid() Grid {
	return Grid(s.cells)
}

// with новый снимок с применённым ходом
func (s State) with(m Move) State {
	g := s.Grid()
	g.Apply(m)
	return g.State()
}

func (s State) String() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		for c := 0; c < Size; c++ {
			sb.WriteByte(s.cells[r][c].Letter())
		}
	}
	return sb.String()
}

// ParseGrid разбирает поле вида "R_RR/____/__B_/BBB."
// (строки через '/' или перевод строки, пробелы игнорируются)
func ParseGrid(text string) (Grid, error) {
	var g Grid
	rows := strings.FieldsFunc(text, func(r rune) bool { return r == '/' || r == '\n' })
	var cleaned []string
	for _, row := range rows {
		row = strings.Join(strings.Fields(row), "")
		if row != "" {
			cleaned = append(cleaned, row)
		}
	}
	if len(cleaned) != Size {
		return g, fmt.Errorf("ожидается %d строк поля, получено %d", Size, len(cleaned))
	}
	for r, row := range cleaned {
		letters := []rune(row)
		if len(letters) != Size {
			return g, fmt.Errorf("строка %d: ожидается %d клеток, получено %d", r, Size, len(letters))
		}
		for c, ch := range letters {
			sym, ok := symbolFromLetter(ch)
			if !ok {
				return g, fmt.Errorf("строка %d, клетка %d: неизвестный символ %q", r, c, ch)
			}
			g[r][c] = sym
		}
	}
	return g, nil
}

// CellSet множество клеток поля
type CellSet [Size][Size]bool

func (cs *CellSet) Add(c Cell) {
	cs[c.Row][c.Col] = true
}

func (cs *CellSet) Has(c Cell) bool {
	return cs[c.Row][c.Col]
}

func (cs *CellSet) Len() int {
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if cs[r][c] {
				n++
			}
		}
	}
	return n
}

func rowAll(s State, row int, sym Symbol) bool {
	for c := 0; c < Size; c++ {
		if s.cells[row][c] != sym {
			return false
		}
	}
	return true
}

func rowCount(s State, row int, sym Symbol) int {
	n := 0
	for c := 0; c < Size; c++ {
		if s.cells[row][c] == sym {
			n++
		}
	}
	return n
}

// LockedCells клетки завершённых рядов, которые нельзя трогать
func LockedCells(s State) CellSet {
	var locked CellSet
	if rowAll(s, TopRow, Red) {
		for c := 0; c < Size; c++ {
			locked.Add(Cell{TopRow, c})
		}
	}
	if rowAll(s, BottomRow, Blue) {
		for c := 0; c < Size; c++ {
			locked.Add(Cell{BottomRow, c})
		}
	}
	return locked
}

// IsCorrectlyPlaced красная фишка в верхнем ряду или синяя в нижнем
func IsCorrectlyPlaced(row, col int, sym Symbol) bool {
	return (sym == Red && row == TopRow) || (sym == Blue && row == BottomRow)
}

// PlacedCount число красных в верхнем ряду плюс синих в нижнем
func PlacedCount(s State) int {
	return rowCount(s, TopRow, Red) + rowCount(s, BottomRow, Blue)
}

// GoalAchieved верхний ряд полностью красный и нижний полностью синий
func GoalAchieved(s State) bool {
	return rowAll(s, TopRow, Red) && rowAll(s, BottomRow, Blue)
}

// HasEmpty есть ли на поле свободная клетка
func HasEmpty(s State) bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if s.cells[r][c] == Empty {
				return true
			}
		}
	}
	return false
}
