package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"minibot/internal/types"

	"github.com/google/uuid"
)

// Статусы бота в таблице status
const (
	StatusIdle    = "idle"
	StatusStopped = "stopped"
)

// RunningStatus статус во время мини-игры
func RunningStatus(m types.Minigame) string {
	return "running:" + m.String()
}

// Status последняя запись таблицы status
type Status struct {
	ID            int
	CurrentStatus string
	UpdatedAt     time.Time
}

// ActionRecord запись таблицы actions
type ActionRecord struct {
	ID        int
	Action    string
	Executed  bool
	CreatedAt time.Time
}

// ActionKind вид удалённой команды
type ActionKind int

const (
	ActionStop ActionKind = iota
	ActionStart
)

// Action разобранная удалённая команда
type Action struct {
	Kind     ActionKind
	Minigame types.Minigame
}

func (a Action) String() string {
	if a.Kind == ActionStart {
		return "start:" + a.Minigame.String()
	}
	return "stop"
}

var ErrUnknownAction = errors.New("неизвестное действие")

// ParseAction разбирает "stop" и "start:<мини-игра>"
func ParseAction(text string) (Action, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "stop" {
		return Action{Kind: ActionStop}, nil
	}
	if name, ok := strings.CutPrefix(text, "start:"); ok {
		m, err := types.ParseMinigame(name)
		if err != nil {
			return Action{}, fmt.Errorf("%q: %w", text, err)
		}
		return Action{Kind: ActionStart, Minigame: m}, nil
	}
	return Action{}, fmt.Errorf("%q: %w", text, ErrUnknownAction)
}

// RunRecord одна запись журнала мини-игр
type RunRecord struct {
	SessionID uuid.UUID
	Minigame  types.Minigame
	Result    string
	StartedAt time.Time
	Duration  time.Duration
}
