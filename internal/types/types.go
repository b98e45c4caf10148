package types

import "fmt"

// Minigame мини-игра, которую бот умеет выбирать
type Minigame int32

const (
	MinigameNone Minigame = iota
	Scrubbing
	Sawing
	Bracing
	Hammering
	Patching
	AllSequence
)

// Minigames список одиночных мини-игр в порядке кнопок на экране
var Minigames = []Minigame{Scrubbing, Sawing, Bracing, Hammering, Patching}

func (m Minigame) String() string {
	switch m {
	case MinigameNone:
		return "none"
	case Scrubbing:
		return "scrubbing"
	case Sawing:
		return "sawing"
	case Bracing:
		return "bracing"
	case Hammering:
		return "hammering"
	case Patching:
		return "patching"
	case AllSequence:
		return "all_sequence"
	}
	return fmt.Sprintf("minigame(%d)", int32(m))
}

// ParseMinigame разбирает имя мини-игры из конфига или команды
func ParseMinigame(name string) (Minigame, error) {
	for _, m := range append(Minigames, AllSequence) {
		if m.String() == name {
			return m, nil
		}
	}
	return MinigameNone, fmt.Errorf("неизвестная мини-игра: %q", name)
}

// BotState состояние внешнего конечного автомата бота
type BotState int32

const (
	StateMenu BotState = iota
	StatePatching
	StateBracing
	StateSawing
	StateScrubbing
	StateHammering
	StateAllSequence
	StateComplete
)

func (s BotState) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePatching:
		return "patching"
	case StateBracing:
		return "bracing"
	case StateSawing:
		return "sawing"
	case StateScrubbing:
		return "scrubbing"
	case StateHammering:
		return "hammering"
	case StateAllSequence:
		return "all_sequence"
	case StateComplete:
		return "complete"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

// StateFor возвращает состояние автомата, в котором решается мини-игра
func StateFor(m Minigame) BotState {
	switch m {
	case Patching:
		return StatePatching
	case Bracing:
		return StateBracing
	case Sawing:
		return StateSawing
	case Scrubbing:
		return StateScrubbing
	case Hammering:
		return StateHammering
	case AllSequence:
		return StateAllSequence
	}
	return StateMenu
}
