package engine

import (
	"errors"

	"github.com/DoyleJ11/guesswho-backend/internal/seed"
)

var ErrWrongMode = errors.New("action not allowed in current mode")
var ErrChampionAlreadyChosen = errors.New("champion already chosen")
var ErrUnknownItem = errors.New("item not in selection")
var ErrUnsupportedCommand = errors.New("unsupported command")
var ErrNotInitialized = errors.New("history does not start with an initialization")

type Mode string

const (
	ModeSelecting Mode = "selecting"
	ModePlaying   Mode = "playing"
)

type CommandType string

const (
	CmdInitialize     CommandType = "Initialize"
	CmdClick          CommandType = "Click"
	CmdChooseChampion CommandType = "ChooseChampion"
	CmdToggleDefeated CommandType = "ToggleDefeated"
	CmdUndo           CommandType = "Undo"
)

/*
	CmdInitialize     -> EvtSessionInitialized
	CmdChooseChampion -> EvtChampionChosen (selecting only)
	CmdToggleDefeated -> EvtCardToggled (playing only)
	CmdClick          -> ChooseChampion or ToggleDefeated, picked from the current mode
	CmdUndo           -> EvtToggleUndone, or nothing when the log is empty
*/

type Command struct {
	Type CommandType
	Seed seed.Seed
	Item string
}

type EventType string

const (
	EvtSessionInitialized EventType = "SessionInitialized"
	EvtChampionChosen     EventType = "ChampionChosen"
	EvtCardToggled        EventType = "CardToggled"
	EvtToggleUndone       EventType = "ToggleUndone"
)

type Event struct {
	Type     EventType
	Seed     seed.Seed
	Item     string
	Defeated bool
}

// Apply runs one command against the session. A command that is illegal for
// the current state returns an error and leaves the session exactly as it was.
func (s *Session) Apply(cmd Command) ([]Event, error) {
	switch cmd.Type {
	case CmdInitialize:
		s.Initialize(cmd.Seed, s.catalog)
		return []Event{{Type: EvtSessionInitialized, Seed: cmd.Seed}}, nil

	case CmdClick:
		if s.mode == ModeSelecting {
			cmd.Type = CmdChooseChampion
		} else {
			cmd.Type = CmdToggleDefeated
		}
		return s.Apply(cmd)

	case CmdChooseChampion:
		if err := s.ChooseChampion(cmd.Item); err != nil {
			return nil, err
		}
		return []Event{{Type: EvtChampionChosen, Item: cmd.Item}}, nil

	case CmdToggleDefeated:
		if err := s.ToggleDefeated(cmd.Item); err != nil {
			return nil, err
		}
		return []Event{{Type: EvtCardToggled, Item: cmd.Item, Defeated: s.Defeated(cmd.Item)}}, nil

	case CmdUndo:
		idx, ok := s.undoLast()
		if !ok {
			// Nothing to undo is not an error.
			return nil, nil
		}
		return []Event{{Type: EvtToggleUndone, Item: s.selection[idx], Defeated: s.defeated[idx]}}, nil

	default:
		return nil, ErrUnsupportedCommand
	}
}

// Replay rebuilds a session from its event history. The first event must be
// an initialization.
func Replay(catalog []string, size int, events []Event) (*Session, error) {
	var s *Session
	for _, event := range events {
		if s == nil {
			if event.Type != EvtSessionInitialized {
				return nil, ErrNotInitialized
			}
			s = New(event.Seed, catalog, size)
			continue
		}

		var err error
		switch event.Type {
		case EvtSessionInitialized:
			s.Initialize(event.Seed, catalog)
		case EvtChampionChosen:
			err = s.ChooseChampion(event.Item)
		case EvtCardToggled:
			err = s.ToggleDefeated(event.Item)
		case EvtToggleUndone:
			s.Undo()
		}
		if err != nil {
			return nil, err
		}
	}

	if s == nil {
		return nil, ErrNotInitialized
	}
	return s, nil
}
