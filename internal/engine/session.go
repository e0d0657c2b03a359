package engine

import (
	"slices"

	"github.com/DoyleJ11/guesswho-backend/internal/seed"
	"github.com/DoyleJ11/guesswho-backend/internal/shuffle"
)

// DefaultSelectionSize is how many cards a grid holds.
const DefaultSelectionSize = 30

const noChampion = -1

// Session is one game: a seeded selection from the catalog, a defeated flag
// per card, the chosen champion and the undo log.
//
// A Session has no locking. It must be driven by a single goroutine (the lobby
// loop owns one per game).
type Session struct {
	seed    seed.Seed
	catalog []string
	size    int

	selection []string
	defeated  []bool
	index     map[string]int

	mode     Mode
	champion int
	undo     []int // selection indices, oldest first
}

// Card is the public view of one grid cell.
type Card struct {
	Item     string
	Defeated bool
}

// View is a copy of the session state, safe to hand to other goroutines.
type View struct {
	Seed        seed.Seed
	Mode        Mode
	Champion    string
	HasChampion bool
	Cards       []Card
	UndoDepth   int
}

// New builds a session sized to hold size cards (DefaultSelectionSize when
// size <= 0) and initializes it with seed.
func New(sd seed.Seed, catalog []string, size int) *Session {
	if size <= 0 {
		size = DefaultSelectionSize
	}
	s := &Session{size: size}
	s.Initialize(sd, catalog)
	return s
}

// Initialize replaces every piece of owned state: a fresh selection for seed,
// no defeated cards, an empty undo log and no champion.
func (s *Session) Initialize(sd seed.Seed, catalog []string) {
	if s.size <= 0 {
		s.size = DefaultSelectionSize
	}
	selection := shuffle.Take(uint32(sd), catalog, s.size)

	index := make(map[string]int, len(selection))
	for i, item := range selection {
		if _, dup := index[item]; !dup {
			index[item] = i
		}
	}

	*s = Session{
		seed:      sd,
		catalog:   catalog,
		size:      s.size,
		selection: selection,
		defeated:  make([]bool, len(selection)),
		index:     index,
		mode:      ModeSelecting,
		champion:  noChampion,
	}
}

// ChooseChampion locks in the player's champion and starts play.
func (s *Session) ChooseChampion(item string) error {
	if s.mode != ModeSelecting {
		return ErrChampionAlreadyChosen
	}
	idx, ok := s.index[item]
	if !ok {
		return ErrUnknownItem
	}
	s.champion = idx
	s.mode = ModePlaying
	return nil
}

// ToggleDefeated flips a card and records the flip in the undo log. Flipping
// a defeated card back is logged the same way.
func (s *Session) ToggleDefeated(item string) error {
	if s.mode != ModePlaying {
		return ErrWrongMode
	}
	idx, ok := s.index[item]
	if !ok {
		return ErrUnknownItem
	}
	s.defeated[idx] = !s.defeated[idx]
	s.undo = append(s.undo, idx)
	return nil
}

// Click is the single grid interaction: it picks the champion while
// selecting and toggles a card while playing.
func (s *Session) Click(item string) error {
	if s.mode == ModeSelecting {
		return s.ChooseChampion(item)
	}
	return s.ToggleDefeated(item)
}

// Undo reverts the most recent toggle. It reports false when there was
// nothing to undo.
func (s *Session) Undo() bool {
	_, ok := s.undoLast()
	return ok
}

func (s *Session) undoLast() (int, bool) {
	if len(s.undo) == 0 {
		return 0, false
	}
	last := len(s.undo) - 1
	idx := s.undo[last]
	s.undo = s.undo[:last]
	s.defeated[idx] = !s.defeated[idx]
	return idx, true
}

func (s *Session) Seed() seed.Seed { return s.seed }
func (s *Session) Mode() Mode      { return s.mode }
func (s *Session) Size() int       { return s.size }
func (s *Session) UndoDepth() int  { return len(s.undo) }

func (s *Session) Catalog() []string { return s.catalog }

func (s *Session) Champion() (string, bool) {
	if s.champion == noChampion {
		return "", false
	}
	return s.selection[s.champion], true
}

func (s *Session) Selection() []string {
	return slices.Clone(s.selection)
}

// Defeated reports the flag for item; items outside the selection are never
// defeated.
func (s *Session) Defeated(item string) bool {
	idx, ok := s.index[item]
	return ok && s.defeated[idx]
}

func (s *Session) View() View {
	cards := make([]Card, len(s.selection))
	for i, item := range s.selection {
		cards[i] = Card{Item: item, Defeated: s.defeated[i]}
	}
	champion, ok := s.Champion()
	return View{
		Seed:        s.seed,
		Mode:        s.mode,
		Champion:    champion,
		HasChampion: ok,
		Cards:       cards,
		UndoDepth:   len(s.undo),
	}
}
