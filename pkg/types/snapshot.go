package types

import (
	"github.com/DoyleJ11/guesswho-backend/internal/catalog"
	"github.com/DoyleJ11/guesswho-backend/internal/engine"
)

// SessionSnapshot is the JSON a renderer draws the grid from.
type SessionSnapshot struct {
	Version   int       `json:"version"`
	Seed      string    `json:"seed"`
	Mode      string    `json:"mode"`
	Champion  *Champion `json:"champion,omitempty"`
	Cards     []Card    `json:"cards"`
	UndoDepth int       `json:"undo_depth"`
}

type Champion struct {
	Item  string `json:"item"`
	Label string `json:"label"`
}

type Card struct {
	Item     string `json:"item"`
	Label    string `json:"label"`
	Defeated bool   `json:"defeated"`
}

func NewSessionSnapshot(version int, v engine.View) SessionSnapshot {
	cards := make([]Card, len(v.Cards))
	for i, c := range v.Cards {
		cards[i] = Card{Item: c.Item, Label: catalog.Label(c.Item), Defeated: c.Defeated}
	}

	snap := SessionSnapshot{
		Version:   version,
		Seed:      v.Seed.String(),
		Mode:      string(v.Mode),
		Cards:     cards,
		UndoDepth: v.UndoDepth,
	}
	if v.HasChampion {
		snap.Champion = &Champion{Item: v.Champion, Label: catalog.ChampionLabel(v.Champion)}
	}
	return snap
}
