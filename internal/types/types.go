package types

import pub "github.com/DoyleJ11/guesswho-backend/pkg/types"

const (
	MsgNewSeed    = "NewSeed"
	MsgRandomSeed = "RandomSeed"
	MsgClick      = "Click"
	MsgUndo       = "Undo"

	MsgStateSnapshot = "StateSnapshot"
	MsgError         = "Error"
)

type ClientMessage struct {
	Type string `json:"type"`
	Seed string `json:"seed,omitempty"`
	Item string `json:"item,omitempty"`
}

type ServerMessage struct {
	Type     string               `json:"type"` // "StateSnapshot" | "Error"
	Snapshot *pub.SessionSnapshot `json:"snapshot,omitempty"`
	Error    string               `json:"error,omitempty"`
}
