package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/guesswho-backend/internal/engine"
)

func TestNewSessionSnapshot(t *testing.T) {
	s := engine.New(42, []string{"mr-mime", "b", "c", "d", "e"}, 3) // grid: mr-mime e c
	require.NoError(t, s.ChooseChampion("mr-mime"))
	require.NoError(t, s.ToggleDefeated("c"))

	snap := NewSessionSnapshot(7, s.View())
	assert.Equal(t, 7, snap.Version)
	assert.Equal(t, "42", snap.Seed)
	assert.Equal(t, "playing", snap.Mode)
	require.NotNil(t, snap.Champion)
	assert.Equal(t, Champion{Item: "mr-mime", Label: "MR MIME"}, *snap.Champion)
	assert.Equal(t, []Card{
		{Item: "mr-mime", Label: "mr mime"},
		{Item: "e", Label: "e"},
		{Item: "c", Label: "c", Defeated: true},
	}, snap.Cards)
	assert.Equal(t, 1, snap.UndoDepth)
}

func TestSessionSnapshot_JSONOmitsMissingChampion(t *testing.T) {
	s := engine.New(4294967295, []string{"a"}, 3)
	raw, err := json.Marshal(NewSessionSnapshot(0, s.View()))
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":0,"seed":"4294967295","mode":"selecting","cards":[{"item":"a","label":"a","defeated":false}],"undo_depth":0}`, string(raw))
}
