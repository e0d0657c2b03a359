package engine

import (
	"errors"
	"fmt"
	"slices"
	"testing"
)

func fiveItems() []string {
	return []string{"a", "b", "c", "d", "e"}
}

func bigCatalog(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("mon-%03d", i)
	}
	return out
}

// playing returns a session that already has a champion.
func playing(t *testing.T) *Session {
	t.Helper()
	s := New(42, fiveItems(), 3)
	if err := s.ChooseChampion("a"); err != nil {
		t.Fatalf("choose champion: %v", err)
	}
	return s
}

func TestInitialize_GoldenSelection(t *testing.T) {
	for range 3 {
		s := New(42, fiveItems(), 3)
		got := s.Selection()
		want := []string{"a", "e", "c"}
		if !slices.Equal(got, want) {
			t.Fatalf("selection: got %v, want %v", got, want)
		}
	}
}

func TestInitialize_SelectionBounds(t *testing.T) {
	cases := []struct {
		name    string
		catalog []string
		size    int
		wantLen int
	}{
		{name: "catalog larger than grid", catalog: bigCatalog(1000), size: 0, wantLen: DefaultSelectionSize},
		{name: "catalog shorter than grid", catalog: bigCatalog(12), size: 30, wantLen: 12},
		{name: "empty catalog", catalog: nil, size: 30, wantLen: 0},
		{name: "custom size", catalog: bigCatalog(100), size: 5, wantLen: 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := New(123, tc.catalog, tc.size)
			sel := s.Selection()
			if len(sel) != tc.wantLen {
				t.Fatalf("len: got %d, want %d", len(sel), tc.wantLen)
			}
			seen := map[string]bool{}
			for _, item := range sel {
				if seen[item] {
					t.Fatalf("duplicate %q in selection", item)
				}
				if !slices.Contains(tc.catalog, item) {
					t.Fatalf("%q not in catalog", item)
				}
				seen[item] = true
			}
		})
	}
}

func TestInitialize_ResetsEverything(t *testing.T) {
	s := playing(t)
	_ = s.ToggleDefeated("e")
	_ = s.ToggleDefeated("c")

	s.Initialize(42, fiveItems())

	if s.Mode() != ModeSelecting {
		t.Fatalf("mode: got %v, want selecting", s.Mode())
	}
	if _, ok := s.Champion(); ok {
		t.Fatalf("expected champion cleared")
	}
	if s.UndoDepth() != 0 {
		t.Fatalf("undo depth: got %d, want 0", s.UndoDepth())
	}
	for _, card := range s.View().Cards {
		if card.Defeated {
			t.Fatalf("card %q still defeated after reset", card.Item)
		}
	}
}

func TestChooseChampion(t *testing.T) {
	s := New(42, fiveItems(), 3)

	if err := s.ChooseChampion("b"); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("item outside selection: want ErrUnknownItem, got %v", err)
	}
	if s.Mode() != ModeSelecting {
		t.Fatalf("rejected champion must not change mode")
	}

	if err := s.ChooseChampion("e"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if champ, ok := s.Champion(); !ok || champ != "e" {
		t.Fatalf("champion: got %q (%v), want e", champ, ok)
	}
	if s.Mode() != ModePlaying {
		t.Fatalf("mode: got %v, want playing", s.Mode())
	}

	if err := s.ChooseChampion("c"); !errors.Is(err, ErrChampionAlreadyChosen) {
		t.Fatalf("second champion: want ErrChampionAlreadyChosen, got %v", err)
	}
	if champ, _ := s.Champion(); champ != "e" {
		t.Fatalf("champion changed to %q", champ)
	}
	if s.Mode() != ModePlaying {
		t.Fatalf("mode left playing")
	}
}

func TestToggleDefeated_RejectedWhileSelecting(t *testing.T) {
	s := New(42, fiveItems(), 3)
	if err := s.ToggleDefeated("a"); !errors.Is(err, ErrWrongMode) {
		t.Fatalf("want ErrWrongMode, got %v", err)
	}
	if s.Defeated("a") || s.UndoDepth() != 0 {
		t.Fatalf("rejected toggle mutated state")
	}
}

func TestToggleDefeated_UnknownItem(t *testing.T) {
	s := playing(t)
	if err := s.ToggleDefeated("zzz"); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("want ErrUnknownItem, got %v", err)
	}
	if s.UndoDepth() != 0 {
		t.Fatalf("rejected toggle was logged")
	}
}

func TestToggleThenUndo_RestoresState(t *testing.T) {
	for _, item := range []string{"a", "e", "c"} {
		t.Run(item, func(t *testing.T) {
			s := playing(t)
			_ = s.ToggleDefeated("c") // some prior history
			before := s.Defeated(item)
			depth := s.UndoDepth()

			if err := s.ToggleDefeated(item); err != nil {
				t.Fatalf("toggle: %v", err)
			}
			if s.Defeated(item) == before {
				t.Fatalf("toggle did not flip %q", item)
			}
			if !s.Undo() {
				t.Fatalf("undo reported nothing to undo")
			}
			if s.Defeated(item) != before || s.UndoDepth() != depth {
				t.Fatalf("undo did not restore %q", item)
			}
		})
	}
}

func TestUndo_IsLIFO(t *testing.T) {
	s := playing(t)
	_ = s.ToggleDefeated("e")
	_ = s.ToggleDefeated("c")

	s.Undo()
	if !s.Defeated("e") || s.Defeated("c") {
		t.Fatalf("first undo should revert c only: e=%v c=%v", s.Defeated("e"), s.Defeated("c"))
	}
	s.Undo()
	if s.Defeated("e") || s.Defeated("c") {
		t.Fatalf("second undo should revert e")
	}
}

func TestUndo_SameItemToggledRepeatedly(t *testing.T) {
	s := playing(t)
	_ = s.ToggleDefeated("e") // defeated
	_ = s.ToggleDefeated("e") // manual un-defeat, still logged
	_ = s.ToggleDefeated("e") // defeated again

	if s.UndoDepth() != 3 {
		t.Fatalf("undo depth: got %d, want 3", s.UndoDepth())
	}
	want := []bool{false, true, false}
	for i, w := range want {
		s.Undo()
		if s.Defeated("e") != w {
			t.Fatalf("after undo %d: defeated=%v, want %v", i+1, s.Defeated("e"), w)
		}
	}
}

func TestUndo_EmptyLogIsNoOp(t *testing.T) {
	s := playing(t)
	before := s.View()
	if s.Undo() {
		t.Fatalf("undo on empty log reported a change")
	}
	after := s.View()
	if before.Mode != after.Mode || before.UndoDepth != after.UndoDepth || !slices.Equal(before.Cards, after.Cards) {
		t.Fatalf("undo on empty log changed state")
	}
}

func TestClick_DispatchesOnMode(t *testing.T) {
	s := New(42, fiveItems(), 3)

	if err := s.Click("c"); err != nil {
		t.Fatalf("first click: %v", err)
	}
	if champ, _ := s.Champion(); champ != "c" || s.Defeated("c") {
		t.Fatalf("first click should choose champion, not defeat")
	}

	if err := s.Click("a"); err != nil {
		t.Fatalf("second click: %v", err)
	}
	if !s.Defeated("a") || s.UndoDepth() != 1 {
		t.Fatalf("second click should defeat a")
	}
}

func TestApply_Events(t *testing.T) {
	s := New(42, fiveItems(), 3)

	cases := []struct {
		name    string
		cmd     Command
		want    EventType
		wantErr error
	}{
		{name: "click picks champion", cmd: Command{Type: CmdClick, Item: "a"}, want: EvtChampionChosen},
		{name: "second champion rejected", cmd: Command{Type: CmdChooseChampion, Item: "e"}, wantErr: ErrChampionAlreadyChosen},
		{name: "click toggles", cmd: Command{Type: CmdClick, Item: "e"}, want: EvtCardToggled},
		{name: "undo", cmd: Command{Type: CmdUndo}, want: EvtToggleUndone},
		{name: "unknown command", cmd: Command{Type: "Explode"}, wantErr: ErrUnsupportedCommand},
		{name: "reinitialize", cmd: Command{Type: CmdInitialize, Seed: 7}, want: EvtSessionInitialized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			events, err := s.Apply(tc.cmd)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want %v, got %v", tc.wantErr, err)
				}
				if events != nil {
					t.Fatalf("rejected command emitted %v", events)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err %v", err)
			}
			if !ContainsEvent(events, tc.want) {
				t.Fatalf("expected %s in %v", tc.want, events)
			}
		})
	}

	if s.Seed() != 7 || s.Mode() != ModeSelecting {
		t.Fatalf("reinitialize: seed=%d mode=%v", s.Seed(), s.Mode())
	}
}

func TestApply_UndoOnEmptyLogEmitsNothing(t *testing.T) {
	s := New(42, fiveItems(), 3)
	events, err := s.Apply(Command{Type: CmdUndo})
	if err != nil || events != nil {
		t.Fatalf("want no events and no error, got %v, %v", events, err)
	}
}

func TestReplay_ReproducesSession(t *testing.T) {
	catalog := bigCatalog(200)
	s := New(999, catalog, 0)
	sel := s.Selection()

	cmds := []Command{
		{Type: CmdClick, Item: sel[4]},
		{Type: CmdClick, Item: sel[0]},
		{Type: CmdClick, Item: sel[1]},
		{Type: CmdClick, Item: sel[0]},
		{Type: CmdUndo},
		{Type: CmdClick, Item: "not-there"},
		{Type: CmdClick, Item: sel[9]},
	}

	history := []Event{{Type: EvtSessionInitialized, Seed: 999}}
	for _, cmd := range cmds {
		events, _ := s.Apply(cmd)
		history = append(history, events...)
	}

	r, err := Replay(catalog, 0, history)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	got, want := r.View(), s.View()
	if got.Seed != want.Seed || got.Mode != want.Mode || got.Champion != want.Champion ||
		got.UndoDepth != want.UndoDepth || !slices.Equal(got.Cards, want.Cards) {
		t.Fatalf("replayed view differs:\n got %+v\nwant %+v", got, want)
	}
}

func TestReplay_RequiresInitialization(t *testing.T) {
	if _, err := Replay(fiveItems(), 3, nil); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("want ErrNotInitialized, got %v", err)
	}
	_, err := Replay(fiveItems(), 3, []Event{{Type: EvtChampionChosen, Item: "a"}})
	if !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("want ErrNotInitialized, got %v", err)
	}
}

func TestIsNoOp(t *testing.T) {
	if !IsNoOp(ErrWrongMode) || !IsNoOp(ErrUnknownItem) || !IsNoOp(ErrChampionAlreadyChosen) {
		t.Fatalf("expected rejections to be no-ops")
	}
	if IsNoOp(ErrUnsupportedCommand) || IsNoOp(nil) {
		t.Fatalf("unexpected no-op classification")
	}
}

func TestView_IsACopy(t *testing.T) {
	s := playing(t)
	v := s.View()
	v.Cards[0].Defeated = true
	if s.Defeated(v.Cards[0].Item) {
		t.Fatalf("mutating view leaked into session")
	}
}
