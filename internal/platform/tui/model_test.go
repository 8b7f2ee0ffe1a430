package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/logging"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  25,
		TickRate: 60,
		Seed:     7,
	}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "rounds.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// send feeds one message to the model and returns the updated model.
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func tick(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	return send(t, m, TickMsg{Owner: m.id})
}

func startModel(t *testing.T, g *breakout.Game, opts Options) Model {
	t.Helper()
	m := NewModel(g, testConfig(), opts)
	if m.Init() == nil {
		t.Fatal("Init should schedule the first tick")
	}
	m, _ = tick(t, m)
	return m
}

func TestModelLayout(t *testing.T) {
	m := NewModel(breakout.New(), testConfig(), Options{})
	if m.screen.Width() != 80 || m.screen.Height() != 24 {
		t.Errorf("screen = %dx%d, expected 80x24 above a one-line footer", m.screen.Width(), m.screen.Height())
	}

	m.Init()
	view := m.View()
	if got := strings.Count(view, "\n") + 1; got != 25 {
		t.Errorf("view has %d lines, expected 25", got)
	}
	if !strings.Contains(view, "pause") {
		t.Error("footer should show the key help")
	}
}

func TestModelTicks(t *testing.T) {
	g := breakout.New()
	m := startModel(t, g, Options{})
	if m.State().Ticks != 1 {
		t.Fatalf("Ticks = %d, expected 1", m.State().Ticks)
	}

	m, cmd := tick(t, m)
	if cmd == nil {
		t.Error("running round should schedule the next tick")
	}
	if m.State().Ticks != 2 {
		t.Errorf("Ticks = %d, expected 2", m.State().Ticks)
	}

	// A tick from another model is ignored
	m, cmd = send(t, m, TickMsg{Owner: m.id + 100})
	if cmd != nil || m.State().Ticks != 2 {
		t.Error("foreign tick should be dropped")
	}
}

func TestModelPauseStopsTicking(t *testing.T) {
	m := startModel(t, breakout.New(), Options{})

	// A tick is already pending, so the key only queues input
	m, cmd := send(t, m, runeKey('p'))
	if cmd != nil {
		t.Error("pause should not start a second tick chain")
	}

	m, cmd = tick(t, m)
	if !m.State().Paused {
		t.Fatal("round should be paused")
	}
	if cmd != nil {
		t.Error("paused round should not schedule ticks")
	}

	m, cmd = send(t, m, runeKey('p'))
	if cmd == nil {
		t.Fatal("input while idle should wake the ticker")
	}
	m, cmd = tick(t, m)
	if m.State().Paused || cmd == nil {
		t.Error("second pause should resume ticking")
	}
}

func TestModelRecordsRoundEnd(t *testing.T) {
	store := openStore(t)
	g := breakout.New()
	m := startModel(t, g, Options{Store: store, Logger: logging.Discard()})

	g.Session().Ball().Launch(0.5, 0.001, 0, -0.5)
	m, cmd := tick(t, m)
	if !m.State().GameOver || m.State().Won {
		t.Fatalf("state = %+v, expected a loss", m.State())
	}
	if cmd != nil {
		t.Error("finished round should stop ticking")
	}

	// The journal entry is written once per round
	m, _ = tick(t, m)

	rounds, err := store.RecentRounds(breakout.VariantKeys, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rounds) != 1 {
		t.Fatalf("got %d rounds, expected 1", len(rounds))
	}
	r := rounds[0]
	if r.Outcome != storage.OutcomeLost || r.Seed != 7 || r.Ticks != 2 {
		t.Errorf("round = %+v", r)
	}

	// Restart with a fresh seed on the same session
	session := g.Session()
	m, cmd = send(t, m, runeKey('r'))
	if m.State().GameOver {
		t.Error("restart should start a new round")
	}
	if cmd == nil {
		t.Error("restart should wake the ticker")
	}
	if m.config.Seed == 7 {
		t.Error("restart should pick a new seed")
	}
	if g.Session() != session {
		t.Error("restart should reuse the session")
	}
	if g.Seed() != m.config.Seed {
		t.Errorf("game seed = %d, expected %d", g.Seed(), m.config.Seed)
	}
	if session.Phase() != breakout.PhaseRunning || !session.Ticking() || session.Ticks() != 0 {
		t.Errorf("session after restart: phase=%v ticking=%v ticks=%d", session.Phase(), session.Ticking(), session.Ticks())
	}
}

func TestModelQuitAbandons(t *testing.T) {
	store := openStore(t)
	m := startModel(t, breakout.New(), Options{Store: store})

	m, _ = send(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Fatal("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}

	rounds, err := store.RecentRounds("", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rounds) != 1 || rounds[0].Outcome != storage.OutcomeAbandoned {
		t.Errorf("rounds = %+v, expected one abandoned round", rounds)
	}
}

func TestModelMouseDrag(t *testing.T) {
	g := breakout.NewTouch()
	m := startModel(t, g, Options{})

	// Bottom row of the field
	press := tea.MouseMsg{X: 10, Y: 23, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, _ = send(t, m, press)
	m, _ = tick(t, m)
	if g.Session().Paddle().Mode() != breakout.InputDragging {
		t.Fatalf("Mode() = %v, expected dragging", g.Session().Paddle().Mode())
	}

	release := tea.MouseMsg{X: 10, Y: 23, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	m, _ = send(t, m, release)
	tick(t, m)
	if g.Session().Paddle().Mode() != breakout.InputIdle {
		t.Error("release should end the drag")
	}
}

func TestModelBack(t *testing.T) {
	m := startModel(t, breakout.New(), Options{})
	m, _ = send(t, m, runeKey('p'))
	m, _ = tick(t, m)
	m, _ = send(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Error("standalone model has no menu to go back to")
	}

	m = startModel(t, breakout.New(), Options{Embedded: true})
	m, _ = send(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Error("back should be ignored while the round runs")
	}
	m, _ = send(t, m, runeKey('p'))
	m, _ = tick(t, m)
	m, _ = send(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("back should leave a paused round")
	}
}

func TestModelCopySeedWithoutClipboard(t *testing.T) {
	m := startModel(t, breakout.New(), Options{})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	if !strings.Contains(m.View(), "seed 7") {
		t.Error("seed should be shown when the clipboard is off")
	}
}

func TestModelScreenshot(t *testing.T) {
	dir := t.TempDir()
	m := startModel(t, breakout.New(), Options{ShotDir: dir})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), "breakout_") {
		t.Fatalf("screenshot dir = %v", entries)
	}
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Score: 0") {
		t.Error("screenshot should contain the HUD")
	}
	if !strings.Contains(m.View(), "saved") {
		t.Error("footer should report the saved file")
	}
}

func TestModelResizeKeepsRound(t *testing.T) {
	m := startModel(t, breakout.New(), Options{})
	m, _ = tick(t, m)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, expected 100x29", m.screen.Width(), m.screen.Height())
	}
	m, _ = tick(t, m)
	if m.State().Ticks != 3 {
		t.Errorf("Ticks = %d, expected the round to continue at 3", m.State().Ticks)
	}
}
