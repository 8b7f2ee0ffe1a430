package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/logging"
	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// pointerMapper is implemented by games that take mouse input in screen cells.
type pointerMapper interface {
	CellPointer(kind core.PointerKind, cx, cy, screenW, screenH int) core.PointerEvent
}

// restarter is implemented by games that start the next round on the same
// session with a new seed.
type restarter interface {
	Restart(seed int64)
}

// resizer is implemented by games that can follow a window resize without
// restarting the round.
type resizer interface {
	Resize(w, h int)
}

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Options configures a Model beyond the game and runtime config.
type Options struct {
	Store     *storage.Store // Round journal; nil disables saving
	Logger    *log.Logger
	Clipboard bool   // Allow ctrl+y to write the seed to the local clipboard
	ShotDir   string // Screenshot directory (default ~/.breakout/screenshots)
	Embedded  bool   // Back returns to a parent menu instead of doing nothing
}

// Model is the Bubble Tea model for playing one breakout variant.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	renderer   *screenRenderer
	config     core.RuntimeConfig
	opts       Options
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	id         int64
	termW      int
	termH      int
	ticking    bool   // A TickMsg is in flight
	recorded   bool   // Journal entry written for the current round
	status     string // One-shot footer message
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
// cfg carries the full terminal size; the last rows go to the footer.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		game:       game,
		config:     cfg,
		opts:       opts,
		renderer:   newScreenRenderer(),
		keyMapper:  NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		id:         nextModelID(),
		ticking:    true, // Init schedules the first tick
		termW:      cfg.ScreenW,
		termH:      cfg.ScreenH,
	}
	m.config.ScreenH = m.fieldHeight()
	m.screen = core.NewScreen(m.config.ScreenW, m.config.ScreenH)
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)
	m.opts.Logger.Info("round started", "variant", m.game.ID(), "seed", m.config.Seed)

	return tickCmd(m.config.TickRate, m.id)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Owner != m.id {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys

	switch {
	case key.Matches(msg, keys.Quit):
		m.recordAbandoned()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Screenshot):
		path, err := m.saveScreenshot()
		if err != nil {
			m.status = "screenshot failed: " + err.Error()
		} else {
			m.status = "saved " + path
		}
		return m, nil

	case key.Matches(msg, keys.CopySeed):
		m.copySeed()
		return m, nil

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.relayout()
		return m, nil

	case key.Matches(msg, keys.Back):
		if m.opts.Embedded && (m.gameState.GameOver || m.gameState.Paused) {
			m.recordAbandoned()
			m.backToMenu = true
		}
		return m, nil
	}

	action, _ := m.keyMapper.MapKey(msg)
	if action == core.ActionNone {
		return m, nil
	}
	m.status = ""

	if m.gameState.GameOver && (action == core.ActionRestart || action == core.ActionConfirm) {
		return m.restart()
	}

	m.inputFrame.Set(action)
	return m.wake()
}

// handleMouse converts mouse events to field pointer events.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	pm, ok := m.game.(pointerMapper)
	if !ok {
		return m, nil
	}

	var kind core.PointerKind
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		kind = core.PointerDown
	case msg.Action == tea.MouseActionMotion:
		kind = core.PointerMove
	case msg.Action == tea.MouseActionRelease:
		kind = core.PointerUp
	default:
		return m, nil
	}

	if kind == core.PointerDown && m.gameState.GameOver {
		return m.restart()
	}

	m.inputFrame.AddPointer(pm.CellPointer(kind, msg.X, msg.Y, m.screen.Width(), m.screen.Height()))
	return m.wake()
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.termW = msg.Width
	m.termH = msg.Height
	m.help.Width = msg.Width
	m.relayout()
	return m, nil
}

// relayout fits the field above the footer and tells the game.
func (m *Model) relayout() {
	m.config.ScreenW = m.termW
	m.config.ScreenH = m.fieldHeight()
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)

	if r, ok := m.game.(resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
		return
	}
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
}

func (m Model) fieldHeight() int {
	return max(0, m.termH-lipgloss.Height(m.footer()))
}

// handleTick processes simulation ticks.
// Ticks stop while the round is paused or over; input wakes them again.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.ticking = false

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.gameState.GameOver {
		m.recordRound()
		return m, nil
	}
	if m.gameState.Paused {
		return m, nil
	}

	m.ticking = true
	return m, tickCmd(m.config.TickRate, m.id)
}

// wake schedules a tick unless one is already pending.
func (m Model) wake() (tea.Model, tea.Cmd) {
	if m.ticking {
		return m, nil
	}
	m.ticking = true
	return m, tickCmd(m.config.TickRate, m.id)
}

// restart begins a new round with a fresh seed.
func (m Model) restart() (tea.Model, tea.Cmd) {
	m.config.Seed = time.Now().UnixNano()
	if r, ok := m.game.(restarter); ok {
		r.Restart(m.config.Seed)
	} else {
		m.game.Reset(m.config)
	}
	m.gameState = m.game.State()
	m.recorded = false
	m.status = ""
	m.inputFrame.Clear()
	m.opts.Logger.Info("round started", "variant", m.game.ID(), "seed", m.config.Seed)
	return m.wake()
}

// recordRound writes the finished round to the journal once.
func (m *Model) recordRound() {
	if m.recorded {
		return
	}
	m.recorded = true

	outcome := storage.OutcomeLost
	if m.gameState.Won {
		outcome = storage.OutcomeWon
	}
	m.journal(outcome)
}

// recordAbandoned journals a round the player walked away from.
func (m *Model) recordAbandoned() {
	if m.recorded || m.gameState.GameOver || m.gameState.Ticks == 0 {
		return
	}
	m.recorded = true
	m.journal(storage.OutcomeAbandoned)
}

func (m *Model) journal(outcome string) {
	rec := storage.RoundRecord{
		Variant:         m.game.ID(),
		Seed:            m.config.Seed,
		Outcome:         outcome,
		BlocksDestroyed: m.gameState.Score,
		Ticks:           m.gameState.Ticks,
	}
	m.opts.Logger.Info("round ended",
		"variant", rec.Variant,
		"outcome", outcome,
		"blocks", rec.BlocksDestroyed,
		"ticks", rec.Ticks,
	)

	if m.opts.Store == nil {
		return
	}
	id, err := m.opts.Store.SaveRound(rec)
	if err != nil {
		m.opts.Logger.Warn("could not save round", "error", err)
		return
	}
	m.opts.Logger.Debug("round saved", "id", id)
}

// copySeed puts the current seed on the clipboard.
func (m *Model) copySeed() {
	seed := strconv.FormatInt(m.config.Seed, 10)
	if !m.opts.Clipboard {
		m.status = "seed " + seed
		return
	}
	if err := clipboard.WriteAll(seed); err != nil {
		m.status = "copy failed: " + err.Error()
		return
	}
	m.status = "seed " + seed + " copied"
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() (string, error) {
	// Render current state
	m.game.Render(m.screen)

	dir := m.opts.ShotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		dir = filepath.Join(home, ".breakout", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create screenshot directory: %w", err)
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", err
	}
	m.opts.Logger.Debug("screenshot saved", "path", path)
	return path, nil
}

// footer is the status message or the key help.
func (m Model) footer() string {
	if m.status != "" {
		return footerStyle.Render(m.status)
	}
	return footerStyle.Render(m.help.View(m.keyMapper.Keys))
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	return m.renderer.Render(m.screen) + "\n" + m.footer()
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the game state as of the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Press, drag and release
	)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
