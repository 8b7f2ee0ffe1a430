// Package gui runs breakout in a desktop window with Ebitengine.
// Ebitengine calls Update at the tick rate on one goroutine, so the session
// is only ever touched from there.
package gui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/logging"
	"github.com/vovakirdan/tui-breakout/internal/platform/gui/view"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// Options configures the window host.
type Options struct {
	Width, Height int // Initial window size in pixels
	Store         *storage.Store
	Logger        *log.Logger
}

// DefaultOptions returns a portrait window with no journal.
func DefaultOptions() Options {
	return Options{Width: 480, Height: 640}
}

// Host implements ebiten.Game around a breakout game.
type Host struct {
	game     *breakout.Game
	config   core.RuntimeConfig
	opts     Options
	layout   view.Layout
	prev     view.Controls
	state    core.GameState
	touch    ebiten.TouchID
	touching bool
	recorded bool
}

// NewHost creates a host and starts the first round.
func NewHost(game *breakout.Game, cfg core.RuntimeConfig, opts Options) *Host {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		def := DefaultOptions()
		opts.Width, opts.Height = def.Width, def.Height
	}

	h := &Host{
		game:   game,
		config: cfg,
		opts:   opts,
		layout: view.Layout{W: opts.Width, H: opts.Height},
	}
	h.config.ScreenW = opts.Width
	h.config.ScreenH = opts.Height
	h.game.Reset(h.config)
	h.state = h.game.State()
	h.opts.Logger.Info("round started", "variant", game.ID(), "seed", h.config.Seed)
	return h
}

// Update samples input and advances the game by one tick.
func (h *Host) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		h.recordAbandoned()
		return ebiten.Termination
	}

	cur := h.sample()
	in := view.Translate(h.prev, cur, h.layout)
	h.prev = cur

	if h.state.GameOver {
		if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) || view.Pressed(in) {
			h.restart()
		}
		return nil
	}

	res := h.game.Step(in)
	h.state = res.State
	if res.Ended {
		h.recordRound()
	}
	return nil
}

// sample reads the keyboard, the mouse and the first active touch.
func (h *Host) sample() view.Controls {
	c := view.Controls{
		Left:    ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right:   ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Pause:   ebiten.IsKeyPressed(ebiten.KeyP) || ebiten.IsKeyPressed(ebiten.KeyEscape),
		Restart: ebiten.IsKeyPressed(ebiten.KeyR),
		Confirm: ebiten.IsKeyPressed(ebiten.KeyEnter),
		Pointer: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}
	c.X, c.Y = ebiten.CursorPosition()

	if c.Pointer {
		return c
	}

	if !h.touching {
		if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
			h.touch = ids[0]
			h.touching = true
		}
	}
	if h.touching {
		if inpututil.IsTouchJustReleased(h.touch) {
			h.touching = false
			return c
		}
		c.Pointer = true
		c.X, c.Y = ebiten.TouchPosition(h.touch)
	}
	return c
}

// restart begins a new round with a fresh seed.
func (h *Host) restart() {
	h.config.Seed = time.Now().UnixNano()
	h.game.Restart(h.config.Seed)
	h.state = h.game.State()
	h.recorded = false
	h.opts.Logger.Info("round started", "variant", h.game.ID(), "seed", h.config.Seed)
}

func (h *Host) recordRound() {
	if h.recorded {
		return
	}
	h.recorded = true

	outcome := storage.OutcomeLost
	if h.state.Won {
		outcome = storage.OutcomeWon
	}
	h.journal(outcome)
}

func (h *Host) recordAbandoned() {
	if h.recorded || h.state.GameOver || h.state.Ticks == 0 {
		return
	}
	h.recorded = true
	h.journal(storage.OutcomeAbandoned)
}

func (h *Host) journal(outcome string) {
	rec := storage.RoundRecord{
		Variant:         h.game.ID(),
		Seed:            h.config.Seed,
		Outcome:         outcome,
		BlocksDestroyed: h.state.Score,
		Ticks:           h.state.Ticks,
	}
	h.opts.Logger.Info("round ended", "variant", rec.Variant, "outcome", outcome, "blocks", rec.BlocksDestroyed)

	if h.opts.Store == nil {
		return
	}
	if _, err := h.opts.Store.SaveRound(rec); err != nil {
		h.opts.Logger.Warn("could not save round", "error", err)
	}
}

// Draw renders the field, the HUD and the end-of-round box.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(view.Background)

	s := h.game.Session()
	if s == nil {
		return
	}
	l := h.layout

	hud := fmt.Sprintf("Score: %d   Blocks: %d/%d", s.Destroyed(), s.Blocks().Len(), s.Blocks().Total())
	if h.state.Paused {
		hud += "   PAUSED"
	}
	ebitenutil.DebugPrintAt(screen, hud, 8, 4)
	vector.StrokeLine(screen, 0, view.HUDHeight, float32(l.W), view.HUDHeight, 1, colornames.Slategray, false)

	for _, b := range s.Blocks().Blocks() {
		x, y, w, bh := l.Rect(b.Rect)
		vector.FillRect(screen, x+1, y+1, w-2, bh-2, view.Color(b.Color), false)
	}

	x, y, w, ph := l.Rect(s.Paddle().Rect())
	vector.FillRect(screen, x, y, w, ph, colornames.White, true)

	bx, by, bw, bh := l.Rect(s.Ball().Rect())
	r := min(bw, bh) / 2
	vector.FillCircle(screen, bx+bw/2, by+bh/2, r, colornames.White, true)

	switch s.Phase() {
	case breakout.PhaseWon:
		h.drawModal(screen, breakout.MessageWon, colornames.Limegreen)
	case breakout.PhaseLost:
		h.drawModal(screen, breakout.MessageLost, colornames.Crimson)
	}
}

func (h *Host) drawModal(screen *ebiten.Image, title string, c color.Color) {
	const (
		boxW = 240
		boxH = 72
		hint = "R or click to restart"
	)
	x := float32(h.layout.W-boxW) / 2
	y := float32(h.layout.H-boxH) / 2

	vector.FillRect(screen, x, y, boxW, boxH, colornames.Black, false)
	vector.StrokeRect(screen, x, y, boxW, boxH, 2, c, false)
	ebitenutil.DebugPrintAt(screen, title, int(x)+16, int(y)+16)
	ebitenutil.DebugPrintAt(screen, hint, int(x)+16, int(y)+40)
}

// Layout follows the window size so the field stretches with it.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != h.layout.W || outsideHeight != h.layout.H {
		h.layout = view.Layout{W: outsideWidth, H: outsideHeight}
		h.config.ScreenW = outsideWidth
		h.config.ScreenH = outsideHeight
		h.game.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func Run(game *breakout.Game, cfg core.RuntimeConfig, opts Options) error {
	h := NewHost(game, cfg, opts)

	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowSize(h.opts.Width, h.opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.TickRate > 0 {
		ebiten.SetTPS(cfg.TickRate)
	}

	if err := ebiten.RunGame(h); err != nil {
		return fmt.Errorf("gui: %w", err)
	}
	h.recordAbandoned()
	return nil
}
