package breakout

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

// Visual characters for rendering
const (
	PaddleChar  = '='
	BallChar    = '●'
	BlockChar   = '█'
	BorderHoriz = '─'
)

// Rows reserved above the play field: HUD and separator.
const hudRows = 2

// End-of-round messages
const (
	MessageWon  = "You win!"
	MessageLost = "You lose!"
)

// Variant IDs
const (
	VariantKeys  = "breakout"
	VariantTouch = "breakout-touch"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset = config.DifficultyNormal

// layout stores the paddle layout set via CLI
var layout = config.LayoutClassic

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetLayout sets the paddle layout.
func SetLayout(l config.Layout) {
	layout = l
}

// LoadConfig resolves the breakout config from the CLI settings. The
// variant's control mode always wins over the file.
func LoadConfig(control string) (config.BreakoutConfig, error) {
	cfg, err := config.LoadBreakout(configPath)
	if err != nil {
		return cfg, err
	}
	config.ApplyBreakoutPreset(&cfg, difficultyPreset)
	config.ApplyLayout(&cfg, layout)
	cfg.Paddle.Control = control
	return cfg, cfg.Validate()
}

// Game adapts a Session to the registry.Game interface: it maps input
// frames onto session entry points, owns the pause flow, and renders the
// field into a core.Screen. One session lives for the life of the Game.
type Game struct {
	variant string
	control string

	session   *Session
	runtime   core.RuntimeConfig
	listener  Listener
	autopilot *Autopilot

	// Terminals send no key-up, so a key-held direction is released after
	// quietTicks reaches the configured limit. Pointer directions are not.
	keyHeld    bool
	quietTicks int

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates the keyboard variant.
func New() *Game {
	return newGame(VariantKeys, config.ControlDirectional)
}

// NewTouch creates the pointer-drag variant.
func NewTouch() *Game {
	return newGame(VariantTouch, config.ControlDrag)
}

func newGame(variant, control string) *Game {
	return &Game{
		variant:    variant,
		control:    control,
		minScreenW: 30,
		minScreenH: 12,
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.variant
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.variant == VariantTouch {
		return "Breakout (Touch)"
	}
	return "Breakout"
}

// Hint describes how the variant is steered.
func (g *Game) Hint() string {
	if g.control == config.ControlDrag {
		return "click or drag the mouse"
	}
	return "arrow keys or A/D"
}

// Reset starts a round for runtime. The session is built from config on the
// first call; later calls reseed it and reset it in place.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH
	if g.session != nil {
		g.Restart(runtime.Seed)
		return
	}

	cfg, err := LoadConfig(g.control)
	if err != nil {
		cfg = config.DefaultBreakoutConfig()
		config.ApplyBreakoutPreset(&cfg, difficultyPreset)
		config.ApplyLayout(&cfg, layout)
		cfg.Paddle.Control = g.control
	}

	g.session = NewSession(cfg, NewSimpleRNG(runtime.Seed))
	g.session.SetListener(g.listener)
	g.keyHeld = false
	g.quietTicks = 0
	_ = g.session.Start()
}

// Resize adapts to a new host size. The field is normalized, so the round
// keeps going; only the too-small check and pointer mapping change.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.screenTooSmall = w < g.minScreenW || h < g.minScreenH
}

// SetListener forwards session events to l.
func (g *Game) SetListener(l Listener) {
	g.listener = l
	if g.session != nil {
		g.session.SetListener(l)
	}
}

// SetAutopilot lets a steers the paddle on every step. Pass nil to return
// control to the player.
func (g *Game) SetAutopilot(a *Autopilot) {
	g.autopilot = a
}

// Session returns the underlying session.
func (g *Game) Session() *Session {
	return g.session
}

// Seed returns the RNG seed the current session was built with.
func (g *Game) Seed() int64 {
	return g.runtime.Seed
}

// Step applies one frame of input and advances the session by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall || g.session == nil {
		return core.StepResult{State: g.State()}
	}
	s := g.session

	// Hosts pick the next seed, so they call Restart themselves.
	if s.Phase().Terminal() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		if s.Ticking() {
			s.Stop()
		} else {
			_ = s.Start()
		}
	}

	g.applyKeys(in)
	for _, ev := range in.Pointer {
		if ev.Kind == core.PointerDown {
			if s.PointerDown(ev.X, ev.Y, ev.FieldW, ev.FieldH) {
				g.keyHeld = false
			}
			continue
		}
		s.HandlePointer(ev)
	}
	if g.autopilot != nil {
		g.autopilot.Steer(s)
	}

	s.Update(g.runtime.TickSeconds())

	state := g.State()
	return core.StepResult{State: state, Ended: state.GameOver}
}

// Restart reseeds the session and starts the next round on it.
func (g *Game) Restart(seed int64) {
	g.runtime.Seed = seed
	if g.session == nil {
		g.Reset(g.runtime)
		return
	}
	g.session.Reseed(seed)
	g.session.Reset()
	g.keyHeld = false
	g.quietTicks = 0
	_ = g.session.Start()
}

func (g *Game) applyKeys(in core.InputFrame) {
	s := g.session
	switch {
	case in.Has(core.ActionLeft):
		s.KeyDown(DirLeft)
		g.keyHeld = true
		g.quietTicks = 0
	case in.Has(core.ActionRight):
		s.KeyDown(DirRight)
		g.keyHeld = true
		g.quietTicks = 0
	case in.Has(core.ActionStop):
		s.KeyUp()
		g.keyHeld = false
	case g.keyHeld:
		g.quietTicks++
		limit := s.Config().Input.KeyReleaseTicks
		if limit > 0 && g.quietTicks >= limit {
			s.KeyUp()
			g.keyHeld = false
		}
	}
}

// CellPointer converts a pointer at screen cell (cx, cy), counted from the
// top-left, into a field event. The sample sits at the cell centre, y grows
// upward from the field bottom.
func (g *Game) CellPointer(kind core.PointerKind, cx, cy, screenW, screenH int) core.PointerEvent {
	fieldH := screenH - hudRows
	return core.PointerEvent{
		Kind:   kind,
		X:      float64(cx) + 0.5,
		Y:      float64(hudRows+fieldH-cy) - 0.5,
		FieldW: float64(screenW),
		FieldH: float64(fieldH),
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}
	if g.session == nil {
		return
	}

	g.renderHUD(dst)
	g.renderBlocks(dst)
	g.renderPaddle(dst)
	g.renderBall(dst)
	g.renderOverlay(dst)
}

// cellRect maps a normalized rect onto field cells below the HUD.
func cellRect(r core.Rect, w, h int) (x, y, cw, ch int) {
	fieldH := float64(h - hudRows)
	x0 := int(math.Round(r.Left() * float64(w)))
	x1 := int(math.Round(r.Right() * float64(w)))
	y0 := int(math.Round((1 - r.Top()) * fieldH))
	y1 := int(math.Round((1 - r.Bottom()) * fieldH))
	return x0, hudRows + y0, max(1, x1-x0), max(1, y1-y0)
}

// renderHUD draws the score and the block count.
func (g *Game) renderHUD(dst *core.Screen) {
	s := g.session

	dst.DrawTextBold(1, 0, fmt.Sprintf("Score: %d", s.Destroyed()), core.ColorBrightWhite)
	dst.DrawTextRight(0, 1, fmt.Sprintf("Blocks: %d/%d", s.Blocks().Len(), s.Blocks().Total()))

	if s.Phase() == PhaseRunning && !s.Ticking() {
		dst.DrawTextCentered(0, "PAUSED")
	}

	dst.DrawHLine(0, 1, dst.Width(), BorderHoriz, core.ColorGray)
}

func (g *Game) renderBlocks(dst *core.Screen) {
	for _, b := range g.session.Blocks().Blocks() {
		x, y, w, h := cellRect(b.Rect, dst.Width(), dst.Height())
		dst.DrawRect(x, y, w, h, BlockChar, b.Color)
	}
}

func (g *Game) renderPaddle(dst *core.Screen) {
	x, y, w, _ := cellRect(g.session.Paddle().Rect(), dst.Width(), dst.Height())
	for i := range w {
		dst.SetColored(x+i, y, PaddleChar, core.ColorBrightWhite)
	}
}

func (g *Game) renderBall(dst *core.Screen) {
	r := g.session.Ball().Rect()
	fieldH := float64(dst.Height() - hudRows)
	x := int(r.CenterX() * float64(dst.Width()))
	y := hudRows + int((1-r.CenterY())*fieldH)
	if y < hudRows {
		y = hudRows
	}
	dst.SetColored(x, y, BallChar, core.ColorBrightWhite)
}

// renderOverlay draws the end-of-round modal.
func (g *Game) renderOverlay(dst *core.Screen) {
	const hint = "R or click to restart | Q to quit"
	switch g.session.Phase() {
	case PhaseWon:
		g.drawCenteredBox(dst, MessageWon, hint, core.ColorBrightGreen)
	case PhaseLost:
		g.drawCenteredBox(dst, MessageLost, hint, core.ColorBrightRed)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string, c core.Color) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, c)

	titleX := boxX + (boxW-len(title))/2
	dst.DrawTextBold(titleX, boxY+1, title, c)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	s := g.session
	return core.GameState{
		Score:    s.Destroyed(),
		GameOver: s.Phase().Terminal(),
		Won:      s.Phase() == PhaseWon,
		Paused:   s.Phase() == PhaseRunning && !s.Ticking(),
		Ticks:    s.Ticks(),
		Phase:    s.Phase().String(),
	}
}

// Register the variants with the registry
func init() {
	registry.Register(VariantKeys, func() registry.Game {
		return New()
	})
	registry.Register(VariantTouch, func() registry.Game {
		return NewTouch()
	})
}
