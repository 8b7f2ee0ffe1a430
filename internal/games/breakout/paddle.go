package breakout

import (
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// InputMode is the paddle's active-input state.
type InputMode int

const (
	InputIdle        InputMode = iota // No pointer or key held
	InputDragging                     // Pointer held, easing toward target
	InputDirectional                  // Key or pointer side held, constant speed
)

// String returns the mode name.
func (m InputMode) String() string {
	switch m {
	case InputDragging:
		return "dragging"
	case InputDirectional:
		return "directional"
	default:
		return "idle"
	}
}

// Direction is the held direction in directional control.
type Direction int

const (
	DirNone Direction = iota
	DirLeft
	DirRight
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Paddle is the player's paddle. Position is the left edge in normalized
// field units; the paddle never leaves [min, max] after Update.
type Paddle struct {
	control        string
	width, height  float64
	y              float64
	responsiveness float64
	speed          float64
	overhang       float64

	position float64
	target   float64
	mode     InputMode
	dir      Direction
}

// NewPaddle creates a paddle from config, centred in the field.
func NewPaddle(cfg config.PaddleConfig) *Paddle {
	p := &Paddle{
		control:        cfg.Control,
		width:          cfg.Width,
		height:         cfg.Height,
		y:              cfg.Y,
		responsiveness: cfg.Responsiveness,
		speed:          cfg.Speed,
		overhang:       cfg.Overhang,
	}
	p.Reset()
	return p
}

// Reset centres the paddle and drops any held input.
func (p *Paddle) Reset() {
	p.position = (1 - p.width) / 2
	p.target = p.position
	p.mode = InputIdle
	p.dir = DirNone
}

// Bounds returns the allowed range for the left edge.
func (p *Paddle) Bounds() (lo, hi float64) {
	return -p.overhang, 1 - p.width + p.overhang
}

// BeginInput starts a pointer gesture at pointerX in a field fieldWidth wide.
// Drag control aims the paddle centre at the pointer; directional control
// moves toward the side of the paddle centre the pointer fell on.
// Phase and control-region gating is done by the Session.
func (p *Paddle) BeginInput(pointerX, fieldWidth float64) {
	nx, ok := normalizeX(pointerX, fieldWidth)
	if !ok {
		return
	}

	switch p.control {
	case config.ControlDrag:
		p.mode = InputDragging
		p.target = nx - p.width/2
	default:
		p.mode = InputDirectional
		if nx < p.Rect().CenterX() {
			p.dir = DirLeft
		} else {
			p.dir = DirRight
		}
	}
}

// MoveInput updates the drag target while a drag is active.
func (p *Paddle) MoveInput(pointerX, fieldWidth float64) {
	if p.control != config.ControlDrag || p.mode != InputDragging {
		return
	}
	nx, ok := normalizeX(pointerX, fieldWidth)
	if !ok {
		return
	}
	p.target = nx - p.width/2
}

// EndInput releases the pointer. The paddle stays where it is.
func (p *Paddle) EndInput() {
	p.mode = InputIdle
	p.dir = DirNone
}

// KeyInput sets the held direction. Ignored under drag control.
func (p *Paddle) KeyInput(d Direction) {
	if p.control == config.ControlDrag {
		return
	}
	p.dir = d
	if d == DirNone {
		p.mode = InputIdle
	} else {
		p.mode = InputDirectional
	}
}

// Update advances the paddle by dt seconds and clamps position and target.
func (p *Paddle) Update(dt float64) {
	switch p.control {
	case config.ControlDrag:
		if p.mode == InputDragging {
			p.position += (p.target - p.position) * p.responsiveness * dt
		}
	default:
		switch p.dir {
		case DirLeft:
			p.position -= p.speed * dt
		case DirRight:
			p.position += p.speed * dt
		}
	}

	lo, hi := p.Bounds()
	p.position = core.ClampF(p.position, lo, hi)
	p.target = core.ClampF(p.target, lo, hi)
}

// Rect returns the paddle rectangle.
func (p *Paddle) Rect() core.Rect {
	return core.NewRect(p.position, p.y, p.width, p.height)
}

// Position returns the left edge.
func (p *Paddle) Position() float64 { return p.position }

// Target returns the drag target.
func (p *Paddle) Target() float64 { return p.target }

// Mode returns the active-input state.
func (p *Paddle) Mode() InputMode { return p.mode }

// Direction returns the held direction.
func (p *Paddle) Direction() Direction { return p.dir }

// Control returns the control mode name.
func (p *Paddle) Control() string { return p.control }

// Width returns the paddle width.
func (p *Paddle) Width() float64 { return p.width }

// normalizeX clamps a host coordinate into the field and scales it to [0, 1].
func normalizeX(x, fieldWidth float64) (float64, bool) {
	if fieldWidth <= 0 {
		return 0, false
	}
	return core.ClampF(x, 0, fieldWidth) / fieldWidth, true
}
