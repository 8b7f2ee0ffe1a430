package breakout

import (
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Block is a destructible block.
type Block struct {
	Rect  core.Rect
	Color core.Color
}

// BlockField holds the live blocks in grid enumeration order (row by row,
// bottom row first). The order decides which block wins when the ball
// touches several at once.
type BlockField struct {
	cfg     config.BlocksConfig
	palette []core.Color
	blocks  []Block
}

// NewBlockField creates an empty field. Call Reset to build the grid.
func NewBlockField(cfg config.BlocksConfig) *BlockField {
	palette := make([]core.Color, 0, len(cfg.Palette))
	for _, name := range cfg.Palette {
		if c, ok := core.ParseColor(name); ok {
			palette = append(palette, c)
		}
	}
	if len(palette) == 0 {
		palette = append(palette, core.ColorWhite)
	}
	return &BlockField{
		cfg:     cfg,
		palette: palette,
		blocks:  make([]Block, 0, cfg.Cols*cfg.Rows),
	}
}

// Reset rebuilds the full grid with fresh colours drawn from rng.
func (f *BlockField) Reset(rng Rand) {
	f.blocks = f.blocks[:0]
	for row := range f.cfg.Rows {
		for col := range f.cfg.Cols {
			x := f.cfg.OriginX + f.cfg.StepX*float64(col)
			y := f.cfg.OriginY + f.cfg.StepY*float64(row)
			f.blocks = append(f.blocks, Block{
				Rect:  core.NewRect(x, y, f.cfg.Width, f.cfg.Height),
				Color: f.palette[rng.Intn(len(f.palette))],
			})
		}
	}
}

// Query returns the index of the first block overlapping r.
func (f *BlockField) Query(r core.Rect) (int, bool) {
	for i := range f.blocks {
		if core.Overlaps(r, f.blocks[i].Rect) {
			return i, true
		}
	}
	return -1, false
}

// Resolve reflects the ball off block index on the axis picked by
// core.ReflectAxis and removes the block. Returns the removed block.
func (f *BlockField) Resolve(b *Ball, index int) Block {
	blk := f.blocks[index]

	if core.ReflectAxis(b.Rect(), blk.Rect, b.VX, b.VY) == core.AxisX {
		b.VX = -b.VX
	} else {
		b.VY = -b.VY
	}

	f.blocks = append(f.blocks[:index], f.blocks[index+1:]...)
	return blk
}

// IsEmpty reports whether every block has been destroyed.
func (f *BlockField) IsEmpty() bool {
	return len(f.blocks) == 0
}

// Len returns the number of live blocks.
func (f *BlockField) Len() int {
	return len(f.blocks)
}

// Total returns the block count of a freshly built grid.
func (f *BlockField) Total() int {
	return f.cfg.Cols * f.cfg.Rows
}

// Blocks returns the live blocks. The slice is only valid until the next
// Update or Reset.
func (f *BlockField) Blocks() []Block {
	return f.blocks
}
